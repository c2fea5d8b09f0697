package date

import (
	"errors"
	"strings"
	"time"
)

var ErrParsing = errors.New("error parsing timestamp")

// formats are tried in order; zoneless layouts are read as local time
var formats = []string{
	Layout,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.RFC3339Nano,
}

// Parse reads a timestamp written by this or an older version of the
// tracker. It never normalizes the zone.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrParsing
	}
	return parseAnyFormat(s)
}

func parseAnyFormat(s string) (time.Time, error) {
	for _, f := range formats {
		t, err := time.ParseInLocation(f, s, time.Local)
		if err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrParsing
}
