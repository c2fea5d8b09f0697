package date

import (
	"bytes"
	"encoding/json"
	"time"
)

// Layout is how timestamps are written to the task file: local wall clock,
// microsecond precision, no zone.
const Layout = "2006-01-02T15:04:05.000000"

// DisplayLayout is the human readable form used in tables.
const DisplayLayout = "Jan 02, 2006 15:04"

// Time is a point in time that serializes as a local ISO-8601 string.
//
// A stored value that is not a readable timestamp (null, a number, a string
// in some other format) is kept verbatim with a zero time, and written back
// unchanged, so one odd field never makes a task file unreadable.
type Time struct {
	time.Time
	raw json.RawMessage
}

// Now returns the current local time
func Now() Time {
	return Time{Time: time.Now()}
}

// From wraps t, keeping its location as-is
func From(t time.Time) Time {
	return Time{Time: t}
}

// Ptr returns a pointer to a copy of t
func Ptr(t Time) *Time {
	return &t
}

// Valid reports whether t holds a parsed timestamp rather than a kept raw
// value.
func (t Time) Valid() bool {
	return t.raw == nil
}

// Raw is the stored value that could not be parsed, or nil
func (t Time) Raw() json.RawMessage {
	return t.raw
}

func (t Time) String() string {
	if !t.Valid() {
		return string(t.raw)
	}
	return t.Format(Layout)
}

func (t Time) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return t.raw, nil
	}
	return json.Marshal(t.Format(Layout))
}

func (t *Time) UnmarshalJSON(bs []byte) error {
	var s string
	if err := json.Unmarshal(bs, &s); err == nil {
		if parsed, err := Parse(s); err == nil {
			*t = Time{Time: parsed}
			return nil
		}
	}
	*t = Time{raw: append(json.RawMessage(nil), bytes.TrimSpace(bs)...)}
	return nil
}

// Display renders t for humans. Unset values are a dash; unreadable stored
// strings are shown as they are.
func Display(t *Time) string {
	if t == nil {
		return "—"
	}
	if !t.Valid() {
		var s string
		if err := json.Unmarshal(t.raw, &s); err == nil && s != "" {
			return s
		}
		return "—"
	}
	if t.IsZero() {
		return "—"
	}
	return t.Format(DisplayLayout)
}
