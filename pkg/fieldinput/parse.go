package fieldinput

import (
	"errors"
	"strconv"
	"strings"

	"github.com/td0m/listopia/pkg/task"
)

var (
	ErrNotNumber   = errors.New("task ID must be a number")
	ErrNotPositive = errors.New("task ID must be positive")
	ErrAmbiguous   = errors.New("ambiguous status")
	ErrYesNo       = errors.New("answer y or n")
)

// ParseID reads a task id. Surrounding space is ignored.
func ParseID(s string) (task.ID, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, ErrNotNumber
	}
	if n < 1 {
		return 0, ErrNotPositive
	}
	return task.ID(n), nil
}

// ParseStatus completes a case-insensitive prefix to the one status it
// starts, so "d" is done and "in" is in-progress.
func ParseStatus(s string) (task.Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", task.ErrInvalidStatus
	}
	var match task.Status
	for _, status := range task.Statuses {
		full := string(status)
		end := min(len(s), len(full))
		if s != full[:end] {
			continue
		}
		if match != "" {
			return "", ErrAmbiguous
		}
		match = status
	}
	if match == "" {
		return task.ParseStatus(s)
	}
	return match, nil
}

// ParseYesNo accepts y/yes and n/no in any case
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes":
		return true, nil
	case "n", "no":
		return false, nil
	}
	return false, ErrYesNo
}

// ID, Status, Description and YesNo adapt the parsers above for Model
func ID(s string) (string, error) {
	id, err := ParseID(s)
	if err != nil {
		return "", err
	}
	return strconv.Itoa(int(id)), nil
}

func Status(s string) (string, error) {
	status, err := ParseStatus(s)
	return string(status), err
}

func Description(s string) (string, error) {
	d, err := task.ValidateDescription(s)
	if err != nil {
		return "", task.ErrEmptyDescription
	}
	return d, nil
}

func YesNo(s string) (string, error) {
	yes, err := ParseYesNo(s)
	if err != nil {
		return "", err
	}
	if yes {
		return "yes", nil
	}
	return "no", nil
}
