package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNotFound         = errors.New("task not found")
	ErrEmptyDescription = errors.New("task description is required")
	ErrInvalidStatus    = errors.New("status must be one of " + statusList())
)

// ValidationError reports input that was rejected before any change was made
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type NotFoundError struct {
	ID ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no task found with ID %d", e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

func statusList() string {
	names := make([]string, len(Statuses))
	for i, s := range Statuses {
		names[i] = string(s)
	}
	return "[" + strings.Join(names, ", ") + "]"
}
