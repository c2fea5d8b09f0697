package task

import (
	"strings"
	"time"

	"github.com/td0m/listopia/pkg/task/date"
)

type ID int

type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in-progress"
	StatusDone       Status = "done"
)

// Statuses lists every valid status in workflow order.
// Any status may follow any other.
var Statuses = []Status{StatusTodo, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

type Task struct {
	ID          ID         `json:"id"`
	Description string     `json:"description"`
	Status      Status     `json:"status"`
	CreatedAt   date.Time  `json:"createdAt"`
	UpdatedAt   *date.Time `json:"updatedAt"`
}

// New creates a todo task. UpdatedAt stays nil until the first change.
func New(id ID, description string, at time.Time) Task {
	return Task{
		ID:          id,
		Description: description,
		Status:      StatusTodo,
		CreatedAt:   date.From(at),
	}
}

// ValidateDescription trims raw and rejects it if nothing is left
func ValidateDescription(raw string) (string, error) {
	d := strings.TrimSpace(raw)
	if d == "" {
		return "", &ValidationError{Field: "description", Value: raw, Err: ErrEmptyDescription}
	}
	return d, nil
}

// ParseStatus accepts exactly one of Statuses
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", &ValidationError{Field: "status", Value: raw, Err: ErrInvalidStatus}
	}
	return s, nil
}

func (t *Task) SetStatus(candidate string, at time.Time) error {
	s, err := ParseStatus(candidate)
	if err != nil {
		return err
	}
	t.Status = s
	t.touch(at)
	return nil
}

func (t *Task) SetDescription(raw string, at time.Time) error {
	d, err := ValidateDescription(raw)
	if err != nil {
		return err
	}
	t.Description = d
	t.touch(at)
	return nil
}

func (t *Task) touch(at time.Time) {
	t.UpdatedAt = date.Ptr(date.From(at))
}
