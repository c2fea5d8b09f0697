package fieldinput

import (
	"errors"
	"testing"

	"github.com/td0m/listopia/pkg/task"
)

func TestParseID(t *testing.T) {
	tests := []struct {
		input   string
		want    task.ID
		wantErr error
	}{
		{"1", 1, nil},
		{" 42 ", 42, nil},
		{"007", 7, nil},
		{"0", 0, ErrNotPositive},
		{"-3", 0, ErrNotPositive},
		{"", 0, ErrNotNumber},
		{"one", 0, ErrNotNumber},
		{"1.5", 0, ErrNotNumber},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseID(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ParseID(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseID(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    task.Status
		wantErr bool
	}{
		{"t", task.StatusTodo, false},
		{"todo", task.StatusTodo, false},
		{"TODO", task.StatusTodo, false},
		{"i", task.StatusInProgress, false},
		{"in-pro", task.StatusInProgress, false},
		{"in-progress", task.StatusInProgress, false},
		{"d", task.StatusDone, false},
		{" done ", task.StatusDone, false},
		{"", "", true},
		{"todos", "", true},
		{"x", "", true},
		{"in progress", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStatus(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseStatus(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseYesNo(t *testing.T) {
	for input, want := range map[string]bool{"y": true, "Yes": true, " n ": false, "NO": false} {
		got, err := ParseYesNo(input)
		if err != nil || got != want {
			t.Errorf("ParseYesNo(%q) = %v, %v", input, got, err)
		}
	}
	if _, err := ParseYesNo("maybe"); !errors.Is(err, ErrYesNo) {
		t.Errorf("ParseYesNo(maybe) error = %v", err)
	}
}
