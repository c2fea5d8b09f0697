package persist

import (
	"errors"
	"fmt"
)

// ErrMalformed matches any *MalformedError
var ErrMalformed = errors.New("malformed task file")

// MalformedError is returned by Load together with an empty collection after
// an unreadable task file was backed up and reset. It is not fatal.
type MalformedError struct {
	Path   string
	Backup string
	Err    error
}

func (e *MalformedError) Error() string {
	return fmt.Sprintf("corrupted task file %s backed up to %s, starting with an empty task list: %s", e.Path, e.Backup, e.Err)
}

func (e *MalformedError) Unwrap() error {
	return e.Err
}

func (e *MalformedError) Is(target error) bool {
	return target == ErrMalformed
}

// StorageError means the filesystem itself failed; the operation did not
// happen.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
