package persist

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/td0m/listopia/pkg/task"
)

// BackupSuffix is appended to the task file path when an unreadable file is
// moved out of the way.
const BackupSuffix = ".bak"

const defaultMode fs.FileMode = 0644

type Persistor interface {
	Save([]task.Task) error
	Load() ([]task.Task, error)
}

var _ Persistor = &JSON{}

type JSON struct {
	file string
}

func InJSON(file string) *JSON {
	return &JSON{file}
}

func (j JSON) Path() string {
	return j.file
}

func (j JSON) BackupPath() string {
	return j.file + BackupSuffix
}

// Save writes the whole collection to a temporary file next to the task
// file and renames it into place, so readers see either the old or the new
// contents.
func (j JSON) Save(ts []task.Task) error {
	if ts == nil {
		ts = []task.Task{}
	}
	bs, err := json.MarshalIndent(ts, "", "    ")
	if err != nil {
		return &StorageError{Op: "encode", Path: j.file, Err: err}
	}
	bs = append(bs, '\n')
	return j.write(bs)
}

// Load reads the task file.
// A missing file is created empty. A file that does not decode is moved to
// BackupPath, replaced by an empty collection and reported as a
// *MalformedError alongside the (empty) result; callers should treat that
// as a warning.
func (j JSON) Load() ([]task.Task, error) {
	bs, err := os.ReadFile(j.file)
	if errors.Is(err, fs.ErrNotExist) {
		return []task.Task{}, j.Save(nil)
	}
	if err != nil {
		return nil, &StorageError{Op: "read", Path: j.file, Err: err}
	}
	var ts []task.Task
	if err := json.Unmarshal(bs, &ts); err != nil {
		return j.recover(err)
	}
	if ts == nil {
		ts = []task.Task{}
	}
	return ts, nil
}

func (j JSON) recover(cause error) ([]task.Task, error) {
	backup := j.BackupPath()
	if err := os.Rename(j.file, backup); err != nil {
		return nil, &StorageError{Op: "backup", Path: j.file, Err: err}
	}
	if err := j.Save(nil); err != nil {
		return nil, err
	}
	return []task.Task{}, &MalformedError{Path: j.file, Backup: backup, Err: cause}
}

// mode keeps the permissions of an existing task file; new files get
// defaultMode.
func (j JSON) mode() fs.FileMode {
	info, err := os.Stat(j.file)
	if err != nil {
		return defaultMode
	}
	return info.Mode().Perm()
}

func (j JSON) write(bs []byte) error {
	dir, base := filepath.Split(j.file)
	if dir == "" {
		dir = "."
	}
	f, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return &StorageError{Op: "write", Path: j.file, Err: err}
	}
	tmp := f.Name()
	fail := func(err error) error {
		f.Close()
		os.Remove(tmp)
		return &StorageError{Op: "write", Path: j.file, Err: err}
	}
	if _, err := f.Write(bs); err != nil {
		return fail(err)
	}
	if err := f.Sync(); err != nil {
		return fail(err)
	}
	if err := f.Chmod(j.mode()); err != nil {
		return fail(err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return &StorageError{Op: "write", Path: j.file, Err: err}
	}
	if err := os.Rename(tmp, j.file); err != nil {
		os.Remove(tmp)
		return &StorageError{Op: "rename", Path: j.file, Err: err}
	}
	return nil
}
