package persist

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
	"github.com/td0m/listopia/pkg/task"
	"github.com/td0m/listopia/pkg/task/date"
)

func tempJSON(t *testing.T) *JSON {
	return InJSON(filepath.Join(t.TempDir(), "tasks.json"))
}

func TestJSON_SaveLoad(t *testing.T) {
	is := is.New(t)

	at := time.Date(2025, time.September, 26, 14, 3, 12, 0, time.Local)
	updated := date.From(at.Add(time.Hour))
	tasks := []task.Task{
		task.New(1, "buy milk", at),
		{ID: 2, Description: "walk dog", Status: task.StatusDone, CreatedAt: date.From(at), UpdatedAt: &updated},
	}

	json := tempJSON(t)
	is.NoErr(json.Save(tasks))

	tasks2, err := json.Load()
	is.NoErr(err)
	is.Equal(len(tasks2), len(tasks))
	is.Equal(tasks2[0].Description, "buy milk")
	is.Equal(tasks2[0].UpdatedAt, nil)
	is.Equal(tasks2[1].Status, task.StatusDone)
	is.True(tasks2[1].UpdatedAt.Equal(updated.Time))

	t.Run("save of a load reproduces the file", func(t *testing.T) {
		is := is.New(t)
		before, err := os.ReadFile(json.Path())
		is.NoErr(err)
		is.NoErr(json.Save(tasks2))
		after, err := os.ReadFile(json.Path())
		is.NoErr(err)
		is.Equal(string(before), string(after))
	})

	t.Run("no temporary files are left behind", func(t *testing.T) {
		is := is.New(t)
		entries, err := os.ReadDir(filepath.Dir(json.Path()))
		is.NoErr(err)
		is.Equal(len(entries), 1)
	})
}

func TestJSON_Save(t *testing.T) {
	is := is.New(t)
	json := tempJSON(t)

	is.NoErr(json.Save(nil))
	bs, err := os.ReadFile(json.Path())
	is.NoErr(err)
	is.Equal(string(bs), "[]\n")

	is.NoErr(json.Save([]task.Task{task.New(1, "x", time.Date(2025, time.January, 2, 3, 4, 5, 0, time.Local))}))
	bs, err = os.ReadFile(json.Path())
	is.NoErr(err)
	is.Equal(string(bs), `[
    {
        "id": 1,
        "description": "x",
        "status": "todo",
        "createdAt": "2025-01-02T03:04:05.000000",
        "updatedAt": null
    }
]
`)

	t.Run("keeps the file mode", func(t *testing.T) {
		is := is.New(t)
		json := tempJSON(t)
		is.NoErr(os.WriteFile(json.Path(), []byte("[]\n"), 0600))
		is.NoErr(os.Chmod(json.Path(), 0600)) // umask may have masked WriteFile
		is.NoErr(json.Save([]task.Task{task.New(1, "secret", time.Now())}))
		info, err := os.Stat(json.Path())
		is.NoErr(err)
		is.Equal(info.Mode().Perm(), os.FileMode(0600))
	})

	t.Run("new files are 0644", func(t *testing.T) {
		is := is.New(t)
		json := tempJSON(t)
		is.NoErr(json.Save(nil))
		info, err := os.Stat(json.Path())
		is.NoErr(err)
		is.Equal(info.Mode().Perm(), os.FileMode(0644))
	})

	t.Run("missing directory is a storage error", func(t *testing.T) {
		is := is.New(t)
		err := InJSON(filepath.Join(t.TempDir(), "nope", "tasks.json")).Save(nil)
		var serr *StorageError
		is.True(errors.As(err, &serr))
	})
}

func TestJSON_Load(t *testing.T) {
	t.Run("creates a missing file", func(t *testing.T) {
		is := is.New(t)
		json := tempJSON(t)
		tasks, err := json.Load()
		is.NoErr(err)
		is.Equal(len(tasks), 0)
		bs, err := os.ReadFile(json.Path())
		is.NoErr(err)
		is.Equal(string(bs), "[]\n")
	})

	t.Run("null is an empty collection", func(t *testing.T) {
		is := is.New(t)
		json := tempJSON(t)
		is.NoErr(os.WriteFile(json.Path(), []byte("null"), 0644))
		tasks, err := json.Load()
		is.NoErr(err)
		is.True(tasks != nil)
		is.Equal(len(tasks), 0)
	})

	t.Run("accepts files written by older versions", func(t *testing.T) {
		is := is.New(t)
		json := tempJSON(t)
		legacy := `[{"id": 3, "description": "old", "status": "in-progress",
			"createdAt": "2025-09-26T14:03:12.123456", "updatedAt": "2025-09-26T14:03:12.123456"}]`
		is.NoErr(os.WriteFile(json.Path(), []byte(legacy), 0644))
		tasks, err := json.Load()
		is.NoErr(err)
		is.Equal(len(tasks), 1)
		is.Equal(tasks[0].ID, task.ID(3))
		is.Equal(tasks[0].Status, task.StatusInProgress)
		is.True(tasks[0].UpdatedAt != nil)
	})

	t.Run("keeps unreadable timestamps", func(t *testing.T) {
		is := is.New(t)
		json := tempJSON(t)
		content := `[
    {
        "id": 1,
        "description": "a",
        "status": "todo",
        "createdAt": null,
        "updatedAt": "last week"
    },
    {
        "id": 2,
        "description": "b",
        "status": "done",
        "createdAt": "2025-09-26T14:03:12.000000",
        "updatedAt": null
    }
]
`
		is.NoErr(os.WriteFile(json.Path(), []byte(content), 0644))
		tasks, err := json.Load()
		is.NoErr(err)
		is.Equal(len(tasks), 2)
		is.True(!tasks[0].CreatedAt.Valid())
		is.Equal(date.Display(tasks[0].UpdatedAt), "last week")
		_, err = os.Stat(json.BackupPath())
		is.True(os.IsNotExist(err)) // nothing was moved aside

		is.NoErr(json.Save(tasks))
		bs, err := os.ReadFile(json.Path())
		is.NoErr(err)
		is.Equal(string(bs), content)
	})

	t.Run("does not validate task invariants", func(t *testing.T) {
		is := is.New(t)
		json := tempJSON(t)
		is.NoErr(os.WriteFile(json.Path(), []byte(`[{"id": 1, "description": "", "status": "weird", "createdAt": "2025-09-26T14:03:12"}, {"id": 1, "description": "dup", "status": "done", "createdAt": "2025-09-26T14:03:12"}]`), 0644))
		tasks, err := json.Load()
		is.NoErr(err)
		is.Equal(len(tasks), 2)
		is.Equal(tasks[0].Status, task.Status("weird"))
	})
}

func TestJSON_LoadMalformed(t *testing.T) {
	for name, content := range map[string]string{
		"truncated":      `[{"id": 1, "descr`,
		"not json":       "hello world",
		"wrong shape":    `{"tasks": []}`,
		"wrong id types": `[{"id": "one"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			is := is.New(t)
			json := tempJSON(t)
			is.NoErr(os.WriteFile(json.Path(), []byte(content), 0644))

			tasks, err := json.Load()
			is.Equal(len(tasks), 0)
			is.True(errors.Is(err, ErrMalformed))
			var merr *MalformedError
			is.True(errors.As(err, &merr))
			is.Equal(merr.Backup, json.Path()+".bak")

			backup, err := os.ReadFile(json.BackupPath())
			is.NoErr(err)
			is.Equal(string(backup), content) // original bytes kept

			primary, err := os.ReadFile(json.Path())
			is.NoErr(err)
			is.Equal(string(primary), "[]\n")

			// the reset file loads cleanly
			tasks, err = json.Load()
			is.NoErr(err)
			is.Equal(len(tasks), 0)
		})
	}

	t.Run("replaces an older backup", func(t *testing.T) {
		is := is.New(t)
		json := tempJSON(t)
		is.NoErr(os.WriteFile(json.BackupPath(), []byte("old backup"), 0644))
		is.NoErr(os.WriteFile(json.Path(), []byte("new garbage"), 0644))
		_, err := json.Load()
		is.True(errors.Is(err, ErrMalformed))
		backup, err := os.ReadFile(json.BackupPath())
		is.NoErr(err)
		is.Equal(string(backup), "new garbage")
	})
}
