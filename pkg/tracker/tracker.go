// Package tracker is the only way the shells touch stored tasks.
// Every call loads the whole collection, acts on it and, for changes, saves
// it back before returning. Nothing is cached between calls.
package tracker

import (
	"errors"
	"time"

	"github.com/td0m/listopia/pkg/persist"
	"github.com/td0m/listopia/pkg/task"
	"go.uber.org/zap"
)

type Tracker struct {
	persist persist.Persistor
	now     func() time.Time
	log     *zap.Logger
	warn    func(error)
}

type Option func(*Tracker)

// WithClock replaces time.Now for timestamps
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) {
		t.now = now
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(t *Tracker) {
		t.log = log
	}
}

// WithWarningHandler receives recoverable problems, such as a corrupted task
// file that was backed up and reset. By default they are logged.
func WithWarningHandler(fn func(error)) Option {
	return func(t *Tracker) {
		t.warn = fn
	}
}

func New(p persist.Persistor, opts ...Option) *Tracker {
	t := &Tracker{
		persist: p,
		now:     time.Now,
		log:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.warn == nil {
		t.warn = func(err error) {
			t.log.Warn("recovered task file", zap.Error(err))
		}
	}
	return t
}

func (t *Tracker) load() (*task.Store, error) {
	ts, err := t.persist.Load()
	if errors.Is(err, persist.ErrMalformed) {
		t.warn(err)
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return task.NewStore(ts), nil
}

func (t *Tracker) save(s *task.Store) error {
	return t.persist.Save(s.All())
}

func (t *Tracker) Add(description string) (task.Task, error) {
	d, err := task.ValidateDescription(description)
	if err != nil {
		return task.Task{}, err
	}
	s, err := t.load()
	if err != nil {
		return task.Task{}, err
	}
	created, err := s.Create(d, t.now())
	if err != nil {
		return task.Task{}, err
	}
	if err := t.save(s); err != nil {
		return task.Task{}, err
	}
	t.log.Info("task added", zap.Int("id", int(created.ID)))
	return created, nil
}

// List returns tasks ordered by id. An empty filter returns every task.
func (t *Tracker) List(filter task.Status) ([]task.Task, error) {
	if filter != "" {
		if _, err := task.ParseStatus(string(filter)); err != nil {
			return nil, err
		}
	}
	s, err := t.load()
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return s.Sorted(), nil
	}
	out := s.Filter(filter)
	task.SortByID(out)
	return out, nil
}

func (t *Tracker) Get(id task.ID) (task.Task, error) {
	s, err := t.load()
	if err != nil {
		return task.Task{}, err
	}
	found, err := s.Find(id)
	if err != nil {
		return task.Task{}, err
	}
	return *found, nil
}

func (t *Tracker) Update(id task.ID, description string) (task.Task, error) {
	if _, err := task.ValidateDescription(description); err != nil {
		return task.Task{}, err
	}
	s, err := t.load()
	if err != nil {
		return task.Task{}, err
	}
	updated, err := s.Rename(id, description, t.now())
	if err != nil {
		return task.Task{}, err
	}
	if err := t.save(s); err != nil {
		return task.Task{}, err
	}
	t.log.Info("task updated", zap.Int("id", int(id)))
	return updated, nil
}

func (t *Tracker) SetStatus(id task.ID, status string) (task.Task, error) {
	if _, err := task.ParseStatus(status); err != nil {
		return task.Task{}, err
	}
	s, err := t.load()
	if err != nil {
		return task.Task{}, err
	}
	updated, err := s.SetStatus(id, status, t.now())
	if err != nil {
		return task.Task{}, err
	}
	if err := t.save(s); err != nil {
		return task.Task{}, err
	}
	t.log.Info("task status changed", zap.Int("id", int(id)), zap.String("status", status))
	return updated, nil
}

// Delete removes a task and renumbers the rest, so ids seen before this call
// may point at different tasks afterwards.
func (t *Tracker) Delete(id task.ID) (task.Task, error) {
	s, err := t.load()
	if err != nil {
		return task.Task{}, err
	}
	removed, err := s.Delete(id)
	if err != nil {
		return task.Task{}, err
	}
	if err := t.save(s); err != nil {
		return task.Task{}, err
	}
	t.log.Info("task deleted", zap.Int("id", int(id)), zap.Int("remaining", len(s.All())))
	return removed, nil
}

// Reindex renumbers every task 1..N by current id and saves. It repairs
// duplicate ids left by hand edits. Returns the number of tasks.
func (t *Tracker) Reindex() (int, error) {
	s, err := t.load()
	if err != nil {
		return 0, err
	}
	s.Reindex()
	if err := t.save(s); err != nil {
		return 0, err
	}
	return len(s.All()), nil
}

// Check inspects the stored state without changing it
func (t *Tracker) Check() ([]persist.Issue, error) {
	c, ok := t.persist.(persist.Checker)
	if !ok {
		return nil, nil
	}
	return c.Check()
}
