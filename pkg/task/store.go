package task

import (
	"sort"
	"time"
)

type StoreManager interface {
	NextID() ID
	Create(description string, at time.Time) (Task, error)
	Find(ID) (*Task, error)
	Rename(id ID, description string, at time.Time) (Task, error)
	SetStatus(id ID, status string, at time.Time) (Task, error)
	Delete(ID) (Task, error)
	Reindex()

	All() []Task
	Sorted() []Task
	Filter(Status) []Task
}

var _ StoreManager = &Store{}

// Store is an ordered, in-memory task collection.
// It knows nothing about where the tasks came from; see package persist.
type Store struct {
	tasks []Task
}

func NewStore(tasks []Task) *Store {
	return &Store{tasks: tasks}
}

// NextID returns one past the highest id, or 1 for an empty store.
// Gaps left by deletions are never refilled here.
func (s *Store) NextID() ID {
	var highest ID
	for _, t := range s.tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest + 1
}

func (s *Store) Create(description string, at time.Time) (Task, error) {
	d, err := ValidateDescription(description)
	if err != nil {
		return Task{}, err
	}
	t := New(s.NextID(), d, at)
	s.tasks = append(s.tasks, t)
	return t, nil
}

// Find returns the first task with the given id
func (s *Store) Find(id ID) (*Task, error) {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return &s.tasks[i], nil
		}
	}
	return nil, &NotFoundError{ID: id}
}

func (s *Store) Rename(id ID, description string, at time.Time) (Task, error) {
	if _, err := ValidateDescription(description); err != nil {
		return Task{}, err
	}
	t, err := s.Find(id)
	if err != nil {
		return Task{}, err
	}
	if err := t.SetDescription(description, at); err != nil {
		return Task{}, err
	}
	return *t, nil
}

func (s *Store) SetStatus(id ID, status string, at time.Time) (Task, error) {
	if _, err := ParseStatus(status); err != nil {
		return Task{}, err
	}
	t, err := s.Find(id)
	if err != nil {
		return Task{}, err
	}
	if err := t.SetStatus(status, at); err != nil {
		return Task{}, err
	}
	return *t, nil
}

// Delete removes the task and renumbers the survivors, see Reindex.
func (s *Store) Delete(id ID) (Task, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			s.Reindex()
			return t, nil
		}
	}
	return Task{}, &NotFoundError{ID: id}
}

// Reindex orders tasks by their current id and renumbers them 1..N.
// Ids are not stable across deletions: removing task 2 of 5 turns 3, 4, 5
// into 2, 3, 4.
func (s *Store) Reindex() {
	SortByID(s.tasks)
	for i := range s.tasks {
		s.tasks[i].ID = ID(i + 1)
	}
}

// All returns the tasks in stored order. The slice must not be modified.
func (s *Store) All() []Task {
	if s.tasks == nil {
		return []Task{}
	}
	return s.tasks
}

func (s *Store) Sorted() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	SortByID(out)
	return out
}

func (s *Store) Filter(status Status) []Task {
	out := []Task{}
	for _, t := range s.tasks {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// SortByID orders ts in place by ascending id
func SortByID(ts []Task) {
	sort.SliceStable(ts, func(i, j int) bool {
		return ts[i].ID < ts[j].ID
	})
}
