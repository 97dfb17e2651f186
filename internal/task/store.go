package task

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// KV is the slice of the persistence layer the store needs: get/set a string
// value by key. storage.Store satisfies it.
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Set(key, value string) error
}

// Store owns the ordered task collection. Every mutation writes the full
// collection back to the key-value backend before returning.
type Store struct {
	kv    KV
	key   string
	tasks []Task
	now   func() time.Time
}

// NewStore loads the collection persisted under key. An absent or unparsable
// value yields an empty collection; load never fails.
func NewStore(kv KV, key string) *Store {
	s := &Store{kv: kv, key: key, now: time.Now}
	raw, ok, err := kv.Get(key)
	if err != nil || !ok {
		return s
	}
	var tasks []Task
	if json.Unmarshal([]byte(raw), &tasks) == nil {
		s.tasks = tasks
	}
	return s
}

// Tasks returns the collection in insertion order. Callers must not mutate
// the returned slice.
func (s *Store) Tasks() []Task {
	return s.tasks
}

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	for _, t := range s.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// Add commissions a draft: assigns a fresh id, the current timestamp and a
// cleared notified flag, appends and persists. Returns the finalized task.
func (s *Store) Add(d Draft) (Task, error) {
	t := Task{
		ID:          uuid.NewString(),
		Title:       d.Title,
		Description: d.Description,
		Date:        d.Date,
		Time:        d.Time,
		Priority:    d.Priority,
		Completed:   false,
		CreatedAt:   s.now(),
		Notified:    false,
	}
	if t.Priority == "" {
		t.Priority = Medium
	}
	s.tasks = append(s.tasks, t)
	if err := s.persist(); err != nil {
		s.tasks = s.tasks[:len(s.tasks)-1]
		return Task{}, err
	}
	return t, nil
}

// ToggleCompleted flips the completed flag. Unknown ids are a no-op.
func (s *Store) ToggleCompleted(id string) error {
	return s.mutate(id, func(t *Task) {
		t.Completed = !t.Completed
	})
}

// Remove deletes the task. Unknown ids are a no-op.
func (s *Store) Remove(id string) error {
	for i, t := range s.tasks {
		if t.ID == id {
			rest := make([]Task, 0, len(s.tasks)-1)
			rest = append(rest, s.tasks[:i]...)
			rest = append(rest, s.tasks[i+1:]...)
			old := s.tasks
			s.tasks = rest
			if err := s.persist(); err != nil {
				s.tasks = old
				return err
			}
			return nil
		}
	}
	return nil
}

// SetDate overwrites the task's date. Unknown ids are a no-op.
func (s *Store) SetDate(id, date string) error {
	return s.mutate(id, func(t *Task) {
		t.Date = date
	})
}

// MarkNotified sets the notified flag, once. Already-notified tasks and
// unknown ids are a no-op.
func (s *Store) MarkNotified(id string) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			if s.tasks[i].Notified {
				return nil
			}
			s.tasks[i].Notified = true
			if err := s.persist(); err != nil {
				s.tasks[i].Notified = false
				return err
			}
			return nil
		}
	}
	return nil
}

func (s *Store) mutate(id string, fn func(*Task)) error {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			old := s.tasks[i]
			fn(&s.tasks[i])
			if err := s.persist(); err != nil {
				s.tasks[i] = old
				return err
			}
			return nil
		}
	}
	return nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.tasks)
	if err != nil {
		return err
	}
	return s.kv.Set(s.key, string(data))
}
