// Package notify watches the task collection for due times entering a
// lookahead window and fires one desktop notification per task.
package notify

import (
	"time"

	"github.com/0xAX/notificator"

	"ajanda/internal/task"
)

// DefaultLead is how far ahead of the due instant a task becomes eligible
// for a notification.
const DefaultLead = 10 * time.Minute

// Notifier displays a system notification. Implementations may fail silently
// on platforms without a notification facility.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop sends notifications through the host's notification daemon.
type Desktop struct {
	n *notificator.Notificator
}

func NewDesktop() *Desktop {
	return &Desktop{
		n: notificator.New(notificator.Options{AppName: "Ajanda"}),
	}
}

func (d *Desktop) Notify(title, body string) error {
	return d.n.Push(title, body, "", notificator.UR_NORMAL)
}

// Scanner checks tasks against the lookahead window on a fixed tick. A task
// is eligible when it is incomplete, has a time of day, and has not already
// been notified. The notified flag is one-way: once set it is never reset,
// even if the task's date or time later changes.
type Scanner struct {
	store    *task.Store
	notifier Notifier
	lead     time.Duration
	loc      *time.Location
}

func NewScanner(store *task.Store, notifier Notifier, lead time.Duration) *Scanner {
	if lead <= 0 {
		lead = DefaultLead
	}
	return &Scanner{store: store, notifier: notifier, lead: lead, loc: time.Local}
}

// SetLocation overrides the timezone used to combine date and time into a
// due instant. Tests use a fixed location.
func (s *Scanner) SetLocation(loc *time.Location) {
	s.loc = loc
}

// Scan runs one tick at the given instant and returns how many notifications
// fired. Tasks whose window was missed entirely (due instant already passed)
// are left alone; they will simply never fire.
func (s *Scanner) Scan(now time.Time) int {
	fired := 0
	for _, t := range s.store.Tasks() {
		if t.Completed || t.Notified || t.Time == "" {
			continue
		}
		due, ok := t.DueAt(s.loc)
		if !ok {
			continue
		}
		until := due.Sub(now)
		if until <= 0 || until > s.lead {
			continue
		}
		body := t.Time
		if t.Description != "" {
			body += " - " + t.Description
		}
		if err := s.notifier.Notify("Upcoming task: "+t.Title, body); err != nil {
			continue
		}
		if err := s.store.MarkNotified(t.ID); err != nil {
			continue
		}
		fired++
	}
	return fired
}
