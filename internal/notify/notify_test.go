package notify

import (
	"testing"
	"time"

	"ajanda/internal/task"
)

type memKV struct {
	m map[string]string
}

func (k *memKV) Get(key string) (string, bool, error) {
	v, ok := k.m[key]
	return v, ok, nil
}

func (k *memKV) Set(key, value string) error {
	k.m[key] = value
	return nil
}

type fakeNotifier struct {
	titles []string
	bodies []string
}

func (f *fakeNotifier) Notify(title, body string) error {
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, body)
	return nil
}

func newFixture(t *testing.T, drafts ...task.Draft) (*task.Store, *fakeNotifier, *Scanner) {
	t.Helper()
	store := task.NewStore(&memKV{m: map[string]string{}}, "tasks")
	for _, d := range drafts {
		if _, err := store.Add(d); err != nil {
			t.Fatalf("seed task: %v", err)
		}
	}
	fn := &fakeNotifier{}
	sc := NewScanner(store, fn, DefaultLead)
	sc.SetLocation(time.UTC)
	return store, fn, sc
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02T15:04", value, time.UTC)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return ts
}

func TestScanFiresInsideWindowOnce(t *testing.T) {
	store, fn, sc := newFixture(t, task.Draft{
		Title:       "Standup",
		Description: "daily sync",
		Date:        "2025-01-10",
		Time:        "09:00",
	})

	if n := sc.Scan(at(t, "2025-01-10T08:55")); n != 1 {
		t.Fatalf("expected 1 notification at 08:55, got %d", n)
	}
	if len(fn.titles) != 1 || fn.titles[0] != "Upcoming task: Standup" {
		t.Errorf("unexpected notification titles: %v", fn.titles)
	}
	if fn.bodies[0] != "09:00 - daily sync" {
		t.Errorf("unexpected notification body: %q", fn.bodies[0])
	}
	if got := store.Tasks()[0]; !got.Notified {
		t.Error("scanner must mark the task notified")
	}

	// A later tick must not re-fire, even while still before the due time.
	if n := sc.Scan(at(t, "2025-01-10T08:58")); n != 0 {
		t.Errorf("expected no re-fire before due, got %d", n)
	}
	if n := sc.Scan(at(t, "2025-01-10T09:02")); n != 0 {
		t.Errorf("expected no re-fire after due, got %d", n)
	}
}

func TestScanWindowBounds(t *testing.T) {
	cases := []struct {
		name string
		now  string
		want int
	}{
		{"eleven minutes early is outside", "2025-01-10T08:49", 0},
		{"exactly ten minutes early fires", "2025-01-10T08:50", 1},
		{"one minute early fires", "2025-01-10T08:59", 1},
		{"exactly due does not fire", "2025-01-10T09:00", 0},
		{"past due does not fire", "2025-01-10T09:01", 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, sc := newFixture(t, task.Draft{Title: "X", Date: "2025-01-10", Time: "09:00"})
			if n := sc.Scan(at(t, tc.now)); n != tc.want {
				t.Errorf("Scan at %s = %d, want %d", tc.now, n, tc.want)
			}
		})
	}
}

func TestScanEligibility(t *testing.T) {
	store, fn, sc := newFixture(t,
		task.Draft{Title: "All day", Date: "2025-01-10"},
		task.Draft{Title: "Done", Date: "2025-01-10", Time: "09:00"},
		task.Draft{Title: "Live", Date: "2025-01-10", Time: "09:05"},
	)
	if err := store.ToggleCompleted(store.Tasks()[1].ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	if n := sc.Scan(at(t, "2025-01-10T08:58")); n != 1 {
		t.Fatalf("expected only the live timed task to fire, got %d", n)
	}
	if fn.titles[0] != "Upcoming task: Live" {
		t.Errorf("wrong task notified: %v", fn.titles)
	}
}

func TestScanNotifiedSurvivesReschedule(t *testing.T) {
	store, _, sc := newFixture(t, task.Draft{Title: "Standup", Date: "2025-01-10", Time: "09:00"})
	if n := sc.Scan(at(t, "2025-01-10T08:55")); n != 1 {
		t.Fatalf("expected initial fire, got %d", n)
	}

	// Rescheduling a notified task does not re-arm it.
	if err := store.SetDate(store.Tasks()[0].ID, "2025-01-11"); err != nil {
		t.Fatalf("SetDate: %v", err)
	}
	if n := sc.Scan(at(t, "2025-01-11T08:55")); n != 0 {
		t.Errorf("rescheduled task must stay silent, got %d notifications", n)
	}
}
