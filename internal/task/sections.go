package task

import (
	"sort"
	"strings"
	"time"
)

// Section names the four display partitions.
type Section string

const (
	SectionOverdue   Section = "overdue"
	SectionToday     Section = "today"
	SectionUpcoming  Section = "upcoming"
	SectionCompleted Section = "completed"
)

// Sections is the projection of the collection for display. All holds every
// task matching the query, sorted ascending by (date, time), with all-day
// tasks ordered as 00:00 and ties kept in insertion order.
type Sections struct {
	Overdue       []Task
	Today         []Task
	Upcoming      []Task
	CompletedPast []Task
	All           []Task
}

// Project partitions tasks relative to today ("2006-01-02"). A non-empty
// query filters by case-insensitive substring match on title or description
// before partitioning.
func Project(tasks []Task, query, today string) Sections {
	filtered := make([]Task, 0, len(tasks))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, t := range tasks {
		if q != "" &&
			!strings.Contains(strings.ToLower(t.Title), q) &&
			!strings.Contains(strings.ToLower(t.Description), q) {
			continue
		}
		filtered = append(filtered, t)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return sortKey(filtered[i]) < sortKey(filtered[j])
	})

	var s Sections
	s.All = filtered
	for _, t := range filtered {
		switch {
		case t.Date < today && !t.Completed:
			s.Overdue = append(s.Overdue, t)
		case t.Date == today:
			s.Today = append(s.Today, t)
		case t.Date > today:
			s.Upcoming = append(s.Upcoming, t)
		}
		if t.Completed && t.Date < today {
			s.CompletedPast = append(s.CompletedPast, t)
		}
	}
	return s
}

func sortKey(t Task) string {
	tm := t.Time
	if tm == "" {
		tm = "00:00"
	}
	return t.Date + tm
}

// ReassignDate computes a task's new date after being dropped on target.
// Dropping on today always pins the task to today; dropping on upcoming
// postpones to tomorrow only if the task is not already in the future; the
// overdue and completed sections are visual-only targets and change nothing.
// The second return is false when no mutation should happen.
func ReassignDate(t Task, target Section, today time.Time) (string, bool) {
	todayStr := today.Format(DateLayout)
	switch target {
	case SectionToday:
		return todayStr, true
	case SectionUpcoming:
		if t.Date <= todayStr {
			return today.AddDate(0, 0, 1).Format(DateLayout), true
		}
		return "", false
	default:
		return "", false
	}
}
