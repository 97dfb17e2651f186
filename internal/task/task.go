package task

import "time"

// Priority of a task. Unknown values decode as Medium.
type Priority string

const (
	Low    Priority = "LOW"
	Medium Priority = "MEDIUM"
	High   Priority = "HIGH"
)

// ParsePriority maps a priority string to a Priority, defaulting to Medium
// for anything it does not recognize.
func ParsePriority(v string) Priority {
	switch Priority(v) {
	case Low, High:
		return Priority(v)
	default:
		return Medium
	}
}

// Task is the single persistent entity. Date is a calendar day in
// "2006-01-02" form; Time is "15:04" or empty for an all-day task.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	Time        string    `json:"time,omitempty"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
	Notified    bool      `json:"notified"`
}

// Draft is a task awaiting commission into the store: everything the user
// (or the smart parser) supplies, minus the system-assigned fields.
type Draft struct {
	Title       string
	Description string
	Date        string
	Time        string
	Priority    Priority
}

const (
	// DateLayout is the calendar-day form used everywhere a date is a string.
	DateLayout = "2006-01-02"
	// TimeLayout is the time-of-day form.
	TimeLayout = "15:04"
)

// DueAt combines the task's date and time into a single instant in loc.
// The second return is false for all-day tasks or malformed fields.
func (t Task) DueAt(loc *time.Location) (time.Time, bool) {
	if t.Time == "" {
		return time.Time{}, false
	}
	due, err := time.ParseInLocation(DateLayout+" "+TimeLayout, t.Date+" "+t.Time, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}
