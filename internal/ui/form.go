package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"ajanda/internal/task"
)

// formState is the manual entry form: one textinput shared across all
// fields. Priority is typed as low/medium/high and anything else falls back
// to medium.
type formState struct {
	title       string
	date        string
	timeOfDay   string
	priority    string
	description string
	index       int
}

func formFields() []string {
	return []string{"title *", "date (YYYY-MM-DD)", "time (HH:MM, optional)", "priority (low/medium/high)", "description"}
}

func (f formState) currentLabel() string {
	return formFields()[f.index]
}

func (f formState) currentValue() string {
	switch f.index {
	case 0:
		return f.title
	case 1:
		return f.date
	case 2:
		return f.timeOfDay
	case 3:
		return f.priority
	case 4:
		return f.description
	default:
		return ""
	}
}

func (f *formState) setCurrentValue(v string) {
	switch f.index {
	case 0:
		f.title = v
	case 1:
		f.date = v
	case 2:
		f.timeOfDay = v
	case 3:
		f.priority = v
	case 4:
		f.description = v
	}
}

func (m Model) startForm() (tea.Model, tea.Cmd) {
	m.form = &formState{
		date:     m.todayStr(),
		priority: "medium",
	}
	m.mode = modeForm
	m.input.SetValue("")
	m.input.Placeholder = m.form.currentLabel()
	m.input.Focus()
	m.status = "New task: tab to move between fields, Enter to save/next, Esc to cancel"
	return m, nil
}

func (m Model) updateFormMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.form = nil
		m.mode = modeNormal
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case "tab", "shift+tab":
		if m.form == nil {
			return m, nil
		}
		m.form.setCurrentValue(m.input.Value())
		delta := 1
		if key == "shift+tab" {
			delta = -1
		}
		m.form.index = wrapIndex(m.form.index+delta, len(formFields()))
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = m.formPrompt()
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		if m.form == nil {
			return m, nil
		}
		m.form.setCurrentValue(m.input.Value())
		if m.form.index >= len(formFields())-1 {
			return m.saveForm()
		}
		m.form.index++
		m.input.SetValue(m.form.currentValue())
		m.input.Placeholder = m.form.currentLabel()
		m.status = m.formPrompt()
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) saveForm() (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	title := strings.TrimSpace(m.form.title)
	if title == "" {
		m.form.index = 0
		m.input.SetValue(m.form.title)
		m.input.Placeholder = m.form.currentLabel()
		m.status = "Title cannot be empty"
		return m, nil
	}
	date := strings.TrimSpace(m.form.date)
	if date == "" {
		date = m.todayStr()
	}
	if _, err := time.Parse(task.DateLayout, date); err != nil {
		m.form.index = 1
		m.input.SetValue(m.form.date)
		m.input.Placeholder = m.form.currentLabel()
		m.status = "Date must be YYYY-MM-DD"
		return m, nil
	}
	timeOfDay := strings.TrimSpace(m.form.timeOfDay)
	if timeOfDay != "" {
		if _, err := time.Parse(task.TimeLayout, timeOfDay); err != nil {
			m.form.index = 2
			m.input.SetValue(m.form.timeOfDay)
			m.input.Placeholder = m.form.currentLabel()
			m.status = "Time must be HH:MM"
			return m, nil
		}
	}

	t, err := m.store.Add(task.Draft{
		Title:       title,
		Description: strings.TrimSpace(m.form.description),
		Date:        date,
		Time:        timeOfDay,
		Priority:    task.ParsePriority(strings.ToUpper(strings.TrimSpace(m.form.priority))),
	})
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.form = nil
	m.mode = modeNormal
	m.input.Blur()
	m.status = fmt.Sprintf("Added %q for %s", t.Title, t.Date)
	return m, nil
}

func (m Model) formPrompt() string {
	if m.form == nil {
		return ""
	}
	return fmt.Sprintf("Editing %s (field %d of %d). Enter to advance, Esc to cancel.",
		m.form.currentLabel(), m.form.index+1, len(formFields()))
}

func wrapIndex(idx, n int) int {
	if n <= 0 {
		return 0
	}
	idx %= n
	if idx < 0 {
		idx += n
	}
	return idx
}
