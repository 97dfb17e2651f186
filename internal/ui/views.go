package ui

import (
	"fmt"
	"strings"
	"time"

	"ajanda/internal/config"
	"ajanda/internal/task"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.mode {
	case modeSmart:
		b.WriteString(m.theme.Accent.Render("✦ Smart add"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	case modeSearch:
		b.WriteString(m.theme.Accent.Render("Search"))
		b.WriteString("\n")
		b.WriteString(m.input.View())
		b.WriteString("\n\n")
	case modeForm:
		b.WriteString(m.renderForm())
		b.WriteString("\n")
	}

	if m.mode != modeForm {
		switch m.view {
		case viewDashboard:
			b.WriteString(m.renderDashboard())
		case viewCalendar:
			b.WriteString(m.renderCalendar())
		case viewList:
			b.WriteString(m.renderList())
		case viewReports:
			b.WriteString(m.renderReports())
		}
	}

	b.WriteString("\n---\n")
	b.WriteString(m.theme.Status.Render(m.status))
	b.WriteString("\n")
	b.WriteString(m.theme.Dim.Render(renderHelp(m.cfg.Keys)))
	return b.String()
}

func (m Model) renderTabs() string {
	labels := []string{"1 Dashboard", "2 Calendar", "3 List", "4 Reports"}
	for i, l := range labels {
		if view(i) == m.view {
			labels[i] = m.theme.Title.Render("[" + l + "]")
		} else {
			labels[i] = m.theme.Dim.Render(" " + l + " ")
		}
	}
	date := m.now().Format("Monday, 02 January")
	return strings.Join(labels, " ") + "   " + m.theme.Dim.Render(date)
}

func (m Model) renderDashboard() string {
	s := m.sections()
	var b strings.Builder
	idx := 0

	doneToday := 0
	for _, t := range s.Today {
		if t.Completed {
			doneToday++
		}
	}
	b.WriteString(m.theme.Header.Render("Today"))
	b.WriteString(m.theme.Dim.Render(fmt.Sprintf("  %d / %d done", doneToday, len(s.Today))))
	b.WriteString("\n")
	if len(s.Today) == 0 {
		b.WriteString(m.theme.Dim.Render("  Nothing planned for today.") + "\n")
	}
	idx = m.renderRows(&b, s.Today, idx, false)

	b.WriteString("\n")
	b.WriteString(m.theme.Overdue.Render("Overdue"))
	b.WriteString("\n")
	if len(s.Overdue) == 0 {
		b.WriteString(m.theme.Dim.Render("  No overdue tasks.") + "\n")
	}
	idx = m.renderRows(&b, s.Overdue, idx, true)

	b.WriteString("\n")
	b.WriteString(m.theme.Header.Render("Upcoming"))
	b.WriteString("\n")
	upcoming := s.Upcoming
	if len(upcoming) == 0 {
		b.WriteString(m.theme.Dim.Render("  No upcoming tasks.") + "\n")
	}
	overflow := 0
	if len(upcoming) > 5 {
		overflow = len(upcoming) - 5
		upcoming = upcoming[:5]
	}
	m.renderRows(&b, upcoming, idx, true)
	if overflow > 0 {
		b.WriteString(m.theme.Dim.Render(fmt.Sprintf("  ... %d more in the list view ('3')", overflow)) + "\n")
	}
	return b.String()
}

func (m Model) renderList() string {
	s := m.sections()
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("All tasks"))
	if m.query != "" {
		b.WriteString(m.theme.Dim.Render(fmt.Sprintf("  (filter: %q)", m.query)))
	}
	b.WriteString("\n")
	if len(s.All) == 0 {
		b.WriteString(m.theme.Dim.Render("  No tasks found.") + "\n")
	}
	m.renderRows(&b, s.All, 0, true)
	return b.String()
}

// renderRows writes one line per task and returns the next flat cursor index.
func (m Model) renderRows(b *strings.Builder, tasks []task.Task, idx int, withDate bool) int {
	selected := -1
	if visible := m.visibleTasks(); len(visible) > 0 && m.mode == modeNormal {
		selected = clampCursor(m.cursor, len(visible))
	}
	for _, t := range tasks {
		cursor := " "
		if idx == selected {
			cursor = ">"
		}
		checkbox := "[ ]"
		if t.Completed {
			checkbox = "[x]"
		}
		line := fmt.Sprintf("%s %s %s %s", cursor, checkbox, m.prioMark(t.Priority), t.Title)
		if t.Time != "" {
			line += m.theme.Dim.Render(" @ " + t.Time)
		}
		if withDate {
			line += m.theme.Dim.Render("  " + t.Date)
		}
		if t.Description != "" {
			line += m.theme.Dim.Render("  — " + t.Description)
		}
		switch {
		case idx == selected:
			line = m.theme.Selected.Render(line)
		case t.Completed:
			line = m.theme.Done.Render(line)
		}
		b.WriteString("  " + line + "\n")
		idx++
	}
	return idx
}

func (m Model) prioMark(p task.Priority) string {
	switch p {
	case task.High:
		return m.theme.PrioHigh.Render("!!")
	case task.Low:
		return m.theme.PrioLow.Render(" .")
	default:
		return m.theme.PrioMed.Render(" !")
	}
}

func (m Model) renderForm() string {
	if m.form == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.theme.Header.Render("New task"))
	b.WriteString("\n\n")
	values := []string{m.form.title, m.form.date, m.form.timeOfDay, m.form.priority, m.form.description}
	for i, name := range formFields() {
		prefix := " "
		if i == m.form.index {
			prefix = ">"
		}
		val := values[i]
		if i == m.form.index {
			val = m.input.Value()
		}
		if strings.TrimSpace(val) == "" {
			val = m.theme.Dim.Render("(empty)")
		}
		b.WriteString(fmt.Sprintf("%s %-28s : %s\n", prefix, name, val))
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) renderCalendar() string {
	year, month := m.calMonth.Year(), m.calMonth.Month()
	loc := m.calMonth.Location()
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	daysInMonth := first.AddDate(0, 1, -1).Day()

	// Monday-first offset.
	offset := (int(first.Weekday()) + 6) % 7

	byDay := map[string][]task.Task{}
	for _, t := range m.store.Tasks() {
		byDay[t.Date] = append(byDay[t.Date], t)
	}
	todayStr := m.todayStr()

	var b strings.Builder
	b.WriteString(m.theme.Header.Render(first.Format("January 2006")))
	b.WriteString(m.theme.Dim.Render("  ('" + m.cfg.Keys.MonthBack + "'/'" + m.cfg.Keys.MonthFwd + "' to change month)"))
	b.WriteString("\n\n")
	for _, wd := range []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"} {
		b.WriteString(m.theme.CalHeader.Render(fmt.Sprintf("%-7s", wd)))
	}
	b.WriteString("\n")

	cell := 0
	for i := 0; i < offset; i++ {
		b.WriteString(strings.Repeat(" ", 7))
		cell++
	}
	for day := 1; day <= daysInMonth; day++ {
		dateStr := time.Date(year, month, day, 0, 0, 0, 0, loc).Format(task.DateLayout)
		n := len(byDay[dateStr])
		mark := "  "
		if n > 0 {
			mark = fmt.Sprintf("·%d", n)
		}
		text := fmt.Sprintf("%2d%-5s", day, mark)
		if dateStr == todayStr {
			text = m.theme.CalToday.Render(text)
		}
		b.WriteString(text)
		cell++
		if cell%7 == 0 {
			b.WriteString("\n")
		}
	}
	if cell%7 != 0 {
		b.WriteString("\n")
	}

	// Per-day breakdown for the viewed month, three titles per day.
	b.WriteString("\n")
	listed := false
	for day := 1; day <= daysInMonth; day++ {
		dateStr := time.Date(year, month, day, 0, 0, 0, 0, loc).Format(task.DateLayout)
		dayTasks := byDay[dateStr]
		if len(dayTasks) == 0 {
			continue
		}
		listed = true
		label := fmt.Sprintf("%2d:", day)
		if dateStr == todayStr {
			label = m.theme.CalToday.Render(label)
		} else {
			label = m.theme.Dim.Render(label)
		}
		titles := make([]string, 0, 3)
		for i, t := range dayTasks {
			if i == 3 {
				titles = append(titles, fmt.Sprintf("+%d more", len(dayTasks)-3))
				break
			}
			title := t.Title
			if t.Completed {
				title = m.theme.Done.Render(title)
			}
			titles = append(titles, title)
		}
		b.WriteString(fmt.Sprintf("  %s %s\n", label, strings.Join(titles, ", ")))
	}
	if !listed {
		b.WriteString(m.theme.Dim.Render("  No tasks this month.") + "\n")
	}
	return b.String()
}

func (m Model) renderReports() string {
	tasks := m.store.Tasks()
	now := m.now()

	type dayStat struct {
		label string
		count int
	}
	stats := make([]dayStat, 0, 7)
	total := 0
	maxCount := 1
	for i := 6; i >= 0; i-- {
		d := now.AddDate(0, 0, -i)
		dateStr := d.Format(task.DateLayout)
		count := 0
		for _, t := range tasks {
			if t.Date == dateStr && t.Completed {
				count++
			}
		}
		total += count
		if count > maxCount {
			maxCount = count
		}
		stats = append(stats, dayStat{label: d.Format("Mon"), count: count})
	}

	completedAll := 0
	for _, t := range tasks {
		if t.Completed {
			completedAll++
		}
	}
	rate := 0
	if len(tasks) > 0 {
		rate = completedAll * 100 / len(tasks)
	}

	var b strings.Builder
	b.WriteString(m.theme.Header.Render("Productivity report"))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Last 7 days: %s tasks completed\n\n", m.theme.Accent.Render(fmt.Sprintf("%d", total))))
	for _, s := range stats {
		width := s.count * 24 / maxCount
		bar := strings.Repeat("█", width)
		if s.count > 0 && bar == "" {
			bar = "▏"
		}
		b.WriteString(fmt.Sprintf("  %s %-24s %d\n", m.theme.Dim.Render(s.label), m.theme.Bar.Render(bar), s.count))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Daily average    : %.1f\n", float64(total)/7))
	b.WriteString(fmt.Sprintf("  Completion rate  : %d%%\n", rate))
	return b.String()
}

func renderHelp(k config.Keymap) string {
	return fmt.Sprintf("%s/%s move • %s smart add • %s add • %s search • %s toggle • %s delete • %s to today • %s postpone • %s theme • %s quit",
		k.Up, k.Down, k.SmartAdd, k.Add, k.Search, k.Toggle, k.Delete, k.MoveToday, k.Postpone, k.Theme, k.Quit)
}
