package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"ajanda/internal/config"
	"ajanda/internal/notify"
	"ajanda/internal/smart"
	"ajanda/internal/storage"
	"ajanda/internal/task"
)

type view int

const (
	viewDashboard view = iota
	viewCalendar
	viewList
	viewReports
)

type mode int

const (
	modeNormal mode = iota
	modeSmart
	modeSearch
	modeForm
)

type tickMsg time.Time

type smartResultMsg struct {
	draft task.Draft
	err   error
}

type Model struct {
	store   *task.Store
	kv      task.KV
	cfg     config.Config
	parser  smart.Parser
	scanner *notify.Scanner

	theme Theme
	view  view
	mode  mode

	cursor     int
	input      textinput.Model
	form       *formState
	query      string
	status     string
	calMonth   time.Time
	processing bool
	confirmDel bool
	pendingDel *task.Task
	quitting   bool
	now        func() time.Time
	width      int
}

func Run(store *task.Store, kv task.KV, cfg config.Config, parser smart.Parser, scanner *notify.Scanner) error {
	themeName := "dark"
	if v, ok, err := kv.Get(storage.KeyTheme); err == nil && ok {
		themeName = v
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 48

	now := time.Now()
	m := Model{
		store:    store,
		kv:       kv,
		cfg:      cfg,
		parser:   parser,
		scanner:  scanner,
		theme:    themeByName(themeName),
		view:     viewDashboard,
		mode:     modeNormal,
		input:    ti,
		status:   "Press 'i' for smart add, 'a' for manual add, '1'-'4' to switch views.",
		calMonth: time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()),
		now:      time.Now,
	}

	program := tea.NewProgram(m)
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return scanTick()
}

func scanTick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		if m.quitting {
			return m, nil
		}
		if n := m.scanner.Scan(time.Time(msg)); n > 0 {
			m.status = fmt.Sprintf("Reminded you of %d upcoming task(s)", n)
		}
		return m, scanTick()
	case smartResultMsg:
		return m.finishSmartAdd(msg)
	case tea.KeyMsg:
		if m.confirmDel {
			return m.updateDeleteConfirm(msg.String())
		}
		switch m.mode {
		case modeSmart:
			return m.updateSmartMode(msg.String(), msg)
		case modeSearch:
			return m.updateSearchMode(msg.String(), msg)
		case modeForm:
			return m.updateFormMode(msg.String(), msg)
		default:
			return m.updateNormalMode(msg.String())
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 10
	}
	return m, nil
}

func (m Model) updateNormalMode(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", m.cfg.Keys.Quit:
		m.quitting = true
		return m, tea.Quit
	case "1":
		m.view = viewDashboard
		m.cursor = 0
	case "2":
		m.view = viewCalendar
	case "3":
		m.view = viewList
		m.cursor = 0
	case "4":
		m.view = viewReports
	case m.cfg.Keys.Down, "down":
		m.cursor = clampCursor(m.cursor+1, len(m.visibleTasks()))
	case m.cfg.Keys.Up, "up":
		if m.cursor > 0 {
			m.cursor = clampCursor(m.cursor-1, len(m.visibleTasks()))
		}
	case m.cfg.Keys.SmartAdd:
		m.mode = modeSmart
		m.input.SetValue("")
		m.input.Placeholder = "e.g. \"meeting tomorrow at 14:00\""
		m.input.Focus()
		m.status = "Smart add: describe the task, Enter to parse"
	case m.cfg.Keys.Add:
		return m.startForm()
	case m.cfg.Keys.Search:
		m.mode = modeSearch
		m.input.SetValue(m.query)
		m.input.Placeholder = "search tasks"
		m.input.Focus()
		m.status = "Search: type a query, Enter to apply, Esc to clear"
	case m.cfg.Keys.Toggle:
		if t, ok := m.selectedTask(); ok {
			if err := m.store.ToggleCompleted(t.ID); err != nil {
				m.status = fmt.Sprintf("toggle failed: %v", err)
			} else {
				m.status = "Toggled task"
			}
			m.cursor = clampCursor(m.cursor, len(m.visibleTasks()))
		}
	case m.cfg.Keys.Delete:
		if t, ok := m.selectedTask(); ok {
			m.confirmDel = true
			m.pendingDel = &t
			m.status = fmt.Sprintf("Delete %q? y/n", t.Title)
		}
	case m.cfg.Keys.MoveToday:
		return m.reassign(task.SectionToday)
	case m.cfg.Keys.Postpone:
		return m.reassign(task.SectionUpcoming)
	case m.cfg.Keys.Theme:
		return m.toggleTheme()
	case m.cfg.Keys.MonthBack:
		if m.view == viewCalendar {
			m.calMonth = m.calMonth.AddDate(0, -1, 0)
		}
	case m.cfg.Keys.MonthFwd:
		if m.view == viewCalendar {
			m.calMonth = m.calMonth.AddDate(0, 1, 0)
		}
	}
	return m, nil
}

func (m Model) reassign(target task.Section) (tea.Model, tea.Cmd) {
	t, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	newDate, ok := task.ReassignDate(t, target, m.now())
	if !ok {
		m.status = "Task is already scheduled ahead"
		return m, nil
	}
	if err := m.store.SetDate(t.ID, newDate); err != nil {
		m.status = fmt.Sprintf("reschedule failed: %v", err)
		return m, nil
	}
	m.status = fmt.Sprintf("Moved %q to %s", t.Title, newDate)
	m.cursor = clampCursor(m.cursor, len(m.visibleTasks()))
	return m, nil
}

func (m Model) toggleTheme() (tea.Model, tea.Cmd) {
	if m.theme.Name == "dark" {
		m.theme = lightTheme()
	} else {
		m.theme = darkTheme()
	}
	if err := m.kv.Set(storage.KeyTheme, m.theme.Name); err != nil {
		m.status = fmt.Sprintf("theme save failed: %v", err)
	} else {
		m.status = "Switched to " + m.theme.Name + " theme"
	}
	return m, nil
}

func (m Model) updateSmartMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.processing {
		// Parser call in flight; the field stays disabled until the reply.
		if key == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeNormal
		m.input.SetValue("")
		m.input.Blur()
		m.status = "Cancelled"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		text := strings.TrimSpace(m.input.Value())
		if text == "" {
			m.status = "Type something first"
			return m, nil
		}
		m.processing = true
		m.status = "Thinking..."
		return m, m.smartCmd(text)
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) smartCmd(input string) tea.Cmd {
	parser := m.parser
	today := m.now()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		draft, err := parser.Interpret(ctx, input, today)
		return smartResultMsg{draft: draft, err: err}
	}
}

func (m Model) finishSmartAdd(msg smartResultMsg) (tea.Model, tea.Cmd) {
	m.processing = false
	if errors.Is(msg.err, smart.ErrNotUnderstood) {
		m.status = "Could not understand, please try manual add ('a')"
		return m, nil
	}
	if msg.err != nil {
		m.status = fmt.Sprintf("smart add failed: %v", msg.err)
		return m, nil
	}
	t, err := m.store.Add(msg.draft)
	if err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m, nil
	}
	m.status = fmt.Sprintf("Added %q for %s", t.Title, t.Date)
	m.mode = modeNormal
	m.input.SetValue("")
	m.input.Blur()
	return m, nil
}

func (m Model) updateSearchMode(key string, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key {
	case m.cfg.Keys.Cancel, "esc":
		m.mode = modeNormal
		m.query = ""
		m.input.SetValue("")
		m.input.Blur()
		m.cursor = 0
		m.status = "Search cleared"
		return m, nil
	case m.cfg.Keys.Confirm, "enter":
		m.query = strings.TrimSpace(m.input.Value())
		m.mode = modeNormal
		m.input.Blur()
		m.cursor = 0
		if m.query == "" {
			m.status = "Search cleared"
		} else {
			m.status = fmt.Sprintf("Filtering by %q", m.query)
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
}

func (m Model) updateDeleteConfirm(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "n", "N", "esc":
		m.status = "Delete cancelled"
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	case "y", "Y":
		if m.pendingDel == nil {
			m.status = "Nothing to delete"
			m.confirmDel = false
			return m, nil
		}
		if err := m.store.Remove(m.pendingDel.ID); err != nil {
			m.status = fmt.Sprintf("delete failed: %v", err)
		} else {
			m.status = "Deleted task"
		}
		m.cursor = clampCursor(m.cursor, len(m.visibleTasks()))
		m.confirmDel = false
		m.pendingDel = nil
		return m, nil
	default:
		return m, nil
	}
}

// visibleTasks is the flat list the cursor walks, per view. The dashboard
// shows today first, then overdue, then the nearest five upcoming, matching
// the render order.
func (m Model) visibleTasks() []task.Task {
	s := m.sections()
	switch m.view {
	case viewDashboard:
		out := append([]task.Task{}, s.Today...)
		out = append(out, s.Overdue...)
		upcoming := s.Upcoming
		if len(upcoming) > 5 {
			upcoming = upcoming[:5]
		}
		return append(out, upcoming...)
	case viewList:
		return s.All
	default:
		return nil
	}
}

func (m Model) sections() task.Sections {
	return task.Project(m.store.Tasks(), m.query, m.todayStr())
}

func (m Model) selectedTask() (task.Task, bool) {
	visible := m.visibleTasks()
	if len(visible) == 0 {
		return task.Task{}, false
	}
	return visible[clampCursor(m.cursor, len(visible))], true
}

func (m Model) todayStr() string {
	return m.now().Format(task.DateLayout)
}

func clampCursor(cur, n int) int {
	if n <= 0 {
		return 0
	}
	if cur < 0 {
		return 0
	}
	if cur >= n {
		return n - 1
	}
	return cur
}
