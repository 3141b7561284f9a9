package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Primadeb/pri2025Study/internal/models"
	"github.com/Primadeb/pri2025Study/internal/study"
	"github.com/Primadeb/pri2025Study/internal/timer"
	"github.com/Primadeb/pri2025Study/internal/weekly"
)

// ViewMode represents the current view
type ViewMode int

const (
	ViewModeLogin     ViewMode = iota // Sign-in form
	ViewModeDashboard                 // Timer, today and quick logging
	ViewModeWeekly                    // Per-day bar chart
	ViewModeDeadlines                 // Deadline list and form
	ViewModeSettings                  // Quick add and focus time
	ViewModeHelp                      // Help overlay
)

// tabs is the cycle order of the signed-in views.
var tabs = []ViewMode{ViewModeDashboard, ViewModeWeekly, ViewModeDeadlines, ViewModeSettings}

func (v ViewMode) String() string {
	switch v {
	case ViewModeLogin:
		return "Sign in"
	case ViewModeDashboard:
		return "Dashboard"
	case ViewModeWeekly:
		return "Weekly"
	case ViewModeDeadlines:
		return "Deadlines"
	case ViewModeSettings:
		return "Settings"
	case ViewModeHelp:
		return "Help"
	}
	return "Unknown"
}

// field identifies one of the text inputs.
type field int

const (
	fieldNone field = iota
	fieldEmail
	fieldPassword
	fieldMinutes
	fieldDeadlineTitle
	fieldDeadlineDue
	fieldQuickAdd
	fieldFocusTime
	fieldCount
)

// Messages
type dataLoadedMsg struct {
	summary   weekly.Summary
	settings  models.Settings
	deadlines []models.Deadline
	err       error
}

type minutesLoggedMsg struct {
	session *models.StudySession
	err     error
}

type deadlineAddedMsg struct {
	deadline *models.Deadline
	err      error
}

type deadlineDeletedMsg struct {
	id  int64
	err error
}

type settingsSavedMsg struct {
	settings models.Settings
	err      error
}

// timerEventsMsg carries every event that was queued when the listener woke.
type timerEventsMsg struct {
	events []timer.Event
}

// timerClosedMsg is sent when the engine closes its event channel.
type timerClosedMsg struct{}

// Model is the root Bubble Tea model
type Model struct {
	// Terminal dimensions
	width  int
	height int
	ready  bool

	// View state
	viewMode ViewMode
	prevMode ViewMode

	// Backing services
	svc    *study.Service
	engine *timer.Engine
	events <-chan timer.Event

	// Text inputs, indexed by field
	inputs [fieldCount]textinput.Model
	focus  field

	// Data
	user      string
	timer     timer.Snapshot
	summary   weekly.Summary
	settings  models.Settings
	deadlines []models.Deadline
	cursor    int
	loading   bool

	activity ActivityLog
	errMsg   string

	keys KeyMap
}

// NewRootModel creates the root model. It starts on the sign-in form.
// events should come from engine.Subscribe; a nil channel disables live
// timer updates.
func NewRootModel(svc *study.Service, engine *timer.Engine, events <-chan timer.Event) Model {
	m := Model{
		viewMode: ViewModeLogin,
		svc:      svc,
		engine:   engine,
		events:   events,
		timer:    engine.Snapshot(),
		settings: models.DefaultSettings(),
		activity: NewActivityLog(50),
		keys:     DefaultKeyMap(),
	}

	m.inputs[fieldEmail] = newInput("you@university.edu", "Email: ", 120)
	m.inputs[fieldPassword] = newInput("password", "Password: ", 120)
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldMinutes] = newInput("minutes studied", "❯ ", 6)
	m.inputs[fieldDeadlineTitle] = newInput("Title", "Title: ", 200)
	m.inputs[fieldDeadlineDue] = newInput("Due date", "Due: ", 64)
	m.inputs[fieldQuickAdd] = newInput("30", "Quick add (min): ", 3)
	m.inputs[fieldFocusTime] = newInput("30", "Focus time (min): ", 3)

	m.setFocus(fieldEmail)
	return m
}

func newInput(placeholder, prompt string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = prompt
	ti.PromptStyle = InputPromptStyle
	ti.CharLimit = limit
	ti.Width = 40
	return ti
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		waitForTimer(m.events),
	)
}

// loadCmd reads everything the signed-in views display.
func (m Model) loadCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx := context.Background()
		summary, err := svc.Weekly(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		settings, err := svc.Settings(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		deadlines, err := svc.Deadlines(ctx)
		if err != nil {
			return dataLoadedMsg{err: err}
		}
		return dataLoadedMsg{summary: summary, settings: settings, deadlines: deadlines}
	}
}

func (m Model) addMinutesCmd(raw string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		sess, err := svc.AddMinutesText(context.Background(), raw)
		return minutesLoggedMsg{session: sess, err: err}
	}
}

func (m Model) quickAddCmd() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		sess, err := svc.QuickAdd(context.Background())
		return minutesLoggedMsg{session: sess, err: err}
	}
}

func (m Model) addDeadlineCmd(title, due string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		d, err := svc.AddDeadline(context.Background(), title, due)
		return deadlineAddedMsg{deadline: d, err: err}
	}
}

func (m Model) deleteDeadlineCmd(id int64) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		err := svc.DeleteDeadline(context.Background(), id)
		return deadlineDeletedMsg{id: id, err: err}
	}
}

func (m Model) saveSettingsCmd(quickAdd, focusTime int) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		s, err := svc.UpdateSettings(context.Background(), quickAdd, focusTime)
		return settingsSavedMsg{settings: s, err: err}
	}
}

// waitForTimer blocks until the engine emits, then drains whatever else is
// immediately available so a burst of ticks renders once.
func waitForTimer(events <-chan timer.Event) tea.Cmd {
	return func() tea.Msg {
		if events == nil {
			return nil
		}

		ev, ok := <-events
		if !ok {
			return timerClosedMsg{}
		}
		batch := []timer.Event{ev}

		for {
			select {
			case next, ok := <-events:
				if !ok {
					return timerEventsMsg{events: batch}
				}
				batch = append(batch, next)
			default:
				return timerEventsMsg{events: batch}
			}
		}
	}
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		inputWidth := m.width - 24
		if inputWidth < 10 {
			inputWidth = 10
		}
		for i := range m.inputs {
			m.inputs[i].Width = inputWidth
		}
		return m, nil

	case dataLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errMsg = "Failed to load: " + msg.err.Error()
			return m, nil
		}
		m.summary = msg.summary
		m.settings = msg.settings
		m.deadlines = msg.deadlines
		m.clampCursor()
		return m, nil

	case minutesLoggedMsg:
		if msg.err != nil {
			m.errMsg = "Failed to log minutes: " + msg.err.Error()
			return m, nil
		}
		if msg.session == nil {
			m.activity.Add("Nothing logged")
			return m, nil
		}
		m.errMsg = ""
		m.activity.Add(fmt.Sprintf("Logged %d min on %s", msg.session.Minutes, weekly.Label(msg.session.DayIndex)))
		return m, m.loadCmd()

	case deadlineAddedMsg:
		if msg.err != nil {
			m.errMsg = "Failed to add deadline: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.activity.Add("Added deadline " + msg.deadline.Title + " (" + msg.deadline.DueText + ")")
		return m, m.loadCmd()

	case deadlineDeletedMsg:
		if msg.err != nil {
			m.errMsg = "Failed to delete deadline: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.activity.Add("Removed a deadline")
		return m, m.loadCmd()

	case settingsSavedMsg:
		if msg.err != nil {
			m.errMsg = "Failed to save settings: " + msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.settings = msg.settings
		m.activity.Add(fmt.Sprintf("Settings saved: quick add %d min, focus %d min",
			msg.settings.QuickAddMinutes, msg.settings.FocusTimeMinutes))
		return m, nil

	case timerEventsMsg:
		reload := false
		for _, ev := range msg.events {
			m.timer = ev.State
			if ev.Type == timer.EventPhaseComplete {
				m.activity.Add(phaseTitle(ev.Completed) + " phase complete")
				reload = true
			}
		}
		cmds := []tea.Cmd{waitForTimer(m.events)}
		if reload && m.user != "" {
			// Auto-logging may have added a session.
			cmds = append(cmds, m.loadCmd())
		}
		return m, tea.Batch(cmds...)

	case timerClosedMsg:
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus != fieldNone {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Interrupt) {
		return m, tea.Quit
	}

	if m.focus != fieldNone {
		return m.handleInputKey(msg)
	}

	if m.viewMode == ViewModeHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Escape, m.keys.Quit) {
			m.viewMode = m.prevMode
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.prevMode = m.viewMode
		m.viewMode = ViewModeHelp
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.switchTab(1)
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.switchTab(-1)
		return m, nil

	case key.Matches(msg, m.keys.StartPause):
		if m.engine.Running() {
			m.engine.Pause()
		} else {
			m.engine.Start()
		}
		m.timer = m.engine.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Reset):
		m.engine.Reset()
		m.timer = m.engine.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.Skip):
		m.engine.Skip()
		m.timer = m.engine.Snapshot()
		return m, nil

	case key.Matches(msg, m.keys.QuickAdd):
		return m, m.quickAddCmd()

	case key.Matches(msg, m.keys.Focus):
		switch m.viewMode {
		case ViewModeDashboard, ViewModeWeekly:
			m.setFocus(fieldMinutes)
		case ViewModeDeadlines:
			m.setFocus(fieldDeadlineTitle)
		case ViewModeSettings:
			m.inputs[fieldQuickAdd].SetValue(strconv.Itoa(m.settings.QuickAddMinutes))
			m.inputs[fieldFocusTime].SetValue(strconv.Itoa(m.settings.FocusTimeMinutes))
			m.setFocus(fieldQuickAdd)
		}
		return m, textinput.Blink

	case key.Matches(msg, m.keys.Up):
		if m.viewMode == ViewModeDeadlines && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.viewMode == ViewModeDeadlines && m.cursor < len(m.deadlines)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Delete):
		if m.viewMode == ViewModeDeadlines && len(m.deadlines) > 0 {
			return m, m.deleteDeadlineCmd(m.deadlines[m.cursor].ID)
		}
		return m, nil
	}

	return m, nil
}

// handleInputKey routes keys while a text input has focus.
func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		if m.viewMode != ViewModeLogin {
			m.setFocus(fieldNone)
		}
		return m, nil

	case tea.KeyTab, tea.KeyShiftTab:
		if pair, ok := fieldPairs[m.focus]; ok {
			m.setFocus(pair)
		}
		return m, nil

	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// fieldPairs links the two inputs of each form for tab cycling.
var fieldPairs = map[field]field{
	fieldEmail:         fieldPassword,
	fieldPassword:      fieldEmail,
	fieldDeadlineTitle: fieldDeadlineDue,
	fieldDeadlineDue:   fieldDeadlineTitle,
	fieldQuickAdd:      fieldFocusTime,
	fieldFocusTime:     fieldQuickAdd,
}

// submit acts on the form owning the focused input.
func (m Model) submit() (tea.Model, tea.Cmd) {
	switch m.focus {
	case fieldEmail, fieldPassword:
		email := m.inputs[fieldEmail].Value()
		if err := study.Login(email, m.inputs[fieldPassword].Value()); err != nil {
			m.errMsg = "Enter an email and password"
			return m, nil
		}
		m.user = strings.TrimSpace(email)
		m.errMsg = ""
		m.inputs[fieldPassword].Reset()
		m.setFocus(fieldNone)
		m.viewMode = ViewModeDashboard
		m.loading = true
		return m, m.loadCmd()

	case fieldMinutes:
		raw := m.inputs[fieldMinutes].Value()
		m.inputs[fieldMinutes].Reset()
		m.setFocus(fieldNone)
		return m, m.addMinutesCmd(raw)

	case fieldDeadlineTitle, fieldDeadlineDue:
		title := m.inputs[fieldDeadlineTitle].Value()
		due := m.inputs[fieldDeadlineDue].Value()
		m.inputs[fieldDeadlineTitle].Reset()
		m.inputs[fieldDeadlineDue].Reset()
		m.setFocus(fieldNone)
		return m, m.addDeadlineCmd(title, due)

	case fieldQuickAdd, fieldFocusTime:
		quickAdd, err1 := strconv.Atoi(strings.TrimSpace(m.inputs[fieldQuickAdd].Value()))
		focusTime, err2 := strconv.Atoi(strings.TrimSpace(m.inputs[fieldFocusTime].Value()))
		if err1 != nil || err2 != nil {
			m.errMsg = "Settings must be whole numbers of minutes"
			return m, nil
		}
		m.setFocus(fieldNone)
		return m, m.saveSettingsCmd(quickAdd, focusTime)
	}
	return m, nil
}

// setFocus focuses f and blurs every other input. fieldNone blurs all.
func (m *Model) setFocus(f field) {
	for i := range m.inputs {
		if field(i) == f {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
	m.focus = f
}

// switchTab moves through the signed-in views.
func (m *Model) switchTab(delta int) {
	if m.viewMode == ViewModeLogin {
		return
	}
	idx := 0
	for i, v := range tabs {
		if v == m.viewMode {
			idx = i
			break
		}
	}
	idx = (idx + delta + len(tabs)) % len(tabs)
	m.viewMode = tabs[idx]
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.deadlines) {
		m.cursor = len(m.deadlines) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func phaseTitle(p timer.Phase) string {
	if p == timer.PhaseBreak {
		return "Break"
	}
	return "Study"
}
