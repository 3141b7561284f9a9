package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Primadeb/pri2025Study/internal/timer"
	"github.com/Primadeb/pri2025Study/internal/weekly"
)

// View renders the current view
func (m Model) View() string {
	// The sign-in form renders before the window size is known
	if m.viewMode == ViewModeLogin {
		return m.loginView()
	}

	if !m.ready {
		return "Loading..."
	}

	var body string
	switch m.viewMode {
	case ViewModeHelp:
		return m.helpView()
	case ViewModeWeekly:
		body = m.weeklyView()
	case ViewModeDeadlines:
		body = m.deadlinesView()
	case ViewModeSettings:
		body = m.settingsView()
	default:
		body = m.dashboardView()
	}

	parts := []string{m.renderHeader(), m.renderTabs(), body}
	if m.errMsg != "" {
		parts = append(parts, ErrorStyle.Render(m.errMsg))
	}
	parts = append(parts, m.renderStatusBar())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderHeader renders the header bar
func (m Model) renderHeader() string {
	title := HeaderStyle.Render("STUDYTIME")
	subtitle := SubtitleStyle.Render("Study tracker")

	var user string
	if m.user != "" {
		user = lipgloss.NewStyle().
			Foreground(ColorFgSecondary).
			Render(" · " + m.user)
	}

	return lipgloss.NewStyle().
		PaddingLeft(1).
		Width(m.width).
		Render(title + "  " + subtitle + user)
}

func (m Model) renderTabs() string {
	rendered := make([]string, 0, len(tabs))
	for _, v := range tabs {
		if v == m.viewMode {
			rendered = append(rendered, ActiveTabStyle.Render(v.String()))
		} else {
			rendered = append(rendered, TabStyle.Render(v.String()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m Model) loginView() string {
	title := HelpTitleStyle.Render("Sign in to Studytime")

	var b strings.Builder
	b.WriteString(title + "\n\n")
	b.WriteString(m.renderInput(fieldEmail) + "\n")
	b.WriteString(m.renderInput(fieldPassword) + "\n")
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg) + "\n")
	}
	b.WriteString(DimStyle.Render("tab switch field · enter sign in · ctrl+c quit"))

	box := HelpStyle.Render(b.String())
	if !m.ready {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) dashboardView() string {
	panelWidth := m.panelWidth()

	today := m.svc.Today()
	summary := PanelTitleStyle.Render("This week") + "\n" +
		fmt.Sprintf("Total   %s\n", ClockStyle.Render(fmt.Sprintf("%d min", m.summary.WeeklyTotal))) +
		fmt.Sprintf("Today   %s %s",
			ClockStyle.Render(fmt.Sprintf("%d min", m.summary.Totals[today])),
			DimStyle.Render("("+weekly.Label(today)+")"))

	quick := DimStyle.Render(fmt.Sprintf("a adds %d min · / types minutes", m.settings.QuickAddMinutes))

	left := lipgloss.JoinVertical(lipgloss.Left,
		PanelStyle.Width(panelWidth).Render(summary),
		PanelStyle.Width(panelWidth).Render(m.renderTimer(panelWidth-4)),
		m.renderInput(fieldMinutes),
		quick,
	)

	right := lipgloss.JoinVertical(lipgloss.Left,
		PanelStyle.Width(panelWidth).Render(m.renderDeadlinePreview(3)),
		m.activity.Render(panelWidth, 8),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func (m Model) renderTimer(width int) string {
	phaseStyle := StudyPhaseStyle
	if m.timer.Phase == timer.PhaseBreak {
		phaseStyle = BreakPhaseStyle
	}

	state := "paused"
	if m.timer.Running {
		state = "running"
	}

	return PanelTitleStyle.Render("Focus timer") + "\n" +
		phaseStyle.Render(phaseTitle(m.timer.Phase)) + "  " +
		ClockStyle.Render(m.timer.Clock()) + "  " +
		DimStyle.Render(state) + "\n" +
		progressBar(m.timer.Progress(), width)
}

func (m Model) renderDeadlinePreview(limit int) string {
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Deadlines"))
	if len(m.deadlines) == 0 {
		b.WriteString("\n" + DimStyle.Render("No deadlines"))
		return b.String()
	}
	for i, d := range m.deadlines {
		if i == limit {
			b.WriteString("\n" + DimStyle.Render(fmt.Sprintf("+%d more", len(m.deadlines)-limit)))
			break
		}
		b.WriteString("\n" + DeadlineStyle.Render(d.Title) + " " + DueStyle.Render(d.DueText))
	}
	return b.String()
}

func (m Model) weeklyView() string {
	width := m.panelWidth() * 2
	barWidth := width - 20
	if barWidth < 10 {
		barWidth = 10
	}

	today := m.svc.Today()
	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Minutes per day") + "\n")
	for i := 0; i < weekly.DaysInWeek; i++ {
		labelStyle := DayLabelStyle
		if i == today {
			labelStyle = TodayLabelStyle
		}
		b.WriteString(labelStyle.Render(weekly.Label(i)))
		b.WriteString(progressBar(m.summary.Progress(i), barWidth))
		b.WriteString(fmt.Sprintf(" %4d\n", m.summary.Totals[i]))
	}
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Total %d min · Daily average %d min",
		m.summary.WeeklyTotal, m.summary.DailyAverage))

	return PanelStyle.Width(width).Render(b.String())
}

func (m Model) deadlinesView() string {
	width := m.panelWidth() * 2

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Add deadline") + "\n")
	b.WriteString(m.renderInput(fieldDeadlineTitle) + "\n")
	b.WriteString(m.renderInput(fieldDeadlineDue) + "\n\n")

	b.WriteString(PanelTitleStyle.Render(fmt.Sprintf("Deadlines (%d)", len(m.deadlines))))
	if len(m.deadlines) == 0 {
		b.WriteString("\n" + DimStyle.Render("No deadlines yet. Press / to add one."))
	}
	for i, d := range m.deadlines {
		style := DeadlineStyle
		marker := "  "
		if i == m.cursor {
			style = SelectedDeadlineStyle
			marker = "❯ "
		}
		b.WriteString("\n" + marker + style.Render(truncate(d.Title, width-24)) + "  " + DueStyle.Render(d.DueText))
	}

	return PanelStyle.Width(width).Render(b.String())
}

func (m Model) settingsView() string {
	width := m.panelWidth() * 2

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render("Settings") + "\n")
	if m.focus == fieldQuickAdd || m.focus == fieldFocusTime {
		b.WriteString(m.renderInput(fieldQuickAdd) + "\n")
		b.WriteString(m.renderInput(fieldFocusTime) + "\n")
		b.WriteString(DimStyle.Render("enter save · esc cancel"))
	} else {
		b.WriteString(fmt.Sprintf("Quick add   %d min\n", m.settings.QuickAddMinutes))
		b.WriteString(fmt.Sprintf("Focus time  %d min\n", m.settings.FocusTimeMinutes))
		b.WriteString(DimStyle.Render("press / to edit"))
	}

	return PanelStyle.Width(width).Render(b.String())
}

func (m Model) renderInput(f field) string {
	style := InputStyle
	if m.focus == f {
		style = FocusedInputStyle
	}
	return style.Render(m.inputs[f].View())
}

// renderStatusBar renders the bottom line with timer state and key hints
func (m Model) renderStatusBar() string {
	var status string
	if m.timer.Running {
		status = StatusRunningStyle.Render("● " + phaseTitle(m.timer.Phase) + " " + m.timer.Clock())
	} else {
		status = StatusIdleStyle.Render("○ Paused " + m.timer.Clock())
	}

	mutedStyle := lipgloss.NewStyle().Foreground(ColorFgMuted)
	keyStyle := lipgloss.NewStyle().Foreground(ColorFgPrimary)

	var hints []string
	if m.focus != fieldNone {
		hints = []string{
			keyStyle.Render("Enter") + mutedStyle.Render(" submit"),
			keyStyle.Render("Esc") + mutedStyle.Render(" unfocus"),
			keyStyle.Render("Ctrl+C") + mutedStyle.Render(" quit"),
		}
	} else {
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			hints = append(hints, keyStyle.Render(h.Key)+mutedStyle.Render(" "+h.Desc))
		}
	}

	return StatusBarStyle.Render(status + mutedStyle.Render(" │ ") + strings.Join(hints, mutedStyle.Render(" │ ")))
}

// helpView renders the help overlay
func (m Model) helpView() string {
	var b strings.Builder
	b.WriteString(HelpTitleStyle.Render("Keyboard Shortcuts") + "\n")
	for _, group := range m.keys.FullHelp() {
		b.WriteString("\n")
		for _, binding := range group {
			h := binding.Help()
			b.WriteString(HelpKeyStyle.Render(h.Key) + HelpDescStyle.Render(h.Desc) + "\n")
		}
	}
	b.WriteString("\n" + HelpDescStyle.Render("Press ? or Esc to close"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		HelpStyle.Render(b.String()),
	)
}

func (m Model) panelWidth() int {
	w := (m.width - 2) / 2
	if w < 24 {
		w = 24
	}
	return w
}

// progressBar renders a fill of progress (clamped to [0,1]) across width cells.
func progressBar(progress float64, width int) string {
	if width < 1 {
		return ""
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress*float64(width) + 0.5)
	return BarFilledStyle.Render(strings.Repeat("█", filled)) +
		BarEmptyStyle.Render(strings.Repeat("░", width-filled))
}
