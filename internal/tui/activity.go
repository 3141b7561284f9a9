package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ActivityLog keeps the most recent user-visible events (minutes logged,
// phases completed, deadlines added).
type ActivityLog struct {
	lines  []string
	buffer int
	now    func() time.Time
}

// NewActivityLog creates a log holding at most buffer lines.
func NewActivityLog(buffer int) ActivityLog {
	if buffer <= 0 {
		buffer = 20
	}
	return ActivityLog{buffer: buffer, now: time.Now}
}

// Add appends a line with a timestamp
func (a *ActivityLog) Add(line string) {
	now := time.Now
	if a.now != nil {
		now = a.now
	}
	a.lines = append(a.lines, now().Format("15:04")+" "+line)
	if len(a.lines) > a.buffer {
		a.lines = a.lines[len(a.lines)-a.buffer:]
	}
}

// Lines returns the current lines, oldest first
func (a *ActivityLog) Lines() []string {
	return a.lines
}

// Render renders the newest lines that fit in height
func (a *ActivityLog) Render(width, height int) string {
	title := PanelTitleStyle.Render("Activity")

	contentHeight := height - 3
	if contentHeight < 1 {
		contentHeight = 1
	}

	start := 0
	if len(a.lines) > contentHeight {
		start = len(a.lines) - contentHeight
	}
	var lines []string
	for _, line := range a.lines[start:] {
		lines = append(lines, DimStyle.Render(truncate(line, width-4)))
	}
	if len(lines) == 0 {
		lines = append(lines, DimStyle.Render("Nothing yet"))
	}

	return PanelStyle.
		Width(width).
		Render(title + "\n" + strings.Join(lines, "\n"))
}

func truncate(s string, max int) string {
	if max < 2 || lipgloss.Width(s) <= max {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
