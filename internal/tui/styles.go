package tui

import "github.com/charmbracelet/lipgloss"

// One Dark Pro color palette
var (
	ColorBgHighlight = lipgloss.Color("#2C313C")

	ColorFgPrimary   = lipgloss.Color("#ABB2BF")
	ColorFgSecondary = lipgloss.Color("#828997")
	ColorFgMuted     = lipgloss.Color("#636B78")
	ColorFgComment   = lipgloss.Color("#5C6370")

	ColorRed     = lipgloss.Color("#E06C75")
	ColorGreen   = lipgloss.Color("#98C379")
	ColorYellow  = lipgloss.Color("#E5C07B")
	ColorBlue    = lipgloss.Color("#61AFEF")
	ColorMagenta = lipgloss.Color("#C678DD")
	ColorCyan    = lipgloss.Color("#56B6C2")

	ColorBorder = lipgloss.Color("#3F4451")
)

// Component styles
var (
	// Header style
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorRed).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Tab bar
	TabStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary).
			Padding(0, 1)

	ActiveTabStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Background(ColorBgHighlight).
			Bold(true).
			Padding(0, 1)

	// Panels
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorMagenta).
			Bold(true)

	// Timer
	StudyPhaseStyle = lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true)

	BreakPhaseStyle = lipgloss.NewStyle().
			Foreground(ColorCyan).
			Bold(true)

	ClockStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary).
			Bold(true)

	BarFilledStyle = lipgloss.NewStyle().
			Foreground(ColorBlue)

	BarEmptyStyle = lipgloss.NewStyle().
			Foreground(ColorBorder)

	// Weekly chart
	DayLabelStyle = lipgloss.NewStyle().
			Foreground(ColorFgSecondary).
			Width(4)

	TodayLabelStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Bold(true).
			Width(4)

	// Deadline list
	DeadlineStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	SelectedDeadlineStyle = lipgloss.NewStyle().
				Foreground(ColorYellow).
				Bold(true)

	DueStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)

	// Status bar styles
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted).
			PaddingLeft(1).
			PaddingRight(1)

	StatusRunningStyle = lipgloss.NewStyle().
				Foreground(ColorGreen).
				Bold(true)

	StatusIdleStyle = lipgloss.NewStyle().
			Foreground(ColorFgMuted)

	// Input styles
	InputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	FocusedInputStyle = InputStyle.
				BorderForeground(ColorBlue)

	InputPromptStyle = lipgloss.NewStyle().
				Foreground(ColorGreen)

	// Help overlay styles
	HelpStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(1, 2)

	HelpTitleStyle = lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true)

	HelpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorYellow).
			Width(12)

	HelpDescStyle = lipgloss.NewStyle().
			Foreground(ColorFgPrimary)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorRed)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorGreen)

	// Dimmed/info style for less important messages
	DimStyle = lipgloss.NewStyle().
			Foreground(ColorFgComment)
)
