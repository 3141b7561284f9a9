package models

// StudySession is one logged study interval.
type StudySession struct {
	ID        int64 `json:"id"`
	DayIndex  int   `json:"dayIndex"` // 0 = Mon ... 6 = Sun
	Minutes   int   `json:"minutes"`
	Timestamp int64 `json:"timestamp"` // unix millis
}

// DayTotal is one row of the grouped-by-day minutes sum.
type DayTotal struct {
	DayIndex     int `json:"dayIndex"`
	TotalMinutes int `json:"totalMinutes"`
}

// Deadline is a user-entered reminder.
type Deadline struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	DueText   string `json:"dueText"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// Settings is the singleton settings row.
type Settings struct {
	QuickAddMinutes  int `json:"quickAddMinutes"`
	FocusTimeMinutes int `json:"focusTimeMinutes"`
}

const (
	DefaultQuickAddMinutes  = 30
	DefaultFocusTimeMinutes = 30

	UntitledDeadline = "Untitled"
	UnscheduledDue   = "TBD"
)

// DefaultSettings returns the settings used when none are stored yet.
func DefaultSettings() Settings {
	return Settings{
		QuickAddMinutes:  DefaultQuickAddMinutes,
		FocusTimeMinutes: DefaultFocusTimeMinutes,
	}
}
