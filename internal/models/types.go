package models

// AddMinutesRequest is the payload for POST /sessions. Text, when set, is
// parsed like the dashboard input field and takes precedence over Minutes.
// Zero or negative Minutes are accepted and skipped by the service.
type AddMinutesRequest struct {
	Minutes int    `json:"minutes" validate:"lte=1440"`
	Text    string `json:"text,omitempty" validate:"max=32"`
}

// AddMinutesResponse is returned from POST /sessions and POST /sessions/quick.
type AddMinutesResponse struct {
	Session     *StudySession `json:"session,omitempty"`
	Skipped     bool          `json:"skipped,omitempty"`
	WeeklyTotal int           `json:"weeklyTotal"`
}

// AddDeadlineRequest is the payload for POST /deadlines.
// Blank fields are allowed and replaced with placeholders.
type AddDeadlineRequest struct {
	Title   string `json:"title" validate:"max=200"`
	DueText string `json:"dueText" validate:"max=64"`
}

// UpdateSettingsRequest is the payload for PUT /settings.
type UpdateSettingsRequest struct {
	QuickAddMinutes  int `json:"quickAddMinutes" validate:"required,min=1,max=600"`
	FocusTimeMinutes int `json:"focusTimeMinutes" validate:"required,min=1,max=600"`
}

// LoginRequest is the payload for POST /login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is returned from POST /login.
type LoginResponse struct {
	Email    string `json:"email"`
	SignedIn bool   `json:"signedIn"`
}

// WeeklyResponse is returned from GET /weekly.
type WeeklyResponse struct {
	Days         []WeeklyDay `json:"days"`
	WeeklyTotal  int         `json:"weeklyTotal"`
	DailyAverage int         `json:"dailyAverage"`
	MaxDay       int         `json:"maxDay"`
}

// WeeklyDay is one bar of the weekly summary.
type WeeklyDay struct {
	DayIndex int     `json:"dayIndex"`
	Label    string  `json:"label"`
	Minutes  int     `json:"minutes"`
	Progress float64 `json:"progress"`
}

// TimerResponse is the display state of the focus timer.
type TimerResponse struct {
	Phase            string  `json:"phase"`
	RemainingSeconds int     `json:"remainingSeconds"`
	Clock            string  `json:"clock"`
	Progress         float64 `json:"progress"`
	Running          bool    `json:"running"`
}

// DashboardResponse is returned from GET /dashboard.
type DashboardResponse struct {
	WeeklyTotal int           `json:"weeklyTotal"`
	Today       int           `json:"today"`
	TodayLabel  string        `json:"todayLabel"`
	Settings    Settings      `json:"settings"`
	Timer       TimerResponse `json:"timer"`
	Deadlines   []Deadline    `json:"deadlines"`
}

// ServiceCheck is the status of one dependency in the health report.
type ServiceCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned from GET /health.
type HealthResponse struct {
	Status        string       `json:"status"`
	DB            ServiceCheck `json:"db"`
	SessionCount  int          `json:"sessionCount"`
	DeadlineCount int          `json:"deadlineCount"`
}
