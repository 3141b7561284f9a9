// Package weekly reduces logged study sessions into Monday-start week totals.
package weekly

import (
	"time"

	"github.com/Primadeb/pri2025Study/internal/models"
)

// DaysInWeek is the number of day buckets in a week.
const DaysInWeek = 7

// Labels are the short day names, Monday first.
var Labels = [DaysInWeek]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Totals holds minutes per day index, Monday = 0.
type Totals [DaysInWeek]int

// DayIndex maps a date to Monday = 0 ... Sunday = 6.
func DayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % DaysInWeek
}

// Label returns the short day name for a day index, or "" when out of range.
func Label(dayIndex int) string {
	if !valid(dayIndex) {
		return ""
	}
	return Labels[dayIndex]
}

// Aggregate sums session minutes per day. Sessions with a day index outside
// [0,6] are ignored.
func Aggregate(sessions []models.StudySession) Totals {
	var totals Totals
	for _, s := range sessions {
		if valid(s.DayIndex) {
			totals[s.DayIndex] += s.Minutes
		}
	}
	return totals
}

// FromDayTotals builds Totals from a grouped-sum result. Rows repeating a day
// are added together.
func FromDayTotals(rows []models.DayTotal) Totals {
	var totals Totals
	for _, r := range rows {
		if valid(r.DayIndex) {
			totals[r.DayIndex] += r.TotalMinutes
		}
	}
	return totals
}

func valid(dayIndex int) bool {
	return dayIndex >= 0 && dayIndex < DaysInWeek
}

// Sum returns the weekly total.
func (t Totals) Sum() int {
	sum := 0
	for _, m := range t {
		sum += m
	}
	return sum
}

// Summary is the weekly report derived from Totals.
type Summary struct {
	Totals       Totals
	WeeklyTotal  int
	DailyAverage int
	MaxDay       int
}

// Summarize derives the weekly report values.
func Summarize(totals Totals) Summary {
	total := totals.Sum()
	maxDay := 0
	for _, m := range totals {
		if m > maxDay {
			maxDay = m
		}
	}
	if maxDay < 1 {
		maxDay = 1
	}
	return Summary{
		Totals:       totals,
		WeeklyTotal:  total,
		DailyAverage: total / DaysInWeek,
		MaxDay:       maxDay,
	}
}

// Progress returns the bar fill for a day, normalized by MaxDay and clamped
// to [0,1].
func (s Summary) Progress(dayIndex int) float64 {
	if !valid(dayIndex) || s.MaxDay <= 0 {
		return 0
	}
	p := float64(s.Totals[dayIndex]) / float64(s.MaxDay)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

// Response converts the summary into its API shape.
func (s Summary) Response() models.WeeklyResponse {
	days := make([]models.WeeklyDay, 0, DaysInWeek)
	for i := 0; i < DaysInWeek; i++ {
		days = append(days, models.WeeklyDay{
			DayIndex: i,
			Label:    Labels[i],
			Minutes:  s.Totals[i],
			Progress: s.Progress(i),
		})
	}
	return models.WeeklyResponse{
		Days:         days,
		WeeklyTotal:  s.WeeklyTotal,
		DailyAverage: s.DailyAverage,
		MaxDay:       s.MaxDay,
	}
}
