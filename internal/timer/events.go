package timer

import "time"

// Phase is the current half of the focus cycle.
type Phase string

const (
	PhaseStudy Phase = "study"
	PhaseBreak Phase = "break"
)

// Opposite returns the phase that follows p.
func (p Phase) Opposite() Phase {
	if p == PhaseStudy {
		return PhaseBreak
	}
	return PhaseStudy
}

// EventType defines the type of timer event.
type EventType string

const (
	EventStateChange   EventType = "state_change"
	EventTick          EventType = "tick"
	EventPhaseComplete EventType = "phase_complete"
)

// Event represents a timer update for observers.
//
// A phase that runs out produces EventTick, EventPhaseComplete and then
// EventStateChange. The first two carry the finished phase with zero
// seconds left; the state change carries the next phase at full length.
// Snapshot never returns the zero state.
type Event struct {
	Type  EventType
	State Snapshot
	// Completed and CompletedSeconds are set on EventPhaseComplete.
	Completed        Phase
	CompletedSeconds int
	At               time.Time
}
