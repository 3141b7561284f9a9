// Package timer implements the study/break focus timer.
package timer

import (
	"fmt"
	"sync"
	"time"
)

// Config holds the phase lengths. Durations are truncated to whole seconds.
type Config struct {
	Study time.Duration
	Break time.Duration
}

// DefaultConfig returns 30 minutes of study followed by a 10 minute break.
func DefaultConfig() Config {
	return Config{
		Study: 30 * time.Minute,
		Break: 10 * time.Minute,
	}
}

func (c Config) normalized() Config {
	def := DefaultConfig()
	if c.Study < time.Second {
		c.Study = def.Study
	}
	if c.Break < time.Second {
		c.Break = def.Break
	}
	return c
}

// Snapshot is the display state of the timer at one instant.
type Snapshot struct {
	Phase            Phase
	RemainingSeconds int
	DurationSeconds  int
	Running          bool
}

// Progress returns the elapsed fraction of the current phase in [0,1].
func (s Snapshot) Progress() float64 {
	if s.DurationSeconds <= 0 {
		return 1
	}
	progress := float64(s.DurationSeconds-s.RemainingSeconds) / float64(s.DurationSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

// Clock formats the remaining time as mm:ss.
func (s Snapshot) Clock() string {
	remaining := s.RemainingSeconds
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%02d:%02d", remaining/60, remaining%60)
}

// Engine is the two-phase countdown state machine. It never schedules
// itself; a Runner (or a test) drives it through Tick.
type Engine struct {
	mu        sync.Mutex
	config    Config
	phase     Phase
	remaining int
	running   bool
	events    []chan Event
	changed   chan struct{}
}

// New creates an idle engine at the start of a study phase.
func New(config Config) *Engine {
	config = config.normalized()
	return &Engine{
		config:    config,
		phase:     PhaseStudy,
		remaining: seconds(config.Study),
		changed:   make(chan struct{}, 1),
	}
}

// Subscribe registers a new observer channel. Events are dropped for
// observers whose buffer is full.
func (e *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	e.mu.Lock()
	e.events = append(e.events, ch)
	e.mu.Unlock()
	return ch
}

// Close closes all observer channels.
func (e *Engine) Close() {
	e.mu.Lock()
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Snapshot returns the current display state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Running reports whether the countdown is active.
func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.running
}

// Config returns the active phase lengths.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.config
}

// Start resumes the countdown.
func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.running {
		return
	}
	e.running = true
	e.stateChangedLocked(time.Now())
}

// Pause freezes the countdown.
func (e *Engine) Pause() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}
	e.running = false
	e.stateChangedLocked(time.Now())
}

// Reset stops the countdown and returns to a full study phase.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.running = false
	e.phase = PhaseStudy
	e.remaining = seconds(e.config.Study)
	e.stateChangedLocked(time.Now())
}

// Skip jumps to the start of the other phase. Running is unchanged.
func (e *Engine) Skip() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.switchPhaseLocked()
	e.stateChangedLocked(time.Now())
}

// Reconfigure applies new phase lengths. Remaining time is clamped to the
// new length of the current phase; an idle engine sitting at the start of a
// phase is moved to the new full length.
func (e *Engine) Reconfigure(config Config) {
	e.mu.Lock()
	defer e.mu.Unlock()

	config = config.normalized()
	atStart := !e.running && e.remaining == e.durationLocked(e.phase)
	e.config = config
	full := e.durationLocked(e.phase)
	if atStart || e.remaining > full {
		e.remaining = full
	}
	e.stateChangedLocked(time.Now())
}

// Tick advances the countdown by one second. It is ignored while paused.
// When the phase reaches zero the engine switches to the other phase at
// its full length and keeps running. Only the events emitted before the
// switch see the zero state.
func (e *Engine) Tick(now time.Time) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.running {
		return
	}

	if e.remaining > 0 {
		e.remaining--
		e.emitLocked(Event{Type: EventTick, State: e.snapshotLocked(), At: now})
	}
	if e.remaining > 0 {
		return
	}

	finished := e.phase
	e.emitLocked(Event{
		Type:             EventPhaseComplete,
		State:            e.snapshotLocked(),
		Completed:        finished,
		CompletedSeconds: e.durationLocked(finished),
		At:               now,
	})
	e.switchPhaseLocked()
	e.emitLocked(Event{Type: EventStateChange, State: e.snapshotLocked(), At: now})
}

// changes is signalled whenever running may have flipped.
func (e *Engine) changes() <-chan struct{} {
	return e.changed
}

func (e *Engine) switchPhaseLocked() {
	e.phase = e.phase.Opposite()
	e.remaining = e.durationLocked(e.phase)
}

func (e *Engine) durationLocked(phase Phase) int {
	if phase == PhaseBreak {
		return seconds(e.config.Break)
	}
	return seconds(e.config.Study)
}

func (e *Engine) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:            e.phase,
		RemainingSeconds: e.remaining,
		DurationSeconds:  e.durationLocked(e.phase),
		Running:          e.running,
	}
}

func (e *Engine) stateChangedLocked(now time.Time) {
	select {
	case e.changed <- struct{}{}:
	default:
	}
	e.emitLocked(Event{Type: EventStateChange, State: e.snapshotLocked(), At: now})
}

func (e *Engine) emitLocked(event Event) {
	for _, ch := range e.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
