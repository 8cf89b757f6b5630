package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to size their debug view and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int     // Screen width in characters
	ScreenH  int     // Screen height in characters
	TickRate int     // Frame callbacks per second (default 60)
	Seed     int64   // RNG seed for deterministic level generation
	MaxDelta float64 // Upper bound on a single step's elapsed seconds
}

// DefaultMaxDelta caps a single step at 50ms to avoid large-step tunneling.
const DefaultMaxDelta = 0.05

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
		MaxDelta: DefaultMaxDelta,
	}
}

// FixedDelta returns the per-tick elapsed time implied by TickRate.
func (c RuntimeConfig) FixedDelta() float64 {
	if c.TickRate <= 0 {
		return 1.0 / 60.0
	}
	return 1.0 / float64(c.TickRate)
}

// ClampDelta bounds dt to [0, MaxDelta].
func (c RuntimeConfig) ClampDelta(dt float64) float64 {
	maxDelta := c.MaxDelta
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return ClampF(dt, 0, maxDelta)
}

// Phase is the lifecycle state of a game session.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlaying
	PhaseGameOver
	PhaseWin
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	case PhaseWin:
		return "win"
	default:
		return "unknown"
	}
}

// Terminal reports whether the phase ends the run.
func (p Phase) Terminal() bool {
	return p == PhaseGameOver || p == PhaseWin
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Phase     Phase
	Score     int  // Current score
	Paused    bool // Whether the game is paused
	Grounded  bool // Player is standing on a collider
	Crouching bool // Player is crouched
}

// GameOver reports whether the run has ended in failure.
func (s GameState) GameOver() bool {
	return s.Phase == PhaseGameOver
}

// Won reports whether the run has ended in a win.
func (s GameState) Won() bool {
	return s.Phase == PhaseWin
}

// EventKind identifies a lifecycle signal emitted by a step.
type EventKind int

const (
	EventStarted EventKind = iota
	EventGameOver
	EventWin
	EventRespawn
)

// String returns a human-readable name for the event.
func (k EventKind) String() string {
	switch k {
	case EventStarted:
		return "started"
	case EventGameOver:
		return "game_over"
	case EventWin:
		return "win"
	case EventRespawn:
		return "respawn"
	default:
		return "unknown"
	}
}

// Event is a lifecycle signal for the UI layer.
type Event struct {
	Kind  EventKind
	Score int
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has reports whether the result carries an event of the given kind.
func (r StepResult) Has(kind EventKind) bool {
	for _, e := range r.Events {
		if e.Kind == kind {
			return true
		}
	}
	return false
}
