package core

import (
	"context"
	"time"
)

// FrameClock reports elapsed seconds between successive Delta calls,
// like a render loop's frame clock. The time source is injected so tests
// can drive it deterministically.
type FrameClock struct {
	now  func() time.Time
	last time.Time
}

// NewFrameClock creates a clock on the given time source (time.Now if nil).
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now, last: now()}
}

// Delta returns seconds since the previous call (or since creation).
func (c *FrameClock) Delta() float64 {
	t := c.now()
	dt := t.Sub(c.last).Seconds()
	c.last = t
	if dt < 0 {
		return 0
	}
	return dt
}

// Reset restarts the measurement from the current time.
func (c *FrameClock) Reset() {
	c.last = c.now()
}

// Stepper is anything that advances one tick given input and elapsed seconds.
type Stepper interface {
	Step(in InputSnapshot, dt float64) StepResult
}

// Loop drives a Stepper with either a fixed timestep or a clamped
// variable timestep measured by a FrameClock.
type Loop struct {
	cfg   RuntimeConfig
	clock *FrameClock // nil means fixed timestep
	ticks int
}

// NewFixedLoop creates a loop that advances 1/TickRate seconds per tick.
func NewFixedLoop(cfg RuntimeConfig) *Loop {
	return &Loop{cfg: cfg}
}

// NewClockLoop creates a loop that measures elapsed time with clock.
func NewClockLoop(cfg RuntimeConfig, clock *FrameClock) *Loop {
	return &Loop{cfg: cfg, clock: clock}
}

// Ticks returns the number of ticks run so far.
func (l *Loop) Ticks() int {
	return l.ticks
}

// NextDelta returns the clamped elapsed time for the next tick.
func (l *Loop) NextDelta() float64 {
	if l.clock == nil {
		return l.cfg.ClampDelta(l.cfg.FixedDelta())
	}
	return l.cfg.ClampDelta(l.clock.Delta())
}

// Tick advances the stepper once. The boolean is false once the
// session reached a terminal phase and no further ticks should run.
func (l *Loop) Tick(s Stepper, in InputSnapshot) (StepResult, bool) {
	result := s.Step(in, l.NextDelta())
	l.ticks++
	return result, !result.State.Phase.Terminal()
}

// Run ticks until the session ends, maxTicks is reached (0 = unbounded),
// or ctx is cancelled. input supplies the snapshot for each tick index.
func (l *Loop) Run(ctx context.Context, s Stepper, input func(tick int) InputSnapshot, maxTicks int) (StepResult, error) {
	var last StepResult
	for maxTicks <= 0 || l.ticks < maxTicks {
		if err := ctx.Err(); err != nil {
			return last, err
		}
		in := NewInputSnapshot()
		if input != nil {
			in = input(l.ticks)
		}
		result, more := l.Tick(s, in)
		last = result
		if !more {
			break
		}
	}
	return last, nil
}
