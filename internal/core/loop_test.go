package core

import (
	"context"
	"math"
	"testing"
	"time"
)

// fakeClock advances by a fixed step on every read.
type fakeClock struct {
	t    time.Time
	step time.Duration
}

func (c *fakeClock) now() time.Time {
	c.t = c.t.Add(c.step)
	return c.t
}

// countingStepper records deltas and ends after a number of ticks.
type countingStepper struct {
	deltas []float64
	endAt  int
}

func (s *countingStepper) Step(_ InputSnapshot, dt float64) StepResult {
	s.deltas = append(s.deltas, dt)
	phase := PhasePlaying
	if s.endAt > 0 && len(s.deltas) >= s.endAt {
		phase = PhaseGameOver
	}
	return StepResult{State: GameState{Phase: phase}}
}

func TestFrameClockDelta(t *testing.T) {
	fc := &fakeClock{t: time.Unix(0, 0), step: 16 * time.Millisecond}
	clock := NewFrameClock(fc.now)

	if got := clock.Delta(); math.Abs(got-0.016) > 1e-9 {
		t.Errorf("Delta() = %f, expected 0.016", got)
	}
	fc.step = 200 * time.Millisecond
	if got := clock.Delta(); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("Delta() = %f, expected 0.2", got)
	}
}

func TestClockLoopClampsDelta(t *testing.T) {
	fc := &fakeClock{t: time.Unix(0, 0), step: 200 * time.Millisecond}
	cfg := DefaultConfig()
	loop := NewClockLoop(cfg, NewFrameClock(fc.now))

	s := &countingStepper{}
	loop.Tick(s, NewInputSnapshot())

	if s.deltas[0] != DefaultMaxDelta {
		t.Errorf("delta = %f, expected clamp to %f", s.deltas[0], DefaultMaxDelta)
	}
}

func TestFixedLoopRunStopsOnTerminal(t *testing.T) {
	cfg := DefaultConfig()
	loop := NewFixedLoop(cfg)
	s := &countingStepper{endAt: 7}

	result, err := loop.Run(context.Background(), s, nil, 100)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if loop.Ticks() != 7 {
		t.Errorf("Ticks() = %d, expected 7", loop.Ticks())
	}
	if !result.State.GameOver() {
		t.Error("expected final state to be game over")
	}
	for _, dt := range s.deltas {
		if math.Abs(dt-1.0/60.0) > 1e-12 {
			t.Errorf("fixed delta = %f, expected 1/60", dt)
		}
	}
}

func TestFixedLoopRunMaxTicks(t *testing.T) {
	loop := NewFixedLoop(DefaultConfig())
	s := &countingStepper{}

	if _, err := loop.Run(context.Background(), s, nil, 25); err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if len(s.deltas) != 25 {
		t.Errorf("stepped %d times, expected 25", len(s.deltas))
	}
}

func TestLoopRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	loop := NewFixedLoop(DefaultConfig())
	if _, err := loop.Run(ctx, &countingStepper{}, nil, 0); err == nil {
		t.Error("expected context error")
	}
}

func TestInputSnapshot(t *testing.T) {
	in := NewInputSnapshot()
	in.Press(ActionJump)
	in.Hold(ActionForward)
	in.Hold(ActionLeft)

	if !in.WasPressed(ActionJump) || !in.IsHeld(ActionJump) {
		t.Error("a press should also count as held")
	}
	if in.WasPressed(ActionForward) {
		t.Error("a hold is not a press")
	}

	right, forward := in.MoveAxes()
	if right != -1 || forward != 1 {
		t.Errorf("MoveAxes() = (%f, %f), expected (-1, 1)", right, forward)
	}

	clone := in.Clone()
	in.Clear()
	if in.IsHeld(ActionForward) || in.WasPressed(ActionJump) {
		t.Error("Clear() should drop all actions")
	}
	if !clone.IsHeld(ActionForward) {
		t.Error("Clone() should be independent of the original")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
		ok   bool
	}{
		{"forward", ActionForward, true},
		{"Jump", ActionJump, true},
		{"CROUCH", ActionCrouch, true},
		{"pause", ActionPause, true},
		{"none", ActionNone, false},
		{"fly", ActionNone, false},
		{"", ActionNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseAction(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAction(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
