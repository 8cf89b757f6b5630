package runner

import (
	"io"
	"math"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/config"
	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

const dt = 1.0 / 60.0

func testRuntime(seed int64) core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func newSession(t *testing.T, cfg config.RunnerConfig, seed int64) *Session {
	t.Helper()
	s := NewWithConfig(cfg)
	s.SetLogger(log.New(io.Discard))
	s.Reset(testRuntime(seed))
	return s
}

func press(actions ...core.Action) core.InputSnapshot {
	in := core.NewInputSnapshot()
	for _, a := range actions {
		in.Press(a)
	}
	return in
}

func clearTrack() config.RunnerConfig {
	cfg := config.DefaultRunnerConfig()
	cfg.Track.ObstacleChance = 0
	cfg.Difficulty.Scaling.ObstacleBoost = 0
	return cfg
}

func TestMenuWaitsForConfirm(t *testing.T) {
	s := newSession(t, config.DefaultRunnerConfig(), 1)
	z := s.Player().Position.Z()

	for i := 0; i < 10; i++ {
		res := s.Step(core.NewInputSnapshot(), dt)
		if res.State.Phase != core.PhaseMenu {
			t.Fatalf("phase = %v, want menu", res.State.Phase)
		}
	}
	if s.Player().Position.Z() != z {
		t.Error("player moved while in the menu")
	}

	res := s.Step(press(core.ActionConfirm), dt)
	if res.State.Phase != core.PhasePlaying || !res.Has(core.EventStarted) {
		t.Errorf("after confirm: phase %v, events %v", res.State.Phase, res.Events)
	}
}

func TestDeterminism(t *testing.T) {
	inputs := make([]core.InputSnapshot, 400)
	for i := range inputs {
		inputs[i] = core.NewInputSnapshot()
		switch {
		case i == 0:
			inputs[i].Press(core.ActionConfirm)
		case i%37 == 0:
			inputs[i].Press(core.ActionLeft)
		case i%53 == 0:
			inputs[i].Press(core.ActionRight)
		case i%29 == 0:
			inputs[i].Press(core.ActionJump)
		}
	}

	run := func() (*Session, core.GameState) {
		s := newSession(t, config.DefaultRunnerConfig(), 12345)
		var state core.GameState
		for _, in := range inputs {
			state = s.Step(in, dt).State
			if state.Phase.Terminal() {
				break
			}
		}
		return s, state
	}

	s1, st1 := run()
	s2, st2 := run()

	if st1 != st2 {
		t.Errorf("states differ: %+v vs %+v", st1, st2)
	}
	if s1.Ticks() != s2.Ticks() {
		t.Errorf("ticks differ: %d vs %d", s1.Ticks(), s2.Ticks())
	}
	if s1.Player().Position != s2.Player().Position {
		t.Errorf("positions differ: %v vs %v", s1.Player().Position, s2.Player().Position)
	}
	if s1.World().Len() != s2.World().Len() {
		t.Errorf("collider counts differ: %d vs %d", s1.World().Len(), s2.World().Len())
	}
}

func TestScoreAndSegmentWindow(t *testing.T) {
	cfg := clearTrack()
	s := newSession(t, cfg, 7)
	s.Step(press(core.ActionConfirm), dt)

	maxActive := cfg.Track.MaxActive
	last := 0
	for i := 0; i < 3000; i++ {
		res := s.Step(core.NewInputSnapshot(), dt)
		if res.State.Phase != core.PhasePlaying {
			t.Fatalf("tick %d: phase %v on a clear track", i, res.State.Phase)
		}

		z := s.Player().Position.Z()
		if want := max(0, int(math.Floor(-z))); res.State.Score != want {
			t.Fatalf("tick %d: score %d, want %d", i, res.State.Score, want)
		}
		if res.State.Score < last {
			t.Fatalf("tick %d: score dropped %d -> %d", i, last, res.State.Score)
		}
		last = res.State.Score

		if n := s.Track().Len(); n < maxActive-1 || n > maxActive+1 {
			t.Fatalf("tick %d: %d active segments", i, n)
		}
		if !res.State.Grounded {
			t.Fatalf("tick %d: player left the ground without jumping", i)
		}
	}

	if last < 500 {
		t.Errorf("score after 3000 ticks = %d, expected steady progress", last)
	}
	if s.Track().Created() <= maxActive {
		t.Error("no segments were recycled")
	}
}

func TestObstacleEndsRunAndRestart(t *testing.T) {
	s := newSession(t, clearTrack(), 3)
	s.Step(press(core.ActionConfirm), dt)

	z := s.Player().Position.Z()
	s.World().Add(core.NewBox(mgl64.Vec3{0, 0.75, z - 3}, 1.5, 1.5, 1.5), world.TagObstacle)

	var over core.StepResult
	for i := 0; i < 120; i++ {
		over = s.Step(core.NewInputSnapshot(), dt)
		if over.State.GameOver() {
			break
		}
	}
	if !over.State.GameOver() || !over.Has(core.EventGameOver) {
		t.Fatalf("expected game over, got %+v", over)
	}

	// Terminal until restart.
	frozen := s.Player().Position
	s.Step(core.NewInputSnapshot(), dt)
	if s.Player().Position != frozen {
		t.Error("player moved after game over")
	}

	res := s.Step(press(core.ActionRestart), dt)
	if res.State.Phase != core.PhasePlaying || !res.Has(core.EventStarted) {
		t.Fatalf("restart: phase %v, events %v", res.State.Phase, res.Events)
	}
	if res.State.Score != 0 || s.Ticks() != 0 {
		t.Errorf("restart kept score %d ticks %d", res.State.Score, s.Ticks())
	}
	if s.World().Count(world.TagObstacle) != 0 {
		t.Error("stale obstacle survived restart")
	}
}

func TestLaneSwitch(t *testing.T) {
	s := newSession(t, clearTrack(), 5)
	s.Step(press(core.ActionConfirm), dt)

	s.Step(press(core.ActionLeft), dt)
	if got := s.Player().TargetLane; got != 0 {
		t.Fatalf("target lane = %d, want 0", got)
	}
	for i := 0; i < 120; i++ {
		s.Step(core.NewInputSnapshot(), dt)
	}
	if x := s.Player().Position.X(); math.Abs(x-(-3)) > 0.01 {
		t.Errorf("x = %.3f, want about -3", x)
	}

	// Already on the left edge.
	s.Step(press(core.ActionLeft), dt)
	if got := s.Player().TargetLane; got != 0 {
		t.Errorf("target lane = %d, want 0", got)
	}
}

func TestJumpLeavesAndReturnsToGround(t *testing.T) {
	s := newSession(t, clearTrack(), 9)
	s.Step(press(core.ActionConfirm), dt)

	res := s.Step(press(core.ActionJump), dt)
	if res.State.Grounded {
		t.Fatal("still grounded after jump")
	}

	landed := false
	for i := 0; i < 120; i++ {
		res = s.Step(core.NewInputSnapshot(), dt)
		if res.State.Grounded {
			landed = true
			break
		}
	}
	if !landed {
		t.Fatal("never landed")
	}
	if y := s.Player().Position.Y(); math.Abs(y-0.5) > 1e-9 {
		t.Errorf("rest height = %v, want 0.5", y)
	}
}

func TestPauseFreezes(t *testing.T) {
	s := newSession(t, clearTrack(), 2)
	s.Step(press(core.ActionConfirm), dt)
	s.Step(core.NewInputSnapshot(), dt)

	res := s.Step(press(core.ActionPause), dt)
	if !res.State.Paused {
		t.Fatal("not paused")
	}
	z := s.Player().Position.Z()
	for i := 0; i < 10; i++ {
		s.Step(core.NewInputSnapshot(), dt)
	}
	if s.Player().Position.Z() != z {
		t.Error("player moved while paused")
	}

	res = s.Step(press(core.ActionPause), dt)
	if res.State.Paused {
		t.Error("still paused")
	}
}

func TestRenderDrawsPlayer(t *testing.T) {
	s := newSession(t, config.DefaultRunnerConfig(), 4)
	s.Step(press(core.ActionConfirm), dt)
	s.Step(core.NewInputSnapshot(), dt)

	scr := core.NewScreen(80, 24)
	s.Render(scr)

	found := false
	for y := 0; y < scr.Height(); y++ {
		for x := 0; x < scr.Width(); x++ {
			if scr.Get(x, y) == PlayerCh {
				found = true
			}
		}
	}
	if !found {
		t.Error("player glyph not rendered")
	}
}
