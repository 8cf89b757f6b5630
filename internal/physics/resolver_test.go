package physics

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

const dt = 1.0 / 60.0

// newFloorWorld returns a registry with a wide floor whose top is at y=0.5.
func newFloorWorld() (*world.Registry, *world.Collider) {
	w := world.NewRegistry()
	floor := w.Add(core.NewBox(mgl64.Vec3{0, 0, 0}, 20, 1, 20), world.TagGround)
	return w, floor
}

func standingPlayer(y float64) PlayerState {
	p := NewPlayer(mgl64.Vec3{0, y, 0}, 1, 1)
	p.OnGround = true
	return p
}

func TestRestingContactHoldsPosition(t *testing.T) {
	w, floor := newFloorWorld()
	r := NewResolver(DefaultParams(), w)

	for _, grounded := range []bool{true, false} {
		p := NewPlayer(mgl64.Vec3{0, 1.0, 0}, 1, 1)
		p.OnGround = grounded

		landing := r.Vertical(&p, false, dt)

		if p.Position.Y() != 1.0 {
			t.Errorf("grounded=%v: y = %v, expected 1.0", grounded, p.Position.Y())
		}
		if p.Velocity.Y() != 0 {
			t.Errorf("grounded=%v: vy = %v, expected 0", grounded, p.Velocity.Y())
		}
		if !p.OnGround || !landing.Landed || landing.Ground != floor {
			t.Errorf("grounded=%v: expected to stay grounded on floor, got %+v", grounded, landing)
		}
	}
}

func TestLandingSnapsToSurface(t *testing.T) {
	w, _ := newFloorWorld()
	r := NewResolver(DefaultParams(), w)

	p := NewPlayer(mgl64.Vec3{0, 1.05, 0}, 1, 1)
	p.Velocity = mgl64.Vec3{0, -6, 0}

	r.Vertical(&p, false, dt)

	if math.Abs(p.Position.Y()-1.0) > 1e-12 {
		t.Errorf("y = %v, expected surface 0.5 + half height 0.5", p.Position.Y())
	}
	if p.Velocity.Y() != 0 || !p.OnGround {
		t.Errorf("expected zero velocity and grounded, got vy=%v grounded=%v", p.Velocity.Y(), p.OnGround)
	}
}

func TestFastFallDoesNotTunnel(t *testing.T) {
	w := world.NewRegistry()
	w.Add(core.NewBox(mgl64.Vec3{0, 0, 0}, 4, 0.2, 4), world.TagGround) // top 0.1

	r := NewResolver(DefaultParams(), w)
	p := NewPlayer(mgl64.Vec3{0, 1.2, 0}, 1, 1)
	p.Velocity = mgl64.Vec3{0, -60, 0} // one 50ms tick falls 3 units

	r.Vertical(&p, false, 0.05)

	if !p.OnGround || math.Abs(p.Position.Y()-0.6) > 1e-12 {
		t.Errorf("expected landing at 0.6, got y=%v grounded=%v", p.Position.Y(), p.OnGround)
	}
}

func TestAirborneAboveThresholdFalls(t *testing.T) {
	w, _ := newFloorWorld()
	r := NewResolver(DefaultParams(), w)

	p := NewPlayer(mgl64.Vec3{0, 5, 0}, 1, 1)
	r.Vertical(&p, false, dt)

	expectedV := DefaultParams().Gravity * dt
	if math.Abs(p.Velocity.Y()-expectedV) > 1e-12 {
		t.Errorf("vy = %v, expected %v", p.Velocity.Y(), expectedV)
	}
	if p.OnGround {
		t.Error("should not be grounded mid-air")
	}
	if p.Position.Y() >= 5 {
		t.Errorf("y = %v, expected to fall below 5", p.Position.Y())
	}
}

func TestNoGroundAcceptsPrediction(t *testing.T) {
	r := NewResolver(DefaultParams(), world.NewRegistry())
	p := standingPlayer(1)

	r.Vertical(&p, false, dt)
	if p.OnGround {
		t.Error("grounded flag must clear when nothing is below")
	}
	r.Vertical(&p, false, dt)
	if p.Position.Y() >= 1 {
		t.Errorf("y = %v, expected to start falling", p.Position.Y())
	}
}

func TestJumpSetsExactStrength(t *testing.T) {
	w, _ := newFloorWorld()
	params := DefaultParams()
	r := NewResolver(params, w)

	p := standingPlayer(1)
	r.Vertical(&p, true, dt)

	if p.Velocity.Y() != params.JumpStrength {
		t.Errorf("vy = %v, expected exactly %v", p.Velocity.Y(), params.JumpStrength)
	}
	if p.OnGround {
		t.Error("grounded flag must be false on the jump tick")
	}
	if p.Position.Y() <= 1 {
		t.Errorf("y = %v, expected to rise", p.Position.Y())
	}
}

func TestJumpRequiresGroundAndStanding(t *testing.T) {
	r := NewResolver(DefaultParams(), world.NewRegistry())

	air := NewPlayer(mgl64.Vec3{0, 3, 0}, 1, 1)
	if r.Jump(&air, true) {
		t.Error("jump applied while airborne")
	}

	crouched := standingPlayer(1)
	crouched.Crouching = true
	if r.Jump(&crouched, true) {
		t.Error("jump applied while crouching")
	}
}

func TestCrouchRoundTrip(t *testing.T) {
	w, _ := newFloorWorld()
	r := NewResolver(DefaultParams(), w)

	p := standingPlayer(1)
	origY, origH := p.Position.Y(), p.Height

	if !r.UpdateCrouch(&p, true) {
		t.Fatal("expected to enter crouch while grounded")
	}
	if p.Height != 0.5 || math.Abs(p.Feet()-0.5) > 1e-12 {
		t.Errorf("crouch should keep feet planted: height=%v feet=%v", p.Height, p.Feet())
	}
	if !r.UpdateCrouch(&p, false) {
		t.Fatal("expected to stand with open headroom")
	}
	if math.Abs(p.Position.Y()-origY) > 1e-12 || p.Height != origH {
		t.Errorf("stand should restore y=%v h=%v, got y=%v h=%v", origY, origH, p.Position.Y(), p.Height)
	}
}

func TestCrouchRequiresGround(t *testing.T) {
	r := NewResolver(DefaultParams(), world.NewRegistry())
	p := NewPlayer(mgl64.Vec3{0, 3, 0}, 1, 1)

	if r.UpdateCrouch(&p, true) || p.Crouching {
		t.Error("crouch entered while airborne")
	}
}

func TestStandBlockedByCeiling(t *testing.T) {
	params := DefaultParams()
	w, _ := newFloorWorld()

	// Crouched player: feet at 0.5, top at 1.0. Ceiling bottom at 1.3
	// is closer than the 0.55 stand-up reach.
	w.Add(core.NewBox(mgl64.Vec3{0, 1.8, 0}, 4, 1, 4), world.TagCeiling)
	r := NewResolver(params, w)

	p := standingPlayer(1)
	r.UpdateCrouch(&p, true)

	if r.CanStand(&p) {
		t.Error("CanStand() should be false under a low ceiling")
	}
	if r.UpdateCrouch(&p, false) || !p.Crouching {
		t.Error("player stood up into the ceiling")
	}
}

func TestStandAllowedUnderHighCeiling(t *testing.T) {
	w, _ := newFloorWorld()
	w.Add(core.NewBox(mgl64.Vec3{0, 2.5, 0}, 4, 1, 4), world.TagCeiling) // bottom at 2.0

	r := NewResolver(DefaultParams(), w)
	p := standingPlayer(1)
	r.UpdateCrouch(&p, true)

	if !r.CanStand(&p) {
		t.Error("CanStand() should be true with a 1.0 clearance")
	}
}

func TestMoveHorizontalCameraRelative(t *testing.T) {
	params := DefaultParams()
	r := NewResolver(params, world.NewRegistry())

	tests := []struct {
		name           string
		right, forward float64
		yaw            float64
		want           mgl64.Vec3
	}{
		{"forward at yaw 0", 0, 1, 0, mgl64.Vec3{0, 0, -params.MoveSpeed}},
		{"right at yaw 0", 1, 0, 0, mgl64.Vec3{params.MoveSpeed, 0, 0}},
		{"forward at yaw 90", 0, 1, math.Pi / 2, mgl64.Vec3{-params.MoveSpeed, 0, 0}},
		{"diagonal normalized", 1, 1, 0, mgl64.Vec3{params.MoveSpeed / math.Sqrt2, 0, -params.MoveSpeed / math.Sqrt2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := standingPlayer(1)
			r.MoveHorizontal(&p, tc.right, tc.forward, tc.yaw)
			if p.Velocity.Sub(tc.want).Len() > 1e-9 {
				t.Errorf("velocity = %v, expected %v", p.Velocity, tc.want)
			}
		})
	}
}

func TestMoveHorizontalCrouchFactor(t *testing.T) {
	params := DefaultParams()
	r := NewResolver(params, world.NewRegistry())

	p := standingPlayer(1)
	p.Crouching = true
	r.MoveHorizontal(&p, 0, 1, 0)

	if got := -p.Velocity.Z(); math.Abs(got-params.MoveSpeed*params.CrouchSpeedFactor) > 1e-12 {
		t.Errorf("crouched speed = %v", got)
	}
}

func TestMoveHorizontalDampsToZero(t *testing.T) {
	params := DefaultParams()
	r := NewResolver(params, world.NewRegistry())

	p := standingPlayer(1)
	p.Velocity = mgl64.Vec3{1, 0, 0}

	r.MoveHorizontal(&p, 0, 0, 0)
	if math.Abs(p.Velocity.X()-params.Damping) > 1e-12 {
		t.Errorf("vx after one damped tick = %v, expected %v", p.Velocity.X(), params.Damping)
	}

	for i := 0; i < 200 && p.Velocity.X() != 0; i++ {
		r.MoveHorizontal(&p, 0, 0, 0)
	}
	if p.Velocity.X() != 0 {
		t.Errorf("velocity never snapped to zero: %v", p.Velocity.X())
	}
}

func TestAdvanceRunnerLaneClamp(t *testing.T) {
	rp := DefaultRunnerParams()
	r := NewResolver(DefaultParams(), world.NewRegistry())

	p := standingPlayer(0.5)
	p.CurrentLane, p.TargetLane = rp.CenterLane(), rp.CenterLane()

	left := core.NewInputSnapshot()
	left.Press(core.ActionLeft)
	for i := 0; i < 5; i++ {
		r.AdvanceRunner(&p, left, dt, rp)
		if p.TargetLane < 0 || p.TargetLane > len(rp.Lanes)-1 {
			t.Fatalf("target lane %d out of range", p.TargetLane)
		}
	}
	if p.TargetLane != 0 {
		t.Errorf("TargetLane = %d, expected 0 after repeated left", p.TargetLane)
	}

	right := core.NewInputSnapshot()
	right.Press(core.ActionRight)
	for i := 0; i < 7; i++ {
		r.AdvanceRunner(&p, right, dt, rp)
	}
	if p.TargetLane != len(rp.Lanes)-1 {
		t.Errorf("TargetLane = %d, expected %d after repeated right", p.TargetLane, len(rp.Lanes)-1)
	}
}

func TestAdvanceRunnerForwardAndLerp(t *testing.T) {
	rp := DefaultRunnerParams()
	r := NewResolver(DefaultParams(), world.NewRegistry())

	p := standingPlayer(0.5)
	p.Position = mgl64.Vec3{0, 0.5, 5}
	p.Speed = rp.StartSpeed
	p.CurrentLane, p.TargetLane = 1, 1

	in := core.NewInputSnapshot()
	in.Press(core.ActionRight)
	r.AdvanceRunner(&p, in, dt, rp)

	expectedSpeed := rp.StartSpeed + rp.Acceleration
	if math.Abs(p.Speed-expectedSpeed) > 1e-12 {
		t.Errorf("speed = %v, expected %v", p.Speed, expectedSpeed)
	}
	if math.Abs(p.Position.Z()-(5-expectedSpeed)) > 1e-12 {
		t.Errorf("z = %v, expected %v", p.Position.Z(), 5-expectedSpeed)
	}
	if math.Abs(p.Position.X()-0.3) > 1e-12 {
		t.Errorf("x = %v, expected 10%% of the way to lane 3.0", p.Position.X())
	}
}

func TestOverlapsInclusive(t *testing.T) {
	w := world.NewRegistry()
	obstacle := w.Add(core.NewBox(mgl64.Vec3{0, 0.75, -1.25}, 1.5, 1.5, 1.5), world.TagObstacle)
	r := NewResolver(DefaultParams(), w)

	// Player front face at z=-0.5 touches obstacle back face at z=-0.5.
	p := standingPlayer(0.5)
	got, ok := r.Overlaps(&p, world.TagObstacle)
	if !ok || got != obstacle {
		t.Error("zero-gap contact must count as overlap")
	}

	p.Position[2] = 0.001
	if _, ok := r.Overlaps(&p, world.TagObstacle); ok {
		t.Error("separated boxes must not overlap")
	}
}

func TestFellOut(t *testing.T) {
	r := NewResolver(DefaultParams(), world.NewRegistry())
	p := standingPlayer(-20.5)
	if !r.FellOut(&p) {
		t.Error("expected fall-out below floor")
	}
}

func TestMaxJumpHeight(t *testing.T) {
	p := DefaultParams()
	want := 64 / (2 * 19.62)
	if math.Abs(p.MaxJumpHeight()-want) > 1e-12 {
		t.Errorf("MaxJumpHeight() = %v, expected %v", p.MaxJumpHeight(), want)
	}
}

func TestCeilingBlocksStandingPlayer(t *testing.T) {
	w, _ := newFloorWorld()
	// Ceiling bottom at 1.2 sits below a standing top (1.5) but above a crouched top (1.0).
	w.Add(core.NewBox(mgl64.Vec3{0, 1.45, -3}, 4, 0.5, 4), world.TagCeiling)
	r := NewResolver(DefaultParams(), w)

	p := standingPlayer(1)
	p.Velocity = mgl64.Vec3{0, 0, -6}
	for i := 0; i < 60; i++ {
		r.IntegrateHorizontal(&p, dt)
	}
	if p.Position.Z() < -0.51 {
		t.Errorf("standing player walked under the ceiling to z=%v", p.Position.Z())
	}

	crouched := standingPlayer(1)
	r.UpdateCrouch(&crouched, true)
	crouched.Velocity = mgl64.Vec3{0, 0, -6}
	for i := 0; i < 60; i++ {
		r.IntegrateHorizontal(&crouched, dt)
	}
	if crouched.Position.Z() > -5 {
		t.Errorf("crouched player should pass under the ceiling, z=%v", crouched.Position.Z())
	}
}

func TestStandAtCeilingEdgeCannotWalkIn(t *testing.T) {
	w, _ := newFloorWorld()
	// Ceiling spans z -5..-1 with its underside at 1.2.
	w.Add(core.NewBox(mgl64.Vec3{0, 1.45, -3}, 4, 0.5, 4), world.TagCeiling)
	r := NewResolver(DefaultParams(), w)

	// Center just outside the span, front face already under it.
	p := standingPlayer(1)
	p.Position[2] = -0.6
	r.UpdateCrouch(&p, true)
	if !r.UpdateCrouch(&p, false) {
		t.Fatal("standing up with the ceiling off-center should succeed")
	}
	if _, ok := r.Overlaps(&p, world.TagCeiling); !ok {
		t.Fatal("standing box should reach under the ceiling edge")
	}

	p.Velocity = mgl64.Vec3{0, 0, -6}
	for i := 0; i < 30; i++ {
		r.IntegrateHorizontal(&p, dt)
	}
	if p.Position.Z() < -0.6-1e-9 {
		t.Errorf("standing player walked deeper under the ceiling to z=%v", p.Position.Z())
	}
	if p.Crouching {
		t.Error("player should still be standing")
	}

	p.Velocity = mgl64.Vec3{0, 0, 6}
	r.IntegrateHorizontal(&p, dt)
	if p.Position.Z() <= -0.6 {
		t.Errorf("backing out from under the ceiling should be allowed, z=%v", p.Position.Z())
	}
}
