package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// Resolver applies input, gravity and collision to a PlayerState against
// a read-only collider registry.
type Resolver struct {
	Params Params
	World  *world.Registry
}

// NewResolver creates a resolver over the given registry.
func NewResolver(params Params, w *world.Registry) *Resolver {
	return &Resolver{Params: params, World: w}
}

// Landing describes the outcome of the vertical step.
type Landing struct {
	Landed bool            // Snapped onto a surface this tick
	Ground *world.Collider // Surface collider when Landed
}

// MoveHorizontal sets horizontal velocity from camera-relative input axes.
// yaw is the camera's heading in radians; zero looks down -Z.
// With no input the velocity decays by Damping and snaps to zero below
// StopEpsilon.
func (r *Resolver) MoveHorizontal(p *PlayerState, right, forward, yaw float64) {
	if right == 0 && forward == 0 {
		vx := p.Velocity.X() * r.Params.Damping
		vz := p.Velocity.Z() * r.Params.Damping
		if math.Hypot(vx, vz) < r.Params.StopEpsilon {
			vx, vz = 0, 0
		}
		p.Velocity = mgl64.Vec3{vx, p.Velocity.Y(), vz}
		return
	}

	sin, cos := math.Sincos(yaw)
	fwd := mgl64.Vec3{-sin, 0, -cos}
	side := mgl64.Vec3{cos, 0, -sin}
	dir := fwd.Mul(forward).Add(side.Mul(right)).Normalize()

	speed := r.Params.MoveSpeed
	if p.Crouching {
		speed *= r.Params.CrouchSpeedFactor
	}
	p.Velocity = mgl64.Vec3{dir.X() * speed, p.Velocity.Y(), dir.Z() * speed}
}

// IntegrateHorizontal moves the player along x and z by velocity*dt.
// A move that deepens the player's overlap with ceiling colliders is
// undone and horizontal velocity is dropped, so a standing player cannot
// walk into a crouch gap. Moves that keep or reduce the overlap, such as
// backing out from under a ceiling edge, are allowed.
func (r *Resolver) IntegrateHorizontal(p *PlayerState, dt float64) {
	prev := p.Position
	before := r.ceilingPenetration(p)

	p.Position[0] += p.Velocity.X() * dt
	p.Position[2] += p.Velocity.Z() * dt

	if r.ceilingPenetration(p) > before+penetrationSlop {
		p.Position = prev
		p.Velocity = mgl64.Vec3{0, p.Velocity.Y(), 0}
	}
}

// penetrationSlop absorbs rounding when comparing overlap volumes.
const penetrationSlop = 1e-9

// ceilingPenetration sums the volume the player's box shares with
// ceiling colliders.
func (r *Resolver) ceilingPenetration(p *PlayerState) float64 {
	box := p.Box()
	total := 0.0
	for _, c := range r.World.Overlapping(box, world.TagCeiling) {
		total += box.OverlapVolume(c.Box)
	}
	return total
}

// Jump applies the jump impulse when requested, grounded and standing.
// Returns true if the impulse was applied.
func (r *Resolver) Jump(p *PlayerState, requested bool) bool {
	if !requested || !p.OnGround || p.Crouching {
		return false
	}
	p.Velocity[1] = r.Params.JumpStrength
	p.OnGround = false
	return true
}

// ApplyGravity accumulates gravity while airborne.
func (r *Resolver) ApplyGravity(p *PlayerState, dt float64) {
	if !p.OnGround {
		p.Velocity[1] += r.Params.Gravity * dt
	}
}

// GroundThreshold returns the ray distance within which a surface below
// counts as ground for this tick. It grows with the tick's fall distance
// so a fast descent cannot skip past a thin platform.
func (r *Resolver) GroundThreshold(p *PlayerState, dt float64) float64 {
	threshold := p.HalfHeight() + r.Params.GroundMargin
	if fall := -p.Velocity.Y() * dt; fall > 0 {
		threshold += fall
	}
	return threshold
}

// ResolveVertical integrates vertical position and resolves landing
// against the registry with a downward ray from the player's center.
func (r *Resolver) ResolveVertical(p *PlayerState, dt float64) Landing {
	predicted := p.Position.Y() + p.Velocity.Y()*dt
	threshold := r.GroundThreshold(p, dt)

	ray := core.NewRay(p.Position, mgl64.Vec3{0, -1, 0})
	hit, ok := r.World.RayCast(ray, math.Inf(1))
	if ok && hit.Distance <= threshold && p.Velocity.Y() <= 0 {
		rest := hit.Collider.Box.Top() + p.HalfHeight()
		if predicted <= rest {
			p.Position[1] = rest
			p.Velocity[1] = 0
			p.OnGround = true
			return Landing{Landed: true, Ground: hit.Collider}
		}
	}

	p.Position[1] = predicted
	p.OnGround = false
	return Landing{}
}

// Vertical runs the full vertical step: gravity, jump, integrate, land.
func (r *Resolver) Vertical(p *PlayerState, jump bool, dt float64) Landing {
	r.ApplyGravity(p, dt)
	r.Jump(p, jump)
	return r.ResolveVertical(p, dt)
}

// UpdateCrouch enters or leaves crouch toward want. Entering requires
// being grounded; leaving requires headroom. Returns true on change.
func (r *Resolver) UpdateCrouch(p *PlayerState, want bool) bool {
	switch {
	case want && !p.Crouching:
		if !p.OnGround {
			return false
		}
		r.crouch(p)
		return true
	case !want && p.Crouching:
		if !r.CanStand(p) {
			return false
		}
		r.stand(p)
		return true
	}
	return false
}

// CanStand casts upward from just above the crouched top over the height
// difference plus a margin; any collider closer than that blocks standing.
func (r *Resolver) CanStand(p *PlayerState) bool {
	top := p.Position.Y() + p.HalfHeight()
	origin := mgl64.Vec3{p.Position.X(), top + r.Params.StandProbeOffset, p.Position.Z()}
	reach := (r.Params.StandingHeight - r.Params.CrouchHeight) + r.Params.StandMargin

	hit, ok := r.World.RayCast(core.NewRay(origin, core.Up), reach)
	return !ok || hit.Distance >= reach
}

// crouch shrinks the collider keeping the feet planted.
func (r *Resolver) crouch(p *PlayerState) {
	delta := r.Params.StandingHeight - r.Params.CrouchHeight
	p.Height = r.Params.CrouchHeight
	p.Position[1] -= delta / 2
	p.Crouching = true
}

// stand is the exact inverse of crouch.
func (r *Resolver) stand(p *PlayerState) {
	delta := r.Params.StandingHeight - r.Params.CrouchHeight
	p.Height = r.Params.StandingHeight
	p.Position[1] += delta / 2
	p.Crouching = false
}

// ForceStand restores standing height without a clearance check.
// Used when respawning.
func (r *Resolver) ForceStand(p *PlayerState) {
	if p.Crouching {
		r.stand(p)
	}
}

// FellOut reports whether the player dropped below the level floor.
func (r *Resolver) FellOut(p *PlayerState) bool {
	return p.Position.Y() < r.Params.FloorY
}

// Overlaps returns the first collider with tag that intersects the
// player's box, inclusive of touching faces.
func (r *Resolver) Overlaps(p *PlayerState, tag world.Tag) (*world.Collider, bool) {
	hits := r.World.Overlapping(p.Box(), tag)
	if len(hits) == 0 {
		return nil, false
	}
	return hits[0], true
}

// AdvanceRunner moves the runner forward with growing speed, steps the
// lane target on left/right presses, and eases x toward the target lane.
func (r *Resolver) AdvanceRunner(p *PlayerState, in core.InputSnapshot, dt float64, rp RunnerParams) {
	frames := dt * 60
	p.Speed += rp.Acceleration * frames
	p.Position[2] -= p.Speed * frames

	last := len(rp.Lanes) - 1
	if in.WasPressed(core.ActionLeft) {
		p.TargetLane = core.Clamp(p.CurrentLane-1, 0, last)
	}
	if in.WasPressed(core.ActionRight) {
		p.TargetLane = core.Clamp(p.CurrentLane+1, 0, last)
	}
	p.TargetLane = core.Clamp(p.TargetLane, 0, last)
	p.CurrentLane = p.TargetLane

	if last >= 0 {
		p.Position[0] = core.Lerp(p.Position.X(), rp.Lanes[p.TargetLane], rp.LaneLerp)
	}
}
