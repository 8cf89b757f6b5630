// Package physics implements the per-frame movement and collision core:
// player kinematics, ground detection by downward ray casts, crouch
// clearance by upward ray casts, and runner lane interpolation.
package physics

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
)

// PlayerState is the kinematic state of the avatar. A single game session
// owns and mutates it once per tick.
type PlayerState struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
	Height   float64 // Current collider height (standing or crouched)
	Width    float64 // Footprint on x and z

	OnGround  bool
	Crouching bool

	// Runner only
	CurrentLane int
	TargetLane  int
	Speed       float64 // Forward speed in units per 60Hz frame
}

// NewPlayer creates a standing player at pos.
func NewPlayer(pos mgl64.Vec3, width, height float64) PlayerState {
	return PlayerState{
		Position: pos,
		Width:    width,
		Height:   height,
	}
}

// HalfHeight returns half the current collider height.
func (p *PlayerState) HalfHeight() float64 {
	return p.Height / 2
}

// Box returns the player's bounding box.
func (p *PlayerState) Box() core.Box {
	return core.NewBox(p.Position, p.Width, p.Height, p.Width)
}

// Feet returns the y-coordinate of the bottom of the collider.
func (p *PlayerState) Feet() float64 {
	return p.Position.Y() - p.HalfHeight()
}
