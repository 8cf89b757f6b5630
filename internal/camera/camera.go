// Package camera implements the follow cameras: an orbit camera steered
// by mouse deltas for the platformers and a fixed-offset chase camera
// for the runner.
package camera

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
)

// Orbit keeps the camera on a sphere around the player. Yaw 0 places the
// camera behind the player on +Z looking down -Z; positive pitch raises it.
type Orbit struct {
	Yaw      float64
	Pitch    float64
	Distance float64

	Lerp         float64 // Per-tick position smoothing factor
	HeightOffset float64 // Look target above the player's center
	CrouchOffset float64 // Subtracted from HeightOffset while crouched
	MinPitch     float64
	MaxPitch     float64
	Sensitivity  float64 // Radians per mouse delta unit

	Position mgl64.Vec3
	Target   mgl64.Vec3
}

// NewOrbit returns an orbit camera with the platformer tuning.
func NewOrbit() *Orbit {
	return &Orbit{
		Pitch:        0.35,
		Distance:     8,
		Lerp:         0.15,
		HeightOffset: 1,
		CrouchOffset: 0.5,
		MinPitch:     0.05,
		MaxPitch:     1.3,
		Sensitivity:  0.005,
	}
}

// Look applies mouse deltas to yaw and pitch.
func (o *Orbit) Look(dx, dy float64) {
	o.Yaw -= dx * o.Sensitivity
	o.Pitch = core.ClampF(o.Pitch+dy*o.Sensitivity, o.MinPitch, o.MaxPitch)
}

// Offset returns the camera offset from the look target.
func (o *Orbit) Offset() mgl64.Vec3 {
	back := mgl64.Vec3{0, 0, o.Distance}
	return mgl64.Rotate3DY(o.Yaw).Mul3x1(mgl64.Rotate3DX(-o.Pitch).Mul3x1(back))
}

func (o *Orbit) target(player mgl64.Vec3, crouching bool) mgl64.Vec3 {
	h := o.HeightOffset
	if crouching {
		h -= o.CrouchOffset
	}
	return player.Add(mgl64.Vec3{0, h, 0})
}

// Update eases the camera toward its orbit position around the player.
func (o *Orbit) Update(player mgl64.Vec3, crouching bool) {
	o.Target = o.target(player, crouching)
	o.Position = core.LerpVec(o.Position, o.Target.Add(o.Offset()), o.Lerp)
}

// Snap places the camera on its orbit immediately.
func (o *Orbit) Snap(player mgl64.Vec3, crouching bool) {
	o.Target = o.target(player, crouching)
	o.Position = o.Target.Add(o.Offset())
}

// Chase trails the runner at a fixed height with a smoothed lateral
// follow and a look target a little ahead.
type Chase struct {
	Offset    mgl64.Vec3
	XLerp     float64
	LookAhead float64

	Position mgl64.Vec3
	Target   mgl64.Vec3
}

// NewChase returns the runner chase camera.
func NewChase() *Chase {
	return &Chase{
		Offset:    mgl64.Vec3{0, 5, 10},
		XLerp:     0.1,
		LookAhead: 5,
	}
}

// Update follows the player: x eased, y fixed, z locked to the player.
func (c *Chase) Update(player mgl64.Vec3) {
	x := core.Lerp(c.Position.X(), player.X()+c.Offset.X(), c.XLerp)
	c.Position = mgl64.Vec3{x, c.Offset.Y(), player.Z() + c.Offset.Z()}
	c.Target = mgl64.Vec3{player.X(), 0, player.Z() - c.LookAhead}
}

// Snap places the camera at its offset from the player immediately.
func (c *Chase) Snap(player mgl64.Vec3) {
	c.Position = player.Add(c.Offset)
	c.Position[1] = c.Offset.Y()
	c.Target = mgl64.Vec3{player.X(), 0, player.Z() - c.LookAhead}
}
