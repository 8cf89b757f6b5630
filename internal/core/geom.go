// Package core provides fundamental types and utilities for the arcade3d simulation.
// It contains no UI dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Up is the world-space up axis. Forward for the runner is -Z.
var Up = mgl64.Vec3{0, 1, 0}

// Box is an axis-aligned bounding box described by its center and half-extents.
type Box struct {
	Center mgl64.Vec3
	Half   mgl64.Vec3
}

// NewBox creates a box from a center and full width/height/depth.
func NewBox(center mgl64.Vec3, w, h, d float64) Box {
	return Box{Center: center, Half: mgl64.Vec3{w / 2, h / 2, d / 2}}
}

// Min returns the minimum corner.
func (b Box) Min() mgl64.Vec3 {
	return b.Center.Sub(b.Half)
}

// Max returns the maximum corner.
func (b Box) Max() mgl64.Vec3 {
	return b.Center.Add(b.Half)
}

// Top returns the y-coordinate of the upper face.
func (b Box) Top() float64 {
	return b.Center.Y() + b.Half.Y()
}

// Bottom returns the y-coordinate of the lower face.
func (b Box) Bottom() float64 {
	return b.Center.Y() - b.Half.Y()
}

// Size returns the full extents.
func (b Box) Size() mgl64.Vec3 {
	return b.Half.Mul(2)
}

// Intersects returns true if the boxes overlap or touch.
// Boundaries are inclusive: two boxes sharing a face intersect.
func (b Box) Intersects(other Box) bool {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := other.Min(), other.Max()
	for i := 0; i < 3; i++ {
		if bMax[i] < oMin[i] || oMax[i] < bMin[i] {
			return false
		}
	}
	return true
}

// OverlapVolume returns the volume shared by the two boxes. Boxes that
// only touch share zero volume.
func (b Box) OverlapVolume(other Box) float64 {
	bMin, bMax := b.Min(), b.Max()
	oMin, oMax := other.Min(), other.Max()
	vol := 1.0
	for i := 0; i < 3; i++ {
		d := math.Min(bMax[i], oMax[i]) - math.Max(bMin[i], oMin[i])
		if d <= 0 {
			return 0
		}
		vol *= d
	}
	return vol
}

// ContainsPoint reports whether p lies inside the box or on its surface.
func (b Box) ContainsPoint(p mgl64.Vec3) bool {
	bMin, bMax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if p[i] < bMin[i] || p[i] > bMax[i] {
			return false
		}
	}
	return true
}

// strictlyContains reports whether p lies inside the box, excluding the surface.
func (b Box) strictlyContains(p mgl64.Vec3) bool {
	bMin, bMax := b.Min(), b.Max()
	for i := 0; i < 3; i++ {
		if p[i] <= bMin[i] || p[i] >= bMax[i] {
			return false
		}
	}
	return true
}

// Ray is a half-line with a unit direction.
type Ray struct {
	Origin mgl64.Vec3
	Dir    mgl64.Vec3
}

// NewRay creates a ray, normalizing the direction.
func NewRay(origin, dir mgl64.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectBox returns the entry distance of the ray into the box.
// A box that strictly contains the origin is not hit; the ray only
// reports surfaces it enters from outside.
func (r Ray) IntersectBox(b Box) (float64, bool) {
	if b.strictlyContains(r.Origin) {
		return 0, false
	}

	bMin, bMax := b.Min(), b.Max()
	tNear := math.Inf(-1)
	tFar := math.Inf(1)

	for i := 0; i < 3; i++ {
		if r.Dir[i] == 0 {
			// Parallel to this slab: must already be within it
			if r.Origin[i] < bMin[i] || r.Origin[i] > bMax[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t1 := (bMin[i] - r.Origin[i]) * inv
		t2 := (bMax[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tNear = math.Max(tNear, t1)
		tFar = math.Min(tFar, t2)
		if tNear > tFar {
			return 0, false
		}
	}

	if tFar <= 0 {
		// Box is behind the ray, or the origin sits on a face pointing away
		return 0, false
	}
	if tNear < 0 {
		// Origin on the surface
		tNear = 0
	}
	return tNear, true
}

// Rect represents an integer screen-space rectangle used for drawing.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Lerp linearly interpolates from a toward b by factor t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec interpolates each component of a toward b by factor t.
func LerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
