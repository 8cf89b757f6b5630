// Package level produces the collider contents of a session: the fixed
// platformer course, the randomized platform chain, and the runner's
// recycling track of ground segments.
package level

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/physics"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// Placement is a collider to be created when a layout is installed.
type Placement struct {
	Box core.Box
	Tag world.Tag
}

// Layout is an ordered list of placements plus the player spawn point.
type Layout struct {
	Placements []Placement
	Spawn      mgl64.Vec3
}

// Install adds every placement to the registry in order.
func (l Layout) Install(w *world.Registry) []*world.Collider {
	out := make([]*world.Collider, 0, len(l.Placements))
	for _, p := range l.Placements {
		out = append(out, w.Add(p.Box, p.Tag))
	}
	return out
}

// Platforms returns the walkable chain in order: ground and win
// placements, excluding ceilings and the safety floor.
func (l Layout) Platforms() []Placement {
	out := make([]Placement, 0, len(l.Placements))
	for _, p := range l.Placements {
		if p.Tag == world.TagGround || p.Tag == world.TagWin {
			out = append(out, p)
		}
	}
	return out
}

// Win returns the win placement, if any.
func (l Layout) Win() (Placement, bool) {
	for _, p := range l.Placements {
		if p.Tag == world.TagWin {
			return p, true
		}
	}
	return Placement{}, false
}

// platform builds a slab whose top surface sits at top.
func platform(x, top, z, w, d, thickness float64) core.Box {
	return core.NewBox(mgl64.Vec3{x, top - thickness/2, z}, w, thickness, d)
}

// Jump describes the reach of the player for reachability checks.
type Jump struct {
	Strength float64 // Initial upward velocity
	Gravity  float64 // Negative acceleration
	Speed    float64 // Horizontal speed while airborne
}

// MaxRise returns the apex height of a jump.
func (j Jump) MaxRise() float64 {
	if j.Gravity >= 0 {
		return 0
	}
	return j.Strength * j.Strength / (2 * -j.Gravity)
}

// Reach returns the horizontal distance covered by a jump that lands dy
// above its takeoff. Returns 0 if the rise is out of range.
func (j Jump) Reach(dy float64) float64 {
	g := -j.Gravity
	if g <= 0 {
		return 0
	}
	disc := j.Strength*j.Strength - 2*g*dy
	if disc < 0 {
		return 0
	}
	airtime := (j.Strength + math.Sqrt(disc)) / g
	return j.Speed * airtime
}

// footprintGap returns the horizontal edge-to-edge distance between two
// boxes' xz footprints; zero when they overlap on both axes.
func footprintGap(a, b core.Box) float64 {
	dx := math.Abs(a.Center.X()-b.Center.X()) - (a.Half.X() + b.Half.X())
	dz := math.Abs(a.Center.Z()-b.Center.Z()) - (a.Half.Z() + b.Half.Z())
	return math.Hypot(math.Max(dx, 0), math.Max(dz, 0))
}

// HopReachable reports whether a jump from the top of a can land on b.
func HopReachable(a, b core.Box, j Jump) bool {
	dy := b.Top() - a.Top()
	if dy > j.MaxRise() {
		return false
	}
	return footprintGap(a, b) <= j.Reach(dy)
}

// CheckReachability returns the indices (into Platforms()) of platforms
// that cannot be reached by a jump from their predecessor.
func CheckReachability(l Layout, j Jump) []int {
	plats := l.Platforms()
	var bad []int
	for i := 1; i < len(plats); i++ {
		if !HopReachable(plats[i-1].Box, plats[i].Box, j) {
			bad = append(bad, i)
		}
	}
	return bad
}

// JumpEnvelope derives the jump reach from the resolver's parameters.
func JumpEnvelope(p physics.Params) Jump {
	return Jump{Strength: p.JumpStrength, Gravity: p.Gravity, Speed: p.MoveSpeed}
}
