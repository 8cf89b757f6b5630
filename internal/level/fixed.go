package level

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/world"
)

// FixedParams sizes the hand-authored course.
type FixedParams struct {
	Thickness      float64 // Slab thickness of every platform
	CrouchHeight   float64 // Player height while crouched
	CrouchGapExtra float64 // Clearance above the crouched player in the tunnel
}

// DefaultFixedParams returns the course sizing used by the platformer.
func DefaultFixedParams() FixedParams {
	return FixedParams{
		Thickness:      0.5,
		CrouchHeight:   0.5,
		CrouchGapExtra: 0.2,
	}
}

// BuildFixed returns the hand-authored platformer course: a short climb,
// a crouch tunnel, a final climb to the win platform, and a large floor
// underneath as a safety net.
func BuildFixed(p FixedParams) Layout {
	th := p.Thickness
	ground := func(x, top, z, w, d float64) Placement {
		return Placement{Box: platform(x, top, z, w, d, th), Tag: world.TagGround}
	}

	placements := []Placement{
		ground(0, 0, 0, 6, 6), // start
		ground(0, 0.5, -6, 3, 3),
		ground(2.5, 1.0, -10, 3, 3),
		ground(0, 1.5, -14, 3, 3),
		ground(-2.5, 1.0, -18, 3, 3),
	}

	// Crouch tunnel: the ceiling's underside sits just above a crouched
	// player and below a standing one.
	const tunnelTop = 1.0
	gap := p.CrouchHeight + p.CrouchGapExtra
	placements = append(placements,
		ground(-2.5, tunnelTop, -24, 3, 6),
		Placement{
			Box: platform(-2.5, tunnelTop+gap+th, -24, 3, 4, th),
			Tag: world.TagCeiling,
		},
	)

	placements = append(placements,
		ground(0, 1.5, -30, 3, 3),
		ground(0, 2.0, -34, 2.5, 2.5),
		ground(0, 2.5, -38, 2, 2),
		Placement{Box: platform(0, 3.0, -43, 5, 5, th), Tag: world.TagWin},
		Placement{Box: platform(0, -7.5, -20, 80, 120, 1), Tag: world.TagFloor},
	)

	return Layout{
		Placements: placements,
		Spawn:      mgl64.Vec3{0, 1, 0},
	}
}
