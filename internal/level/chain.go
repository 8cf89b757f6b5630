package level

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// ChainParams controls the randomized platform chain.
type ChainParams struct {
	Count int // Total platforms including the first and the win platform

	FirstSize float64 // Width and depth of the starting platform
	Thickness float64

	MinRise, MaxRise float64 // Top-to-top height change per hop
	MinGap, MaxGap   float64 // Edge-to-edge distance along the heading
	MinSize, MaxSize float64 // Width and depth range

	MaxTurn       float64 // Max heading deviation from -Z, radians
	LateralJitter float64 // Extra sideways offset range
	WinScale      float64 // Footprint multiplier for the last platform

	ClampToReach bool // Keep every hop inside the jump envelope
	FloorDepth   float64
}

// DefaultChainParams returns the platformer_v2 chain tuning.
func DefaultChainParams() ChainParams {
	return ChainParams{
		Count:         100,
		FirstSize:     6,
		Thickness:     0.5,
		MinRise:       -0.5,
		MaxRise:       1.0,
		MinGap:        1,
		MaxGap:        3,
		MinSize:       2,
		MaxSize:       4,
		MaxTurn:       math.Pi / 5,
		LateralJitter: 2,
		WinScale:      2,
		ClampToReach:  true,
		FloorDepth:    8,
	}
}

// Reach clamping: rise is capped at riseHeadroom of the apex, gaps
// shrink by clampShrink per attempt.
const (
	clampShrink   = 0.8
	clampAttempts = 16
	riseHeadroom  = 0.8
)

// GenerateChain builds a chain of platforms heading roughly down -Z.
// Random draws per platform happen in a fixed order so a seed always
// produces the same chain. The last platform is enlarged by WinScale
// before it is placed, and every gap is widened if needed so consecutive
// footprints never overlap. A safety floor is placed under the whole
// chain, FloorDepth below its lowest platform.
func GenerateChain(rng core.Rand, cp ChainParams, jump Jump) Layout {
	count := max(cp.Count, 1)
	th := cp.Thickness

	first := platform(0, 0, 0, cp.FirstSize, cp.FirstSize, th)
	plats := []core.Box{first}

	prev := first
	for i := 1; i < count; i++ {
		dy := core.Lerp(cp.MinRise, cp.MaxRise, rng.Float64())
		gap := core.Lerp(cp.MinGap, cp.MaxGap, rng.Float64())
		ang := (rng.Float64() - 0.5) * cp.MaxTurn * 2
		jit := (rng.Float64() - 0.5) * cp.LateralJitter
		w := core.Lerp(cp.MinSize, cp.MaxSize, rng.Float64())
		d := core.Lerp(cp.MinSize, cp.MaxSize, rng.Float64())

		if i == count-1 {
			w *= cp.WinScale
			d *= cp.WinScale
		}
		if cp.ClampToReach {
			dy = math.Min(dy, jump.MaxRise()*riseHeadroom)
		}

		sin, cos := math.Sincos(ang)
		place := func(gap float64) core.Box {
			step := prev.Half.Z() + gap + d/2
			x := prev.Center.X() + sin*step + jit
			z := prev.Center.Z() - cos*step
			return platform(x, prev.Top()+dy, z, w, d, th)
		}

		minGap := separatingGap(prev.Half.Z()+d/2, cos)
		gap = math.Max(gap, minGap)
		next := place(gap)
		if cp.ClampToReach {
			for n := 0; n < clampAttempts && !HopReachable(prev, next, jump); n++ {
				gap = math.Max(gap*clampShrink, minGap)
				next = place(gap)
			}
			if !HopReachable(prev, next, jump) {
				next = place(minGap)
			}
		}

		plats = append(plats, next)
		prev = next
	}

	placements := make([]Placement, 0, len(plats)+1)
	for i, b := range plats {
		tag := world.TagGround
		if i == len(plats)-1 && count > 1 {
			tag = world.TagWin
		}
		placements = append(placements, Placement{Box: b, Tag: tag})
	}
	placements = append(placements, Placement{Box: safetyFloor(plats, cp.FloorDepth), Tag: world.TagFloor})

	return Layout{
		Placements: placements,
		Spawn:      mgl64.Vec3{0, 1, 0},
	}
}

// separatingGap returns the smallest heading gap that keeps two
// footprints apart along z when the heading is turned by an angle with
// cosine cos. reach is the sum of the two half depths.
func separatingGap(reach, cos float64) float64 {
	if cos <= 0 {
		return 0
	}
	return math.Max(reach/cos-reach, 0)
}

// safetyFloor covers the xz extent of boxes with margin, depth below the
// lowest top.
func safetyFloor(boxes []core.Box, depth float64) core.Box {
	const margin = 20.0
	lo, hi := boxes[0].Min(), boxes[0].Max()
	minTop := boxes[0].Top()
	for _, b := range boxes[1:] {
		bmin, bmax := b.Min(), b.Max()
		lo = mgl64.Vec3{math.Min(lo.X(), bmin.X()), 0, math.Min(lo.Z(), bmin.Z())}
		hi = mgl64.Vec3{math.Max(hi.X(), bmax.X()), 0, math.Max(hi.Z(), bmax.Z())}
		minTop = math.Min(minTop, b.Top())
	}
	w := hi.X() - lo.X() + 2*margin
	d := hi.Z() - lo.Z() + 2*margin
	cx := (lo.X() + hi.X()) / 2
	cz := (lo.Z() + hi.Z()) / 2
	return platform(cx, minTop-depth, cz, w, d, 1)
}
