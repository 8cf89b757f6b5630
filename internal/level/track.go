package level

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
	"github.com/vovakirdan/arcade3d/internal/world"
)

// TrackParams sizes the runner's ground segments and obstacles.
type TrackParams struct {
	SegmentLength   float64
	Width           float64
	GroundThickness float64
	MaxActive       int // Segments kept alive at once

	Lanes          []float64 // Obstacle lane x-offsets
	ObstacleChance float64   // Probability a new segment carries an obstacle
	ObstacleSize   float64   // Obstacle cube edge
	ObstacleSpread float64   // Fraction of the segment length obstacles spread over
}

// DefaultTrackParams returns the three-lane runner track.
func DefaultTrackParams(lanes []float64) TrackParams {
	return TrackParams{
		SegmentLength:   50,
		Width:           11,
		GroundThickness: 0.1,
		MaxActive:       5,
		Lanes:           lanes,
		ObstacleChance:  0.3,
		ObstacleSize:    1.5,
		ObstacleSpread:  0.8,
	}
}

// Segment is one live stretch of ground, optionally with an obstacle.
type Segment struct {
	Index    int     // Sequence number since Reset
	Z        float64 // Center z
	Tone     int     // Alternates 0/1 for rendering
	Ground   *world.Collider
	Obstacle *world.Collider // nil when the segment is clear
}

// Near returns the z of the segment edge closest to the start.
func (s Segment) Near(length float64) float64 { return s.Z + length/2 }

// Far returns the z of the segment edge further down the track.
func (s Segment) Far(length float64) float64 { return s.Z - length/2 }

// Track keeps a bounded window of contiguous ground segments ahead of
// the player, registering and removing their colliders as it goes.
type Track struct {
	params   TrackParams
	world    *world.Registry
	rng      core.Rand
	segments []Segment
	next     int     // Index of the next segment to create
	nextZ    float64 // Center z of the next segment to create
}

// NewTrack creates an empty track bound to a registry and random source.
func NewTrack(params TrackParams, w *world.Registry, rng core.Rand) *Track {
	return &Track{params: params, world: w, rng: rng}
}

// Params returns the track's sizing.
func (t *Track) Params() TrackParams { return t.params }

// Reset removes every live segment and lays MaxActive fresh segments
// starting at startZ and extending down -Z.
func (t *Track) Reset(startZ float64) {
	for _, s := range t.segments {
		t.retire(s)
	}
	t.segments = t.segments[:0]
	t.next = 0
	t.nextZ = startZ - t.params.SegmentLength/2
	for range t.params.MaxActive {
		t.push()
	}
}

// Update retires segments that fell more than one segment length behind
// the camera, then appends until the window is full and its far edge
// lies at least one segment length ahead of the player.
func (t *Track) Update(playerZ, cameraZ float64) {
	L := t.params.SegmentLength

	keep := t.segments[:0]
	for _, s := range t.segments {
		if s.Z > cameraZ+L {
			t.retire(s)
			continue
		}
		keep = append(keep, s)
	}
	t.segments = keep

	for len(t.segments) < t.params.MaxActive || t.frontFar() > playerZ-L {
		t.push()
	}
}

// Segments returns the live segments, nearest first.
func (t *Track) Segments() []Segment { return t.segments }

// Len returns the number of live segments.
func (t *Track) Len() int { return len(t.segments) }

// Created returns how many segments were made since Reset.
func (t *Track) Created() int { return t.next }

func (t *Track) frontFar() float64 {
	if len(t.segments) == 0 {
		return t.nextZ + t.params.SegmentLength
	}
	return t.segments[len(t.segments)-1].Far(t.params.SegmentLength)
}

// push creates the next contiguous segment and rolls its obstacle.
// The very first segment after Reset never carries one.
func (t *Track) push() {
	p := t.params
	center := mgl64.Vec3{0, -p.GroundThickness / 2, t.nextZ}
	seg := Segment{
		Index:  t.next,
		Z:      t.nextZ,
		Tone:   t.next % 2,
		Ground: t.world.Add(core.NewBox(center, p.Width, p.GroundThickness, p.SegmentLength), world.TagGround),
	}

	if seg.Index > 0 && len(p.Lanes) > 0 && t.rng.Float64() < p.ObstacleChance {
		lane := min(int(t.rng.Float64()*float64(len(p.Lanes))), len(p.Lanes)-1)
		z := seg.Z + (t.rng.Float64()-0.5)*p.SegmentLength*p.ObstacleSpread
		box := core.NewBox(mgl64.Vec3{p.Lanes[lane], p.ObstacleSize / 2, z}, p.ObstacleSize, p.ObstacleSize, p.ObstacleSize)
		seg.Obstacle = t.world.Add(box, world.TagObstacle)
	}

	t.segments = append(t.segments, seg)
	t.next++
	t.nextZ -= p.SegmentLength
}

func (t *Track) retire(s Segment) {
	t.world.Remove(s.Ground.ID)
	if s.Obstacle != nil {
		t.world.Remove(s.Obstacle.ID)
	}
}

// SetObstacleChance changes the obstacle probability for segments
// created from now on.
func (t *Track) SetObstacleChance(p float64) {
	t.params.ObstacleChance = p
}
