// Package world holds the collider registry: the flat, ordered set of
// axis-aligned boxes that platforms, ground segments and obstacles occupy.
package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/vovakirdan/arcade3d/internal/core"
)

// Tag labels a collider with its gameplay role.
type Tag string

const (
	TagNone     Tag = ""
	TagGround   Tag = "ground"
	TagFloor    Tag = "floor"
	TagCeiling  Tag = "ceiling"
	TagObstacle Tag = "obstacle"
	TagWin      Tag = "win"
)

// ColliderID identifies a collider for the lifetime of a registry.
type ColliderID uint64

// Collider is an immutable axis-aligned box owned by a Registry.
type Collider struct {
	ID  ColliderID
	Box core.Box
	Tag Tag
}

// Hit is the nearest intersection returned by a ray cast.
// Collider is a reference into the registry, not a copy it owns.
type Hit struct {
	Distance float64
	Point    mgl64.Vec3
	Collider *Collider
}

// Registry is an ordered list of colliders. It is owned by a single game
// session and is not safe for concurrent use.
type Registry struct {
	colliders []*Collider
	nextID    ColliderID
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		colliders: make([]*Collider, 0, 16),
		nextID:    1,
	}
}

// Add inserts a new collider at the end of the list.
func (r *Registry) Add(box core.Box, tag Tag) *Collider {
	c := &Collider{ID: r.nextID, Box: box, Tag: tag}
	r.nextID++
	r.colliders = append(r.colliders, c)
	return c
}

// Remove deletes the collider with the given ID, preserving order.
// Returns false if no such collider is present.
func (r *Registry) Remove(id ColliderID) bool {
	for i, c := range r.colliders {
		if c.ID == id {
			copy(r.colliders[i:], r.colliders[i+1:])
			r.colliders[len(r.colliders)-1] = nil
			r.colliders = r.colliders[:len(r.colliders)-1]
			return true
		}
	}
	return false
}

// Get returns the collider with the given ID if it is present.
func (r *Registry) Get(id ColliderID) (*Collider, bool) {
	for _, c := range r.colliders {
		if c.ID == id {
			return c, true
		}
	}
	return nil, false
}

// Colliders returns the present colliders in insertion order.
// The slice must not be modified by the caller.
func (r *Registry) Colliders() []*Collider {
	return r.colliders
}

// Len returns the number of present colliders.
func (r *Registry) Len() int {
	return len(r.colliders)
}

// Count returns how many present colliders carry tag.
func (r *Registry) Count(tag Tag) int {
	n := 0
	for _, c := range r.colliders {
		if c.Tag == tag {
			n++
		}
	}
	return n
}

// Clear removes every collider. IDs keep increasing across clears.
func (r *Registry) Clear() {
	for i := range r.colliders {
		r.colliders[i] = nil
	}
	r.colliders = r.colliders[:0]
}

// RayCast returns the nearest collider hit within maxDist.
// Pass math.Inf(1) for an unbounded ray.
func (r *Registry) RayCast(ray core.Ray, maxDist float64) (Hit, bool) {
	return r.RayCastFilter(ray, maxDist, nil)
}

// RayCastFilter is RayCast restricted to colliders accepted by keep.
// Ties on distance go to the earlier-inserted collider.
func (r *Registry) RayCastFilter(ray core.Ray, maxDist float64, keep func(*Collider) bool) (Hit, bool) {
	best := Hit{Distance: math.Inf(1)}
	found := false

	for _, c := range r.colliders {
		if keep != nil && !keep(c) {
			continue
		}
		dist, ok := ray.IntersectBox(c.Box)
		if !ok || dist > maxDist {
			continue
		}
		if dist < best.Distance {
			best = Hit{Distance: dist, Collider: c}
			found = true
		}
	}

	if found {
		best.Point = ray.At(best.Distance)
	}
	return best, found
}

// Overlapping returns every collider with the given tag whose box
// intersects box (inclusive). TagNone matches all colliders.
func (r *Registry) Overlapping(box core.Box, tag Tag) []*Collider {
	var result []*Collider
	for _, c := range r.colliders {
		if tag != TagNone && c.Tag != tag {
			continue
		}
		if box.Intersects(c.Box) {
			result = append(result, c)
		}
	}
	return result
}
