// Package view keeps the rendering surface in step with the current
// projection: wholesale data replacement plus viewport framing.
package view

import (
	"sync"

	"centermap/internal/center"
	"centermap/internal/geojson"
)

// DefaultPadding is the pixel padding used when fitting the viewport
// to feature coordinates.
const DefaultPadding = 48

// Viewport is the framing instruction sent alongside a projection.
type Viewport struct {
	BBox    geojson.BBox `json:"bbox"`
	Padding int          `json:"padding"`
}

// Frame computes the viewport for a projection: the bounding box of
// its features when it has any, otherwise the jurisdiction bound.
func Frame(fc geojson.FeatureCollection, jurisdiction center.Bounds, padding int) Viewport {
	if bbox, ok := fc.Bounds(); ok {
		return Viewport{BBox: bbox, Padding: padding}
	}
	return Viewport{
		BBox: geojson.BBox{
			West:  jurisdiction.West,
			South: jurisdiction.South,
			East:  jurisdiction.East,
			North: jurisdiction.North,
		},
		Padding: padding,
	}
}

// Surface is the rendering side of the pipeline. The embedded map page
// implements it over HTTP by reading /api/map; tests implement it
// directly.
type Surface interface {
	// SetData replaces the surface's backing feature set wholesale.
	SetData(fc geojson.FeatureCollection)
	// FitBounds frames the viewport.
	FitBounds(v Viewport)
}

// Sync pushes projections to a Surface. It tolerates having no surface
// attached (every push is then a no-op) and never fails on an empty
// projection.
type Sync struct {
	mu           sync.Mutex
	surface      Surface
	jurisdiction center.Bounds
	padding      int
	framed       bool
}

// NewSync returns a Sync that frames against the given jurisdiction
// bound. padding <= 0 selects DefaultPadding.
func NewSync(jurisdiction center.Bounds, padding int) *Sync {
	if padding <= 0 {
		padding = DefaultPadding
	}
	return &Sync{jurisdiction: jurisdiction, padding: padding}
}

// Attach connects the rendering surface. Projections pushed before
// Attach are dropped; the caller is expected to push again once the
// surface exists.
func (s *Sync) Attach(surface Surface) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surface = surface
	s.framed = false
}

// Push replaces the surface data with the projection and re-frames the
// viewport. The first push frames to the features when there are any,
// or to the jurisdiction bound when there are none; later pushes only
// re-frame when the projection is non-empty.
func (s *Sync) Push(fc geojson.FeatureCollection) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.surface == nil {
		return
	}

	s.surface.SetData(fc)

	_, hasCoords := fc.Bounds()
	if hasCoords || !s.framed {
		s.surface.FitBounds(Frame(fc, s.jurisdiction, s.padding))
		s.framed = true
	}
}
