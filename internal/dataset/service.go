// Package dataset owns the active record batch and its view state:
// the free-text query and the active tag selection. All mutation goes
// through Service setters; the derived projection is recomputed in
// full after every change and pushed to the view sync.
package dataset

import (
	"log/slog"
	"sort"
	"sync"

	"centermap/internal/center"
	"centermap/internal/geojson"
	"centermap/internal/metrics"
	"centermap/internal/view"
)

// Derived is a consistent snapshot of everything the map surface
// needs: the projection, the framing viewport, the tag universe, and
// the current filter state.
type Derived struct {
	Projection geojson.FeatureCollection `json:"projection"`
	Viewport   view.Viewport             `json:"viewport"`
	Tags       []string                  `json:"tags"`
	ActiveTags []string                  `json:"activeTags"`
	Query      string                    `json:"query"`
	Total      int                       `json:"total"`
	Visible    int                       `json:"visible"`
}

// Service is the single owner of the current batch. Mutation is
// serialized behind a mutex; readers get copies.
type Service struct {
	mu      sync.RWMutex
	centers []center.Center
	query   string
	active  map[string]struct{}

	jurisdiction center.Bounds
	padding      int
	sync         *view.Sync
	history      *historyRing
}

// New creates an empty service framed by the jurisdiction bound.
func New(jurisdiction center.Bounds, padding int) *Service {
	return &Service{
		active:       make(map[string]struct{}),
		jurisdiction: jurisdiction,
		padding:      padding,
		sync:         view.NewSync(jurisdiction, padding),
		history:      newHistoryRing(historyCap),
	}
}

// ViewSync exposes the sync so a rendering surface can attach.
func (s *Service) ViewSync() *view.Sync {
	return s.sync
}

// Jurisdiction returns the configured bound, used as the default
// validation bound for admin-supplied data.
func (s *Service) Jurisdiction() center.Bounds {
	return s.jurisdiction
}

// Replace swaps in a new batch wholesale. Callers must have validated
// the batch already; Replace never rejects. Query and tag selection
// survive the swap.
func (s *Service) Replace(centers []center.Center) {
	s.mu.Lock()
	s.centers = append([]center.Center(nil), centers...)
	s.mu.Unlock()

	slog.Info("batch replaced", "centers", len(centers))
	metrics.ActiveCenters.Set(float64(len(centers)))
	s.republish()
}

// SetQuery updates the free-text query and recomputes.
func (s *Service) SetQuery(q string) {
	s.mu.Lock()
	s.query = q
	s.mu.Unlock()
	s.republish()
}

// SetTags replaces the active tag selection.
func (s *Service) SetTags(tags []string) {
	s.mu.Lock()
	s.active = make(map[string]struct{}, len(tags))
	for _, t := range tags {
		if tag := center.NormalizeTag(t); tag != "" {
			s.active[tag] = struct{}{}
		}
	}
	s.mu.Unlock()
	s.republish()
}

// ToggleTag flips one tag and reports whether it is now active.
func (s *Service) ToggleTag(tag string) bool {
	key := center.NormalizeTag(tag)
	s.mu.Lock()
	var nowActive bool
	if _, ok := s.active[key]; ok {
		delete(s.active, key)
	} else if key != "" {
		s.active[key] = struct{}{}
		nowActive = true
	}
	s.mu.Unlock()
	s.republish()
	return nowActive
}

// ClearTags deactivates every tag.
func (s *Service) ClearTags() {
	s.mu.Lock()
	s.active = make(map[string]struct{})
	s.mu.Unlock()
	s.republish()
}

// Centers returns a copy of the active batch in input order.
func (s *Service) Centers() []center.Center {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]center.Center(nil), s.centers...)
}

// Derived recomputes the projection from the current state. The
// computation is full, not incremental; the dataset is small by
// design.
func (s *Service) Derived() Derived {
	s.mu.RLock()
	centers := s.centers
	query := s.query
	active := make(map[string]struct{}, len(s.active))
	for t := range s.active {
		active[t] = struct{}{}
	}
	s.mu.RUnlock()

	visible := Filter(centers, query, active)
	projection := Project(visible)

	activeTags := make([]string, 0, len(active))
	for t := range active {
		activeTags = append(activeTags, t)
	}
	sort.Strings(activeTags)

	metrics.VisibleCenters.Set(float64(len(visible)))

	return Derived{
		Projection: projection,
		Viewport:   view.Frame(projection, s.jurisdiction, s.padding),
		Tags:       TagUniverse(centers),
		ActiveTags: activeTags,
		Query:      query,
		Total:      len(centers),
		Visible:    len(visible),
	}
}

// republish recomputes the projection and pushes it at the attached
// surface, if any.
func (s *Service) republish() {
	s.sync.Push(s.Derived().Projection)
}
