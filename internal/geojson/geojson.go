// Package geojson holds the minimal GeoJSON document types the map
// surface consumes. Coordinates are [lng, lat] per the standard.
package geojson

// FeatureCollection is the top-level geographic-features document.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one point of interest with its display properties.
type Feature struct {
	Type       string         `json:"type"`
	ID         string         `json:"id,omitempty"`
	Geometry   Geometry       `json:"geometry"`
	Properties map[string]any `json:"properties"`
}

// Geometry is a point geometry.
type Geometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewCollection wraps features in a FeatureCollection. Features is
// never nil so the document always serializes with a "features" array.
func NewCollection(features []Feature) FeatureCollection {
	if features == nil {
		features = []Feature{}
	}
	return FeatureCollection{Type: "FeatureCollection", Features: features}
}

// NewPoint builds a point feature at the given coordinate.
func NewPoint(id string, lng, lat float64, props map[string]any) Feature {
	return Feature{
		Type:       "Feature",
		ID:         id,
		Geometry:   Geometry{Type: "Point", Coordinates: []float64{lng, lat}},
		Properties: props,
	}
}

// BBox is a bounding box in west, south, east, north order.
type BBox struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Bounds returns the bounding box of all feature coordinates. ok is
// false for a collection with no point coordinates.
func (fc FeatureCollection) Bounds() (bbox BBox, ok bool) {
	for _, f := range fc.Features {
		if len(f.Geometry.Coordinates) < 2 {
			continue
		}
		lng, lat := f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
		if !ok {
			bbox = BBox{West: lng, South: lat, East: lng, North: lat}
			ok = true
			continue
		}
		if lng < bbox.West {
			bbox.West = lng
		}
		if lng > bbox.East {
			bbox.East = lng
		}
		if lat < bbox.South {
			bbox.South = lat
		}
		if lat > bbox.North {
			bbox.North = lat
		}
	}
	return bbox, ok
}
