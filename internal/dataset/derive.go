package dataset

// derive.go holds the pure recomputation layer: tag universe, filter
// pipeline, and the GeoJSON projection. Nothing here touches Service
// state; every function is a deterministic function of its arguments.

import (
	"sort"
	"strings"

	"centermap/internal/center"
	"centermap/internal/geojson"
)

// TagUniverse returns the union of every tag across all centers,
// normalized, de-duplicated, and sorted ascending. It feeds the
// selectable filter controls.
func TagUniverse(centers []center.Center) []string {
	seen := make(map[string]struct{})
	for _, c := range centers {
		for _, t := range c.Tags {
			if tag := center.NormalizeTag(t); tag != "" {
				seen[tag] = struct{}{}
			}
		}
	}
	tags := make([]string, 0, len(seen))
	for t := range seen {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// Filter applies the two-stage pipeline: a case-insensitive substring
// match of query against each center's search text, then an OR match
// over the active tag set. An empty query and an empty tag set keep
// everything.
func Filter(centers []center.Center, query string, active map[string]struct{}) []center.Center {
	out := make([]center.Center, 0, len(centers))

	q := center.FoldText(strings.TrimSpace(query))
	for _, c := range centers {
		if q != "" && !strings.Contains(center.FoldText(c.SearchText()), q) {
			continue
		}
		if len(active) > 0 && !matchesAny(c, active) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// matchesAny reports whether the center carries at least one active
// tag. Active keys are normalized by the Service setters.
func matchesAny(c center.Center, active map[string]struct{}) bool {
	for _, t := range c.Tags {
		if _, ok := active[center.NormalizeTag(t)]; ok {
			return true
		}
	}
	return false
}

// Project materializes the feature document for the given centers.
// Each feature carries the derived examType and the tag list flattened
// for display. Duplicate ids pass through untouched.
func Project(centers []center.Center) geojson.FeatureCollection {
	features := make([]geojson.Feature, 0, len(centers))
	for _, c := range centers {
		props := map[string]any{
			"name":     c.Name,
			"examType": string(center.Classify(c)),
			"tags":     strings.Join(c.Tags, ", "),
		}
		if c.Address != "" {
			props["address"] = c.Address
		}
		if c.Phone != "" {
			props["phone"] = c.Phone
		}
		if c.Hours != "" {
			props["hours"] = c.Hours
		}
		if c.Note != "" {
			props["note"] = c.Note
		}
		features = append(features, geojson.NewPoint(c.ID, c.Lng, c.Lat, props))
	}
	return geojson.NewCollection(features)
}
