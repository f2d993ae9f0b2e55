// Package center defines the service-location record, its CSV codec,
// and batch validation. This package has no HTTP or UI dependencies
// and can be used by any frontend.
package center

import (
	"math"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Center is one service location: identity, coordinates, and
// descriptive metadata. Optional fields are empty strings when absent.
type Center struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Address string   `json:"address,omitempty"`
	Lat     float64  `json:"lat"`
	Lng     float64  `json:"lng"`
	Phone   string   `json:"phone,omitempty"`
	Hours   string   `json:"hours,omitempty"`
	Note    string   `json:"note,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// SearchText returns the single string free-text queries match
// against: name, address, note, and tags joined by spaces.
func (c Center) SearchText() string {
	parts := make([]string, 0, 3+len(c.Tags))
	parts = append(parts, c.Name, c.Address, c.Note)
	parts = append(parts, c.Tags...)
	return strings.Join(parts, " ")
}

// HasTag reports whether the center carries the given tag. Both sides
// are compared in normalized form so composed and decomposed Hangul
// spell the same tag.
func (c Center) HasTag(tag string) bool {
	want := NormalizeTag(tag)
	for _, t := range c.Tags {
		if NormalizeTag(t) == want {
			return true
		}
	}
	return false
}

// NormalizeTag trims surrounding whitespace and applies NFC so tag
// comparison is stable across input sources.
func NormalizeTag(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// FoldText normalizes text for case-insensitive substring matching.
func FoldText(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// ExamType is the three-way classification derived from tag
// membership.
type ExamType string

const (
	ExamPractical ExamType = "실기(작업)"
	ExamWritten   ExamType = "필기"
	ExamOther     ExamType = "기타"
)

// Classify derives the exam type for a center. The practical marker is
// checked before the written marker; a center carrying both is always
// practical. Centers with neither marker are ExamOther.
func Classify(c Center) ExamType {
	if c.HasTag(string(ExamPractical)) {
		return ExamPractical
	}
	if c.HasTag(string(ExamWritten)) {
		return ExamWritten
	}
	return ExamOther
}

// Bounds is a rectangular geographic region: west/east are longitudes,
// south/north are latitudes. Edges are inclusive.
type Bounds struct {
	West  float64 `json:"west"`
	South float64 `json:"south"`
	East  float64 `json:"east"`
	North float64 `json:"north"`
}

// Contains reports whether the coordinate lies inside the bounds,
// edges included. NaN coordinates are never contained.
func (b Bounds) Contains(lat, lng float64) bool {
	if math.IsNaN(lat) || math.IsNaN(lng) {
		return false
	}
	return lat >= b.South && lat <= b.North && lng >= b.West && lng <= b.East
}

// IsZero reports whether the bounds are the zero value, i.e. not
// configured.
func (b Bounds) IsZero() bool {
	return b == Bounds{}
}
