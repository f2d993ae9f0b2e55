package center

import (
	"math"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		tags []string
		want ExamType
	}{
		{
			name: "practical tag only",
			tags: []string{"실기(작업)"},
			want: ExamPractical,
		},
		{
			name: "written tag only",
			tags: []string{"필기"},
			want: ExamWritten,
		},
		{
			name: "both tags classify as practical",
			tags: []string{"필기", "실기(작업)"},
			want: ExamPractical,
		},
		{
			name: "both tags in reverse order still practical",
			tags: []string{"실기(작업)", "필기"},
			want: ExamPractical,
		},
		{
			name: "no marker tags",
			tags: []string{"주차가능", "주말운영"},
			want: ExamOther,
		},
		{
			name: "no tags at all",
			tags: nil,
			want: ExamOther,
		},
		{
			name: "marker tag with surrounding whitespace",
			tags: []string{" 필기 "},
			want: ExamWritten,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(Center{ID: "c1", Name: "n", Tags: tt.tags})
			if got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasTag_NormalizedComparison(t *testing.T) {
	// Decomposed Hangul (NFD) must match the composed form.
	c := Center{Tags: []string{"필기"}} // composed
	if !c.HasTag("필기") {
		t.Error("composed tag did not match itself")
	}
	decomposed := string([]rune{0x1111, 0x1175, 0x11AF, 0x1100, 0x1175}) // jamo NFD form
	if !c.HasTag(decomposed) {
		t.Error("decomposed form did not match composed tag")
	}
}

func TestSearchText(t *testing.T) {
	c := Center{
		Name:    "Test Center",
		Address: "성남시 수정구",
		Note:    "주차 가능",
		Tags:    []string{"필기", "실기(작업)"},
	}
	got := c.SearchText()
	want := "Test Center 성남시 수정구 주차 가능 필기 실기(작업)"
	if got != want {
		t.Errorf("SearchText() = %q, want %q", got, want)
	}
}

func TestBoundsContains(t *testing.T) {
	b := Bounds{West: 126.98, South: 37.43, East: 127.20, North: 37.59}

	tests := []struct {
		name     string
		lat, lng float64
		want     bool
	}{
		{"inside", 37.50, 127.05, true},
		{"on south edge", 37.43, 127.05, true},
		{"on north edge", 37.59, 127.05, true},
		{"on west edge", 37.50, 126.98, true},
		{"on east edge", 37.50, 127.20, true},
		{"north of bounds", 37.60, 127.05, false},
		{"far out", 200, 127.05, false},
		{"nan lat", math.NaN(), 127.05, false},
		{"nan lng", 37.50, math.NaN(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Contains(tt.lat, tt.lng); got != tt.want {
				t.Errorf("Contains(%v, %v) = %v, want %v", tt.lat, tt.lng, got, tt.want)
			}
		})
	}
}
