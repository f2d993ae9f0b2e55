package center

import (
	"math"
	"strings"
	"testing"
)

func TestValidate_Valid(t *testing.T) {
	centers := []Center{
		{ID: "c1", Name: "A", Lat: 37.50, Lng: 127.05},
		{ID: "c2", Name: "B", Lat: 37.43, Lng: 127.20},
	}
	bounds := &Bounds{West: 126.98, South: 37.43, East: 127.20, North: 37.59}

	if err := Validate(centers, bounds); err != nil {
		t.Errorf("Validate() error = %v, want nil", err)
	}
}

func TestValidate_FirstViolationWins(t *testing.T) {
	centers := []Center{
		{ID: "", Name: "first bad", Lat: 37.5, Lng: 127.05},
		{ID: "c2", Name: "", Lat: 37.5, Lng: 127.05},
	}

	err := Validate(centers, nil)
	if err == nil {
		t.Fatal("Validate() error = nil, want id violation")
	}
	ve, ok := err.(*ValidationError)
	if !ok {
		t.Fatalf("error type = %T, want *ValidationError", err)
	}
	if ve.Index != 0 || ve.Field != "id" {
		t.Errorf("got violation %+v, want index 0 field id", ve)
	}
}

func TestValidate_OutOfBounds(t *testing.T) {
	centers := []Center{{ID: "c1", Name: "Test Center", Lat: 200, Lng: 127.05}}
	bounds := &Bounds{West: 126.98, South: 37.43, East: 127.20, North: 37.59}

	err := Validate(centers, bounds)
	if err == nil {
		t.Fatal("Validate() error = nil, want out-of-bounds error")
	}
	if !strings.Contains(err.Error(), "outside bounds") {
		t.Errorf("error %q does not mention bounds", err)
	}
	if !strings.Contains(err.Error(), "c1") {
		t.Errorf("error %q does not identify the record", err)
	}
}

func TestValidate_BoundsSkippedWhenNil(t *testing.T) {
	// lat 200 is geographically nonsense but finite; without a bound
	// the range check does not run.
	centers := []Center{{ID: "c1", Name: "A", Lat: 200, Lng: 127.05}}

	if err := Validate(centers, nil); err != nil {
		t.Errorf("Validate() error = %v, want nil without bounds", err)
	}
}

func TestValidate_NonFiniteCoords(t *testing.T) {
	tests := []struct {
		name   string
		center Center
		field  string
	}{
		{"nan lat", Center{ID: "c1", Name: "A", Lat: math.NaN(), Lng: 127.05}, "lat"},
		{"nan lng", Center{ID: "c1", Name: "A", Lat: 37.5, Lng: math.NaN()}, "lng"},
		{"inf lat", Center{ID: "c1", Name: "A", Lat: math.Inf(1), Lng: 127.05}, "lat"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate([]Center{tt.center}, nil)
			if err == nil {
				t.Fatal("Validate() error = nil, want non-finite error")
			}
			ve := err.(*ValidationError)
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestValidate_DoesNotMutateInput(t *testing.T) {
	centers := []Center{{ID: "c1", Name: "A", Lat: 37.5, Lng: 127.05, Tags: []string{"필기"}}}
	before := centers[0]

	_ = Validate(centers, &Bounds{West: 126.98, South: 37.43, East: 127.20, North: 37.59})

	if centers[0].ID != before.ID || centers[0].Tags[0] != before.Tags[0] {
		t.Error("Validate() mutated its input")
	}
}
