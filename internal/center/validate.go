package center

import (
	"fmt"
	"math"
)

// ValidationError names the first record and field that violated an
// invariant. The whole batch is rejected; partial acceptance is never
// allowed.
type ValidationError struct {
	Index   int    // zero-based position in the batch
	ID      string // offending record id, may be empty
	Name    string // offending record name, may be empty
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	who := e.ID
	if who == "" {
		who = e.Name
	}
	if who == "" {
		who = fmt.Sprintf("record %d", e.Index+1)
	}
	return fmt.Sprintf("%s: %s %s", who, e.Field, e.Message)
}

// Validate checks every center against the record invariants, in input
// order, and returns the first violation. A nil bounds skips the
// geographic range check; that is the trusted pre-published path.
// The input is never mutated.
func Validate(centers []Center, bounds *Bounds) error {
	for i, c := range centers {
		if c.ID == "" {
			return &ValidationError{Index: i, Name: c.Name, Field: "id", Message: "must not be empty"}
		}
		if c.Name == "" {
			return &ValidationError{Index: i, ID: c.ID, Field: "name", Message: "must not be empty"}
		}
		if !finite(c.Lat) {
			return &ValidationError{Index: i, ID: c.ID, Name: c.Name, Field: "lat", Message: "is not a finite number"}
		}
		if !finite(c.Lng) {
			return &ValidationError{Index: i, ID: c.ID, Name: c.Name, Field: "lng", Message: "is not a finite number"}
		}
		if bounds != nil && !bounds.Contains(c.Lat, c.Lng) {
			return &ValidationError{
				Index: i, ID: c.ID, Name: c.Name, Field: "lat/lng",
				Message: fmt.Sprintf("(%v, %v) is outside bounds [%v..%v, %v..%v]",
					c.Lat, c.Lng, bounds.South, bounds.North, bounds.West, bounds.East),
			}
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
