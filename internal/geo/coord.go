// Package geo holds the typed geometry values that KML markup is mapped to.
package geo

import (
	"github.com/pkg/errors"
)

// Validation errors returned by the geometry constructors.
var (
	ErrInvalidDimension  = errors.New("geo: coordinate must have 2 or 3 values")
	ErrDimensionMismatch = errors.New("geo: coordinates mix 2D and 3D tuples")
	ErrTooFewPoints      = errors.New("geo: too few points")
	ErrRingNotClosed     = errors.New("geo: linear ring is not closed")
	ErrNilExterior       = errors.New("geo: polygon requires an exterior ring")
	ErrNilMember         = errors.New("geo: nil member geometry")
)

// Coord is a single coordinate tuple: lon, lat and an optional altitude.
type Coord []float64

// Dim returns the number of values in the tuple.
func (c Coord) Dim() int { return len(c) }

// Equal reports whether both tuples have the same arity and values.
func (c Coord) Equal(o Coord) bool {
	if len(c) != len(o) {
		return false
	}
	for i := range c {
		if c[i] != o[i] {
			return false
		}
	}
	return true
}

func (c Coord) clone() Coord {
	out := make(Coord, len(c))
	copy(out, c)
	return out
}

// Sequence is an ordered list of coordinate tuples.
type Sequence []Coord

// Dim returns the shared arity of all tuples in the sequence.
// An empty sequence has dimension 0.
func (s Sequence) Dim() (int, error) {
	if len(s) == 0 {
		return 0, nil
	}

	dim := s[0].Dim()
	if dim != 2 && dim != 3 {
		return 0, errors.Wrapf(ErrInvalidDimension, "tuple 0 has %d values", dim)
	}
	for i, c := range s[1:] {
		if c.Dim() != dim {
			return 0, errors.Wrapf(ErrDimensionMismatch, "tuple %d has %d values, expected %d", i+1, c.Dim(), dim)
		}
	}

	return dim, nil
}

// Equal reports whether both sequences hold equal tuples in the same order.
func (s Sequence) Equal(o Sequence) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Clone returns a deep copy of the sequence.
func (s Sequence) Clone() Sequence {
	if s == nil {
		return nil
	}
	out := make(Sequence, len(s))
	for i, c := range s {
		out[i] = c.clone()
	}
	return out
}
