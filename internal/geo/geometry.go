package geo

import (
	"github.com/pkg/errors"
)

// Kind tags the concrete type of a Geometry.
type Kind int

// Geometry kinds.
const (
	KindUnknown Kind = iota
	KindPoint
	KindLineString
	KindLinearRing
	KindPolygon
	KindMultiPoint
	KindMultiLineString
	KindMultiPolygon
	KindGeometryCollection
)

var kindNames = map[Kind]string{
	KindPoint:              "Point",
	KindLineString:         "LineString",
	KindLinearRing:         "LinearRing",
	KindPolygon:            "Polygon",
	KindMultiPoint:         "MultiPoint",
	KindMultiLineString:    "MultiLineString",
	KindMultiPolygon:       "MultiPolygon",
	KindGeometryCollection: "GeometryCollection",
}

// String returns the kind name.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsMulti reports whether the kind is one of the four container kinds.
func (k Kind) IsMulti() bool {
	switch k {
	case KindMultiPoint, KindMultiLineString, KindMultiPolygon, KindGeometryCollection:
		return true
	}
	return false
}

// Geometry is implemented by every geometry value. Values are immutable
// once built; equality is structural.
type Geometry interface {
	Kind() Kind
	// Dim is 2 or 3 for simple kinds. Containers report the dimension of
	// their first member, or 0 when empty.
	Dim() int
	Equal(other Geometry) bool
}

// Collection is implemented by the four multi-geometry kinds.
type Collection interface {
	Geometry
	Geometries() []Geometry
}

// Point is a single coordinate tuple.
type Point struct {
	coord Coord
}

// NewPoint builds a Point from a 2D or 3D tuple.
func NewPoint(c Coord) (*Point, error) {
	if d := c.Dim(); d != 2 && d != 3 {
		return nil, errors.Wrapf(ErrInvalidDimension, "point has %d values", d)
	}
	return &Point{coord: c.clone()}, nil
}

// Kind returns KindPoint.
func (p *Point) Kind() Kind { return KindPoint }

// Dim returns the coordinate dimension.
func (p *Point) Dim() int { return p.coord.Dim() }

// Coord returns a copy of the point's tuple.
func (p *Point) Coord() Coord { return p.coord.clone() }

// Coords returns the point as a one-tuple sequence.
func (p *Point) Coords() Sequence { return Sequence{p.coord.clone()} }

// Equal reports whether other has the same kind and coordinates.
func (p *Point) Equal(other Geometry) bool {
	o, ok := other.(*Point)
	return ok && p.coord.Equal(o.coord)
}

// LineString is an open path of at least two tuples.
type LineString struct {
	coords Sequence
}

// NewLineString validates and copies coords.
func NewLineString(coords Sequence) (*LineString, error) {
	if _, err := coords.Dim(); err != nil {
		return nil, err
	}
	if len(coords) < 2 {
		return nil, errors.Wrapf(ErrTooFewPoints, "line string needs 2 points, got %d", len(coords))
	}
	return &LineString{coords: coords.Clone()}, nil
}

// Kind returns KindLineString.
func (l *LineString) Kind() Kind { return KindLineString }

// Dim returns the coordinate dimension.
func (l *LineString) Dim() int { return l.coords[0].Dim() }

// Coords returns a copy of the coordinates.
func (l *LineString) Coords() Sequence { return l.coords.Clone() }

// Equal reports whether other has the same kind and coordinates.
func (l *LineString) Equal(other Geometry) bool {
	o, ok := other.(*LineString)
	return ok && l.coords.Equal(o.coords)
}

// LinearRing is a closed path of at least four tuples.
type LinearRing struct {
	coords Sequence
}

// NewLinearRing validates that coords form a closed ring. Open rings are
// rejected, never closed implicitly.
func NewLinearRing(coords Sequence) (*LinearRing, error) {
	if _, err := coords.Dim(); err != nil {
		return nil, err
	}
	if len(coords) < 4 {
		return nil, errors.Wrapf(ErrTooFewPoints, "linear ring needs 4 points, got %d", len(coords))
	}
	if !coords[0].Equal(coords[len(coords)-1]) {
		return nil, errors.WithStack(ErrRingNotClosed)
	}
	return &LinearRing{coords: coords.Clone()}, nil
}

// Kind returns KindLinearRing.
func (r *LinearRing) Kind() Kind { return KindLinearRing }

// Dim returns the coordinate dimension.
func (r *LinearRing) Dim() int { return r.coords[0].Dim() }

// Coords returns a copy of the coordinates.
func (r *LinearRing) Coords() Sequence { return r.coords.Clone() }

// Equal reports whether other has the same kind and coordinates.
func (r *LinearRing) Equal(other Geometry) bool {
	o, ok := other.(*LinearRing)
	return ok && r.coords.Equal(o.coords)
}

// Polygon is an exterior ring with optional holes.
type Polygon struct {
	exterior  *LinearRing
	interiors []*LinearRing
}

// NewPolygon builds a polygon. All rings must share one dimension.
func NewPolygon(exterior *LinearRing, interiors ...*LinearRing) (*Polygon, error) {
	if exterior == nil {
		return nil, errors.WithStack(ErrNilExterior)
	}
	holes := make([]*LinearRing, 0, len(interiors))
	for i, hole := range interiors {
		if hole == nil {
			return nil, errors.Wrapf(ErrNilMember, "interior ring %d", i)
		}
		if hole.Dim() != exterior.Dim() {
			return nil, errors.Wrapf(ErrDimensionMismatch, "interior ring %d", i)
		}
		holes = append(holes, hole)
	}
	return &Polygon{exterior: exterior, interiors: holes}, nil
}

// Kind returns KindPolygon.
func (p *Polygon) Kind() Kind { return KindPolygon }

// Dim returns the coordinate dimension.
func (p *Polygon) Dim() int { return p.exterior.Dim() }

// Exterior returns the outer boundary.
func (p *Polygon) Exterior() *LinearRing { return p.exterior }

// Interiors returns the holes in order.
func (p *Polygon) Interiors() []*LinearRing {
	out := make([]*LinearRing, len(p.interiors))
	copy(out, p.interiors)
	return out
}

// Equal reports whether other has the same kind and coordinates.
func (p *Polygon) Equal(other Geometry) bool {
	o, ok := other.(*Polygon)
	if !ok || len(p.interiors) != len(o.interiors) || !p.exterior.Equal(o.exterior) {
		return false
	}
	for i := range p.interiors {
		if !p.interiors[i].Equal(o.interiors[i]) {
			return false
		}
	}
	return true
}
