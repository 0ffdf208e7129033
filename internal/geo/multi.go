package geo

import (
	"github.com/pkg/errors"
)

// MultiPoint is an ordered set of points.
type MultiPoint struct {
	points []*Point
}

// NewMultiPoint builds a MultiPoint. Members keep their order.
func NewMultiPoint(points ...*Point) (*MultiPoint, error) {
	for i, p := range points {
		if p == nil {
			return nil, errors.Wrapf(ErrNilMember, "point %d", i)
		}
	}
	return &MultiPoint{points: append([]*Point(nil), points...)}, nil
}

// Kind returns KindMultiPoint.
func (m *MultiPoint) Kind() Kind { return KindMultiPoint }

// Dim returns the dimension of the first member, 0 when empty.
func (m *MultiPoint) Dim() int {
	if len(m.points) == 0 {
		return 0
	}
	return m.points[0].Dim()
}

// Points returns the members in order.
func (m *MultiPoint) Points() []*Point { return append([]*Point(nil), m.points...) }

// Geometries returns the members as generic geometries.
func (m *MultiPoint) Geometries() []Geometry {
	out := make([]Geometry, len(m.points))
	for i, p := range m.points {
		out[i] = p
	}
	return out
}

// Equal compares members pairwise in order.
func (m *MultiPoint) Equal(other Geometry) bool {
	o, ok := other.(*MultiPoint)
	return ok && membersEqual(m.Geometries(), o.Geometries())
}

// MultiLineString is an ordered set of line strings.
type MultiLineString struct {
	lines []*LineString
}

// NewMultiLineString builds a MultiLineString. Members keep their order.
func NewMultiLineString(lines ...*LineString) (*MultiLineString, error) {
	for i, l := range lines {
		if l == nil {
			return nil, errors.Wrapf(ErrNilMember, "line string %d", i)
		}
	}
	return &MultiLineString{lines: append([]*LineString(nil), lines...)}, nil
}

// Kind returns KindMultiLineString.
func (m *MultiLineString) Kind() Kind { return KindMultiLineString }

// Dim returns the dimension of the first member, 0 when empty.
func (m *MultiLineString) Dim() int {
	if len(m.lines) == 0 {
		return 0
	}
	return m.lines[0].Dim()
}

// LineStrings returns the members in order.
func (m *MultiLineString) LineStrings() []*LineString {
	return append([]*LineString(nil), m.lines...)
}

// Geometries returns the members as generic geometries.
func (m *MultiLineString) Geometries() []Geometry {
	out := make([]Geometry, len(m.lines))
	for i, l := range m.lines {
		out[i] = l
	}
	return out
}

// Equal compares members pairwise in order.
func (m *MultiLineString) Equal(other Geometry) bool {
	o, ok := other.(*MultiLineString)
	return ok && membersEqual(m.Geometries(), o.Geometries())
}

// MultiPolygon is an ordered set of polygons.
type MultiPolygon struct {
	polygons []*Polygon
}

// NewMultiPolygon builds a MultiPolygon. Members keep their order.
func NewMultiPolygon(polygons ...*Polygon) (*MultiPolygon, error) {
	for i, p := range polygons {
		if p == nil {
			return nil, errors.Wrapf(ErrNilMember, "polygon %d", i)
		}
	}
	return &MultiPolygon{polygons: append([]*Polygon(nil), polygons...)}, nil
}

// Kind returns KindMultiPolygon.
func (m *MultiPolygon) Kind() Kind { return KindMultiPolygon }

// Dim returns the dimension of the first member, 0 when empty.
func (m *MultiPolygon) Dim() int {
	if len(m.polygons) == 0 {
		return 0
	}
	return m.polygons[0].Dim()
}

// Polygons returns the members in order.
func (m *MultiPolygon) Polygons() []*Polygon { return append([]*Polygon(nil), m.polygons...) }

// Geometries returns the members as generic geometries.
func (m *MultiPolygon) Geometries() []Geometry {
	out := make([]Geometry, len(m.polygons))
	for i, p := range m.polygons {
		out[i] = p
	}
	return out
}

// Equal compares members pairwise in order.
func (m *MultiPolygon) Equal(other Geometry) bool {
	o, ok := other.(*MultiPolygon)
	return ok && membersEqual(m.Geometries(), o.Geometries())
}

// GeometryCollection is an ordered set of geometries of any kind,
// including nested collections.
type GeometryCollection struct {
	geoms []Geometry
}

// NewGeometryCollection builds a collection. Members keep their order.
func NewGeometryCollection(geoms ...Geometry) (*GeometryCollection, error) {
	for i, g := range geoms {
		if g == nil {
			return nil, errors.Wrapf(ErrNilMember, "geometry %d", i)
		}
	}
	return &GeometryCollection{geoms: append([]Geometry(nil), geoms...)}, nil
}

// Kind returns KindGeometryCollection.
func (c *GeometryCollection) Kind() Kind { return KindGeometryCollection }

// Dim returns the dimension of the first member, 0 when empty.
func (c *GeometryCollection) Dim() int {
	if len(c.geoms) == 0 {
		return 0
	}
	return c.geoms[0].Dim()
}

// Geometries returns the members as generic geometries.
func (c *GeometryCollection) Geometries() []Geometry { return append([]Geometry(nil), c.geoms...) }

// Equal compares members pairwise in order.
func (c *GeometryCollection) Equal(other Geometry) bool {
	o, ok := other.(*GeometryCollection)
	return ok && membersEqual(c.geoms, o.geoms)
}

func membersEqual(a, b []Geometry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
