// Package kml maps KML geometry elements to geometry values and back.
//
// Each wrapper (Point, LineString, LinearRing, Polygon, MultiGeometry) holds
// a geo.Geometry plus the rendering hints extrude, tessellate and
// altitudeMode. Wrappers are built once, either from a geometry value or
// from markup, and are not mutated afterwards.
package kml

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

// Geometry is a KML geometry element.
type Geometry interface {
	// TagName is the element name without namespace prefix.
	TagName() string
	// Geometry returns the geometry value, or nil when the wrapper is empty.
	Geometry() geo.Geometry
	Hints() Hints
	IsEmpty() bool
	Namespace() string
	ID() string
	TargetID() string
	// Encode renders the wrapper as an element tree. A negative precision
	// selects DefaultPrecision.
	Encode(precision int, verbosity Verbosity) (*etree.Element, error)
}

type base struct {
	object
	hints  Hints
	nested bool
}

func newBase(s settings) base {
	return base{object: s.object, hints: s.hints.clone(), nested: s.nested}
}

// Hints returns a copy of the rendering hints.
func (b *base) Hints() Hints { return b.hints.clone() }

func (b *base) element(tag string, verbosity Verbosity) *etree.Element {
	el := b.newElement(tag, b.nested)
	if !b.nested {
		b.hints.encode(b.ns, el, verbosity)
	}
	return el
}

// decodeBase reads the identity attributes and hints shared by all wrappers.
func decodeBase(ns string, el *etree.Element, strict bool) (base, error) {
	hints, err := decodeHints(ns, el, strict)
	if err != nil {
		return base{}, err
	}
	return base{object: decodeObject(ns, el), hints: hints}, nil
}

// wrap drops the typed nil a failed constructor would otherwise leave in
// the interface.
func wrap[T Geometry](w T, err error) (Geometry, error) {
	if err != nil {
		return nil, err
	}
	return w, nil
}

// Point is the KML <Point> element.
type Point struct {
	point *geo.Point
	base
}

// NewPoint builds a Point from WithGeometry or WithCoordinates. Only the
// first coordinate tuple is used.
func NewPoint(opts ...Option) (*Point, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	p := &Point{base: newBase(s)}
	switch {
	case s.geometry != nil:
		g, ok := s.geometry.(*geo.Point)
		if !ok {
			return nil, &UnsupportedGeometryKindError{Kind: s.geometry.Kind()}
		}
		p.point = g
	case len(s.coords) > 0:
		if _, err := s.coords.Dim(); err != nil {
			return nil, errors.Wrap(err, "kml: point coordinates")
		}
		g, err := geo.NewPoint(s.coords[0])
		if err != nil {
			return nil, errors.Wrap(err, "kml: point coordinates")
		}
		p.point = g
	}

	return p, nil
}

// TagName returns "Point".
func (p *Point) TagName() string { return "Point" }

// IsEmpty reports whether no geometry is set.
func (p *Point) IsEmpty() bool { return p.point == nil }

// Geometry returns the wrapped value, nil when empty.
func (p *Point) Geometry() geo.Geometry {
	if p.point == nil {
		return nil
	}
	return p.point
}

// Encode renders the Point as a <Point> element.
func (p *Point) Encode(precision int, verbosity Verbosity) (*etree.Element, error) {
	el := p.element("Point", verbosity)
	if p.point == nil {
		return el, nil
	}
	if err := encodeCoordinates(p.ns, el, p.point.Coords(), precision); err != nil {
		return nil, err
	}
	return el, nil
}

// DecodePoint reads a <Point> element. Unparsable coordinates are fatal
// only when strict.
func DecodePoint(ns string, el *etree.Element, strict bool) (*Point, error) {
	b, err := decodeBase(ns, el, strict)
	if err != nil {
		return nil, err
	}

	p := &Point{base: b}
	coords, err := decodeCoordinates(ns, el, strict)
	if err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return p, nil
	}

	g, err := geo.NewPoint(coords[0])
	if err != nil {
		if err := handleInvalidGeometry(err, el, strict); err != nil {
			return nil, err
		}
		return p, nil
	}
	p.point = g

	return p, nil
}

// LineString is the KML <LineString> element.
type LineString struct {
	line *geo.LineString
	base
}

// NewLineString builds a LineString from WithGeometry or WithCoordinates.
func NewLineString(opts ...Option) (*LineString, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	l := &LineString{base: newBase(s)}
	switch {
	case s.geometry != nil:
		g, ok := s.geometry.(*geo.LineString)
		if !ok {
			return nil, &UnsupportedGeometryKindError{Kind: s.geometry.Kind()}
		}
		l.line = g
	case len(s.coords) > 0:
		g, err := geo.NewLineString(s.coords)
		if err != nil {
			return nil, errors.Wrap(err, "kml: line string coordinates")
		}
		l.line = g
	}

	return l, nil
}

// TagName returns "LineString".
func (l *LineString) TagName() string { return "LineString" }

// IsEmpty reports whether no geometry is set.
func (l *LineString) IsEmpty() bool { return l.line == nil }

// Geometry returns the wrapped value, nil when empty.
func (l *LineString) Geometry() geo.Geometry {
	if l.line == nil {
		return nil
	}
	return l.line
}

// Encode renders the LineString as a <LineString> element.
func (l *LineString) Encode(precision int, verbosity Verbosity) (*etree.Element, error) {
	el := l.element("LineString", verbosity)
	if l.line == nil {
		return el, nil
	}
	if err := encodeCoordinates(l.ns, el, l.line.Coords(), precision); err != nil {
		return nil, err
	}
	return el, nil
}

// DecodeLineString reads a <LineString> element. Fewer than two tuples
// make an invalid line, which is fatal only when strict.
func DecodeLineString(ns string, el *etree.Element, strict bool) (*LineString, error) {
	b, err := decodeBase(ns, el, strict)
	if err != nil {
		return nil, err
	}

	l := &LineString{base: b}
	coords, err := decodeCoordinates(ns, el, strict)
	if err != nil {
		return nil, err
	}
	if len(coords) == 0 {
		return l, nil
	}

	g, err := geo.NewLineString(coords)
	if err != nil {
		if err := handleInvalidGeometry(err, el, strict); err != nil {
			return nil, err
		}
		return l, nil
	}
	l.line = g

	return l, nil
}

// LinearRing is the KML <LinearRing> element.
type LinearRing struct {
	ring *geo.LinearRing
	base
}

// NewLinearRing builds a LinearRing from WithGeometry or WithCoordinates.
// Coordinates must already form a closed ring.
func NewLinearRing(opts ...Option) (*LinearRing, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}

	r := &LinearRing{base: newBase(s)}
	switch {
	case s.geometry != nil:
		g, ok := s.geometry.(*geo.LinearRing)
		if !ok {
			return nil, &UnsupportedGeometryKindError{Kind: s.geometry.Kind()}
		}
		r.ring = g
	case len(s.coords) > 0:
		g, err := geo.NewLinearRing(s.coords)
		if err != nil {
			return nil, errors.Wrap(err, "kml: linear ring coordinates")
		}
		r.ring = g
	}

	return r, nil
}

// TagName returns "LinearRing".
func (r *LinearRing) TagName() string { return "LinearRing" }

// IsEmpty reports whether no geometry is set.
func (r *LinearRing) IsEmpty() bool { return r.ring == nil }

// Geometry returns the wrapped value, nil when empty.
func (r *LinearRing) Geometry() geo.Geometry {
	if r.ring == nil {
		return nil
	}
	return r.ring
}

// Ring returns the ring value, or nil when empty.
func (r *LinearRing) Ring() *geo.LinearRing { return r.ring }

// Encode renders the LinearRing as a <LinearRing> element.
func (r *LinearRing) Encode(precision int, verbosity Verbosity) (*etree.Element, error) {
	el := r.element("LinearRing", verbosity)
	if r.ring == nil {
		return el, nil
	}
	if err := encodeCoordinates(r.ns, el, r.ring.Coords(), precision); err != nil {
		return nil, err
	}
	return el, nil
}

// DecodeLinearRing reads a standalone <LinearRing> element. An element
// without coordinates decodes to an empty ring.
func DecodeLinearRing(ns string, el *etree.Element, strict bool) (*LinearRing, error) {
	return decodeLinearRing(ns, el, strict, false)
}

// decodeLinearRing reads a ring. When required, as for polygon boundaries,
// a ring without coordinates is reported as invalid like any other broken
// ring.
func decodeLinearRing(ns string, el *etree.Element, strict, required bool) (*LinearRing, error) {
	b, err := decodeBase(ns, el, strict)
	if err != nil {
		return nil, err
	}

	r := &LinearRing{base: b}
	coordsEl := el.SelectElement(qualify(ns, "coordinates"))

	var coords geo.Sequence
	if coordsEl != nil {
		coords, err = Parse(coordsEl.Text())
		if err != nil {
			if err := handleInvalidGeometry(err, el, strict); err != nil {
				return nil, err
			}
			return r, nil
		}
	}
	if len(coords) == 0 && !required {
		return r, nil
	}

	g, err := geo.NewLinearRing(coords)
	if err != nil {
		if err := handleInvalidGeometry(err, el, strict); err != nil {
			return nil, err
		}
		return r, nil
	}
	r.ring = g

	return r, nil
}
