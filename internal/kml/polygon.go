package kml

import (
	"github.com/beevik/etree"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

// Polygon is the KML <Polygon> element.
type Polygon struct {
	polygon *geo.Polygon
	base
}

// NewPolygon builds a Polygon from WithGeometry. Raw coordinates are not
// accepted since a polygon is made of rings.
func NewPolygon(opts ...Option) (*Polygon, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	if s.hasCoords {
		return nil, ErrCoordinatesUnsupported
	}

	p := &Polygon{base: newBase(s)}
	if s.geometry != nil {
		g, ok := s.geometry.(*geo.Polygon)
		if !ok {
			return nil, &UnsupportedGeometryKindError{Kind: s.geometry.Kind()}
		}
		p.polygon = g
	}

	return p, nil
}

// TagName returns "Polygon".
func (p *Polygon) TagName() string { return "Polygon" }

// IsEmpty reports whether no geometry is set.
func (p *Polygon) IsEmpty() bool { return p.polygon == nil }

// Geometry returns the wrapped value, nil when empty.
func (p *Polygon) Geometry() geo.Geometry {
	if p.polygon == nil {
		return nil
	}
	return p.polygon
}

// ringElement encodes a boundary ring. Rings inside a polygon carry no
// hints of their own.
func (p *Polygon) ringElement(ring *geo.LinearRing, precision int, verbosity Verbosity) (*etree.Element, error) {
	r, err := NewLinearRing(
		WithGeometry(ring),
		WithNamespace(p.ns),
		WithNameSpaces(p.nameSpaces),
		nestedMember(),
	)
	if err != nil {
		return nil, err
	}
	return r.Encode(precision, verbosity)
}

// Encode renders the Polygon as a <Polygon> element.
func (p *Polygon) Encode(precision int, verbosity Verbosity) (*etree.Element, error) {
	el := p.element("Polygon", verbosity)
	if p.polygon == nil {
		return el, nil
	}

	outer, err := p.ringElement(p.polygon.Exterior(), precision, verbosity)
	if err != nil {
		return nil, err
	}
	el.CreateElement(qualify(p.ns, "outerBoundaryIs")).AddChild(outer)

	for _, hole := range p.polygon.Interiors() {
		inner, err := p.ringElement(hole, precision, verbosity)
		if err != nil {
			return nil, err
		}
		el.CreateElement(qualify(p.ns, "innerBoundaryIs")).AddChild(inner)
	}

	return el, nil
}

// DecodePolygon reads a <Polygon> element. Missing boundary structure is
// always fatal. A polygon whose exterior ring does not decode is returned
// empty; holes that do not decode are dropped.
func DecodePolygon(ns string, el *etree.Element, strict bool) (*Polygon, error) {
	b, err := decodeBase(ns, el, strict)
	if err != nil {
		return nil, err
	}
	p := &Polygon{base: b}

	outer := el.SelectElement(qualify(ns, "outerBoundaryIs"))
	if outer == nil {
		return nil, &GeometryParseError{Element: serialize(el), Missing: "outerBoundaryIs"}
	}
	outerRing := outer.SelectElement(qualify(ns, "LinearRing"))
	if outerRing == nil {
		return nil, &GeometryParseError{Element: serialize(el), Missing: "LinearRing in outerBoundaryIs"}
	}

	exterior, err := decodeLinearRing(ns, outerRing, strict, true)
	if err != nil {
		return nil, err
	}

	var holes []*geo.LinearRing
	for _, inner := range el.SelectElements(qualify(ns, "innerBoundaryIs")) {
		innerRing := inner.SelectElement(qualify(ns, "LinearRing"))
		if innerRing == nil {
			return nil, &GeometryParseError{Element: serialize(el), Missing: "LinearRing in innerBoundaryIs"}
		}
		hole, err := decodeLinearRing(ns, innerRing, strict, true)
		if err != nil {
			return nil, err
		}
		if hole.ring != nil {
			holes = append(holes, hole.ring)
		}
	}

	if exterior.ring == nil {
		return p, nil
	}

	g, err := geo.NewPolygon(exterior.ring, holes...)
	if err != nil {
		if err := handleInvalidGeometry(err, el, strict); err != nil {
			return nil, err
		}
		return p, nil
	}
	p.polygon = g

	return p, nil
}
