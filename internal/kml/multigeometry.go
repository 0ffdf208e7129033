package kml

import (
	"github.com/beevik/etree"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

// MultiGeometry is the KML <MultiGeometry> element. It holds any of the
// four collection kinds.
type MultiGeometry struct {
	collection geo.Collection
	base
}

// NewMultiGeometry builds a MultiGeometry from WithGeometry holding a
// MultiPoint, MultiLineString, MultiPolygon or GeometryCollection.
func NewMultiGeometry(opts ...Option) (*MultiGeometry, error) {
	s, err := newSettings(opts)
	if err != nil {
		return nil, err
	}
	if s.hasCoords {
		return nil, ErrCoordinatesUnsupported
	}

	m := &MultiGeometry{base: newBase(s)}
	if s.geometry != nil {
		c, ok := s.geometry.(geo.Collection)
		if !ok || !c.Kind().IsMulti() {
			return nil, &UnsupportedGeometryKindError{Kind: s.geometry.Kind()}
		}
		m.collection = c
	}

	return m, nil
}

// TagName returns "MultiGeometry".
func (m *MultiGeometry) TagName() string { return "MultiGeometry" }

// IsEmpty reports whether no geometry is set.
func (m *MultiGeometry) IsEmpty() bool { return m.collection == nil }

// Geometry returns the wrapped value, nil when empty.
func (m *MultiGeometry) Geometry() geo.Geometry {
	if m.collection == nil {
		return nil
	}
	return m.collection
}

// Encode renders the geometry as a <MultiGeometry> element.
func (m *MultiGeometry) Encode(precision int, verbosity Verbosity) (*etree.Element, error) {
	el := m.element("MultiGeometry", verbosity)
	if m.collection == nil {
		return el, nil
	}

	for _, member := range m.collection.Geometries() {
		w, err := Create(member,
			WithNamespace(m.ns),
			WithNameSpaces(m.nameSpaces),
			nestedMember(),
		)
		if err != nil {
			return nil, err
		}
		child, err := w.Encode(precision, verbosity)
		if err != nil {
			return nil, err
		}
		el.AddChild(child)
	}

	return el, nil
}

// memberTags is the order in which MultiGeometry children are collected.
// Members are grouped by tag, so interleaved kinds come back reordered.
var memberTags = []string{"MultiGeometry", "Point", "LineString", "Polygon", "LinearRing"}

// DecodeMultiGeometry reads a <MultiGeometry> element and resolves its
// members to the narrowest collection kind.
func DecodeMultiGeometry(ns string, el *etree.Element, strict bool) (*MultiGeometry, error) {
	b, err := decodeBase(ns, el, strict)
	if err != nil {
		return nil, err
	}
	m := &MultiGeometry{base: b}

	var members []geo.Geometry
	for _, tag := range memberTags {
		for _, child := range el.SelectElements(qualify(ns, tag)) {
			w, err := decodeTag(tag, ns, child, strict)
			if err != nil {
				return nil, err
			}
			if g := w.Geometry(); g != nil {
				members = append(members, g)
			}
		}
	}

	if c, ok := ResolveCollection(members).(geo.Collection); ok {
		m.collection = c
	}

	return m, nil
}
