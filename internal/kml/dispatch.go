package kml

import (
	"github.com/beevik/etree"
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

// ResolveCollection wraps members in the narrowest collection: MultiPoint,
// MultiLineString or MultiPolygon when all members share that simple kind,
// a GeometryCollection otherwise. It returns nil for no members.
func ResolveCollection(members []geo.Geometry) geo.Geometry {
	geoms := make([]geo.Geometry, 0, len(members))
	kinds := make(map[geo.Kind]struct{})
	for _, g := range members {
		if g == nil {
			continue
		}
		geoms = append(geoms, g)
		kinds[g.Kind()] = struct{}{}
	}
	if len(geoms) == 0 {
		return nil
	}

	if len(kinds) == 1 {
		switch geoms[0].Kind() {
		case geo.KindPoint:
			points := make([]*geo.Point, len(geoms))
			for i, g := range geoms {
				points[i] = g.(*geo.Point)
			}
			if mp, err := geo.NewMultiPoint(points...); err == nil {
				return mp
			}
		case geo.KindLineString:
			lines := make([]*geo.LineString, len(geoms))
			for i, g := range geoms {
				lines[i] = g.(*geo.LineString)
			}
			if ml, err := geo.NewMultiLineString(lines...); err == nil {
				return ml
			}
		case geo.KindPolygon:
			polygons := make([]*geo.Polygon, len(geoms))
			for i, g := range geoms {
				polygons[i] = g.(*geo.Polygon)
			}
			if mp, err := geo.NewMultiPolygon(polygons...); err == nil {
				return mp
			}
		}
	}

	gc, err := geo.NewGeometryCollection(geoms...)
	if err != nil {
		return nil
	}
	return gc
}

type constructor func(opts ...Option) (Geometry, error)

// wrappers maps each geometry kind to the element that encodes it.
var wrappers = map[geo.Kind]constructor{
	geo.KindPoint:              func(opts ...Option) (Geometry, error) { return wrap(NewPoint(opts...)) },
	geo.KindLineString:         func(opts ...Option) (Geometry, error) { return wrap(NewLineString(opts...)) },
	geo.KindLinearRing:         func(opts ...Option) (Geometry, error) { return wrap(NewLinearRing(opts...)) },
	geo.KindPolygon:            func(opts ...Option) (Geometry, error) { return wrap(NewPolygon(opts...)) },
	geo.KindMultiPoint:         func(opts ...Option) (Geometry, error) { return wrap(NewMultiGeometry(opts...)) },
	geo.KindMultiLineString:    func(opts ...Option) (Geometry, error) { return wrap(NewMultiGeometry(opts...)) },
	geo.KindMultiPolygon:       func(opts ...Option) (Geometry, error) { return wrap(NewMultiGeometry(opts...)) },
	geo.KindGeometryCollection: func(opts ...Option) (Geometry, error) { return wrap(NewMultiGeometry(opts...)) },
}

// WrapperTag returns the element name used to encode geometries of kind.
func WrapperTag(kind geo.Kind) (string, error) {
	switch {
	case kind.IsMulti():
		return "MultiGeometry", nil
	case wrappers[kind] != nil:
		return kind.String(), nil
	}
	return "", &UnsupportedGeometryKindError{Kind: kind}
}

// Create returns the wrapper matching g's kind. Options other than
// WithGeometry and WithCoordinates set namespace, identity and hints.
func Create(g geo.Geometry, opts ...Option) (Geometry, error) {
	if g == nil {
		return nil, errors.New("kml: nil geometry")
	}
	newWrapper, ok := wrappers[g.Kind()]
	if !ok {
		return nil, &UnsupportedGeometryKindError{Kind: g.Kind()}
	}
	return newWrapper(append([]Option{WithGeometry(g)}, opts...)...)
}

// CreateFromGeom converts a go-geom value and wraps it like Create.
func CreateFromGeom(t geom.T, opts ...Option) (Geometry, error) {
	g, err := geo.FromGeom(t)
	if err != nil {
		return nil, errors.Wrap(err, "kml: convert go-geom value")
	}
	return Create(g, opts...)
}

// IsGeometryTag reports whether tag names a KML geometry element.
func IsGeometryTag(tag string) bool {
	switch tag {
	case "Point", "LineString", "LinearRing", "Polygon", "MultiGeometry":
		return true
	}
	return false
}

func decodeTag(tag, ns string, el *etree.Element, strict bool) (Geometry, error) {
	switch tag {
	case "Point":
		return wrap(DecodePoint(ns, el, strict))
	case "LineString":
		return wrap(DecodeLineString(ns, el, strict))
	case "LinearRing":
		return wrap(DecodeLinearRing(ns, el, strict))
	case "Polygon":
		return wrap(DecodePolygon(ns, el, strict))
	case "MultiGeometry":
		return wrap(DecodeMultiGeometry(ns, el, strict))
	}
	return nil, &UnsupportedGeometryKindError{Tag: tag}
}

// Decode reads any KML geometry element, choosing the decoder from the
// element's local name.
func Decode(ns string, el *etree.Element, strict bool) (Geometry, error) {
	if el == nil {
		return nil, errors.New("kml: nil element")
	}
	return decodeTag(el.Tag, ns, el, strict)
}
