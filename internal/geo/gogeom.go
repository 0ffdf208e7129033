package geo

import (
	"github.com/pkg/errors"
	"github.com/twpayne/go-geom"
)

// ErrUnsupportedLayout is returned for go-geom values that carry a measure
// ordinate; coordinate tuples only hold lon, lat and altitude.
var ErrUnsupportedLayout = errors.New("geo: unsupported go-geom layout")

func layoutFor(dim int) geom.Layout {
	if dim == 3 {
		return geom.XYZ
	}
	return geom.XY
}

func toGeomCoords(s Sequence) []geom.Coord {
	out := make([]geom.Coord, len(s))
	for i, c := range s {
		out[i] = geom.Coord(c.clone())
	}
	return out
}

func ringCoords(rings ...*LinearRing) [][]geom.Coord {
	out := make([][]geom.Coord, len(rings))
	for i, r := range rings {
		out[i] = toGeomCoords(r.coords)
	}
	return out
}

func polygonCoords(p *Polygon) [][]geom.Coord {
	return ringCoords(append([]*LinearRing{p.exterior}, p.interiors...)...)
}

// ToGeom converts a geometry value into its go-geom counterpart.
func ToGeom(g Geometry) (geom.T, error) {
	switch g := g.(type) {
	case *Point:
		return geom.NewPoint(layoutFor(g.Dim())).SetCoords(geom.Coord(g.coord.clone()))
	case *LineString:
		return geom.NewLineString(layoutFor(g.Dim())).SetCoords(toGeomCoords(g.coords))
	case *LinearRing:
		return geom.NewLinearRing(layoutFor(g.Dim())).SetCoords(toGeomCoords(g.coords))
	case *Polygon:
		return geom.NewPolygon(layoutFor(g.Dim())).SetCoords(polygonCoords(g))
	case *MultiPoint:
		coords := make([]geom.Coord, len(g.points))
		for i, p := range g.points {
			coords[i] = geom.Coord(p.coord.clone())
		}
		return geom.NewMultiPoint(layoutFor(g.Dim())).SetCoords(coords)
	case *MultiLineString:
		coords := make([][]geom.Coord, len(g.lines))
		for i, l := range g.lines {
			coords[i] = toGeomCoords(l.coords)
		}
		return geom.NewMultiLineString(layoutFor(g.Dim())).SetCoords(coords)
	case *MultiPolygon:
		coords := make([][][]geom.Coord, len(g.polygons))
		for i, p := range g.polygons {
			coords[i] = polygonCoords(p)
		}
		return geom.NewMultiPolygon(layoutFor(g.Dim())).SetCoords(coords)
	case *GeometryCollection:
		gc := geom.NewGeometryCollection()
		for i, member := range g.geoms {
			t, err := ToGeom(member)
			if err != nil {
				return nil, errors.Wrapf(err, "collection member %d", i)
			}
			if err := gc.Push(t); err != nil {
				return nil, errors.Wrapf(err, "collection member %d", i)
			}
		}
		return gc, nil
	case nil:
		return nil, errors.New("geo: nil geometry")
	}

	return nil, errors.Errorf("geo: unsupported geometry %T", g)
}

func checkLayout(t geom.T) error {
	switch t.Layout() {
	case geom.XY, geom.XYZ:
		return nil
	case geom.NoLayout:
		if _, ok := t.(*geom.GeometryCollection); ok {
			return nil
		}
	}
	return errors.Wrapf(ErrUnsupportedLayout, "%T has layout %v", t, t.Layout())
}

func fromGeomCoords(coords []geom.Coord) Sequence {
	out := make(Sequence, len(coords))
	for i, c := range coords {
		out[i] = Coord(append([]float64(nil), c...))
	}
	return out
}

func fromGeomPolygon(p *geom.Polygon) (*Polygon, error) {
	if p.NumLinearRings() == 0 {
		return nil, errors.WithStack(ErrNilExterior)
	}
	rings := make([]*LinearRing, p.NumLinearRings())
	for i := range rings {
		r, err := NewLinearRing(fromGeomCoords(p.LinearRing(i).Coords()))
		if err != nil {
			return nil, errors.Wrapf(err, "ring %d", i)
		}
		rings[i] = r
	}
	return NewPolygon(rings[0], rings[1:]...)
}

// FromGeom converts a go-geom value into a validated geometry value.
func FromGeom(t geom.T) (Geometry, error) {
	if t == nil {
		return nil, errors.New("geo: nil go-geom value")
	}
	if err := checkLayout(t); err != nil {
		return nil, err
	}

	switch t := t.(type) {
	case *geom.Point:
		return NewPoint(Coord(append([]float64(nil), t.Coords()...)))
	case *geom.LineString:
		return NewLineString(fromGeomCoords(t.Coords()))
	case *geom.LinearRing:
		return NewLinearRing(fromGeomCoords(t.Coords()))
	case *geom.Polygon:
		return fromGeomPolygon(t)
	case *geom.MultiPoint:
		points := make([]*Point, t.NumPoints())
		for i := range points {
			p, err := NewPoint(Coord(append([]float64(nil), t.Point(i).Coords()...)))
			if err != nil {
				return nil, errors.Wrapf(err, "point %d", i)
			}
			points[i] = p
		}
		return NewMultiPoint(points...)
	case *geom.MultiLineString:
		lines := make([]*LineString, t.NumLineStrings())
		for i := range lines {
			l, err := NewLineString(fromGeomCoords(t.LineString(i).Coords()))
			if err != nil {
				return nil, errors.Wrapf(err, "line string %d", i)
			}
			lines[i] = l
		}
		return NewMultiLineString(lines...)
	case *geom.MultiPolygon:
		polygons := make([]*Polygon, t.NumPolygons())
		for i := range polygons {
			p, err := fromGeomPolygon(t.Polygon(i))
			if err != nil {
				return nil, errors.Wrapf(err, "polygon %d", i)
			}
			polygons[i] = p
		}
		return NewMultiPolygon(polygons...)
	case *geom.GeometryCollection:
		members := make([]Geometry, 0, t.NumGeoms())
		for i, member := range t.Geoms() {
			g, err := FromGeom(member)
			if err != nil {
				return nil, errors.Wrapf(err, "collection member %d", i)
			}
			members = append(members, g)
		}
		return NewGeometryCollection(members...)
	}

	return nil, errors.Errorf("geo: unsupported go-geom type %T", t)
}
