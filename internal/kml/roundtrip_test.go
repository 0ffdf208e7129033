package kml

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

func roundTrip(t *testing.T, g geo.Geometry, opts ...Option) Geometry {
	t.Helper()
	return roundTripAt(t, g, -1, opts...)
}

func roundTripAt(t *testing.T, g geo.Geometry, precision int, opts ...Option) Geometry {
	t.Helper()
	w, err := Create(g, opts...)
	require.NoError(t, err)

	el, err := w.Encode(precision, Normal)
	require.NoError(t, err)

	ns := w.Namespace()
	decoded, err := Decode(ns, parseElement(t, render(t, el)), true)
	require.NoError(t, err)
	return decoded
}

func TestRoundTrip(t *testing.T) {
	mp, err := geo.NewMultiPoint(point(t, 1, 2), point(t, -3.5, 4.25))
	require.NoError(t, err)
	mls, err := geo.NewMultiLineString(
		line(t, geo.Coord{0, 0, 1}, geo.Coord{1, 1, 2}),
		line(t, geo.Coord{2, 2, 3}, geo.Coord{3, 3, 4}, geo.Coord{4, 4, 5}),
	)
	require.NoError(t, err)
	mpoly, err := geo.NewMultiPolygon(
		polygon(t, square(t, 0, 0, 10), square(t, 1, 1, 2), square(t, 5, 5, 2)),
		polygon(t, square(t, 20, 20, 1)),
	)
	require.NoError(t, err)
	// Nested collections come back before simple members.
	gc, err := geo.NewGeometryCollection(mls, point(t, 0, 0, 0), polygon(t, square(t, 0, 0, 1)))
	require.NoError(t, err)
	mixed, err := geo.NewGeometryCollection(point(t, 7, 8), line(t, geo.Coord{0, 0}, geo.Coord{1, 1}))
	require.NoError(t, err)

	tests := []struct {
		name string
		g    geo.Geometry
	}{
		{"point 2d", point(t, 1.5, -2.25)},
		{"point 3d", point(t, 1.5, -2.25, 100)},
		{"line string", line(t, geo.Coord{0, 0}, geo.Coord{1, 1}, geo.Coord{2, 0})},
		{"linear ring", square(t, 0, 0, 1)},
		{"polygon", polygon(t, square(t, 0, 0, 10))},
		{"polygon with holes", polygon(t, square(t, 0, 0, 10), square(t, 1, 1, 2), square(t, 5, 5, 2))},
		{"multi point", mp},
		{"multi line string", mls},
		{"multi polygon", mpoly},
		{"geometry collection", gc},
		{"mixed collection", mixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded := roundTrip(t, tt.g)
			require.False(t, decoded.IsEmpty())
			assert.True(t, tt.g.Equal(decoded.Geometry()))
		})
	}
}

func TestRoundTripKeepsAttributes(t *testing.T) {
	decoded := roundTrip(t, line(t, geo.Coord{0, 0}, geo.Coord{1, 1}),
		WithID("l1"),
		WithTargetID("t1"),
		WithExtrude(true),
		WithTessellate(true),
		WithAltitudeMode(RelativeToGround),
		WithNamespace("kml"),
		WithNameSpaces(map[string]string{"kml": Namespace}),
	)

	assert.Equal(t, "l1", decoded.ID())
	assert.Equal(t, "t1", decoded.TargetID())
	assert.Equal(t, "kml", decoded.Namespace())

	h := decoded.Hints()
	require.False(t, h.IsZero())
	assert.True(t, *h.Extrude)
	assert.True(t, *h.Tessellate)
	assert.Equal(t, RelativeToGround, *h.AltitudeMode)
}

func TestRoundTripHomogeneousCollection(t *testing.T) {
	gc, err := geo.NewGeometryCollection(point(t, 1, 2), point(t, 3, 4))
	require.NoError(t, err)

	decoded := roundTrip(t, gc)
	mp, ok := decoded.Geometry().(*geo.MultiPoint)
	require.True(t, ok, "got %T", decoded.Geometry())
	assert.Len(t, mp.Points(), 2)
}

func TestRoundTripEmpty(t *testing.T) {
	for _, newWrapper := range []func() (Geometry, error){
		func() (Geometry, error) { return wrap(NewPoint()) },
		func() (Geometry, error) { return wrap(NewLineString()) },
		func() (Geometry, error) { return wrap(NewLinearRing()) },
		func() (Geometry, error) { return wrap(NewMultiGeometry()) },
	} {
		w, err := newWrapper()
		require.NoError(t, err)
		el, err := w.Encode(6, Normal)
		require.NoError(t, err)
		text := render(t, el)
		assert.Equal(t, "<"+w.TagName()+"/>", text)

		decoded, err := Decode("", parseElement(t, text), true)
		require.NoError(t, err)
		assert.True(t, decoded.IsEmpty())
	}
}

func TestRoundTripPrecision(t *testing.T) {
	decoded := roundTripAt(t, point(t, 1.23456, 2.98765), 2)
	assert.True(t, point(t, 1.23, 2.99).Equal(decoded.Geometry()), "got %v", decoded.Geometry())

	decoded = roundTripAt(t, line(t, geo.Coord{0.123456789, 1}, geo.Coord{2, 3.987654321}), 0)
	assert.True(t, line(t, geo.Coord{0, 1}, geo.Coord{2, 4}).Equal(decoded.Geometry()))
}

func TestRoundTripDropsEmptyMembers(t *testing.T) {
	empty, err := geo.NewMultiPoint()
	require.NoError(t, err)
	gc, err := geo.NewGeometryCollection(point(t, 1, 2), empty)
	require.NoError(t, err)

	// An empty member encodes as a bare <MultiGeometry/> and nothing is
	// left of it on decode, so the rest resolves to a MultiPoint.
	decoded := roundTrip(t, gc)
	mp, ok := decoded.Geometry().(*geo.MultiPoint)
	require.True(t, ok, "got %T", decoded.Geometry())
	require.Len(t, mp.Points(), 1)
	assert.True(t, point(t, 1, 2).Equal(mp.Points()[0]))

	decoded = roundTrip(t, empty)
	assert.True(t, decoded.IsEmpty())
}
