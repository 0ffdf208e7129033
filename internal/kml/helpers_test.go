package kml

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

func parseElement(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml))
	require.NotNil(t, doc.Root())
	return doc.Root()
}

func render(t *testing.T, el *etree.Element) string {
	t.Helper()
	doc := etree.NewDocument()
	doc.SetRoot(el)
	s, err := doc.WriteToString()
	require.NoError(t, err)
	return s
}

// captureLog redirects the global logger for the duration of the test.
func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf)
	t.Cleanup(func() { log.Logger = prev })
	return &buf
}

func point(t *testing.T, c ...float64) *geo.Point {
	t.Helper()
	p, err := geo.NewPoint(geo.Coord(c))
	require.NoError(t, err)
	return p
}

func line(t *testing.T, coords ...geo.Coord) *geo.LineString {
	t.Helper()
	l, err := geo.NewLineString(coords)
	require.NoError(t, err)
	return l
}

func ring(t *testing.T, coords ...geo.Coord) *geo.LinearRing {
	t.Helper()
	r, err := geo.NewLinearRing(coords)
	require.NoError(t, err)
	return r
}

func square(t *testing.T, x, y, size float64) *geo.LinearRing {
	t.Helper()
	return ring(t,
		geo.Coord{x, y},
		geo.Coord{x + size, y},
		geo.Coord{x + size, y + size},
		geo.Coord{x, y + size},
		geo.Coord{x, y},
	)
}

func polygon(t *testing.T, exterior *geo.LinearRing, holes ...*geo.LinearRing) *geo.Polygon {
	t.Helper()
	p, err := geo.NewPolygon(exterior, holes...)
	require.NoError(t, err)
	return p
}
