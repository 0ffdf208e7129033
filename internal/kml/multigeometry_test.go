package kml

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/woozymasta/kmlgeom/internal/geo"
)

func TestMultiGeometryEncode(t *testing.T) {
	mp, err := geo.NewMultiPoint(point(t, 1, 2), point(t, 3, 4))
	require.NoError(t, err)

	m, err := NewMultiGeometry(
		WithGeometry(mp),
		WithID("mp"),
		WithTessellate(true),
		WithNamespace("kml"),
		WithNameSpaces(map[string]string{"kml": Namespace}),
	)
	require.NoError(t, err)

	el, err := m.Encode(0, Normal)
	require.NoError(t, err)
	// Members carry neither hints nor namespace declarations.
	assert.Equal(t,
		`<kml:MultiGeometry xmlns:kml="http://www.opengis.net/kml/2.2" id="mp"><kml:tessellate>1</kml:tessellate>`+
			`<kml:Point><kml:coordinates>1,2</kml:coordinates></kml:Point>`+
			`<kml:Point><kml:coordinates>3,4</kml:coordinates></kml:Point>`+
			`</kml:MultiGeometry>`,
		render(t, el))
}

func TestMultiGeometryEncodeEmpty(t *testing.T) {
	m, err := NewMultiGeometry()
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
	assert.Nil(t, m.Geometry())

	el, err := m.Encode(6, Normal)
	require.NoError(t, err)
	assert.Equal(t, `<MultiGeometry/>`, render(t, el))
}

func TestMultiGeometryRejectsCoordinates(t *testing.T) {
	_, err := NewMultiGeometry(WithCoordinates(geo.Sequence{{0, 0}}))
	assert.ErrorIs(t, err, ErrCoordinatesUnsupported)
}

func TestDecodeMultiGeometryResolvesKind(t *testing.T) {
	tests := []struct {
		name string
		xml  string
		kind geo.Kind
	}{
		{
			name: "points",
			xml:  `<MultiGeometry><Point><coordinates>1,2</coordinates></Point><Point><coordinates>3,4</coordinates></Point></MultiGeometry>`,
			kind: geo.KindMultiPoint,
		},
		{
			name: "lines",
			xml:  `<MultiGeometry><LineString><coordinates>0,0 1,1</coordinates></LineString></MultiGeometry>`,
			kind: geo.KindMultiLineString,
		},
		{
			name: "polygons",
			xml:  `<MultiGeometry><Polygon><outerBoundaryIs><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></outerBoundaryIs></Polygon></MultiGeometry>`,
			kind: geo.KindMultiPolygon,
		},
		{
			name: "mixed",
			xml:  `<MultiGeometry><Point><coordinates>1,2</coordinates></Point><LineString><coordinates>0,0 1,1</coordinates></LineString></MultiGeometry>`,
			kind: geo.KindGeometryCollection,
		},
		{
			name: "rings",
			xml:  `<MultiGeometry><LinearRing><coordinates>0,0 1,0 1,1 0,0</coordinates></LinearRing></MultiGeometry>`,
			kind: geo.KindGeometryCollection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := DecodeMultiGeometry("", parseElement(t, tt.xml), true)
			require.NoError(t, err)
			require.False(t, m.IsEmpty())
			assert.Equal(t, tt.kind, m.Geometry().Kind())
		})
	}
}

func TestDecodeMultiGeometryGroupsByTag(t *testing.T) {
	el := parseElement(t, `<MultiGeometry>
		<LineString><coordinates>0,0 1,1</coordinates></LineString>
		<Point><coordinates>5,5</coordinates></Point>
		<LineString><coordinates>2,2 3,3</coordinates></LineString>
	</MultiGeometry>`)

	m, err := DecodeMultiGeometry("", el, true)
	require.NoError(t, err)

	members := m.Geometry().(geo.Collection).Geometries()
	require.Len(t, members, 3)
	// Points are collected before line strings, whatever the document order.
	assert.Equal(t, geo.KindPoint, members[0].Kind())
	assert.Equal(t, geo.KindLineString, members[1].Kind())
	assert.Equal(t, geo.KindLineString, members[2].Kind())
	assert.True(t, line(t, geo.Coord{0, 0}, geo.Coord{1, 1}).Equal(members[1]))
}

func TestDecodeMultiGeometryDropsEmptyMembers(t *testing.T) {
	el := parseElement(t, `<MultiGeometry><Point/><Point><coordinates>1,2</coordinates></Point></MultiGeometry>`)

	m, err := DecodeMultiGeometry("", el, true)
	require.NoError(t, err)
	mp := m.Geometry().(*geo.MultiPoint)
	assert.Len(t, mp.Points(), 1)

	m, err = DecodeMultiGeometry("", parseElement(t, `<MultiGeometry><Point/></MultiGeometry>`), true)
	require.NoError(t, err)
	assert.True(t, m.IsEmpty())
}

func TestDecodeMultiGeometryStrictness(t *testing.T) {
	el := parseElement(t, `<MultiGeometry><Point><coordinates>abc,def</coordinates></Point><Point><coordinates>1,2</coordinates></Point></MultiGeometry>`)

	captureLog(t)
	m, err := DecodeMultiGeometry("", el, false)
	require.NoError(t, err)
	assert.Equal(t, geo.KindMultiPoint, m.Geometry().Kind())

	_, err = DecodeMultiGeometry("", el, true)
	var gpe *GeometryParseError
	assert.True(t, errors.As(err, &gpe))
}

func TestDecodeMultiGeometryNested(t *testing.T) {
	el := parseElement(t, `<MultiGeometry>
		<Point><coordinates>9,9</coordinates></Point>
		<MultiGeometry>
			<LineString><coordinates>0,0 1,1</coordinates></LineString>
			<LineString><coordinates>2,2 3,3</coordinates></LineString>
		</MultiGeometry>
	</MultiGeometry>`)

	m, err := DecodeMultiGeometry("", el, true)
	require.NoError(t, err)

	gc, ok := m.Geometry().(*geo.GeometryCollection)
	require.True(t, ok)
	members := gc.Geometries()
	require.Len(t, members, 2)
	assert.Equal(t, geo.KindMultiLineString, members[0].Kind())
	assert.Equal(t, geo.KindPoint, members[1].Kind())
}
