package geo

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRing(t *testing.T, coords ...Coord) *LinearRing {
	t.Helper()
	r, err := NewLinearRing(coords)
	require.NoError(t, err)
	return r
}

func TestSequenceDim(t *testing.T) {
	dim, err := Sequence{}.Dim()
	require.NoError(t, err)
	assert.Equal(t, 0, dim)

	dim, err = Sequence{{1, 2, 3}, {4, 5, 6}}.Dim()
	require.NoError(t, err)
	assert.Equal(t, 3, dim)

	_, err = Sequence{{1, 2}, {4, 5, 6}}.Dim()
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	_, err = Sequence{{1}}.Dim()
	assert.True(t, errors.Is(err, ErrInvalidDimension))
}

func TestSequenceClone(t *testing.T) {
	s := Sequence{{1, 2}}
	c := s.Clone()
	c[0][0] = 9
	assert.Equal(t, 1.0, s[0][0])
	assert.Nil(t, Sequence(nil).Clone())
}

func TestNewPoint(t *testing.T) {
	p, err := NewPoint(Coord{1, 2})
	require.NoError(t, err)
	assert.Equal(t, KindPoint, p.Kind())
	assert.Equal(t, 2, p.Dim())

	for _, c := range []Coord{nil, {1}, {1, 2, 3, 4}} {
		_, err := NewPoint(c)
		assert.True(t, errors.Is(err, ErrInvalidDimension), "coord %v", c)
	}
}

func TestNewLineString(t *testing.T) {
	_, err := NewLineString(Sequence{{0, 0}})
	assert.True(t, errors.Is(err, ErrTooFewPoints))

	_, err = NewLineString(Sequence{{0, 0}, {1, 1, 1}})
	assert.True(t, errors.Is(err, ErrDimensionMismatch))

	l, err := NewLineString(Sequence{{0, 0}, {1, 1}})
	require.NoError(t, err)
	assert.Equal(t, KindLineString, l.Kind())
}

func TestNewLinearRing(t *testing.T) {
	r, err := NewLinearRing(Sequence{{0, 0}, {1, 0}, {1, 1}, {0, 0}})
	require.NoError(t, err)
	assert.Equal(t, KindLinearRing, r.Kind())

	_, err = NewLinearRing(Sequence{{0, 0}, {1, 0}, {0, 0}})
	assert.True(t, errors.Is(err, ErrTooFewPoints))

	_, err = NewLinearRing(Sequence{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	assert.True(t, errors.Is(err, ErrRingNotClosed))
}

func TestNewPolygon(t *testing.T) {
	ext := mustRing(t, Coord{0, 0}, Coord{4, 0}, Coord{4, 4}, Coord{0, 0})
	hole := mustRing(t, Coord{1, 1}, Coord{2, 1}, Coord{2, 2}, Coord{1, 1})
	hole3d := mustRing(t, Coord{1, 1, 0}, Coord{2, 1, 0}, Coord{2, 2, 0}, Coord{1, 1, 0})

	p, err := NewPolygon(ext, hole)
	require.NoError(t, err)
	assert.Same(t, ext, p.Exterior())
	assert.Len(t, p.Interiors(), 1)

	_, err = NewPolygon(nil)
	assert.True(t, errors.Is(err, ErrNilExterior))

	_, err = NewPolygon(ext, nil)
	assert.True(t, errors.Is(err, ErrNilMember))

	_, err = NewPolygon(ext, hole3d)
	assert.True(t, errors.Is(err, ErrDimensionMismatch))
}

func TestEqual(t *testing.T) {
	a, _ := NewPoint(Coord{1, 2})
	b, _ := NewPoint(Coord{1, 2})
	c, _ := NewPoint(Coord{1, 2, 0})
	l, _ := NewLineString(Sequence{{1, 2}, {1, 2}})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(l))
	assert.False(t, a.Equal(nil))

	mp1, _ := NewMultiPoint(a, b)
	mp2, _ := NewMultiPoint(b, a)
	gc, _ := NewGeometryCollection(a, b)
	assert.True(t, mp1.Equal(mp2))
	assert.False(t, mp1.Equal(gc))
}

func TestCollections(t *testing.T) {
	p, _ := NewPoint(Coord{1, 2, 3})

	mp, err := NewMultiPoint()
	require.NoError(t, err)
	assert.Equal(t, 0, mp.Dim())
	assert.True(t, mp.Kind().IsMulti())

	_, err = NewMultiPoint(p, nil)
	assert.True(t, errors.Is(err, ErrNilMember))

	gc, err := NewGeometryCollection(p, mp)
	require.NoError(t, err)
	assert.Equal(t, 3, gc.Dim())
	assert.Len(t, gc.Geometries(), 2)
	assert.False(t, KindPolygon.IsMulti())
	assert.Equal(t, "GeometryCollection", gc.Kind().String())
	assert.Equal(t, "Unknown", KindUnknown.String())
}
