package geometry

import (
	"testing"

	"github.com/ctessum/geom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const microUnit = 0.025
const grid = 0.25

func TestQuantizeIsIdempotent(t *testing.T) {
	v := Quantize(1.23456, microUnit)
	assert.Equal(t, v, Quantize(v, microUnit))
}

func TestQuantizeRectAppliesToAllBounds(t *testing.T) {
	r := QuantizeRect(Rect{MinX: 0.0001, MinY: -0.0001, MaxX: 9.9999, MaxY: 8.0001}, microUnit)
	assert.InDelta(t, 0.0, r.MinX, 1e-9)
	assert.InDelta(t, 0.0, r.MinY, 1e-9)
	assert.InDelta(t, 10.0, r.MaxX, 1e-9)
	assert.InDelta(t, 8.0, r.MaxY, 1e-9)
}

func TestRobustUnionRejectsEmptyLayout(t *testing.T) {
	_, err := RobustUnion(nil, microUnit, grid)
	require.Error(t, err)
}

func TestRobustUnionSingleRoom(t *testing.T) {
	rooms := []Room{
		{Rect: Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 8}, FloorIndex: 0, ID: 1},
	}
	result, err := RobustUnion(rooms, microUnit, grid)
	require.NoError(t, err)

	poly, ok := result.(geom.Polygon)
	require.True(t, ok)
	assert.InDelta(t, 80.0, poly.Area(), 1e-6)
}

func TestRobustUnionSharedWall(t *testing.T) {
	rooms := []Room{
		{Rect: Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}, FloorIndex: 0, ID: 1},
		{Rect: Rect{MinX: 2, MinY: 0, MaxX: 4, MaxY: 2}, FloorIndex: 0, ID: 2},
	}
	result, err := RobustUnion(rooms, microUnit, grid)
	require.NoError(t, err)

	area := result.(geom.Polygonal).Area()
	assert.InDelta(t, 8.0, area, 1e-6)
}

func TestRobustUnionDriftTolerant(t *testing.T) {
	rooms := []Room{
		{Rect: Rect{MinX: 0, MinY: 0, MaxX: 2.0001, MaxY: 2}, FloorIndex: 0, ID: 1},
		{Rect: Rect{MinX: 1.9999, MinY: 0, MaxX: 4, MaxY: 2}, FloorIndex: 0, ID: 2},
	}
	result, err := RobustUnion(rooms, microUnit, grid)
	require.NoError(t, err)

	_, ok := result.(geom.Polygon)
	require.True(t, ok, "drift-tolerant layouts must union to a single polygon")
	assert.InDelta(t, 8.0, result.(geom.Polygonal).Area(), 1e-6)
}

func TestRobustUnionDropsZeroAreaRects(t *testing.T) {
	rooms := []Room{
		{Rect: Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 8}, FloorIndex: 0, ID: 1},
		{Rect: Rect{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}, FloorIndex: 0, ID: 2},
	}
	result, err := RobustUnion(rooms, microUnit, grid)
	require.NoError(t, err)
	assert.InDelta(t, 80.0, result.(geom.Polygonal).Area(), 1e-6)
}

func TestRectExpandAndValid(t *testing.T) {
	r := Rect{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
	assert.True(t, r.Valid())

	expanded := r.Expand(0.5)
	assert.InDelta(t, -0.5, expanded.MinX, 1e-9)
	assert.InDelta(t, 1.5, expanded.MaxX, 1e-9)

	degenerate := Rect{MinX: 1, MinY: 1, MaxX: 1, MaxY: 2}
	assert.False(t, degenerate.Valid())
}
