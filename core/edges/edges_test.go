package edges

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildkernel/geokernel/core/geometry"
)

const microUnit = 0.025
const grid = 0.25

func TestClassifyEdgesUnitCubeFloor(t *testing.T) {
	rooms := []geometry.Room{
		{Rect: geometry.Rect{MinX: 0, MinY: 0, MaxX: 10, MaxY: 8}, FloorIndex: 0, ID: 1},
	}
	footprint, err := geometry.RobustUnion(rooms, microUnit, grid)
	require.NoError(t, err)

	classified, err := ClassifyEdges(footprint, rooms, microUnit, 5, 4)
	require.NoError(t, err)
	require.Len(t, classified, 4)

	for _, e := range classified {
		assert.Equal(t, Exterior, e.Type)
	}
}

func TestClassifyEdgesSharedWall(t *testing.T) {
	rooms := []geometry.Room{
		{Rect: geometry.Rect{MinX: 0, MinY: 0, MaxX: 2, MaxY: 2}, FloorIndex: 0, ID: 1},
		{Rect: geometry.Rect{MinX: 2, MinY: 0, MaxX: 4, MaxY: 2}, FloorIndex: 0, ID: 2},
	}
	footprint, err := geometry.RobustUnion(rooms, microUnit, grid)
	require.NoError(t, err)

	classified, err := ClassifyEdges(footprint, rooms, microUnit, 2, 1)
	require.NoError(t, err)
	require.Len(t, classified, 7)

	var interior int
	for _, e := range classified {
		if e.Type == Interior {
			interior++
			assert.Equal(t, Point{X: 2, Y: 0}, e.P1)
			assert.Equal(t, Point{X: 2, Y: 2}, e.P2)
		}
	}
	assert.Equal(t, 1, interior)
}

func TestCanonicalKeyIsDirectionIndependent(t *testing.T) {
	a := canonicalKey(Point{0, 0}, Point{1, 1})
	b := canonicalKey(Point{1, 1}, Point{0, 0})
	assert.Equal(t, a, b)
}

func TestEdgeTypeString(t *testing.T) {
	assert.Equal(t, "EXTERIOR", Exterior.String())
	assert.Equal(t, "INTERIOR", Interior.String())
}
