package wallstrip

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildkernel/geokernel/core/edges"
	"github.com/buildkernel/geokernel/core/vertical"
)

const wallThickness = 0.20

func TestBuildWallStripExteriorSingleSided(t *testing.T) {
	edge := edges.ClassifiedEdge{
		P1:   edges.Point{X: 0, Y: 0},
		P2:   edges.Point{X: 10, Y: 0},
		Type: edges.Exterior,
	}
	elev := vertical.FloorElevations(0, 3.20, 3.00)

	strip, ok := BuildWallStrip(edge, elev, 5, 4, wallThickness)
	require.True(t, ok)

	// Outer corners sit exactly on the footprint boundary (y=0); inner
	// corners sit WALL_THICKNESS inward (toward the centroid, +y).
	assert.InDelta(t, 0.0, strip.Verts[0].Y, 1e-9)
	assert.InDelta(t, 0.0, strip.Verts[1].Y, 1e-9)
	assert.InDelta(t, wallThickness, strip.Verts[2].Y, 1e-9)
	assert.InDelta(t, wallThickness, strip.Verts[3].Y, 1e-9)

	assert.Equal(t, elev.BaseZ, strip.Verts[0].Z)
	assert.Equal(t, elev.WallTopZ, strip.Verts[4].Z)
}

func TestBuildWallStripInteriorSymmetric(t *testing.T) {
	edge := edges.ClassifiedEdge{
		P1:   edges.Point{X: 2, Y: 0},
		P2:   edges.Point{X: 2, Y: 2},
		Type: edges.Interior,
	}
	elev := vertical.FloorElevations(0, 3.20, 3.00)

	strip, ok := BuildWallStrip(edge, elev, 1, 1, wallThickness)
	require.True(t, ok)

	// Centroid (1,1) sits on the -x side of the x=2 edge: the outer
	// corner offsets away from it (+x), the inner corner toward it (-x).
	half := wallThickness / 2
	assert.InDelta(t, 2+half, strip.Verts[0].X, 1e-9)
	assert.InDelta(t, 2-half, strip.Verts[2].X, 1e-9)
}

func TestBuildWallStripDegenerateEdgeCulled(t *testing.T) {
	edge := edges.ClassifiedEdge{
		P1:   edges.Point{X: 1, Y: 1},
		P2:   edges.Point{X: 1, Y: 1},
		Type: edges.Exterior,
	}
	elev := vertical.FloorElevations(0, 3.20, 3.00)

	_, ok := BuildWallStrip(edge, elev, 5, 4, wallThickness)
	assert.False(t, ok)
}

func TestFaceWindingIsFixed(t *testing.T) {
	edge := edges.ClassifiedEdge{
		P1:   edges.Point{X: 0, Y: 0},
		P2:   edges.Point{X: 10, Y: 0},
		Type: edges.Exterior,
	}
	elev := vertical.FloorElevations(0, 3.20, 3.00)
	strip, ok := BuildWallStrip(edge, elev, 5, 4, wallThickness)
	require.True(t, ok)

	assert.Equal(t, Quad{0, 1, 5, 4}, strip.Faces[0])
	assert.Equal(t, Quad{4, 5, 6, 7}, strip.Faces[5])
}
