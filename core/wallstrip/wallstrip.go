// Package wallstrip implements the Wall Strip Builder: extruding one
// classified edge into an 8-vertex, 6-face prism between a floor's base
// and wall-top elevations.
package wallstrip

import (
	"github.com/buildkernel/geokernel/core/edges"
	"github.com/buildkernel/geokernel/core/vertical"
	"github.com/buildkernel/geokernel/core/wallnormal"
)

// Vertex is a 3D point, in meters.
type Vertex struct{ X, Y, Z float64 }

// Quad is a 4-vertex face, indices into a Strip's Verts array, wound CCW
// as seen from outside the prism.
type Quad [4]int

// Strip is one wall segment's extruded prism.
type Strip struct {
	Verts [8]Vertex
	Faces [6]Quad
}

// faces is the fixed winding shared by every strip: outer, inner, the
// two end caps, bottom, top.
var faces = [6]Quad{
	{0, 1, 5, 4}, // outer
	{2, 3, 7, 6}, // inner
	{0, 4, 7, 3}, // cap-1
	{1, 2, 6, 5}, // cap-2
	{0, 3, 2, 1}, // bottom
	{4, 5, 6, 7}, // top
}

// BuildWallStrip extrudes a classified edge into a wall prism between
// elev.BaseZ and elev.WallTopZ, offsetting its thickness according to
// whether the edge is EXTERIOR (single-sided inward) or INTERIOR
// (symmetric straddle).
//
// Returns the zero Strip and false for a degenerate (near-zero-length)
// edge; callers are expected to cull these upstream.
func BuildWallStrip(edge edges.ClassifiedEdge, elev vertical.Elevations, centroidX, centroidY, wallThickness float64) (Strip, bool) {
	nx, ny := wallnormal.Inward(edge.P1.X, edge.P1.Y, edge.P2.X, edge.P2.Y, centroidX, centroidY)
	if nx == 0 && ny == 0 {
		return Strip{}, false
	}

	var offsetOut, offsetIn float64
	if edge.Type == edges.Exterior {
		offsetOut, offsetIn = 0, wallThickness
	} else {
		offsetOut, offsetIn = wallThickness/2, wallThickness/2
	}

	outerP1 := [2]float64{edge.P1.X - nx*offsetOut, edge.P1.Y - ny*offsetOut}
	outerP2 := [2]float64{edge.P2.X - nx*offsetOut, edge.P2.Y - ny*offsetOut}
	innerP2 := [2]float64{edge.P2.X + nx*offsetIn, edge.P2.Y + ny*offsetIn}
	innerP1 := [2]float64{edge.P1.X + nx*offsetIn, edge.P1.Y + ny*offsetIn}

	corners := [4][2]float64{outerP1, outerP2, innerP2, innerP1}

	var strip Strip
	for i, c := range corners {
		strip.Verts[i] = Vertex{X: c[0], Y: c[1], Z: elev.BaseZ}
		strip.Verts[i+4] = Vertex{X: c[0], Y: c[1], Z: elev.WallTopZ}
	}
	strip.Faces = faces
	return strip, true
}
