// Package meshvalidator implements the Mesh Validator & Gate: the final
// sweep over an accumulated mesh buffer before a generation is allowed
// to hand off to the (external) exporter.
package meshvalidator

import (
	"fmt"
	"math"
	"sort"

	"github.com/buildkernel/geokernel/core/kernelerrors"
)

// Vertex is a 3D point, in meters.
type Vertex struct{ X, Y, Z float64 }

// Face is a quad, four indices into a Mesh's Verts slice.
type Face [4]int

// Mesh is the accumulated vertex/face buffer produced by welding wall
// strips across every floor.
type Mesh struct {
	Verts []Vertex
	Faces []Face
}

const (
	zeroAreaThreshold   = 1e-8
	shortEdgeFraction   = 0.1  // x GRID
	roofGapWindow       = 0.10 // meters; E3 detection band
	roofGapTolerance    = 1e-4 // meters; within this of wall_top_z is NOT a gap
)

// Result is the full validation report: the non-empty Errors slice
// gates generation, Warnings never do.
type Result struct {
	Errors   []string
	Warnings []string
}

func (r Result) OK() bool { return len(r.Errors) == 0 }

type edgeKey [2]int

func canonicalFaceEdge(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

func faceEdges(f Face) [4][2]int {
	return [4][2]int{{f[0], f[1]}, {f[1], f[2]}, {f[2], f[3]}, {f[3], f[0]}}
}

func dist(a, b Vertex) float64 {
	return math.Sqrt((a.X-b.X)*(a.X-b.X) + (a.Y-b.Y)*(a.Y-b.Y) + (a.Z-b.Z)*(a.Z-b.Z))
}

// quadArea approximates a quad's area as the sum of its two triangle
// areas (vertices 0,1,2 and 0,2,3), sufficient for the axis-aligned,
// planar wall-strip quads this kernel produces.
func quadArea(verts []Vertex, f Face) float64 {
	triArea := func(a, b, c Vertex) float64 {
		ux, uy, uz := b.X-a.X, b.Y-a.Y, b.Z-a.Z
		vx, vy, vz := c.X-a.X, c.Y-a.Y, c.Z-a.Z
		cx := uy*vz - uz*vy
		cy := uz*vx - ux*vz
		cz := ux*vy - uy*vx
		return 0.5 * math.Sqrt(cx*cx+cy*cy+cz*cz)
	}
	a, b, c, d := verts[f[0]], verts[f[1]], verts[f[2]], verts[f[3]]
	return triArea(a, b, c) + triArea(a, c, d)
}

// Validate runs every check (E1-E3, W1) and returns the aggregated
// report. roofTopZ is floor_elevations(floors-1).wall_top_z, needed by
// E3; roofIsFlat excludes the open top boundary from the E1 manifold
// check when true.
func Validate(mesh Mesh, grid float64, roofTopZ float64, roofIsFlat bool) Result {
	var result Result

	// E1: every edge must be shared by exactly 2 faces, except boundary
	// edges lying exactly at roof height under a flat roof (the
	// building's deliberately open top).
	edgeFaceCount := make(map[edgeKey]int)
	for _, f := range mesh.Faces {
		for _, e := range faceEdges(f) {
			edgeFaceCount[canonicalFaceEdge(e[0], e[1])]++
		}
	}
	var nonManifold []edgeKey
	for key, count := range edgeFaceCount {
		if count == 2 {
			continue
		}
		if roofIsFlat && edgeAtRoofHeight(mesh.Verts, key, roofTopZ) {
			continue
		}
		nonManifold = append(nonManifold, key)
	}
	sort.Slice(nonManifold, func(i, j int) bool {
		if nonManifold[i][0] != nonManifold[j][0] {
			return nonManifold[i][0] < nonManifold[j][0]
		}
		return nonManifold[i][1] < nonManifold[j][1]
	})
	for _, key := range nonManifold {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"E1 non-manifold edge between vertices %d,%d (shared by %d faces)",
			key[0], key[1], edgeFaceCount[key]))
	}

	// E2: zero-area faces.
	for i, f := range mesh.Faces {
		area := quadArea(mesh.Verts, f)
		if area < zeroAreaThreshold {
			result.Errors = append(result.Errors, fmt.Sprintf("E2 zero-area face %d (area=%.2e)", i, area))
		}
	}

	// W1: short edges.
	shortThreshold := grid * shortEdgeFraction
	seenShort := make(map[edgeKey]struct{})
	for _, f := range mesh.Faces {
		for _, e := range faceEdges(f) {
			key := canonicalFaceEdge(e[0], e[1])
			if _, done := seenShort[key]; done {
				continue
			}
			seenShort[key] = struct{}{}
			length := dist(mesh.Verts[key[0]], mesh.Verts[key[1]])
			if length < shortThreshold {
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"W1 short edge %d,%d length=%.4fm", key[0], key[1], length))
			}
		}
	}

	// E3: roof-wall gap.
	for i, v := range mesh.Verts {
		delta := math.Abs(v.Z - roofTopZ)
		if delta <= roofGapTolerance {
			continue
		}
		if delta < roofGapWindow {
			result.Errors = append(result.Errors, fmt.Sprintf(
				"E3 roof-wall gap at vertex %d: z=%.6f drifts %.6fm from wall_top_z=%.6f",
				i, v.Z, delta, roofTopZ))
		}
	}

	return result
}

func edgeAtRoofHeight(verts []Vertex, e edgeKey, roofTopZ float64) bool {
	return math.Abs(verts[e[0]].Z-roofTopZ) <= roofGapTolerance &&
		math.Abs(verts[e[1]].Z-roofTopZ) <= roofGapTolerance
}

// Gate raises a kernelerrors.GenerationError carrying the full report
// whenever the result has any errors. Warnings alone never abort.
func Gate(result Result, specID string) error {
	if result.OK() {
		return nil
	}
	return &kernelerrors.GenerationError{
		SpecID:   specID,
		Errors:   result.Errors,
		Warnings: result.Warnings,
	}
}
