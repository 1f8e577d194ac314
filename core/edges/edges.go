// Package edges implements the Edge Classifier: extracting each room's
// rectangular edges, deduplicating shared walls via a canonical
// endpoint key, and labeling the survivors EXTERIOR or INTERIOR against
// the floor's unioned footprint.
package edges

import (
	"fmt"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"

	"github.com/buildkernel/geokernel/core/geometry"
	"github.com/buildkernel/geokernel/core/wallnormal"
)

// EdgeType labels an edge as facing open air or another room.
type EdgeType int

const (
	Exterior EdgeType = iota
	Interior
)

func (t EdgeType) String() string {
	if t == Exterior {
		return "EXTERIOR"
	}
	return "INTERIOR"
}

// Point is a quantized 2D coordinate, in meters.
type Point struct{ X, Y float64 }

// ClassifiedEdge is one surviving wall segment of a floor's footprint.
type ClassifiedEdge struct {
	P1, P2 Point
	Type   EdgeType
}

// edgeKey is the canonical, direction-independent identity of an edge:
// its two quantized endpoints, sorted.
type edgeKey struct {
	p1, p2 Point
}

func canonicalKey(p1, p2 Point) edgeKey {
	if p1.X > p2.X || (p1.X == p2.X && p1.Y > p2.Y) {
		p1, p2 = p2, p1
	}
	return edgeKey{p1, p2}
}

// roomEdges returns a room's four rectangular edges in CCW order.
func roomEdges(r geometry.Rect) [4][2]Point {
	bl := Point{r.MinX, r.MinY}
	br := Point{r.MaxX, r.MinY}
	tr := Point{r.MaxX, r.MaxY}
	tl := Point{r.MinX, r.MaxY}
	return [4][2]Point{{bl, br}, {br, tr}, {tr, tl}, {tl, bl}}
}

// offsetPointOutside nudges the edge midpoint a microscopic distance
// along its outward normal (the negation of the shared inward-normal
// routine), for the boundary-covers containment probe.
func offsetPointOutside(p1, p2 Point, centroidX, centroidY, distance float64) geom.Point {
	nx, ny := wallnormal.Inward(p1.X, p1.Y, p2.X, p2.Y, centroidX, centroidY)
	midX, midY := (p1.X+p2.X)/2, (p1.Y+p2.Y)/2
	return geom.Point{X: midX - nx*distance, Y: midY - ny*distance}
}

// ClassifyEdges extracts every room's edges, drops duplicate shared-wall
// keys on first occurrence, and labels each survivor EXTERIOR or
// INTERIOR by probing a microscopic offset point against the footprint.
// centroidX/centroidY must be the unioned footprint's own centroid, not
// an approximation derived from the room list, since an edge's probe
// point is nudged away from it.
func ClassifyEdges(footprint geom.Polygonal, rooms []geometry.Room, microUnit, centroidX, centroidY float64) ([]ClassifiedEdge, error) {
	probeDistance := microUnit * 0.1

	seen := make(map[edgeKey]struct{})
	var out []ClassifiedEdge

	// Stable room order: by ID, matching the spec's room-major ordering
	// requirement without depending on caller-supplied slice order.
	sorted := append([]geometry.Room(nil), rooms...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID < sorted[j].ID })

	for _, room := range sorted {
		for _, e := range roomEdges(geometry.QuantizeRect(room.Rect, microUnit)) {
			p1, p2 := e[0], e[1]
			key := canonicalKey(p1, p2)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			probe := offsetPointOutside(p1, p2, centroidX, centroidY, probeDistance)
			inside, err := op.Within(probe, footprint)
			if err != nil {
				return nil, fmt.Errorf("edges: classify: %w", err)
			}

			edgeType := Exterior
			if inside {
				edgeType = Interior
			}
			out = append(out, ClassifiedEdge{P1: p1, P2: p2, Type: edgeType})
		}
	}
	return out, nil
}
