// Package wallnormal computes the single inward-normal routine shared
// by the Edge Classifier's boundary-covers test and the Wall Strip
// Builder's offset geometry, so the normal arithmetic exists in exactly
// one place.
package wallnormal

import "math"

// zeroLengthThreshold below which an edge is considered degenerate; its
// normal is the zero vector and it is expected to be culled upstream.
const zeroLengthThreshold = 1e-6

// Inward computes the unit normal of the directed edge p1->p2, oriented
// to point toward (centroidX, centroidY). Returns (0, 0) for an edge
// shorter than the zero-length threshold.
func Inward(p1x, p1y, p2x, p2y, centroidX, centroidY float64) (nx, ny float64) {
	dx := p2x - p1x
	dy := p2y - p1y
	length := math.Hypot(dx, dy)
	if length < zeroLengthThreshold {
		return 0, 0
	}

	nx, ny = -dy/length, dx/length

	midX, midY := (p1x+p2x)/2, (p1y+p2y)/2
	toCentroidX, toCentroidY := centroidX-midX, centroidY-midY
	if nx*toCentroidX+ny*toCentroidY < 0 {
		nx, ny = -nx, -ny
	}
	return nx, ny
}
