package geometry

import "github.com/ctessum/geom"

// erodeRing offsets a closed ring inward (or outward, for a negative
// epsilon) by epsilon. Only valid for rectilinear rings — every edge
// horizontal or vertical — which is guaranteed here because every input
// room is an axis-aligned rectangle and op.Construct's UNION never
// introduces a non-axis-aligned edge between two axis-aligned inputs.
//
// Each vertex sits between one horizontal and one vertical edge; the
// vertical edge's inward normal fixes the vertex's new X, the
// horizontal edge's fixes its new Y. Ring orientation (CW vs CCW) is
// detected via the shoelace sign so holes (conventionally wound
// opposite the exterior ring) erode toward the filled region rather
// than away from it.
func erodeRing(ring geom.Path, epsilon float64) geom.Path {
	n := len(ring)
	if n < 2 {
		return ring
	}
	// Drop an explicit closing point (ring[0] == ring[n-1]) while working,
	// re-close at the end.
	pts := ring
	closed := pts[0] == pts[n-1]
	if closed {
		pts = pts[:n-1]
	}
	n = len(pts)
	if n < 3 {
		return ring
	}

	orientation := signedAreaSign(pts)

	out := make(geom.Path, n)
	for i, v := range pts {
		prev := pts[(i-1+n)%n]
		next := pts[(i+1)%n]

		nx, ny := v.X, v.Y

		// Edge arriving at v: prev -> v.
		if dx, dy := v.X-prev.X, v.Y-prev.Y; dy == 0 && dx != 0 {
			// Horizontal edge: inward normal is (0, sign(dx)) for CCW.
			normY := sign(dx) * orientation
			ny = v.Y + epsilon*normY
		} else if dx == 0 && dy != 0 {
			normX := -sign(dy) * orientation
			nx = v.X + epsilon*normX
		}

		// Edge leaving v: v -> next.
		if dx, dy := next.X-v.X, next.Y-v.Y; dy == 0 && dx != 0 {
			normY := sign(dx) * orientation
			ny = v.Y + epsilon*normY
		} else if dx == 0 && dy != 0 {
			normX := -sign(dy) * orientation
			nx = v.X + epsilon*normX
		}

		out[i] = geom.Point{X: nx, Y: ny}
	}

	if closed {
		out = append(out, out[0])
	}
	return out
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

// signedAreaSign returns +1 for a CCW-wound ring, -1 for CW.
func signedAreaSign(pts geom.Path) float64 {
	var sum float64
	n := len(pts)
	for i := 0; i < n; i++ {
		p := pts[i]
		q := pts[(i+1)%n]
		sum += p.X*q.Y - q.X*p.Y
	}
	if sum < 0 {
		return -1
	}
	return 1
}

// erodeRectilinearPolygon erodes every ring of a polygon by epsilon,
// per the inward-buffer fallback stage of the union algorithm.
func erodeRectilinearPolygon(poly geom.Polygon, epsilon float64) geom.Polygon {
	out := make(geom.Polygon, len(poly))
	for i, ring := range poly {
		out[i] = erodeRing(ring, epsilon)
	}
	return out
}
