package geometry

import (
	"fmt"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/op"

	"github.com/buildkernel/geokernel/core/kernelerrors"
)

// rectToPolygon builds a single-ring axis-aligned box polygon, vertices
// wound counter-clockwise and explicitly closed.
func rectToPolygon(r Rect) geom.Polygon {
	return geom.Polygon{geom.Path{
		{X: r.MinX, Y: r.MinY},
		{X: r.MaxX, Y: r.MinY},
		{X: r.MaxX, Y: r.MaxY},
		{X: r.MinX, Y: r.MaxY},
		{X: r.MinX, Y: r.MinY},
	}}
}

// unionAll folds a slice of boxes together with iterative op.Construct
// UNION operations, seeding the accumulator with the first box.
func unionAll(boxes []geom.Polygon) (geom.Polygonal, error) {
	var acc geom.Polygonal = boxes[0]
	for _, box := range boxes[1:] {
		merged, err := op.Construct(acc, box, op.UNION)
		if err != nil {
			return nil, fmt.Errorf("geometry: union: %w", err)
		}
		acc = merged
	}
	return acc, nil
}

// isSinglePart reports whether g is a simple Polygon, or a MultiPolygon
// collapsed to exactly one part.
func isSinglePart(g geom.Polygonal) (geom.Polygon, bool) {
	switch v := g.(type) {
	case geom.Polygon:
		return v, true
	case geom.MultiPolygon:
		if len(v) == 1 {
			return v[0], true
		}
	}
	return nil, false
}

// RobustUnion implements the Geometry Authority's footprint union:
// quantize every room, drop degenerate rects, union the rest, and fall
// back through a buffer-and-unbuffer pass and a coarse re-quantization
// pass before giving up. See the union algorithm notes for the staged
// fallback this mirrors.
func RobustUnion(rooms []Room, microUnit, grid float64) (geom.Polygonal, error) {
	if len(rooms) == 0 {
		return nil, kernelerrors.ErrEmptyLayout
	}

	var boxes []geom.Polygon
	var quantized []Rect
	for _, room := range rooms {
		r := QuantizeRect(room.Rect, microUnit)
		if !r.Valid() {
			continue
		}
		quantized = append(quantized, r)
		boxes = append(boxes, rectToPolygon(r))
	}
	if len(boxes) == 0 {
		return nil, kernelerrors.ErrEmptyLayout
	}

	result, err := unionAll(boxes)
	if err != nil {
		return nil, err
	}
	if _, ok := isSinglePart(result); ok {
		return result, nil
	}

	// Stage 2: buffer every source rect outward by EPSILON, re-union, then
	// erode the result back inward by EPSILON.
	epsilon := microUnit * 0.5
	var expanded []geom.Polygon
	for _, r := range quantized {
		expanded = append(expanded, rectToPolygon(r.Expand(epsilon)))
	}
	buffered, err := unionAll(expanded)
	if err == nil {
		if poly, ok := isSinglePart(buffered); ok {
			return erodeRectilinearPolygon(poly, epsilon), nil
		}
	}

	// Stage 3: re-quantize every vertex at GRID precision and accept
	// whatever shape results, single or multi-part.
	var regridded []geom.Polygon
	for _, r := range quantized {
		regridded = append(regridded, rectToPolygon(QuantizeRect(r, grid)))
	}
	final, err := unionAll(regridded)
	if err != nil {
		return nil, err
	}
	switch final.(type) {
	case geom.Polygon, geom.MultiPolygon:
		return final, nil
	default:
		return nil, fmt.Errorf("geometry: %w: %T", kernelerrors.ErrUnionFailed, final)
	}
}
