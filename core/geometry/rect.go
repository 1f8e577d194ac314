// Package geometry implements the Geometry Authority: the footprint
// quantization and robust polygon union that turns a floor's room
// rectangles into a single watertight outline, tolerant of the hairline
// gaps sub-MICRO_UNIT floating point drift would otherwise leave behind.
package geometry

import (
	"github.com/buildkernel/geokernel/core/gridpos"
)

// Rect is an axis-aligned rectangle in meters.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns MaxX - MinX.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Depth returns MaxY - MinY.
func (r Rect) Depth() float64 { return r.MaxY - r.MinY }

// Area returns width x depth, zero or negative for a degenerate rect.
func (r Rect) Area() float64 { return r.Width() * r.Depth() }

// Valid reports whether the rect has strictly positive extent on both
// axes, per the spec's post-quantization invariant.
func (r Rect) Valid() bool {
	return r.MaxX > r.MinX && r.MaxY > r.MinY
}

// Expand grows the rect by d on every side. A negative d eroded the rect
// instead; callers must ensure the result stays valid.
func (r Rect) Expand(d float64) Rect {
	return Rect{MinX: r.MinX - d, MinY: r.MinY - d, MaxX: r.MaxX + d, MaxY: r.MaxY + d}
}

// Room is a single floor room: its footprint rectangle plus identifying
// floor index and ID (unique within the floor).
type Room struct {
	Rect       Rect
	FloorIndex int
	ID         int
}

// Quantize snaps a single metric coordinate to the nearest multiple of
// microUnit, round-tripping through the integer grid.
func Quantize(v, microUnit float64) float64 {
	return gridpos.UnitsToMeters(gridpos.MetersToUnits(v, microUnit), microUnit)
}

// QuantizeRect applies Quantize to all four bounds of r.
func QuantizeRect(r Rect, microUnit float64) Rect {
	return Rect{
		MinX: Quantize(r.MinX, microUnit),
		MinY: Quantize(r.MinY, microUnit),
		MaxX: Quantize(r.MaxX, microUnit),
		MaxY: Quantize(r.MaxY, microUnit),
	}
}
