package scenegrid

import "github.com/buildkernel/geokernel/core/gridpos"

// GridObject is the capability set any grid-placeable entity (wall,
// door, window, furniture) must expose. It replaces the original
// Protocol-based duck-typed interface with an explicit Go interface, per
// the spec's re-architecture notes.
type GridObject interface {
	Name() string
	GridPos() gridpos.GridPos
	GridSize() (w, d, h int64)
	SnapMode() gridpos.SnapMode
	Tags() map[string]struct{}
	Slots() []SlotDescriptor

	Footprint() map[Cell]struct{}
	ValidatePlacement(scene *SceneGrid) bool
	AABB(microUnit float64) AABB
	Center() gridpos.GridPos
}

// Cell is an occupied grid cell key, directly usable as a map key.
type Cell struct {
	X, Y, Z int64
}

// SlotDescriptor describes a connection/attachment point carried by a
// grid object (doors hosting hardware, walls hosting outlets, etc). The
// kernel does not interpret slot contents; it is opaque payload the
// caller's object model defines.
type SlotDescriptor struct {
	Name string
	Kind string
	Data map[string]any
}

// AABB is an axis-aligned bounding box in meters.
type AABB struct {
	Min, Max [3]float64
}

// BaseObject provides the default GridObject method implementations
// (full-AABB footprint, delegate-to-scene placement validation, AABB and
// center conversion) so concrete object types only need to embed it and
// supply identity/position/size fields. This mirrors the split between
// the Protocol interface and its default-implementation mixin named in
// the spec's re-architecture notes.
type BaseObject struct {
	ObjName  string
	Pos      gridpos.GridPos
	Size     [3]int64 // width, depth, height in grid units
	Snap     gridpos.SnapMode
	ObjTags  map[string]struct{}
	ObjSlots []SlotDescriptor
}

func (b *BaseObject) Name() string                { return b.ObjName }
func (b *BaseObject) GridPos() gridpos.GridPos    { return b.Pos }
func (b *BaseObject) GridSize() (int64, int64, int64) {
	return b.Size[0], b.Size[1], b.Size[2]
}
func (b *BaseObject) SnapMode() gridpos.SnapMode { return b.Snap }
func (b *BaseObject) Tags() map[string]struct{}  { return b.ObjTags }
func (b *BaseObject) Slots() []SlotDescriptor    { return b.ObjSlots }

// Footprint returns the default full-AABB cell set:
// {(px+dx, py+dy, pz+dz) | 0 <= d* < s*}.
func (b *BaseObject) Footprint() map[Cell]struct{} {
	footprint := make(map[Cell]struct{}, b.Size[0]*b.Size[1]*b.Size[2])
	for dx := int64(0); dx < b.Size[0]; dx++ {
		for dy := int64(0); dy < b.Size[1]; dy++ {
			for dz := int64(0); dz < b.Size[2]; dz++ {
				footprint[Cell{b.Pos.X + dx, b.Pos.Y + dy, b.Pos.Z + dz}] = struct{}{}
			}
		}
	}
	return footprint
}

// ValidatePlacement delegates to the scene's is-free check over this
// object's origin and size.
func (b *BaseObject) ValidatePlacement(scene *SceneGrid) bool {
	return scene.IsFree(b.Pos, b.Size[0], b.Size[1], b.Size[2])
}

// AABB converts the object's grid footprint bounds to meters.
func (b *BaseObject) AABB(microUnit float64) AABB {
	minX, minY, minZ := b.Pos.ToMeters(microUnit)
	maxPos := b.Pos.Add(gridpos.GridPos{X: b.Size[0], Y: b.Size[1], Z: b.Size[2]})
	maxX, maxY, maxZ := maxPos.ToMeters(microUnit)
	return AABB{Min: [3]float64{minX, minY, minZ}, Max: [3]float64{maxX, maxY, maxZ}}
}

// Center returns the object's center position using integer division,
// matching GridPos + (size/2).
func (b *BaseObject) Center() gridpos.GridPos {
	half := gridpos.GridPos{X: b.Size[0] / 2, Y: b.Size[1] / 2, Z: b.Size[2] / 2}
	return b.Pos.Add(half)
}
