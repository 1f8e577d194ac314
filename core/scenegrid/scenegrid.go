// Package scenegrid implements the sparse hashmap scene grid: O(1)
// per-cell collision checks and placement/removal of grid-aware objects,
// without the memory cost of a dense voxel volume.
package scenegrid

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/buildkernel/geokernel/core/gridpos"
	"github.com/buildkernel/geokernel/core/kernelerrors"
)

// SceneGrid tracks which cells are occupied and by which named object.
// The two maps are kept mutually consistent: every cell in an object's
// footprint maps to its name, and every such cell belongs to exactly one
// object.
type SceneGrid struct {
	cells   map[Cell]string
	objects map[string]GridObject
}

// New creates an empty scene grid.
func New() *SceneGrid {
	return &SceneGrid{
		cells:   make(map[Cell]string),
		objects: make(map[string]GridObject),
	}
}

// Place inserts obj into the grid. It is all-or-nothing: the footprint
// is fully enumerated and checked before any cell or index entry is
// written, so a failed placement never leaves partial state.
//
// Returns (false, nil) on a non-fatal footprint collision, and a
// DuplicateName error if an object with the same name is already
// indexed.
func (s *SceneGrid) Place(obj GridObject) (bool, error) {
	name := obj.Name()
	if _, exists := s.objects[name]; exists {
		return false, fmt.Errorf("scenegrid: place %q: %w", name, kernelerrors.ErrDuplicateName)
	}

	footprint := obj.Footprint()
	for cell := range footprint {
		if _, occupied := s.cells[cell]; occupied {
			return false, nil
		}
	}

	for cell := range footprint {
		s.cells[cell] = name
	}
	s.objects[name] = obj
	return true, nil
}

// Remove deletes obj's footprint cells and drops it from the index.
// Returns false if the name is not present.
func (s *SceneGrid) Remove(name string) bool {
	obj, exists := s.objects[name]
	if !exists {
		return false
	}
	for cell := range obj.Footprint() {
		delete(s.cells, cell)
	}
	delete(s.objects, name)
	return true
}

// GetAt returns the name of the object occupying pos, if any.
func (s *SceneGrid) GetAt(pos gridpos.GridPos) (string, bool) {
	name, ok := s.cells[Cell{pos.X, pos.Y, pos.Z}]
	return name, ok
}

// IsFree reports whether every cell in the box [origin, origin+size) is
// unoccupied, short-circuiting on the first occupied cell.
func (s *SceneGrid) IsFree(origin gridpos.GridPos, sx, sy, sz int64) bool {
	for dx := int64(0); dx < sx; dx++ {
		for dy := int64(0); dy < sy; dy++ {
			for dz := int64(0); dz < sz; dz++ {
				cell := Cell{origin.X + dx, origin.Y + dy, origin.Z + dz}
				if _, occupied := s.cells[cell]; occupied {
					return false
				}
			}
		}
	}
	return true
}

// GetObject returns the object registered under name.
func (s *SceneGrid) GetObject(name string) (GridObject, bool) {
	obj, ok := s.objects[name]
	return obj, ok
}

// GetObjectsByTag linearly scans the object index for objects carrying
// tag. Order is stable across identical insertion sequences (Go map
// iteration is not ordered, so the result is sorted by name to give a
// deterministic, reproducible order).
func (s *SceneGrid) GetObjectsByTag(tag string) []GridObject {
	var matches []GridObject
	for _, obj := range s.objects {
		if _, ok := obj.Tags()[tag]; ok {
			matches = append(matches, obj)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].Name() < matches[j].Name() })
	return matches
}

// NeighborCell pairs an occupied position with its occupant's name.
type NeighborCell struct {
	Pos  gridpos.GridPos
	Name string
}

// GetNeighbors enumerates occupied cells in the Chebyshev ball of radius
// r around pos.
func (s *SceneGrid) GetNeighbors(pos gridpos.GridPos, radius int64) []NeighborCell {
	var neighbors []NeighborCell
	for dx := -radius; dx <= radius; dx++ {
		for dy := -radius; dy <= radius; dy++ {
			for dz := -radius; dz <= radius; dz++ {
				cell := Cell{pos.X + dx, pos.Y + dy, pos.Z + dz}
				if name, ok := s.cells[cell]; ok {
					neighbors = append(neighbors, NeighborCell{
						Pos:  gridpos.GridPos{X: cell.X, Y: cell.Y, Z: cell.Z},
						Name: name,
					})
				}
			}
		}
	}
	return neighbors
}

// Bounds is the min/max extent over all occupied cells.
type Bounds struct {
	Min, Max gridpos.GridPos
}

// GetBounds returns the occupied-cell bounding box, or false if the
// scene is empty.
func (s *SceneGrid) GetBounds() (Bounds, bool) {
	if len(s.cells) == 0 {
		return Bounds{}, false
	}
	first := true
	var b Bounds
	for cell := range s.cells {
		if first {
			b.Min = gridpos.GridPos{X: cell.X, Y: cell.Y, Z: cell.Z}
			b.Max = b.Min
			first = false
			continue
		}
		if cell.X < b.Min.X {
			b.Min.X = cell.X
		}
		if cell.Y < b.Min.Y {
			b.Min.Y = cell.Y
		}
		if cell.Z < b.Min.Z {
			b.Min.Z = cell.Z
		}
		if cell.X > b.Max.X {
			b.Max.X = cell.X
		}
		if cell.Y > b.Max.Y {
			b.Max.Y = cell.Y
		}
		if cell.Z > b.Max.Z {
			b.Max.Z = cell.Z
		}
	}
	return b, true
}

// Stats holds exact occupancy counts plus a rough memory estimate.
type Stats struct {
	OccupiedCells  int
	ObjectCount    int
	MemoryEstimate int64
}

// GetStats returns exact occupied-cell and object counts, plus a memory
// estimate computed as entry-count x constant (mirrors the Python
// implementation's dict-overhead approximation).
func (s *SceneGrid) GetStats() Stats {
	const cellOverhead = 64
	const objectOverhead = 256
	return Stats{
		OccupiedCells:  len(s.cells),
		ObjectCount:    len(s.objects),
		MemoryEstimate: int64(len(s.cells))*cellOverhead + int64(len(s.objects))*objectOverhead,
	}
}

// Clear removes every object and cell from the scene.
func (s *SceneGrid) Clear() {
	s.cells = make(map[Cell]string)
	s.objects = make(map[string]GridObject)
}

// sceneDoc is the deterministic JSON wire form from the spec's external
// interfaces section.
type sceneDoc struct {
	Cells   map[string]string        `json:"cells"`
	Objects map[string]sceneDocEntry `json:"objects"`
}

type sceneDocEntry struct {
	GridPos  [3]int64 `json:"grid_pos"`
	GridSize [3]int64 `json:"grid_size"`
	SnapMode string   `json:"snap_mode"`
	Tags     []string `json:"tags"`
}

// ToJSON serializes the scene to the deterministic textual form
// described in the spec's external interfaces section. Cell keys are
// emitted as "x,y,z"; object and cell iteration order is sorted so equal
// scenes always produce an identical string.
func (s *SceneGrid) ToJSON() (string, error) {
	doc := sceneDoc{
		Cells:   make(map[string]string, len(s.cells)),
		Objects: make(map[string]sceneDocEntry, len(s.objects)),
	}
	for cell, name := range s.cells {
		key := fmt.Sprintf("%d,%d,%d", cell.X, cell.Y, cell.Z)
		doc.Cells[key] = name
	}
	for name, obj := range s.objects {
		tags := make([]string, 0, len(obj.Tags()))
		for tag := range obj.Tags() {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		w, d, h := obj.GridSize()
		pos := obj.GridPos()
		doc.Objects[name] = sceneDocEntry{
			GridPos:  [3]int64{pos.X, pos.Y, pos.Z},
			GridSize: [3]int64{w, d, h},
			SnapMode: obj.SnapMode().String(),
			Tags:     tags,
		}
	}

	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("scenegrid: marshal: %w", err)
	}
	return string(b), nil
}

// FromJSON restores cell occupancy from a scene document. Object
// reconstruction is a factory hook: the kernel restores the raw
// cell-to-name mapping directly, but instantiating concrete GridObject
// values from sceneDocEntry is the caller's responsibility, since only
// the caller's object model knows how to build a Wall/Door/Window from
// its serialized fields.
func FromJSON(data string) (*SceneGrid, error) {
	var doc sceneDoc
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("scenegrid: unmarshal: %w", err)
	}
	scene := New()
	for key, name := range doc.Cells {
		var x, y, z int64
		if _, err := fmt.Sscanf(key, "%d,%d,%d", &x, &y, &z); err != nil {
			return nil, fmt.Errorf("scenegrid: bad cell key %q: %w", key, err)
		}
		scene.cells[Cell{x, y, z}] = name
	}
	return scene, nil
}
