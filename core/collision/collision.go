// Package collision implements the Collision Engine: polygon-overlap
// detection over candidate room layouts, above a noise-floor area
// threshold derived from MICRO_UNIT.
package collision

import (
	"fmt"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"

	"github.com/buildkernel/geokernel/core/geometry"
)

// BroadPhaseThreshold is the room count above which an rtree broad
// phase narrows candidate pairs before the exact intersection-area
// check; below it the rtree's own overhead outweighs the O(n²) loop it
// would save.
const BroadPhaseThreshold = 64

// Overlap is one confirmed collision between two rooms.
type Overlap struct {
	Area       float64
	RoomID1    int
	RoomID2    int
}

// areaThreshold returns the minimum overlap area treated as a real
// collision rather than quantization noise: (MICRO_UNIT)^2 x 0.1.
func areaThreshold(microUnit float64) float64 {
	return microUnit * microUnit * 0.1
}

func roomPolygon(r geometry.Room) geom.Polygon {
	rect := r.Rect
	return geom.Polygon{geom.Path{
		{X: rect.MinX, Y: rect.MinY},
		{X: rect.MaxX, Y: rect.MinY},
		{X: rect.MaxX, Y: rect.MaxY},
		{X: rect.MinX, Y: rect.MaxY},
		{X: rect.MinX, Y: rect.MinY},
	}}
}

func overlapArea(a, b geometry.Room) float64 {
	pa, pb := roomPolygon(a), roomPolygon(b)
	isect := pa.Intersection(pb)
	if isect == nil {
		return 0
	}
	return isect.Area()
}

// indexed pairs an rtree entry with its originating room, satisfying
// the rtree.BoundingBoxer contract the index requires.
type indexed struct {
	room geometry.Room
}

func (i *indexed) Bounds() *geom.Bounds {
	r := i.room.Rect
	return &geom.Bounds{Min: geom.Point{X: r.MinX, Y: r.MinY}, Max: geom.Point{X: r.MaxX, Y: r.MaxY}}
}

// CheckSelfCollisions reports every pairwise overlap among rooms whose
// intersection area exceeds the quantization noise floor. Above
// BroadPhaseThreshold rooms, an rtree broad phase narrows candidate
// pairs first.
func CheckSelfCollisions(rooms []geometry.Room, microUnit float64) []Overlap {
	threshold := areaThreshold(microUnit)

	if len(rooms) > BroadPhaseThreshold {
		return checkWithBroadPhase(rooms, threshold)
	}
	return checkPairwise(rooms, threshold)
}

func checkPairwise(rooms []geometry.Room, threshold float64) []Overlap {
	var overlaps []Overlap
	for i := 0; i < len(rooms); i++ {
		for j := i + 1; j < len(rooms); j++ {
			area := overlapArea(rooms[i], rooms[j])
			if area > threshold {
				overlaps = append(overlaps, Overlap{Area: area, RoomID1: rooms[i].ID, RoomID2: rooms[j].ID})
			}
		}
	}
	return overlaps
}

func checkWithBroadPhase(rooms []geometry.Room, threshold float64) []Overlap {
	tree := rtree.NewTree(25, 50)
	for i := range rooms {
		tree.Insert(&indexed{room: rooms[i]})
	}

	seen := make(map[[2]int]struct{})
	var overlaps []Overlap
	for _, room := range rooms {
		probe := &indexed{room: room}
		for _, candidateI := range tree.SearchIntersect(probe.Bounds()) {
			candidate := candidateI.(*indexed).room
			if candidate.ID == room.ID {
				continue
			}
			key := pairKey(room.ID, candidate.ID)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}

			area := overlapArea(room, candidate)
			if area > threshold {
				overlaps = append(overlaps, Overlap{Area: area, RoomID1: key[0], RoomID2: key[1]})
			}
		}
	}
	sort.Slice(overlaps, func(i, j int) bool {
		if overlaps[i].RoomID1 != overlaps[j].RoomID1 {
			return overlaps[i].RoomID1 < overlaps[j].RoomID1
		}
		return overlaps[i].RoomID2 < overlaps[j].RoomID2
	})
	return overlaps
}

func pairKey(a, b int) [2]int {
	if a > b {
		a, b = b, a
	}
	return [2]int{a, b}
}

// CanPlaceRoom tests candidate against every room in rooms whose ID is
// not in exclude, using the same area threshold as CheckSelfCollisions.
func CanPlaceRoom(candidate geometry.Room, rooms []geometry.Room, exclude map[int]struct{}, microUnit float64) bool {
	threshold := areaThreshold(microUnit)
	for _, room := range rooms {
		if _, excluded := exclude[room.ID]; excluded {
			continue
		}
		if overlapArea(candidate, room) > threshold {
			return false
		}
	}
	return true
}

// ValidateLayout reports LAYOUT_VALID or a LAYOUT_CONFLICT message
// listing every detected overlap.
func ValidateLayout(rooms []geometry.Room, microUnit float64) (bool, string) {
	overlaps := CheckSelfCollisions(rooms, microUnit)
	if len(overlaps) == 0 {
		return true, "LAYOUT_VALID"
	}

	msg := "LAYOUT_CONFLICT"
	for _, o := range overlaps {
		msg += fmt.Sprintf(" overlap_area=%.6f IDs [%d, %d]", o.Area, o.RoomID1, o.RoomID2)
	}
	return false, msg
}
