// Package floorplan provides a reference implementation of the
// pipeline's external floorplan collaborator. It is deliberately not
// the production room-layout heuristic engine — spec.md §1 lists
// "floorplan room-layout heuristics" as an excluded external
// collaborator — it exists only so the pipeline orchestrator has a
// real, deterministic room source to drive end to end in the CLI demo
// and in the orchestrator's own tests.
package floorplan

import (
	"math/rand"

	"github.com/buildkernel/geokernel/core/geometry"
	"github.com/buildkernel/geokernel/core/pipeline"
)

// CorridorWidth is the width, in meters, reserved for the spine
// corridor separating the floor's two room bands when depth allows it.
const CorridorWidth = 1.5

// minRoomSpan is the smallest edge length a split is allowed to
// produce; below this the grid splitter stops subdividing a band.
const minRoomSpan = 2.0

// Generator deterministically packs a floor's rectangle into a grid of
// rooms either side of a spine corridor, seeded by (spec.Seed,
// floorIndex) so repeated calls for the same inputs reproduce
// byte-identical output. The corridor itself is not emitted as a room:
// it is the uncovered gap between the two bands, matching the
// original's generate_floorplan(...) -> (rooms, corridor) split where
// only the rooms feed the geometry pipeline.
type Generator struct{}

// NewGenerator constructs the reference floorplan generator.
func NewGenerator() *Generator { return &Generator{} }

var _ pipeline.FloorplanProvider = (*Generator)(nil)

// GenerateFloorplan packs spec's footprint into a deterministic grid of
// rooms for the given floor, splitting the available bays with a
// seeded random source so floor-to-floor and seed-to-seed variation is
// reproducible without being uniform.
func (g *Generator) GenerateFloorplan(spec pipeline.BuildingSpec, floorIndex int) ([]geometry.Room, error) {
	src := rand.NewSource(spec.Seed*1_000_003 + int64(floorIndex))
	rng := rand.New(src)

	cols := gridSplit(spec.Width, rng)
	bandDepths, gapY := splitIntoBands(spec.Depth)

	var rooms []geometry.Room
	id := 1
	y := 0.0
	for bandIdx, bandDepth := range bandDepths {
		if bandIdx == 1 {
			y += gapY
		}
		x := 0.0
		for _, colSpan := range cols {
			rooms = append(rooms, geometry.Room{
				Rect: geometry.Rect{
					MinX: x,
					MinY: y,
					MaxX: x + colSpan,
					MaxY: y + bandDepth,
				},
				FloorIndex: floorIndex,
				ID:         id,
			})
			id++
			x += colSpan
		}
		y += bandDepth
	}
	return rooms, nil
}

// splitIntoBands divides depth into one or two room bands separated by
// CorridorWidth. A single band (no corridor) is used when depth is too
// shallow to host two bands plus the corridor at minRoomSpan each.
func splitIntoBands(depth float64) (bands []float64, gap float64) {
	twoBandDepth := 2*minRoomSpan + CorridorWidth
	if depth < twoBandDepth {
		return []float64{depth}, 0
	}
	remaining := depth - CorridorWidth
	return []float64{remaining / 2, remaining / 2}, CorridorWidth
}

// gridSplit deterministically partitions a span into 1-3 bays, each at
// least minRoomSpan wide, using rng to pick the split count and ratio.
func gridSplit(span float64, rng *rand.Rand) []float64 {
	maxBays := int(span / minRoomSpan)
	if maxBays < 1 {
		maxBays = 1
	}
	if maxBays > 3 {
		maxBays = 3
	}
	bays := 1
	if maxBays > 1 {
		bays = 1 + rng.Intn(maxBays)
	}
	if bays == 1 {
		return []float64{span}
	}

	weights := make([]float64, bays)
	total := 0.0
	for i := range weights {
		w := 0.6 + rng.Float64()*0.8
		weights[i] = w
		total += w
	}
	spans := make([]float64, bays)
	for i, w := range weights {
		spans[i] = minRoomSpan + (span-float64(bays)*minRoomSpan)*w/total
	}
	return spans
}
