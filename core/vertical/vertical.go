// Package vertical implements the Vertical Authority: the single source
// of floor elevation arithmetic. Every other component derives heights
// from FloorElevations instead of recomputing STORY_HEIGHT offsets.
package vertical

// Elevations holds a floor's three reference Z planes, in meters.
type Elevations struct {
	BaseZ    float64
	WallTopZ float64
	SlabTopZ float64
}

// FloorElevations derives a floor's elevations purely from its index,
// the story height, and the wall height.
func FloorElevations(floorIndex int, storyHeight, wallHeight float64) Elevations {
	base := float64(floorIndex) * storyHeight
	return Elevations{
		BaseZ:    base,
		WallTopZ: base + wallHeight,
		SlabTopZ: base + storyHeight,
	}
}
