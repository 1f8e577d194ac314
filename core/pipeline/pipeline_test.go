package pipeline_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildkernel/geokernel/core/geometry"
	"github.com/buildkernel/geokernel/core/kernelconfig"
	"github.com/buildkernel/geokernel/core/pipeline"
	"github.com/buildkernel/geokernel/internal/floorplan"
)

// singleRoomProvider always returns the fixed single-room layout from
// the spec's "unit cube floor" scenario, regardless of floor index.
type singleRoomProvider struct {
	width, depth float64
}

func (p singleRoomProvider) GenerateFloorplan(spec pipeline.BuildingSpec, floorIndex int) ([]geometry.Room, error) {
	return []geometry.Room{{
		Rect:       geometry.Rect{MinX: 0, MinY: 0, MaxX: p.width, MaxY: p.depth},
		FloorIndex: floorIndex,
		ID:         1,
	}}, nil
}

func TestGenerateUnitCubeFloorScenario(t *testing.T) {
	cfg := kernelconfig.Default()
	orch := pipeline.New(singleRoomProvider{width: 10, depth: 8}, cfg, nil)

	manifestPath := filepath.Join(t.TempDir(), "manifest.json")
	spec := pipeline.BuildingSpec{Width: 10, Depth: 8, Floors: 1, Seed: 42, RoofType: pipeline.RoofFlat, SpecID: "scenario-1"}

	out, err := orch.Generate(spec, manifestPath, pipeline.FormatGLB)
	require.NoError(t, err)

	require.Len(t, out.Floors, 1)
	assert.Equal(t, 0, out.Floors[0].Index)
	assert.Equal(t, 1, out.Floors[0].RoomCount)
	assert.Equal(t, 4, out.Floors[0].WallSegmentCount)
	assert.Equal(t, pipeline.RoofFlat, out.RoofType)
	assert.Equal(t, manifestPath, out.ManifestPath)

	_, err = os.Stat(manifestPath)
	require.NoError(t, err)
}

func TestGenerateAssignsSpecIDWhenEmpty(t *testing.T) {
	cfg := kernelconfig.Default()
	orch := pipeline.New(singleRoomProvider{width: 6, depth: 6}, cfg, nil)
	manifestPath := filepath.Join(t.TempDir(), "manifest.json")

	out, err := orch.Generate(pipeline.BuildingSpec{Width: 6, Depth: 6, Floors: 1, RoofType: pipeline.RoofFlat}, manifestPath, pipeline.FormatGLB)
	require.NoError(t, err)
	assert.NotEmpty(t, out.SpecID)
}

func TestGenerateMultiFloorStacking(t *testing.T) {
	cfg := kernelconfig.Default()
	orch := pipeline.New(floorplan.NewGenerator(), cfg, nil)
	manifestPath := filepath.Join(t.TempDir(), "manifest.json")

	spec := pipeline.BuildingSpec{Width: 12, Depth: 9, Floors: 3, Seed: 7, RoofType: pipeline.RoofFlat, SpecID: "scenario-6"}
	out, err := orch.Generate(spec, manifestPath, pipeline.FormatGLB)
	require.NoError(t, err)
	require.Len(t, out.Floors, 3)
	for i, f := range out.Floors {
		assert.Equal(t, i, f.Index)
		assert.Greater(t, f.RoomCount, 0)
		assert.GreaterOrEqual(t, f.WallSegmentCount, 4)
	}
}

func TestGenerateRejectsZeroFloors(t *testing.T) {
	cfg := kernelconfig.Default()
	orch := pipeline.New(singleRoomProvider{width: 6, depth: 6}, cfg, nil)
	_, err := orch.Generate(pipeline.BuildingSpec{Width: 6, Depth: 6, Floors: 0}, filepath.Join(t.TempDir(), "m.json"), pipeline.FormatGLB)
	require.Error(t, err)
}
