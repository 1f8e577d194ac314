package specfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildkernel/geokernel/core/pipeline"
)

func writeSpec(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadValidSpec(t *testing.T) {
	path := writeSpec(t, "width: 10\ndepth: 8\nfloors: 2\nseed: 42\nroof_type: flat\n")
	spec, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, pipeline.BuildingSpec{Width: 10, Depth: 8, Floors: 2, Seed: 42, RoofType: pipeline.RoofFlat}, spec)
}

func TestLoadRejectsBadRoofType(t *testing.T) {
	path := writeSpec(t, "width: 10\ndepth: 8\nfloors: 1\nseed: 1\nroof_type: dome\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsZeroFloors(t *testing.T) {
	path := writeSpec(t, "width: 10\ndepth: 8\nfloors: 0\nseed: 1\nroof_type: flat\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveDimensions(t *testing.T) {
	path := writeSpec(t, "width: 0\ndepth: 8\nfloors: 1\nseed: 1\nroof_type: flat\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
