// Package specfile loads a BuildingSpec from a YAML document on disk,
// the on-disk counterpart of the spec's BuildingSpec input. The CLI demo
// is the only caller; the kernel proper never reads files directly.
package specfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/buildkernel/geokernel/core/pipeline"
)

// document is the YAML wire shape a building spec file is written in.
type document struct {
	Width    float64 `yaml:"width"`
	Depth    float64 `yaml:"depth"`
	Floors   int     `yaml:"floors"`
	Seed     int64   `yaml:"seed"`
	RoofType string  `yaml:"roof_type"`
}

var validRoofTypes = map[string]pipeline.RoofType{
	"flat":   pipeline.RoofFlat,
	"gabled": pipeline.RoofGabled,
	"hip":    pipeline.RoofHip,
	"shed":   pipeline.RoofShed,
}

// Load reads and validates a BuildingSpec from a YAML file at path.
func Load(path string) (pipeline.BuildingSpec, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return pipeline.BuildingSpec{}, fmt.Errorf("specfile: read %s: %w", path, err)
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return pipeline.BuildingSpec{}, fmt.Errorf("specfile: parse %s: %w", path, err)
	}

	if doc.Width <= 0 || doc.Depth <= 0 {
		return pipeline.BuildingSpec{}, fmt.Errorf("specfile: %s: width and depth must be > 0", path)
	}
	if doc.Floors < 1 {
		return pipeline.BuildingSpec{}, fmt.Errorf("specfile: %s: floors must be >= 1", path)
	}
	roof, ok := validRoofTypes[doc.RoofType]
	if !ok {
		return pipeline.BuildingSpec{}, fmt.Errorf("specfile: %s: unrecognized roof_type %q", path, doc.RoofType)
	}

	return pipeline.BuildingSpec{
		Width:    doc.Width,
		Depth:    doc.Depth,
		Floors:   doc.Floors,
		Seed:     doc.Seed,
		RoofType: roof,
	}, nil
}
