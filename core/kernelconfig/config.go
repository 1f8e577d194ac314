// Package kernelconfig replaces the original module-level mutable
// configuration (MICRO_UNIT, STORY_HEIGHT, ... as bare package globals)
// with an explicit immutable record threaded through every constructor
// that needs it. Loading from file/env is layered on top with viper so
// the CLI and any embedding application can override defaults without
// touching kernel code.
package kernelconfig

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/buildkernel/geokernel/core/gridpos"
)

// Config is the immutable set of architectural constants every kernel
// component derives its geometry from. Nothing in the kernel reads a
// package-level constant directly; everything flows from a Config value.
type Config struct {
	MicroUnit      float64 // base integer-grid unit, meters
	Grid           float64 // 10x MicroUnit
	StoryHeight    float64
	WallHeight     float64
	WallThickness  float64
	MergeDistance  float64 // default weld tolerance for strip welding
	MicroTolerance float64 // documented alternative weld tolerance: MicroUnit * 0.1
}

// Default returns the compile-time defaults enumerated in the spec's
// configuration-constants section.
func Default() Config {
	c := Config{
		MicroUnit:     0.025,
		Grid:          0.25,
		StoryHeight:   3.20,
		WallHeight:    3.00,
		WallThickness: 0.20,
		MergeDistance: 0.005,
	}
	c.MicroTolerance = c.MicroUnit * 0.1
	return c
}

// snapAlias maps the config-surface aliases onto the canonical SnapMode
// set. MODULAR (0.1m) has no canonical match per the spec's Open
// Questions and is intentionally absent here.
var snapAlias = map[string]gridpos.SnapMode{
	"LOOSE":  gridpos.SnapMeso,
	"STRICT": gridpos.SnapMicro,
}

// ResolveSnapAlias normalizes a config-surface alias (LOOSE, STRICT) or a
// canonical name (micro, meso, macro) to a SnapMode. MODULAR and any
// other unrecognized value is rejected.
func ResolveSnapAlias(name string) (gridpos.SnapMode, error) {
	switch name {
	case "micro":
		return gridpos.SnapMicro, nil
	case "meso":
		return gridpos.SnapMeso, nil
	case "macro":
		return gridpos.SnapMacro, nil
	}
	if mode, ok := snapAlias[name]; ok {
		return mode, nil
	}
	return 0, fmt.Errorf("kernelconfig: %w: %q", gridpos.ErrInvalidSnapMode, name)
}

// Load reads overrides for the default Config from a file (any format
// viper supports — YAML, JSON, TOML) and environment variables prefixed
// GEOKERNEL_. An empty path loads environment overrides only.
func Load(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("GEOKERNEL")
	v.AutomaticEnv()
	v.SetDefault("micro_unit", cfg.MicroUnit)
	v.SetDefault("grid", cfg.Grid)
	v.SetDefault("story_height", cfg.StoryHeight)
	v.SetDefault("wall_height", cfg.WallHeight)
	v.SetDefault("wall_thickness", cfg.WallThickness)
	v.SetDefault("merge_distance", cfg.MergeDistance)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("kernelconfig: reading %s: %w", path, err)
		}
	}

	cfg.MicroUnit = v.GetFloat64("micro_unit")
	cfg.Grid = v.GetFloat64("grid")
	cfg.StoryHeight = v.GetFloat64("story_height")
	cfg.WallHeight = v.GetFloat64("wall_height")
	cfg.WallThickness = v.GetFloat64("wall_thickness")
	cfg.MergeDistance = v.GetFloat64("merge_distance")
	cfg.MicroTolerance = cfg.MicroUnit * 0.1

	return cfg, nil
}
