// Package config handles gridgen configuration loading and management.
package config

import (
	"errors"
	"fmt"

	"github.com/Faultbox/gridmesh/pkg/grid"
	"github.com/Faultbox/gridmesh/pkg/math"
)

// Config holds all generator settings.
type Config struct {
	Grid    GridConfig    `yaml:"grid"`
	Target  TargetConfig  `yaml:"target"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// GridConfig holds mesh generation settings.
type GridConfig struct {
	Width   int        `yaml:"width"`
	Height  int        `yaml:"height"`
	Scheme  string     `yaml:"scheme"`  // reference | row_offset
	Spacing float32    `yaml:"spacing"` // Distance between neighbouring grid points
	Origin  [3]float32 `yaml:"origin"`  // Position of grid point (0, 0)
}

// TargetConfig holds the model data file that receives the arrays.
type TargetConfig struct {
	Path string `yaml:"path"`
}

// ExportConfig holds optional exports of the generated mesh.
type ExportConfig struct {
	GLBPath string `yaml:"glb_path"` // Empty disables GLB export
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Grid: GridConfig{
			Width:   30,
			Height:  30,
			Scheme:  grid.SchemeReference.String(),
			Spacing: 1,
		},
		Target: TargetConfig{
			Path: "../bin/data/models/cubesphere.dt",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Dimensions returns the configured grid size.
func (c *Config) Dimensions() grid.Dimensions {
	return grid.Dimensions{Width: c.Grid.Width, Height: c.Grid.Height}
}

// GridOptions converts the grid settings into generation options.
func (c *Config) GridOptions() (grid.Options, error) {
	scheme, err := grid.ParseScheme(c.Grid.Scheme)
	if err != nil {
		return grid.Options{}, err
	}
	return grid.Options{
		Scheme:  scheme,
		Spacing: c.Grid.Spacing,
		Origin:  math.Vec3{X: c.Grid.Origin[0], Y: c.Grid.Origin[1], Z: c.Grid.Origin[2]},
	}, nil
}

// Validate reports the first setting that cannot produce a mesh.
func (c *Config) Validate() error {
	if err := c.Dimensions().Validate(); err != nil {
		return err
	}
	if _, err := grid.ParseScheme(c.Grid.Scheme); err != nil {
		return err
	}
	if c.Grid.Spacing <= 0 {
		return fmt.Errorf("grid spacing must be positive, got %v", c.Grid.Spacing)
	}
	if c.Target.Path == "" {
		return errors.New("target path is empty")
	}
	return nil
}
