// Package config handles planet and viewer configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"

	"github.com/Faultbox/planetterrain/internal/engine/debug"
	"github.com/Faultbox/planetterrain/pkg/planet"
)

// Config holds all settings.
type Config struct {
	Terrain  planet.Params  `yaml:"terrain"`
	View     ViewConfig     `yaml:"view"`
	Texture  TextureConfig  `yaml:"texture"`
	Graphics GraphicsConfig `yaml:"graphics"`
	Logging  LoggingConfig  `yaml:"logging"`

	path string // File the config was loaded from, if any
}

// ViewConfig controls which patches are built and how.
type ViewConfig struct {
	Direction      [3]float64 `yaml:"direction"`       // Viewpoint direction from the planet center
	Rings          int        `yaml:"rings"`           // Neighbor rings around the base patch
	MeshResolution int        `yaml:"mesh_resolution"` // Vertices per patch edge
	Workers        int        `yaml:"workers"`         // Mesh build workers, 0 = one per CPU
	Clearance      float64    `yaml:"clearance"`       // Render origin height above the surface
}

// TextureConfig controls the chunk grid texture.
type TextureConfig struct {
	Resolution int     `yaml:"resolution"`
	Thickness  float64 `yaml:"thickness"`
	Steepness  float64 `yaml:"steepness"`
	MinMipSize int     `yaml:"min_mip_size"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int     `yaml:"width"`
	Height        int     `yaml:"height"`
	Fullscreen    bool    `yaml:"fullscreen"`
	VSync         bool    `yaml:"vsync"`
	MSAA          int     `yaml:"msaa"` // Multisample count, 0 = off
	FOV           float32 `yaml:"fov"`
	SunAzimuth    float64 `yaml:"sun_azimuth"`   // Degrees around local up
	SunElevation  float64 `yaml:"sun_elevation"` // Degrees above the horizon
	ScreenshotDir string  `yaml:"screenshot_dir"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: planet.DefaultParams(),
		View: ViewConfig{
			Direction:      [3]float64{0.435, 0.12, -0.5},
			Rings:          7,
			MeshResolution: 4,
			Workers:        0,
			Clearance:      2,
		},
		Texture: TextureConfig{
			Resolution: 2048,
			Thickness:  0.04,
			Steepness:  8,
			MinMipSize: 4,
		},
		Graphics: GraphicsConfig{
			Width:         1280,
			Height:        720,
			Fullscreen:    false,
			VSync:         true,
			MSAA:          4,
			FOV:           60,
			SunAzimuth:    35,
			SunElevation:  50,
			ScreenshotDir: "screenshots",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Path returns the file the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.path
}

// PlanetParams returns the terrain parameters.
func (c *Config) PlanetParams() planet.Params {
	return c.Terrain
}

// GridStyle returns the grid texture style, keeping the default colors.
func (c *Config) GridStyle() debug.GridStyle {
	style := debug.DefaultGridStyle()
	style.Thickness = c.Texture.Thickness
	style.Steepness = c.Texture.Steepness
	return style
}

// GridCells returns the number of grid cells per texture edge, one per mesh
// cell so the lines outline mesh quads.
func (c *Config) GridCells() int {
	return c.View.MeshResolution - 1
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	errs := c.Terrain.Validate()

	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = multierr.Append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.View.Direction != [3]float64{}, "view.direction must be non-zero")
	check(c.View.Rings >= 0, "view.rings must be non-negative, got %d", c.View.Rings)
	check(c.View.MeshResolution >= 2, "view.mesh_resolution must be at least 2, got %d", c.View.MeshResolution)
	check(c.View.Workers >= 0, "view.workers must be non-negative, got %d", c.View.Workers)
	check(c.View.Clearance >= 0, "view.clearance must be non-negative, got %g", c.View.Clearance)

	check(c.Texture.Resolution >= 2, "texture.resolution must be at least 2, got %d", c.Texture.Resolution)
	check(c.Texture.Thickness >= 0, "texture.thickness must be non-negative, got %g", c.Texture.Thickness)
	check(c.Texture.Steepness > 0, "texture.steepness must be positive, got %g", c.Texture.Steepness)

	check(c.Graphics.Width > 0 && c.Graphics.Height > 0, "graphics size must be positive, got %dx%d", c.Graphics.Width, c.Graphics.Height)
	check(c.Graphics.MSAA >= 0, "graphics.msaa must be non-negative, got %d", c.Graphics.MSAA)
	check(c.Graphics.FOV > 0 && c.Graphics.FOV < 180, "graphics.fov must be in (0, 180), got %g", c.Graphics.FOV)

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = multierr.Append(errs, fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level))
	}

	return errs
}
