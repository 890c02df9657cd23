package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// EnvPrefix starts the name of every environment override.
const EnvPrefix = "PLANET_"

// loadEnvFile adds the variables of a .env file to the environment. Variables
// that are already set win. A missing file is not an error.
func loadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// applyEnv copies PLANET_* environment variables into cfg.
func applyEnv(cfg *Config) error {
	var errs error

	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok {
			*dst = v
		}
	}
	parse := func(name string, set func(string) error) {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok {
			return
		}
		if err := set(v); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%s%s=%q: %w", EnvPrefix, name, v, err))
		}
	}
	float := func(dst *float64) func(string) error {
		return func(s string) error {
			f, err := strconv.ParseFloat(s, 64)
			*dst = f
			return err
		}
	}
	integer := func(dst *int) func(string) error {
		return func(s string) error {
			n, err := strconv.Atoi(s)
			*dst = n
			return err
		}
	}

	parse("SEED", func(s string) error {
		n, err := strconv.ParseInt(s, 10, 64)
		cfg.Terrain.Noise.Seed = n
		return err
	})
	parse("DEPTH", func(s string) error {
		n, err := strconv.ParseUint(s, 10, 32)
		cfg.Terrain.Depth = uint32(n)
		return err
	})
	parse("OCTAVES", integer(&cfg.Terrain.Noise.Octaves))
	parse("MIN_RADIUS", float(&cfg.Terrain.MinRadius))
	parse("HEIGHT_RANGE", float(&cfg.Terrain.HeightRange))
	parse("RINGS", integer(&cfg.View.Rings))
	parse("MESH_RESOLUTION", integer(&cfg.View.MeshResolution))
	parse("WORKERS", integer(&cfg.View.Workers))
	parse("TEXTURE_RESOLUTION", integer(&cfg.Texture.Resolution))
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FILE", &cfg.Logging.LogFile)
	str("SCREENSHOT_DIR", &cfg.Graphics.ScreenshotDir)

	return errs
}
