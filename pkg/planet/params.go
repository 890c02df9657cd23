// Package planet provides the procedural height field of a planet.
//
// Heights are a pure function of a unit direction from the planet center and
// the immutable Params the terrain was built with, so renderers and physics
// backends that sample the same Terrain always agree.
package planet

import (
	"errors"
	"fmt"
	"math"

	"go.uber.org/multierr"
)

// Sampling errors.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrSizeMismatch    = errors.New("output buffer size mismatch")
)

// MaxDepth is the deepest subdivision whose face grid still fits in uint32.
const MaxDepth = 30

// NoiseParams configures the fractal noise driving the terrain.
type NoiseParams struct {
	Seed        int64   `yaml:"seed"`
	Octaves     int     `yaml:"octaves"`
	Frequency   float64 `yaml:"frequency"`
	Persistence float64 `yaml:"persistence"`
	Lacunarity  float64 `yaml:"lacunarity"`
}

// Params describes a planet. A Params value is never modified after a
// Terrain is built from it.
type Params struct {
	MinRadius   float64     `yaml:"min_radius"`   // Sea-level sphere radius
	HeightRange float64     `yaml:"height_range"` // Highest elevation above MinRadius
	Depth       uint32      `yaml:"depth"`        // Face grid side is 2^Depth
	Noise       NoiseParams `yaml:"noise"`

	// DomainScale projects surface points (direction * MinRadius) into
	// noise space.
	DomainScale float64 `yaml:"domain_scale"`
}

// DefaultParams returns an Earth-sized planet with 10 km of relief.
func DefaultParams() Params {
	return Params{
		MinRadius:   637100,
		HeightRange: 10000,
		Depth:       16,
		Noise: NoiseParams{
			Seed:        6557,
			Octaves:     14,
			Frequency:   1.0 / 64,
			Persistence: 0.687,
			Lacunarity:  2.0,
		},
		DomainScale: 5e-5,
	}
}

// FaceResolution returns the number of patches along one cube face edge.
func (p Params) FaceResolution() uint32 {
	return 1 << p.Depth
}

// Validate reports every constraint p violates.
func (p Params) Validate() error {
	var errs error
	positive := func(name string, v float64) {
		if !(v > 0) || math.IsInf(v, 0) {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s must be positive and finite, got %v", ErrInvalidArgument, name, v))
		}
	}

	positive("min_radius", p.MinRadius)
	if !(p.HeightRange >= 0) || math.IsInf(p.HeightRange, 0) {
		errs = multierr.Append(errs, fmt.Errorf("%w: height_range must be non-negative and finite, got %v", ErrInvalidArgument, p.HeightRange))
	}
	if p.Depth > MaxDepth {
		errs = multierr.Append(errs, fmt.Errorf("%w: depth must be at most %d, got %d", ErrInvalidArgument, MaxDepth, p.Depth))
	}
	if p.Noise.Octaves < 1 || p.Noise.Octaves > 32 {
		errs = multierr.Append(errs, fmt.Errorf("%w: noise.octaves must be in [1, 32], got %d", ErrInvalidArgument, p.Noise.Octaves))
	}
	positive("noise.frequency", p.Noise.Frequency)
	positive("noise.persistence", p.Noise.Persistence)
	positive("noise.lacunarity", p.Noise.Lacunarity)
	positive("domain_scale", p.DomainScale)
	return errs
}
