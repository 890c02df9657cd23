package planet

import (
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetterrain/pkg/cubemap"
)

// Terrain shaping constants.
const (
	noiseRelief    = 1500 // Vertical scale of the cubed noise term
	latitudeRelief = 3000 // Elevation gained from equator to pole
	latitudeOffset = 0.3  // Latitude below which the bias lowers terrain

	unitTolerance = 1e-6
)

// Sampler is what a collision backend needs to build its own height grids.
type Sampler interface {
	// Sample fills out with resolution² heights over patch c, in the
	// row-major order of c.Samples.
	Sample(resolution int, c cubemap.Coords, out []float32) error
	// FaceResolution is the number of patches along a cube face edge.
	FaceResolution() uint32
	MinHeight() float32
	MaxHeight() float32
}

// Terrain evaluates planet heights. It holds no mutable state and is safe
// for concurrent use.
type Terrain struct {
	params  Params
	noise   *perlin.Perlin
	norm    float64 // Sum of octave amplitudes; a bound, so typical fBm values stay well inside [-1, 1]
	scale   float64 // Surface point to noise space
	offset  float64 // Keeps noise coordinates positive
	faceRes uint32
}

var _ Sampler = (*Terrain)(nil)

// New validates params and builds the terrain's noise source.
func New(params Params) (*Terrain, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := params.Noise
	norm, amp := 0.0, 1.0
	for i := 0; i < n.Octaves; i++ {
		norm += amp
		amp *= n.Persistence
	}

	scale := params.MinRadius * params.DomainScale * n.Frequency
	return &Terrain{
		params:  params,
		noise:   perlin.NewPerlin(1/n.Persistence, n.Lacunarity, int32(n.Octaves), n.Seed),
		norm:    norm,
		scale:   scale,
		offset:  math.Ceil(scale) + 1,
		faceRes: params.FaceResolution(),
	}, nil
}

// Params returns the parameters the terrain was built from.
func (t *Terrain) Params() Params { return t.params }

// Depth returns the subdivision depth.
func (t *Terrain) Depth() uint32 { return t.params.Depth }

// FaceResolution returns 2^Depth.
func (t *Terrain) FaceResolution() uint32 { return t.faceRes }

// MinHeight is always zero: heights are clamped at sea level.
func (t *Terrain) MinHeight() float32 { return 0 }

// MaxHeight returns the height range.
func (t *Terrain) MaxHeight() float32 { return float32(t.params.HeightRange) }

// MinRadius returns the sea-level radius.
func (t *Terrain) MinRadius() float64 { return t.params.MinRadius }

// MaxRadius returns the radius of the highest possible point.
func (t *Terrain) MaxRadius() float64 { return t.params.MinRadius + t.params.HeightRange }

// Noise returns the normalized fractal noise at direction dir, roughly in
// [-1, 1].
func (t *Terrain) Noise(dir mgl64.Vec3) float64 {
	// Noise3D switches to 2D noise for negative z, so the sampled
	// region is shifted into the positive octant.
	q := dir.Mul(t.scale)
	return t.noise.Noise3D(q[0]+t.offset, q[1]+t.offset, q[2]+t.offset) / t.norm
}

// HeightAt returns the elevation above MinRadius in direction dir, which
// must be a unit vector.
func (t *Terrain) HeightAt(dir mgl64.Vec3) (float64, error) {
	l := dir.Len()
	if math.IsNaN(l) || math.Abs(l-1) > unitTolerance {
		return 0, fmt.Errorf("%w: direction %v is not a unit vector (length %g)", ErrInvalidArgument, dir, l)
	}
	return t.height(dir), nil
}

func (t *Terrain) height(dir mgl64.Vec3) float64 {
	n := 1 + t.Noise(dir)
	lat := math.Abs(dir[1])

	h := (n*n*n-1)*noiseRelief + (lat-latitudeOffset)*latitudeRelief
	return math.Max(0, math.Min(h, t.params.HeightRange))
}

// Sample fills out with resolution² heights over patch c.
func (t *Terrain) Sample(resolution int, c cubemap.Coords, out []float32) error {
	if resolution < 1 {
		return fmt.Errorf("%w: sample resolution %d", ErrInvalidArgument, resolution)
	}
	if !c.Valid(t.faceRes) {
		return fmt.Errorf("%w: patch %s outside face resolution %d", ErrInvalidArgument, c, t.faceRes)
	}
	if len(out) != resolution*resolution {
		return fmt.Errorf("%w: got %d, need %d", ErrSizeMismatch, len(out), resolution*resolution)
	}

	for i, dir := range c.Samples(t.faceRes, resolution) {
		out[i] = float32(t.height(dir))
	}
	return nil
}
