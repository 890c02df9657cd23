package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetterrain/pkg/planet"
)

// RenderOrigin is the local frame meshes are built in. Keeping vertices
// relative to a nearby origin preserves float32 precision on planet-sized
// coordinates.
type RenderOrigin struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// IdentityOrigin is the planet-centered frame.
var IdentityOrigin = RenderOrigin{Orientation: mgl64.QuatIdent()}

// ToLocal maps a planet-space point into the origin frame.
func (o RenderOrigin) ToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return o.Orientation.Inverse().Rotate(p.Sub(o.Position))
}

// ToWorld maps a point in the origin frame back to planet space.
func (o RenderOrigin) ToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return o.Orientation.Rotate(p).Add(o.Position)
}

// Up returns the origin frame's +Y axis in planet space.
func (o RenderOrigin) Up() mgl64.Vec3 {
	return o.Orientation.Rotate(mgl64.Vec3{0, 1, 0})
}

// OriginAbove places an origin clearance units above the surface in
// direction dir, with its +Y axis pointing away from the planet center.
func OriginAbove(t *planet.Terrain, dir mgl64.Vec3, clearance float64) (RenderOrigin, error) {
	if dir.Len() == 0 {
		return RenderOrigin{}, fmt.Errorf("%w: zero viewpoint direction", planet.ErrInvalidArgument)
	}
	dir = dir.Normalize()

	h, err := t.HeightAt(dir)
	if err != nil {
		return RenderOrigin{}, err
	}
	return RenderOrigin{
		Position:    dir.Mul(t.MinRadius() + clearance + h),
		Orientation: mgl64.QuatBetweenVectors(mgl64.Vec3{0, 1, 0}, dir),
	}, nil
}
