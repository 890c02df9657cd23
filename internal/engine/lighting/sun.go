// Package lighting provides lighting utilities for 3D rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// SunDirection returns the unit vector pointing towards a sun at the given
// azimuth (degrees around +Y, 0 = +Z) and elevation (degrees above the XZ
// plane) in the render frame, where +Y is local up.
func SunDirection(azimuth, elevation float64) mgl32.Vec3 {
	az := azimuth * math.Pi / 180
	el := elevation * math.Pi / 180

	sinEl, cosEl := math.Sincos(el)
	sinAz, cosAz := math.Sincos(az)
	return mgl32.Vec3{
		float32(cosEl * sinAz),
		float32(sinEl),
		float32(cosEl * cosAz),
	}
}
