package viewer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// patchesPerSecond is how far the viewpoint travels while an arrow key is held.
const patchesPerSecond = 2.0

// tangentFrame returns unit east and north vectors at dir. At the poles,
// where east is undefined, the frame is derived from the X axis instead.
func tangentFrame(dir mgl64.Vec3) (east, north mgl64.Vec3) {
	up := mgl64.Vec3{0, 1, 0}
	east = up.Cross(dir)
	if east.Len() < 1e-9 {
		east = dir.Cross(mgl64.Vec3{1, 0, 0})
	}
	east = east.Normalize()
	north = dir.Cross(east).Normalize()
	return east, north
}

// steer moves the unit direction dir along the sphere by the given angles in
// radians, eastward then northward, and returns the new unit direction.
func steer(dir mgl64.Vec3, eastAngle, northAngle float64) mgl64.Vec3 {
	if eastAngle == 0 && northAngle == 0 {
		return dir
	}
	east, north := tangentFrame(dir)
	// Moving east rotates about north and moving north rotates about -east.
	q := mgl64.QuatRotate(northAngle, east.Mul(-1)).Mul(mgl64.QuatRotate(eastAngle, north))
	return q.Rotate(dir).Normalize()
}

// patchAngle returns the approximate angle subtended by one patch.
func patchAngle(faceRes uint32) float64 {
	return math.Pi / 2 / float64(faceRes)
}
