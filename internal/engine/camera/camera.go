// Package camera provides camera implementations for 3D rendering.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitCamera orbits around a center point.
type OrbitCamera struct {
	// Center point to orbit around
	Center mgl32.Vec3

	// Spherical coordinates
	Distance  float32 // Distance from center
	RotationX float32 // Pitch (vertical angle, radians)
	RotationY float32 // Yaw (horizontal angle, radians)

	// Constraints
	MinDistance float32
	MaxDistance float32
	MinPitch    float32
	MaxPitch    float32

	// Sensitivity
	DragSensitivity float32
	ZoomSensitivity float32
}

// NewOrbitCamera creates a new orbit camera with default settings.
func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Distance:        200.0,
		RotationX:       0.5,
		RotationY:       0.0,
		MinDistance:     1.0,
		MaxDistance:     100000.0,
		MinPitch:        -1.5,
		MaxPitch:        1.5,
		DragSensitivity: 0.005,
		ZoomSensitivity: 0.1,
	}
}

// Position returns the camera position in render space.
func (c *OrbitCamera) Position() mgl32.Vec3 {
	sinX, cosX := math.Sincos(float64(c.RotationX))
	sinY, cosY := math.Sincos(float64(c.RotationY))
	offset := mgl32.Vec3{
		float32(cosX * sinY),
		float32(sinX),
		float32(cosX * cosY),
	}
	return c.Center.Add(offset.Mul(c.Distance))
}

// ViewMatrix returns the view matrix for this camera.
func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Center, mgl32.Vec3{0, 1, 0})
}

// ProjectionMatrix returns a perspective projection whose far plane keeps
// the whole zoom range visible.
func (c *OrbitCamera) ProjectionMatrix(fovDegrees, aspect float32) mgl32.Mat4 {
	near := c.Distance * 0.001
	if near < 0.01 {
		near = 0.01
	}
	far := c.Distance * 20
	return mgl32.Perspective(mgl32.DegToRad(fovDegrees), aspect, near, far)
}

// HandleDrag updates rotation based on mouse drag delta.
func (c *OrbitCamera) HandleDrag(deltaX, deltaY float32) {
	c.RotationY -= deltaX * c.DragSensitivity
	c.RotationX = mgl32.Clamp(c.RotationX+deltaY*c.DragSensitivity, c.MinPitch, c.MaxPitch)
}

// HandleZoom updates distance based on scroll wheel delta.
func (c *OrbitCamera) HandleZoom(delta float32) {
	c.Distance = mgl32.Clamp(c.Distance-delta*c.Distance*c.ZoomSensitivity, c.MinDistance, c.MaxDistance)
}

// FitToBounds centers the camera on a bounding box and backs off far enough
// to see all of it.
func (c *OrbitCamera) FitToBounds(lo, hi mgl32.Vec3) {
	c.Center = lo.Add(hi).Mul(0.5)

	size := hi.Sub(lo)
	maxSize := size.X()
	if size.Z() > maxSize {
		maxSize = size.Z()
	}
	c.Distance = mgl32.Clamp(maxSize*0.8, c.MinDistance, c.MaxDistance)

	c.RotationX = 0.6 // Look down at ~35 degrees
	c.RotationY = 0.0
}
