package debug

import "github.com/go-gl/mathgl/mgl32"

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// BBoxWireframe returns line-list vertices outlining the box [lo, hi]
// grown by padding on every side, as x, y, z triples.
func BBoxWireframe(lo, hi mgl32.Vec3, padding float32) []float32 {
	for i := 0; i < 3; i++ {
		if lo[i] > hi[i] {
			lo[i], hi[i] = hi[i], lo[i]
		}
		lo[i] -= padding
		hi[i] += padding
	}

	corner := func(bits int) [3]float32 {
		c := [3]float32(lo)
		for i := 0; i < 3; i++ {
			if bits&(1<<i) != 0 {
				c[i] = hi[i]
			}
		}
		return c
	}

	// Every box edge joins two corners that differ in exactly one axis.
	out := make([]float32, 0, BBoxWireframeVertexCount*3)
	for bits := 0; bits < 8; bits++ {
		for axis := 0; axis < 3; axis++ {
			if bits&(1<<axis) != 0 {
				continue
			}
			a, b := corner(bits), corner(bits|1<<axis)
			out = append(out, a[0], a[1], a[2], b[0], b[1], b[2])
		}
	}
	return out
}
