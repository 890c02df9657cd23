package cubemap

import (
	"fmt"
	"iter"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Coords addresses one patch of the cube grid at a given face resolution.
// Values produced by this package are always in range, so two Coords are the
// same patch exactly when they compare equal.
type Coords struct {
	Face Face
	X, Y uint32
}

func (c Coords) String() string {
	return fmt.Sprintf("%s(%d,%d)", c.Face, c.X, c.Y)
}

// Valid reports whether c lies on the grid of the given face resolution.
func (c Coords) Valid(faceRes uint32) bool {
	return c.Face.Valid() && c.X < faceRes && c.Y < faceRes
}

// warp maps a linear face coordinate in [-1, 1] to the gnomonic plane.
// Face edges map exactly onto the cube edges so shared seams agree.
func warp(a float64) float64 {
	switch {
	case a >= 1:
		return 1
	case a <= -1:
		return -1
	}
	return math.Tan(a * math.Pi / 4)
}

// unwarp is the inverse of warp.
func unwarp(a float64) float64 {
	return math.Atan(a) * 4 / math.Pi
}

// FaceDirection returns the unit direction through face coordinate (s, t),
// where both range over [0, 1] across the whole face.
func FaceDirection(f Face, s, t float64) mgl64.Vec3 {
	b := bases[f]
	a := warp(2*s - 1)
	c := warp(2*t - 1)
	return b.n.Add(b.u.Mul(a)).Add(b.v.Mul(c)).Normalize()
}

// Project returns the face a direction points at and its face coordinate.
// The dominant axis selects the face; ties resolve in x, y, z order.
func Project(dir mgl64.Vec3) (Face, float64, float64) {
	ax, ay, az := math.Abs(dir[0]), math.Abs(dir[1]), math.Abs(dir[2])

	var f Face
	switch {
	case ax >= ay && ax >= az:
		f = PX
		if dir[0] < 0 {
			f = NX
		}
	case ay >= az:
		f = PY
		if dir[1] < 0 {
			f = NY
		}
	default:
		f = PZ
		if dir[2] < 0 {
			f = NZ
		}
	}

	b := bases[f]
	dn := dir.Dot(b.n)
	s := (unwarp(dir.Dot(b.u)/dn) + 1) / 2
	t := (unwarp(dir.Dot(b.v)/dn) + 1) / 2
	return f, s, t
}

// FromVector returns the patch containing dir at the given face resolution.
// dir need not be normalized but must be non-zero.
func FromVector(faceRes uint32, dir mgl64.Vec3) Coords {
	f, s, t := Project(dir)
	return Coords{Face: f, X: cell(s, faceRes), Y: cell(t, faceRes)}
}

func cell(s float64, faceRes uint32) uint32 {
	v := math.Floor(s * float64(faceRes))
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v >= float64(faceRes) {
		return faceRes - 1
	}
	return uint32(v)
}

// Direction returns the unit direction at local coordinate (s, t) of the
// patch, where (0, 0) is the patch's low corner and (1, 1) its high corner.
func (c Coords) Direction(faceRes uint32, s, t float64) mgl64.Vec3 {
	n := float64(faceRes)
	return FaceDirection(c.Face, (float64(c.X)+s)/n, (float64(c.Y)+t)/n)
}

// Center returns the direction through the middle of the patch.
func (c Coords) Center(faceRes uint32) mgl64.Vec3 {
	return c.Direction(faceRes, 0.5, 0.5)
}

// Corners returns the four corner directions in the order
// (0,0), (1,0), (0,1), (1,1).
func (c Coords) Corners(faceRes uint32) [4]mgl64.Vec3 {
	return [4]mgl64.Vec3{
		c.Direction(faceRes, 0, 0),
		c.Direction(faceRes, 1, 0),
		c.Direction(faceRes, 0, 1),
		c.Direction(faceRes, 1, 1),
	}
}

// Step returns the patch adjacent to c across edge e. Steps off the face
// are resolved through the face adjacency table.
func (c Coords) Step(faceRes uint32, e Edge) Coords {
	x, y := int64(c.X), int64(c.Y)
	switch e {
	case EdgeLeft:
		x--
	case EdgeRight:
		x++
	case EdgeBottom:
		y--
	case EdgeTop:
		y++
	}

	last := int64(faceRes) - 1
	if x >= 0 && x <= last && y >= 0 && y <= last {
		return Coords{Face: c.Face, X: uint32(x), Y: uint32(y)}
	}

	cr := adjacency[c.Face][e]
	p := c.X
	if e.vertical() {
		p = c.Y
	}
	if cr.flip {
		p = faceRes - 1 - p
	}

	switch cr.edge {
	case EdgeLeft:
		return Coords{Face: cr.face, X: 0, Y: p}
	case EdgeRight:
		return Coords{Face: cr.face, X: faceRes - 1, Y: p}
	case EdgeBottom:
		return Coords{Face: cr.face, X: p, Y: 0}
	default:
		return Coords{Face: cr.face, X: p, Y: faceRes - 1}
	}
}

// Neighbors returns the four edge-adjacent patches in Edges order.
func (c Coords) Neighbors(faceRes uint32) [4]Coords {
	var out [4]Coords
	for i, e := range Edges {
		out[i] = c.Step(faceRes, e)
	}
	return out
}

// Samples yields gridRes×gridRes unit directions evenly covering the patch,
// in row-major order: index i is grid point (i%gridRes, i/gridRes). The grid
// includes the patch edges, so adjacent patches share their border samples.
// A gridRes of 1 yields the patch center; 0 yields nothing.
func (c Coords) Samples(faceRes uint32, gridRes int) iter.Seq2[int, mgl64.Vec3] {
	return func(yield func(int, mgl64.Vec3) bool) {
		if gridRes <= 0 {
			return
		}
		if gridRes == 1 {
			yield(0, c.Center(faceRes))
			return
		}

		last := float64(gridRes - 1)
		for j := 0; j < gridRes; j++ {
			for i := 0; i < gridRes; i++ {
				if !yield(j*gridRes+i, c.Direction(faceRes, float64(i)/last, float64(j)/last)) {
					return
				}
			}
		}
	}
}
