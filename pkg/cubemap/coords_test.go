package cubemap

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const geomEpsilon = 1e-9

func near(a, b mgl64.Vec3, eps float64) bool {
	return a.Sub(b).Len() <= eps
}

// sharedCorners counts corner directions two patches have in common.
func sharedCorners(a, b Coords, faceRes uint32) int {
	ca := a.Corners(faceRes)
	cb := b.Corners(faceRes)
	n := 0
	for _, p := range ca {
		for _, q := range cb {
			if near(p, q, geomEpsilon) {
				n++
				break
			}
		}
	}
	return n
}

func allCoords(faceRes uint32) []Coords {
	var out []Coords
	for _, f := range Faces {
		for y := uint32(0); y < faceRes; y++ {
			for x := uint32(0); x < faceRes; x++ {
				out = append(out, Coords{Face: f, X: x, Y: y})
			}
		}
	}
	return out
}

func TestNeighborsSymmetric(t *testing.T) {
	for faceRes := uint32(1); faceRes <= 5; faceRes++ {
		for _, c := range allCoords(faceRes) {
			for _, nb := range c.Neighbors(faceRes) {
				if !nb.Valid(faceRes) {
					t.Fatalf("N=%d: neighbor %s of %s is out of range", faceRes, nb, c)
				}
				found := false
				for _, back := range nb.Neighbors(faceRes) {
					if back == c {
						found = true
						break
					}
				}
				if !found {
					t.Errorf("N=%d: %s is a neighbor of %s but not the other way around", faceRes, nb, c)
				}
			}
		}
	}
}

func TestNeighborsDistinctAndAdjacent(t *testing.T) {
	for faceRes := uint32(1); faceRes <= 5; faceRes++ {
		for _, c := range allCoords(faceRes) {
			nbs := c.Neighbors(faceRes)
			seen := make(map[Coords]bool)
			for _, nb := range nbs {
				if nb == c {
					t.Errorf("N=%d: %s lists itself as a neighbor", faceRes, c)
				}
				if seen[nb] {
					t.Errorf("N=%d: %s lists %s twice", faceRes, c, nb)
				}
				seen[nb] = true

				if got := sharedCorners(c, nb, faceRes); got != 2 {
					t.Errorf("N=%d: %s and neighbor %s share %d corners, expected 2", faceRes, c, nb, got)
				}
			}
		}
	}
}

func TestStepAcrossEveryEdgeAndCorner(t *testing.T) {
	const faceRes = 8
	last := uint32(faceRes - 1)

	for _, f := range Faces {
		for _, e := range Edges {
			// Both corner cells of the edge being crossed.
			var cells [2]Coords
			switch e {
			case EdgeLeft:
				cells = [2]Coords{{f, 0, 0}, {f, 0, last}}
			case EdgeRight:
				cells = [2]Coords{{f, last, 0}, {f, last, last}}
			case EdgeBottom:
				cells = [2]Coords{{f, 0, 0}, {f, last, 0}}
			case EdgeTop:
				cells = [2]Coords{{f, 0, last}, {f, last, last}}
			}

			wantFace, _ := f.Adjacent(e)
			for _, c := range cells {
				nb := c.Step(faceRes, e)
				if nb.Face != wantFace {
					t.Errorf("%s across %s: expected face %s, got %s", c, e, wantFace, nb.Face)
				}
				if got := sharedCorners(c, nb, faceRes); got != 2 {
					t.Errorf("%s across %s -> %s: share %d corners, expected 2", c, e, nb, got)
				}

				_, ge := f.Adjacent(e)
				if back := nb.Step(faceRes, ge); back != c {
					t.Errorf("%s across %s -> %s, stepping back across %s gave %s", c, e, nb, ge, back)
				}
			}
		}
	}
}

func TestFromVectorRoundTrip(t *testing.T) {
	for _, faceRes := range []uint32{1, 2, 7, 64, 1 << 16} {
		step := uint32(1)
		if faceRes > 16 {
			step = faceRes / 13
		}
		for _, f := range Faces {
			for y := uint32(0); y < faceRes; y += step {
				for x := uint32(0); x < faceRes; x += step {
					c := Coords{Face: f, X: x, Y: y}
					if got := FromVector(faceRes, c.Center(faceRes)); got != c {
						t.Errorf("N=%d: FromVector(center of %s) = %s", faceRes, c, got)
					}
				}
			}
		}
	}
}

func TestFromVectorSampleLiesInPatch(t *testing.T) {
	const faceRes = 1 << 10
	dirs := []mgl64.Vec3{
		{0.435, 0.12, -0.5},
		{0, 1, 0},
		{-1, -1, -1},
		{0.3, -0.9, 0.1},
		{1e-3, 2e-3, -1},
	}
	for _, d := range dirs {
		d = d.Normalize()
		c := FromVector(faceRes, d)

		// Every interior sample of the patch must map back to the same patch.
		for i, s := range c.Samples(faceRes, 5) {
			x, y := i%5, i/5
			if x == 0 || y == 0 || x == 4 || y == 4 {
				continue
			}
			if got := FromVector(faceRes, s); got != c {
				t.Errorf("sample %d of %s maps to %s", i, c, got)
			}
		}

		// The original direction lies within the patch's angular extent.
		center := c.Center(faceRes)
		radius := 0.0
		for _, corner := range c.Corners(faceRes) {
			radius = math.Max(radius, math.Acos(math.Min(1, center.Dot(corner))))
		}
		if ang := math.Acos(math.Min(1, center.Dot(d))); ang > radius+geomEpsilon {
			t.Errorf("direction %v is %g rad from the center of %s, patch radius %g", d, ang, c, radius)
		}
	}
}

func TestFromVectorFaces(t *testing.T) {
	tests := []struct {
		dir  mgl64.Vec3
		want Face
	}{
		{mgl64.Vec3{1, 0, 0}, PX},
		{mgl64.Vec3{-1, 0.2, 0.1}, NX},
		{mgl64.Vec3{0, 1, 0}, PY},
		{mgl64.Vec3{0.3, -2, 0}, NY},
		{mgl64.Vec3{0, 0, 5}, PZ},
		{mgl64.Vec3{0.1, 0.1, -1}, NZ},
	}
	for _, tt := range tests {
		if got := FromVector(4, tt.dir); got.Face != tt.want {
			t.Errorf("FromVector(%v) face = %s, expected %s", tt.dir, got.Face, tt.want)
		}
	}

	if got := FromVector(4, mgl64.Vec3{0, 1, 0}); got != (Coords{PY, 2, 2}) {
		t.Errorf("expected +y pole at +y(2,2), got %s", got)
	}
}

func TestSamplesOrderAndCount(t *testing.T) {
	const faceRes = 16
	c := Coords{Face: PZ, X: 3, Y: 9}

	for _, r := range []int{1, 2, 4, 9} {
		count := 0
		for i, d := range c.Samples(faceRes, r) {
			if i != count {
				t.Fatalf("r=%d: expected index %d, got %d", r, count, i)
			}
			if l := d.Len(); math.Abs(l-1) > 1e-12 {
				t.Errorf("r=%d: sample %d has length %g", r, i, l)
			}
			if r > 1 {
				want := c.Direction(faceRes, float64(i%r)/float64(r-1), float64(i/r)/float64(r-1))
				if !near(d, want, 1e-15) {
					t.Errorf("r=%d: sample %d = %v, expected %v", r, i, d, want)
				}
			}
			count++
		}
		if count != r*r {
			t.Errorf("r=%d: expected %d samples, got %d", r, r*r, count)
		}
	}

	for range c.Samples(faceRes, 0) {
		t.Fatal("expected no samples for zero resolution")
	}
}

func TestSamplesRestartableAndStoppable(t *testing.T) {
	c := Coords{Face: NX, X: 1, Y: 1}
	seq := c.Samples(4, 3)

	var first, second []mgl64.Vec3
	for _, d := range seq {
		first = append(first, d)
	}
	for _, d := range seq {
		second = append(second, d)
	}
	if len(first) != 9 || len(second) != 9 {
		t.Fatalf("expected 9 samples per pass, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("pass mismatch at %d: %v vs %v", i, first[i], second[i])
		}
	}

	n := 0
	for range seq {
		n++
		if n == 4 {
			break
		}
	}
	if n != 4 {
		t.Errorf("expected early break after 4 samples, got %d", n)
	}
}

func TestSamplesShareBordersAcrossFaces(t *testing.T) {
	const faceRes = 4
	const r = 5
	c := Coords{Face: PX, X: faceRes - 1, Y: 2}
	nb := c.Step(faceRes, EdgeRight)

	collect := func(p Coords) []mgl64.Vec3 {
		var out []mgl64.Vec3
		for _, d := range p.Samples(faceRes, r) {
			out = append(out, d)
		}
		return out
	}
	a, b := collect(c), collect(nb)

	shared := 0
	for _, p := range a {
		for _, q := range b {
			if near(p, q, geomEpsilon) {
				shared++
				break
			}
		}
	}
	if shared != r {
		t.Errorf("%s and %s share %d border samples, expected %d", c, nb, shared, r)
	}
}
