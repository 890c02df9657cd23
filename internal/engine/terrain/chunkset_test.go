package terrain

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetterrain/pkg/cubemap"
)

func TestChunkSetZeroRings(t *testing.T) {
	dir := mgl64.Vec3{0.435, 0.12, -0.5}.Normalize()
	set := BuildChunkSet(1<<16, dir, 0)
	if len(set) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(set))
	}
	if want := cubemap.FromVector(1<<16, dir); set[0] != want {
		t.Errorf("expected base %s, got %s", want, set[0])
	}

	if set := BuildChunkSet(1<<16, dir, -4); len(set) != 1 {
		t.Errorf("expected negative rings to act as 0, got %d chunks", len(set))
	}
}

func TestChunkSetInteriorCount(t *testing.T) {
	const faceRes = 64
	base := cubemap.Coords{Face: cubemap.PZ, X: 32, Y: 32}
	dir := base.Center(faceRes)

	for k := 0; k <= 7; k++ {
		set := BuildChunkSet(faceRes, dir, k)
		if want := 2*k*k + 2*k + 1; len(set) != want {
			t.Errorf("k=%d: expected %d chunks, got %d", k, want, len(set))
		}
	}
}

func TestChunkSetProperties(t *testing.T) {
	tests := []struct {
		name    string
		base    cubemap.Coords
		faceRes uint32
		rings   int
		count   int
	}{
		{"interior", cubemap.Coords{Face: cubemap.NX, X: 30, Y: 17}, 64, 7, 113},
		{"cube corner", cubemap.Coords{Face: cubemap.PX, X: 0, Y: 0}, 64, 3, 22},
		{"single patch faces", cubemap.Coords{Face: cubemap.PY}, 1, 1, 5},
		{"whole cube", cubemap.Coords{Face: cubemap.PY}, 1, 2, 6},
		{"small face corner", cubemap.Coords{Face: cubemap.PX}, 2, 1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, dist := ExpandChunkSet(tt.base, tt.faceRes, tt.rings)
			if len(set) != tt.count {
				t.Errorf("expected %d chunks, got %d", tt.count, len(set))
			}
			if len(dist) != len(set) {
				t.Errorf("expected %d distances, got %d", len(set), len(dist))
			}
			if set[0] != tt.base {
				t.Errorf("expected base %s first, got %s", tt.base, set[0])
			}

			seen := make(map[cubemap.Coords]bool)
			prev := 0
			for _, c := range set {
				if seen[c] {
					t.Errorf("duplicate chunk %s", c)
				}
				seen[c] = true

				if !c.Valid(tt.faceRes) {
					t.Errorf("chunk %s out of range", c)
				}
				d, ok := dist[c]
				if !ok {
					t.Errorf("chunk %s has no distance", c)
					continue
				}
				if d > tt.rings {
					t.Errorf("chunk %s at distance %d, beyond %d rings", c, d, tt.rings)
				}
				if d < prev {
					t.Errorf("chunk %s at distance %d listed after distance %d", c, d, prev)
				}
				prev = d
			}
		})
	}
}

func TestChunkSetClosedUnderNeighbors(t *testing.T) {
	const faceRes = 16
	set, dist := ExpandChunkSet(cubemap.Coords{Face: cubemap.NY, X: 15, Y: 0}, faceRes, 4)

	// Every neighbor of an inner chunk must be in the set, one ring further out at most.
	for _, c := range set {
		if dist[c] == 4 {
			continue
		}
		for _, nb := range c.Neighbors(faceRes) {
			d, ok := dist[nb]
			if !ok {
				t.Errorf("neighbor %s of %s missing from set", nb, c)
				continue
			}
			if d > dist[c]+1 {
				t.Errorf("neighbor %s of %s at distance %d, expected at most %d", nb, c, d, dist[c]+1)
			}
		}
	}
}
