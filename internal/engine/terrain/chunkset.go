package terrain

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/planetterrain/pkg/cubemap"
)

// BuildChunkSet returns every patch within rings neighbor steps of the patch
// containing dir. The base patch comes first and the rest follow in
// breadth-first order, each exactly once.
func BuildChunkSet(faceRes uint32, dir mgl64.Vec3, rings int) []cubemap.Coords {
	set, _ := ExpandChunkSet(cubemap.FromVector(faceRes, dir), faceRes, rings)
	return set
}

// ExpandChunkSet runs the breadth-first expansion from an explicit base and
// also returns each patch's ring distance. Negative rings are treated as 0.
func ExpandChunkSet(base cubemap.Coords, faceRes uint32, rings int) ([]cubemap.Coords, map[cubemap.Coords]int) {
	if rings < 0 {
		rings = 0
	}

	dist := map[cubemap.Coords]int{base: 0}
	order := []cubemap.Coords{base}

	// order doubles as the BFS queue.
	for head := 0; head < len(order); head++ {
		c := order[head]
		d := dist[c]
		if d == rings {
			continue
		}
		for _, nb := range c.Neighbors(faceRes) {
			if _, seen := dist[nb]; seen {
				continue
			}
			dist[nb] = d + 1
			order = append(order, nb)
		}
	}
	return order, dist
}
