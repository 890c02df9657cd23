package terrain

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetterrain/pkg/cubemap"
	"github.com/Faultbox/planetterrain/pkg/planet"
)

// BuildChunkMesh samples an r×r height grid over patch c and triangulates
// it. Vertices are computed in float64 planet space and narrowed to float32
// only after moving into the origin frame.
func BuildChunkMesh(s planet.Sampler, radius float64, c cubemap.Coords, r int, origin RenderOrigin) (*ChunkMesh, error) {
	if r < 2 {
		return nil, fmt.Errorf("%w: mesh resolution %d, need at least 2", planet.ErrInvalidArgument, r)
	}

	heights := make([]float32, r*r)
	if err := s.Sample(r, c, heights); err != nil {
		return nil, fmt.Errorf("sample %s: %w", c, err)
	}

	mesh := &ChunkMesh{
		Coords:    c,
		Positions: make([]mgl32.Vec3, r*r),
		UVs:       make([]mgl32.Vec2, r*r),
		Indices:   GridIndices(r),
	}
	bounds := emptyBounds()
	last := float32(r - 1)

	for i, dir := range c.Samples(s.FaceResolution(), r) {
		local := origin.ToLocal(dir.Mul(radius + float64(heights[i])))
		p := mgl32.Vec3{float32(local[0]), float32(local[1]), float32(local[2])}

		mesh.Positions[i] = p
		mesh.UVs[i] = mgl32.Vec2{float32(i%r) / last, float32(i/r) / last}
		bounds.Extend(p)
	}

	mesh.Normals = VertexNormals(mesh.Positions, mesh.Indices)
	mesh.Bounds = bounds
	return mesh, nil
}

// GridIndices triangulates an r×r row-major vertex grid. Each cell emits
// (0, 1, r) and (1, r+1, r) offset to its lower-left vertex.
func GridIndices(r int) []uint32 {
	if r < 2 {
		return nil
	}
	indices := make([]uint32, 0, 6*(r-1)*(r-1))
	stride := uint32(r)
	for row := 0; row < r-1; row++ {
		for col := 0; col < r-1; col++ {
			base := uint32(row*r + col)
			indices = append(indices,
				base, base+1, base+stride,
				base+1, base+stride+1, base+stride,
			)
		}
	}
	return indices
}

// VertexNormals averages the area-weighted normals of the triangles sharing
// each vertex.
func VertexNormals(positions []mgl32.Vec3, indices []uint32) []mgl32.Vec3 {
	normals := make([]mgl32.Vec3, len(positions))
	for t := 0; t+2 < len(indices); t += 3 {
		a, b, c := indices[t], indices[t+1], indices[t+2]
		n := positions[b].Sub(positions[a]).Cross(positions[c].Sub(positions[a]))
		normals[a] = normals[a].Add(n)
		normals[b] = normals[b].Add(n)
		normals[c] = normals[c].Add(n)
	}

	for i, n := range normals {
		if l := n.Len(); l > 1e-12 {
			normals[i] = n.Mul(1 / l)
		} else {
			normals[i] = mgl32.Vec3{0, 1, 0}
		}
	}
	return normals
}
