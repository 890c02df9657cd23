// Package terrain selects and builds the renderable surface patches of a planet.
package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetterrain/pkg/cubemap"
)

// Vertex is the interleaved GPU layout of one mesh vertex.
type Vertex struct {
	Position [3]float32
	Normal   [3]float32
	TexCoord [2]float32
}

// ChunkMesh is the triangle mesh of one surface patch. Positions and normals
// are expressed in the frame of the RenderOrigin the mesh was built for.
type ChunkMesh struct {
	Coords    cubemap.Coords
	Positions []mgl32.Vec3 // r² vertices, row-major
	UVs       []mgl32.Vec2 // Grid-aligned, 0..1 across the patch
	Normals   []mgl32.Vec3
	Indices   []uint32 // 6(r-1)² entries, counter-clockwise seen from above
	Bounds    Bounds
}

// Vertices interleaves the mesh attributes for upload. A nil mesh has none.
func (m *ChunkMesh) Vertices() []Vertex {
	if m == nil {
		return nil
	}
	out := make([]Vertex, len(m.Positions))
	for i := range out {
		out[i] = Vertex{
			Position: m.Positions[i],
			Normal:   m.Normals[i],
			TexCoord: m.UVs[i],
		}
	}
	return out
}

// VertexCount returns the number of vertices.
func (m *ChunkMesh) VertexCount() int {
	if m == nil {
		return 0
	}
	return len(m.Positions)
}

// ByteSize returns the size of the mesh's vertex and index buffers.
func (m *ChunkMesh) ByteSize() uint64 {
	const vertexSize = (3 + 3 + 2) * 4
	if m == nil {
		return 0
	}
	return uint64(len(m.Positions)*vertexSize + len(m.Indices)*4)
}

// Bounds holds an axis-aligned bounding box.
type Bounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

func emptyBounds() Bounds {
	return Bounds{
		Min: mgl32.Vec3{1e30, 1e30, 1e30},
		Max: mgl32.Vec3{-1e30, -1e30, -1e30},
	}
}

// Extend grows b to contain p.
func (b *Bounds) Extend(p mgl32.Vec3) {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] {
			b.Min[i] = p[i]
		}
		if p[i] > b.Max[i] {
			b.Max[i] = p[i]
		}
	}
}

// Union grows b to contain o.
func (b *Bounds) Union(o Bounds) {
	b.Extend(o.Min)
	b.Extend(o.Max)
}

// Center returns the middle of the box.
func (b Bounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent along each axis.
func (b Bounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}
