// Package scene draws planet chunk meshes and debug overlays with OpenGL.
package scene

import (
	"fmt"
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetterrain/internal/engine/shader"
	"github.com/Faultbox/planetterrain/internal/engine/terrain"
)

// chunkBuffers holds the GPU objects of one uploaded chunk.
type chunkBuffers struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// PlanetRenderer draws chunk meshes textured with the debug grid.
type PlanetRenderer struct {
	program *shader.Program
	chunks  []chunkBuffers
	gridTex uint32

	LightDir mgl32.Vec3
	Ambient  mgl32.Vec3
}

// NewPlanetRenderer compiles the chunk shader.
func NewPlanetRenderer() (*PlanetRenderer, error) {
	program, err := shader.New(planetVertexShader, planetFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("planet shader: %w", err)
	}
	return &PlanetRenderer{
		program:  program,
		LightDir: mgl32.Vec3{0.3, 1.0, 0.2}.Normalize(),
		Ambient:  mgl32.Vec3{0.25, 0.25, 0.3},
	}, nil
}

// SetGridTexture uploads a grid texture with an explicit mip chain. levels[0]
// is the full-size image and each following level halves it.
func (pr *PlanetRenderer) SetGridTexture(levels []*image.RGBA) {
	if len(levels) == 0 {
		return
	}
	if pr.gridTex == 0 {
		gl.GenTextures(1, &pr.gridTex)
	}
	gl.BindTexture(gl.TEXTURE_2D, pr.gridTex)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	for level, img := range levels {
		b := img.Bounds()
		gl.TexImage2D(gl.TEXTURE_2D, int32(level), gl.RGBA,
			int32(b.Dx()), int32(b.Dy()),
			0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	}

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_BASE_LEVEL, 0)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAX_LEVEL, int32(len(levels)-1))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameterf(gl.TEXTURE_2D, gl.TEXTURE_MAX_ANISOTROPY, 8.0)
	gl.BindTexture(gl.TEXTURE_2D, 0)
}

// Upload replaces the drawn chunks and returns the number of buffer bytes
// sent to the GPU.
func (pr *PlanetRenderer) Upload(meshes []*terrain.ChunkMesh) uint64 {
	pr.clearChunks()

	var total uint64
	vertexSize := int(unsafe.Sizeof(terrain.Vertex{}))
	for _, m := range meshes {
		if m == nil {
			continue
		}
		vertices := m.Vertices()
		if len(vertices) == 0 || len(m.Indices) == 0 {
			continue
		}

		var c chunkBuffers
		gl.GenVertexArrays(1, &c.vao)
		gl.BindVertexArray(c.vao)

		gl.GenBuffers(1, &c.vbo)
		gl.BindBuffer(gl.ARRAY_BUFFER, c.vbo)
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*vertexSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

		// Position (location 0)
		gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
		gl.EnableVertexAttribArray(0)

		// Normal (location 1)
		gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
		gl.EnableVertexAttribArray(1)

		// TexCoord (location 2)
		gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, int32(vertexSize), 6*4)
		gl.EnableVertexAttribArray(2)

		gl.GenBuffers(1, &c.ebo)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, c.ebo)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

		gl.BindVertexArray(0)

		c.indexCount = int32(len(m.Indices))
		pr.chunks = append(pr.chunks, c)
		total += m.ByteSize()
	}
	return total
}

// ChunkCount returns the number of uploaded chunks.
func (pr *PlanetRenderer) ChunkCount() int {
	return len(pr.chunks)
}

// Render draws every uploaded chunk.
func (pr *PlanetRenderer) Render(viewProj mgl32.Mat4) {
	if len(pr.chunks) == 0 {
		return
	}

	pr.program.Use()
	pr.program.SetMat4("uViewProj", viewProj)
	pr.program.SetVec3("uLightDir", pr.LightDir)
	pr.program.SetVec3("uAmbient", pr.Ambient)

	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pr.gridTex)
	pr.program.SetInt("uGrid", 0)

	for _, c := range pr.chunks {
		gl.BindVertexArray(c.vao)
		gl.DrawElementsWithOffset(gl.TRIANGLES, c.indexCount, gl.UNSIGNED_INT, 0)
	}
	gl.BindVertexArray(0)
}

func (pr *PlanetRenderer) clearChunks() {
	for i := range pr.chunks {
		c := &pr.chunks[i]
		gl.DeleteVertexArrays(1, &c.vao)
		gl.DeleteBuffers(1, &c.vbo)
		gl.DeleteBuffers(1, &c.ebo)
	}
	pr.chunks = pr.chunks[:0]
}

// Destroy releases all GPU resources.
func (pr *PlanetRenderer) Destroy() {
	pr.clearChunks()
	if pr.gridTex != 0 {
		gl.DeleteTextures(1, &pr.gridTex)
		pr.gridTex = 0
	}
	pr.program.Delete()
}
