package scene

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/planetterrain/internal/engine/shader"
)

// LineRenderer draws a set of line segments in one color.
type LineRenderer struct {
	program     *shader.Program
	vao, vbo    uint32
	vertexCount int32

	Color mgl32.Vec4
}

// NewLineRenderer creates an empty line renderer.
func NewLineRenderer() (*LineRenderer, error) {
	program, err := shader.New(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}

	lr := &LineRenderer{
		program: program,
		Color:   mgl32.Vec4{1.0, 0.85, 0.2, 1.0},
	}

	gl.GenVertexArrays(1, &lr.vao)
	gl.BindVertexArray(lr.vao)
	gl.GenBuffers(1, &lr.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	return lr, nil
}

// SetLines replaces the segments. vertices holds xyz triples, two per segment.
func (lr *LineRenderer) SetLines(vertices []float32) {
	lr.vertexCount = int32(len(vertices) / 3)
	gl.BindBuffer(gl.ARRAY_BUFFER, lr.vbo)
	if lr.vertexCount == 0 {
		gl.BufferData(gl.ARRAY_BUFFER, 0, nil, gl.DYNAMIC_DRAW)
	} else {
		gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// Render draws the segments.
func (lr *LineRenderer) Render(viewProj mgl32.Mat4) {
	if lr.vertexCount == 0 {
		return
	}
	lr.program.Use()
	lr.program.SetMat4("uViewProj", viewProj)
	lr.program.SetVec4("uColor", lr.Color)

	gl.BindVertexArray(lr.vao)
	gl.DrawArrays(gl.LINES, 0, lr.vertexCount)
	gl.BindVertexArray(0)
}

// Destroy releases GPU resources.
func (lr *LineRenderer) Destroy() {
	gl.DeleteVertexArrays(1, &lr.vao)
	gl.DeleteBuffers(1, &lr.vbo)
	lr.program.Delete()
}
