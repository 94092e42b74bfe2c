package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/massymassy/gosea/surface"
)

// gpuMesh is a surface.Grid uploaded to a VAO with an element buffer.
type gpuMesh struct {
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
}

const vertexStride = surface.FloatsPerVertex * 4

func uploadGrid(g *surface.Grid) *gpuMesh {
	vertices := g.Vertices()
	indices := g.Indices()

	m := &gpuMesh{indexCount: int32(len(indices))}
	gl.GenVertexArrays(1, &m.vao)
	gl.GenBuffers(1, &m.vbo)
	gl.GenBuffers(1, &m.ebo)

	gl.BindVertexArray(m.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.STATIC_DRAW)

	// location 0: position, location 1: uv
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, vertexStride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, vertexStride, gl.PtrOffset(3*4))

	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, gl.Ptr(indices), gl.STATIC_DRAW)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	return m
}

func (m *gpuMesh) draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (m *gpuMesh) destroy() {
	gl.DeleteBuffers(1, &m.ebo)
	gl.DeleteBuffers(1, &m.vbo)
	gl.DeleteVertexArrays(1, &m.vao)
}
