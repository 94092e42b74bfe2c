// Package surface builds the flat grid the ocean shader displaces.
package surface

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	OceanSize     = 8
	OceanSegments = 512
)

// Grid is a subdivided plane in the XY plane centred on the origin. It is
// immutable; accessors hand out copies.
//
// Interleaved vertex layout, tightly packed float32:
//
//	position: vec3 (x, y, 0)
//	uv:       vec2
type Grid struct {
	width, height float32
	segX, segY    int
	vertices      []float32
	indices       []uint32
}

const FloatsPerVertex = 5

func NewGrid(width, height float32, segX, segY int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid size must be positive, got %vx%v", width, height)
	}
	if segX < 1 || segY < 1 {
		return nil, fmt.Errorf("grid needs at least one segment per axis, got %dx%d", segX, segY)
	}
	// indices are uint32
	if uint64(segX+1)*uint64(segY+1) > math.MaxUint32 {
		return nil, fmt.Errorf("grid %dx%d has too many vertices", segX, segY)
	}

	g := &Grid{width: width, height: height, segX: segX, segY: segY}
	g.build()
	return g, nil
}

// Ocean is the 8x8 unit, 512x512 segment surface.
func Ocean() *Grid {
	g, err := NewGrid(OceanSize, OceanSize, OceanSegments, OceanSegments)
	if err != nil {
		panic(err)
	}
	return g
}

func (g *Grid) build() {
	cols := g.segX + 1
	rows := g.segY + 1
	cellW := g.width / float32(g.segX)
	cellH := g.height / float32(g.segY)
	halfW := g.width / 2
	halfH := g.height / 2

	g.vertices = make([]float32, 0, cols*rows*FloatsPerVertex)
	for iy := 0; iy < rows; iy++ {
		y := float32(iy)*cellH - halfH
		for ix := 0; ix < cols; ix++ {
			x := float32(ix)*cellW - halfW
			g.vertices = append(g.vertices,
				x, -y, 0,
				float32(ix)/float32(g.segX), 1-float32(iy)/float32(g.segY),
			)
		}
	}

	g.indices = make([]uint32, 0, g.segX*g.segY*6)
	for iy := 0; iy < g.segY; iy++ {
		for ix := 0; ix < g.segX; ix++ {
			a := uint32(ix + cols*iy)
			b := uint32(ix + cols*(iy+1))
			c := uint32(ix + 1 + cols*(iy+1))
			d := uint32(ix + 1 + cols*iy)
			g.indices = append(g.indices, a, b, d, b, c, d)
		}
	}
}

func (g *Grid) Width() float32  { return g.width }
func (g *Grid) Height() float32 { return g.height }

func (g *Grid) Segments() (int, int) { return g.segX, g.segY }

func (g *Grid) VertexCount() int { return len(g.vertices) / FloatsPerVertex }

func (g *Grid) IndexCount() int { return len(g.indices) }

// Vertices returns a copy of the interleaved vertex data.
func (g *Grid) Vertices() []float32 {
	out := make([]float32, len(g.vertices))
	copy(out, g.vertices)
	return out
}

func (g *Grid) Indices() []uint32 {
	out := make([]uint32, len(g.indices))
	copy(out, g.indices)
	return out
}

// Model lays the grid flat: its +Y axis becomes -Z, so the surface lies in XZ.
func (g *Grid) Model() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(-math.Pi / 2)
}
