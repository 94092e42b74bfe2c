package surface

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOceanDimensions(t *testing.T) {
	g := Ocean()
	sx, sy := g.Segments()
	assert.Equal(t, 512, sx)
	assert.Equal(t, 512, sy)
	assert.Equal(t, float32(8), g.Width())
	assert.Equal(t, float32(8), g.Height())
	assert.Equal(t, 513*513, g.VertexCount())
	assert.Equal(t, 512*512*6, g.IndexCount())
}

func TestGridLayout(t *testing.T) {
	g, err := NewGrid(2, 4, 2, 2)
	require.NoError(t, err)

	v := g.Vertices()
	require.Len(t, v, 9*FloatsPerVertex)

	// first vertex: top left corner, uv (0,1)
	assert.Equal(t, []float32{-1, 2, 0, 0, 1}, v[0:5])
	// centre vertex
	assert.Equal(t, []float32{0, 0, 0, 0.5, 0.5}, v[4*5:4*5+5])
	// last vertex: bottom right, uv (1,0)
	assert.Equal(t, []float32{1, -2, 0, 1, 0}, v[8*5:9*5])

	idx := g.Indices()
	assert.Equal(t, []uint32{0, 3, 1, 3, 4, 1}, idx[0:6])
	for _, i := range idx {
		assert.Less(t, int(i), g.VertexCount())
	}
}

func TestGridIsImmutable(t *testing.T) {
	g, err := NewGrid(1, 1, 1, 1)
	require.NoError(t, err)

	v := g.Vertices()
	v[0] = 42
	assert.NotEqual(t, float32(42), g.Vertices()[0])

	i := g.Indices()
	i[0] = 42
	assert.Equal(t, uint32(0), g.Indices()[0])
}

func TestGridRejectsBadInput(t *testing.T) {
	_, err := NewGrid(0, 1, 1, 1)
	assert.Error(t, err)
	_, err = NewGrid(1, 1, 0, 4)
	assert.Error(t, err)
}

func TestModelLaysGridFlat(t *testing.T) {
	g := Ocean()
	p := g.Model().Mul4x1(mgl32.Vec4{1, 2, 0, 1})
	assert.InDelta(t, 1, p.X(), 1e-6)
	assert.InDelta(t, 0, p.Y(), 1e-6)
	assert.InDelta(t, -2, p.Z(), 1e-6)
}
