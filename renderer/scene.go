package renderer

import (
	"fmt"
	"image"

	"github.com/massymassy/gosea/animation"
	"github.com/massymassy/gosea/inputs"
	"github.com/massymassy/gosea/material"
	"github.com/massymassy/gosea/params"
	"github.com/massymassy/gosea/shader"
	"github.com/massymassy/gosea/surface"
	xlate "github.com/massymassy/gosea/translator"
	"go.uber.org/zap"
)

// Scene holds the GPU resources for the ocean: the translated program, the
// uploaded surface grid and the sky texture.
type Scene struct {
	material *material.Material
	ocean    *oceanProgram
	mesh     *gpuMesh
	sky      *inputs.Texture
	grid     *surface.Grid
}

// Destroy releases all OpenGL resources used by the scene.
func (s *Scene) Destroy() {
	if s == nil {
		return
	}
	if s.ocean != nil {
		s.ocean.destroy()
	}
	if s.mesh != nil {
		s.mesh.destroy()
	}
	if s.sky != nil {
		s.sky.Destroy()
	}
}

func (s *Scene) setCamera(frame animation.Frame) {
	s.material.SetMat4(material.Projection, frame.Projection)
	s.material.SetMat4(material.View, frame.View)
}

// LoadScene builds the ocean program from the store's definitions and binds its
// uniforms to the store.
func (r *Renderer) LoadScene(store *params.Store, sky image.Image, filter inputs.Filter) (*Scene, error) {
	mat, err := material.Bind(store)
	if err != nil {
		return nil, err
	}
	grid := surface.Ocean()
	mat.SetMat4(material.Model, grid.Model())

	defs := store.Definitions()
	vs, err := xlate.Translate(shader.GetOceanVertexShader(defs), "vertex")
	if err != nil {
		return nil, err
	}
	fs, err := xlate.Translate(shader.GetOceanFragmentShader(defs), "fragment")
	if err != nil {
		return nil, err
	}

	names := []string{material.Projection, material.View, material.Model}
	for _, def := range defs {
		if def.Uniform != "" {
			names = append(names, def.Uniform)
		}
	}

	scene := &Scene{material: mat, grid: grid}
	scene.ocean, err = linkOcean(vs, fs, names)
	if err != nil {
		return nil, fmt.Errorf("failed to create ocean program: %w", err)
	}

	scene.mesh = uploadGrid(grid)
	segX, segY := grid.Segments()
	zap.S().Debugf("Uploaded %gx%g surface, %dx%d segments (%d vertices, %d indices)",
		grid.Width(), grid.Height(), segX, segY, grid.VertexCount(), grid.IndexCount())

	scene.sky, err = inputs.NewTexture(sky, filter)
	if err != nil {
		scene.Destroy()
		return nil, err
	}
	return scene, nil
}
