// Package material keeps the uniform values the ocean program draws with.
//
// Values are derived from the parameter store through change observers, so a
// color parameter becomes a vec3 uniform as soon as it is set, and only uniforms
// that changed since the last upload are handed to the renderer.
package material

import (
	"fmt"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/massymassy/gosea/params"
)

// Uniform is one derived value. Exactly one of the payload fields is meaningful,
// selected by Size: 1 float, 2 vec2, 3 vec3, 16 mat4.
type Uniform struct {
	Name  string
	Size  int
	Float float32
	Vec2  mgl32.Vec2
	Vec3  mgl32.Vec3
	Mat4  mgl32.Mat4
}

const (
	Projection = "uProjection"
	View       = "uView"
	Model      = "uModel"
)

type Material struct {
	uniforms map[string]*Uniform
	dirty    map[string]struct{}
}

func New() *Material {
	return &Material{
		uniforms: make(map[string]*Uniform),
		dirty:    make(map[string]struct{}),
	}
}

// Bind mirrors every store parameter into a uniform and keeps it current.
func Bind(store *params.Store) (*Material, error) {
	m := New()
	for _, def := range store.Definitions() {
		if def.Uniform == "" {
			continue
		}
		v, err := store.Get(def.Name)
		if err != nil {
			return nil, err
		}
		name := def.Uniform
		m.setValue(name, v)
		if err := store.OnChange(def.Name, func(v params.Value) { m.setValue(name, v) }); err != nil {
			return nil, fmt.Errorf("failed to observe %s: %w", def.Name, err)
		}
	}
	return m, nil
}

func (m *Material) setValue(name string, v params.Value) {
	switch v.Kind() {
	case params.KindVec2:
		m.set(&Uniform{Name: name, Size: 2, Vec2: v.Vec2()})
	case params.KindColor:
		m.set(&Uniform{Name: name, Size: 3, Vec3: v.Vec3()})
	default:
		m.set(&Uniform{Name: name, Size: 1, Float: v.Float()})
	}
}

func (m *Material) set(u *Uniform) {
	m.uniforms[u.Name] = u
	m.dirty[u.Name] = struct{}{}
}

func (m *Material) SetMat4(name string, mat mgl32.Mat4) {
	if cur, ok := m.uniforms[name]; ok && cur.Size == 16 && cur.Mat4 == mat {
		return
	}
	m.set(&Uniform{Name: name, Size: 16, Mat4: mat})
}

// Dirty lists the uniforms changed since the last Flush, sorted by name.
func (m *Material) Dirty() []string {
	names := make([]string, 0, len(m.dirty))
	for n := range m.dirty {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Flush calls upload for every dirty uniform and clears the dirty set.
func (m *Material) Flush(upload func(Uniform)) {
	for _, name := range m.Dirty() {
		upload(*m.uniforms[name])
	}
	clear(m.dirty)
}
