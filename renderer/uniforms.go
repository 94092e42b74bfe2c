package renderer

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/massymassy/gosea/material"
	"github.com/massymassy/gosea/translator"
)

// oceanProgram is the linked ocean shader and the locations of its uniforms,
// keyed by their names in the WebGL2 source.
type oceanProgram struct {
	program   uint32
	locations map[string]int32
}

func linkOcean(vs, fs *translator.Stage, names []string) (*oceanProgram, error) {
	program, err := newProgram(vs.Code, fs.Code)
	if err != nil {
		return nil, err
	}
	p := &oceanProgram{program: program, locations: make(map[string]int32, len(names))}
	for _, name := range names {
		p.locations[name] = gl.GetUniformLocation(program, gl.Str(mappedName(name, vs, fs)+"\x00"))
	}
	return p, nil
}

// mappedName resolves the name the translator gave a uniform in either stage.
func mappedName(name string, stages ...*translator.Stage) string {
	for _, st := range stages {
		if mapped, ok := st.Mapped[name]; ok && mapped != "" {
			return mapped
		}
	}
	return name
}

// upload sends every dirty material uniform. The program must be in use.
func (p *oceanProgram) upload(m *material.Material) {
	m.Flush(func(u material.Uniform) {
		loc, ok := p.locations[u.Name]
		if !ok || loc < 0 {
			// optimized out or not declared
			return
		}
		switch u.Size {
		case 1:
			gl.Uniform1f(loc, u.Float)
		case 2:
			gl.Uniform2f(loc, u.Vec2[0], u.Vec2[1])
		case 3:
			gl.Uniform3f(loc, u.Vec3[0], u.Vec3[1], u.Vec3[2])
		case 16:
			gl.UniformMatrix4fv(loc, 1, false, &u.Mat4[0])
		}
	})
}

func (p *oceanProgram) destroy() {
	gl.DeleteProgram(p.program)
}
