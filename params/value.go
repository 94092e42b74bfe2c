package params

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Kind is the semantic type of a shader parameter.
type Kind int

const (
	KindScalar Kind = iota
	KindVec2
	KindColor
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindVec2:
		return "vec2"
	case KindColor:
		return "color"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// GLSLType returns the uniform type used to declare a parameter of this kind.
func (k Kind) GLSLType() string {
	switch k {
	case KindVec2:
		return "vec2"
	case KindColor:
		return "vec3"
	default:
		return "float"
	}
}

// Value is a tagged parameter value. The zero Value is the scalar 0.
type Value struct {
	kind  Kind
	x, y  float32
	color colorful.Color
}

func Scalar(v float32) Value {
	return Value{kind: KindScalar, x: v}
}

func Vec2(x, y float32) Value {
	return Value{kind: KindVec2, x: x, y: y}
}

func Color(c colorful.Color) Value {
	return Value{kind: KindColor, color: c}
}

// Hex parses a "#rrggbb" or "#rgb" string into a color value.
func Hex(s string) (Value, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Value{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color(c), nil
}

// MustHex is Hex for compile-time constants.
func MustHex(s string) Value {
	v, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return v
}

func (v Value) Kind() Kind { return v.kind }

// Float returns the scalar payload. Other kinds return their first component.
func (v Value) Float() float32 {
	if v.kind == KindColor {
		return float32(v.color.R)
	}
	return v.x
}

func (v Value) Vec2() mgl32.Vec2 {
	return mgl32.Vec2{v.x, v.y}
}

func (v Value) Color() colorful.Color {
	return v.color
}

// Vec3 returns the color as the three floats a vec3 uniform expects.
func (v Value) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{float32(v.color.R), float32(v.color.G), float32(v.color.B)}
}

func (v Value) Hex() string {
	return v.color.Clamped().Hex()
}

func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindColor:
		return v.color == o.color
	case KindVec2:
		return v.x == o.x && v.y == o.y
	default:
		return v.x == o.x
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindVec2:
		return fmt.Sprintf("%.3f,%.3f", v.x, v.y)
	case KindColor:
		return v.Hex()
	default:
		return fmt.Sprintf("%.3f", v.x)
	}
}

// Range bounds a scalar, or each component of a vec2.
type Range struct {
	Min  float32
	Max  float32
	Step float32
}

func (r Range) clamp(f float32) float32 {
	if math.IsNaN(float64(f)) {
		return r.Min
	}
	if f < r.Min {
		return r.Min
	}
	if f > r.Max {
		return r.Max
	}
	return f
}

// Clamp returns v with every numeric component forced into the range.
func (r Range) Clamp(v Value) Value {
	switch v.kind {
	case KindScalar:
		v.x = r.clamp(v.x)
	case KindVec2:
		v.x = r.clamp(v.x)
		v.y = r.clamp(v.y)
	}
	return v
}

// Nudge moves a scalar by n steps, staying inside the range.
func (r Range) Nudge(f float32, n int) float32 {
	step := r.Step
	if step <= 0 {
		step = (r.Max - r.Min) / 100
	}
	return r.clamp(f + float32(n)*step)
}
