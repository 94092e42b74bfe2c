package camera

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestOrbitStaysOnCircle(t *testing.T) {
	for _, tm := range []float64{0, 0.016, 1, 2.5, 10, 31.4159, 600, 86400} {
		p := OrbitPosition(tm, DefaultHeight)
		r2 := float64(p.X()*p.X() + p.Z()*p.Z())
		assert.InDelta(t, OrbitRadius*OrbitRadius, r2, 1e-4, "t=%v", tm)
		assert.Equal(t, float32(DefaultHeight), p.Y(), "t=%v", tm)
	}
}

func TestLookTarget(t *testing.T) {
	for _, tm := range []float64{0, 0.5, 1, math.Pi / 2, 7, 123.4} {
		got := LookTarget(tm)
		assert.InDelta(t, math.Cos(tm), got.X(), 1e-6)
		assert.InDelta(t, 0.5*math.Sin(tm), got.Y(), 1e-6)
		assert.InDelta(t, 0.4*math.Sin(tm), got.Z(), 1e-6)
	}
}

func TestStateAtZero(t *testing.T) {
	s := At(0, 0.23)
	assert.Equal(t, mgl32.Vec3{3, 0.23, 0}, s.Position)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, s.Target)
}

func TestViewLooksAtTarget(t *testing.T) {
	s := At(1.7, DefaultHeight)
	v := s.View()

	// the target lands on the negative z axis in view space
	target := v.Mul4x1(s.Target.Vec4(1))
	assert.InDelta(t, 0, target.X(), 1e-5)
	assert.InDelta(t, 0, target.Y(), 1e-5)
	assert.Less(t, target.Z(), float32(0))

	eye := v.Mul4x1(s.Position.Vec4(1))
	assert.InDelta(t, 0, eye.Len()-1, 1e-5) // w stays 1, xyz go to the origin
}

func TestViewportResize(t *testing.T) {
	v := NewViewport(1280, 720, 1)
	assert.InDelta(t, 1280.0/720.0, v.Aspect(), 1e-6)

	v.Resize(800, 800, 3)
	assert.Equal(t, float32(1), v.Aspect())
	assert.Equal(t, 2.0, v.PixelRatio)
	w, h := v.DrawingBuffer()
	assert.Equal(t, 1600, w)
	assert.Equal(t, 1600, h)

	v.Resize(0, 0, 0)
	assert.Equal(t, float32(1), v.Aspect())
	assert.Equal(t, 1.0, v.PixelRatio)
}

func TestLensProjection(t *testing.T) {
	p := DefaultLens().Projection(16.0 / 9.0)
	expected := mgl32.Perspective(mgl32.DegToRad(75), 16.0/9.0, 0.1, 100)
	assert.True(t, p.ApproxEqual(expected))
}
