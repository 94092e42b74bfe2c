package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Viewport is the drawable area in logical pixels.
type Viewport struct {
	Width      int
	Height     int
	PixelRatio float64
}

func NewViewport(width, height int, deviceRatio float64) Viewport {
	var v Viewport
	v.Resize(width, height, deviceRatio)
	return v
}

// Resize records the new size. The pixel ratio is capped at MaxPixelRatio.
func (v *Viewport) Resize(width, height int, deviceRatio float64) {
	v.Width = max(width, 0)
	v.Height = max(height, 0)
	if deviceRatio <= 0 || math.IsNaN(deviceRatio) {
		deviceRatio = 1
	}
	v.PixelRatio = math.Min(deviceRatio, MaxPixelRatio)
}

// Aspect is width/height, or 1 for a degenerate (minimised) viewport.
func (v Viewport) Aspect() float32 {
	if v.Width == 0 || v.Height == 0 {
		return 1
	}
	return float32(v.Width) / float32(v.Height)
}

// DrawingBuffer is the size in device pixels the viewport should be rendered at.
func (v Viewport) DrawingBuffer() (int, int) {
	return int(math.Floor(float64(v.Width) * v.PixelRatio)), int(math.Floor(float64(v.Height) * v.PixelRatio))
}

// Lens is a perspective projection.
type Lens struct {
	FovY float32 // degrees
	Near float32
	Far  float32
}

func DefaultLens() Lens {
	return Lens{FovY: DefaultFovY, Near: DefaultNear, Far: DefaultFar}
}

func (l Lens) Projection(aspect float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(l.FovY), aspect, l.Near, l.Far)
}
