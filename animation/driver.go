// Package animation advances the ocean clock and derives the per-frame camera.
//
// The driver does no scheduling of its own. Whoever owns the frame loop calls Tick
// with the time since the previous frame: the interactive renderer passes wall
// clock deltas, the recorder passes 1/fps.
package animation

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/massymassy/gosea/camera"
	"github.com/massymassy/gosea/params"
)

// Clock is elapsed time since the driver started. It never goes backwards.
type Clock struct {
	elapsed float64
}

// Advance adds dt seconds and returns the delta actually applied. Negative,
// infinite and NaN deltas are dropped and report 0.
func (c *Clock) Advance(dt float64) float64 {
	if dt > 0 && !math.IsInf(dt, 1) {
		c.elapsed += dt
		return dt
	}
	return 0
}

func (c *Clock) Elapsed() float64 { return c.elapsed }

// Frame is the result of one tick.
type Frame struct {
	Index      uint64
	Time       float64
	Delta      float64
	Width      int // drawing buffer, device pixels
	Height     int
	Camera     camera.State
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

type Driver struct {
	store    *params.Store
	clock    Clock
	height   float32
	lens     camera.Lens
	viewport camera.Viewport
	frames   uint64
}

type Option func(*Driver)

func WithCameraHeight(h float32) Option {
	return func(d *Driver) { d.height = h }
}

func WithViewport(v camera.Viewport) Option {
	return func(d *Driver) { d.viewport = v }
}

func NewDriver(store *params.Store, opts ...Option) *Driver {
	d := &Driver{
		store:    store,
		height:   camera.DefaultHeight,
		lens:     camera.DefaultLens(),
		viewport: camera.NewViewport(1, 1, 1),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Tick advances the clock, publishes the elapsed time to the time parameter and
// computes the camera for the new time.
func (d *Driver) Tick(dt float64) (Frame, error) {
	applied := d.clock.Advance(dt)
	t := d.clock.Elapsed()
	if _, err := d.store.Set(params.Time, params.Scalar(float32(t))); err != nil {
		return Frame{}, fmt.Errorf("failed to publish time: %w", err)
	}

	cam := camera.At(t, d.height)
	width, height := d.viewport.DrawingBuffer()
	f := Frame{
		Index:      d.frames,
		Time:       t,
		Delta:      applied,
		Width:      width,
		Height:     height,
		Camera:     cam,
		View:       cam.View(),
		Projection: d.lens.Projection(d.viewport.Aspect()),
	}
	d.frames++
	return f, nil
}

// Resize updates the viewport. Shader parameters are not touched.
func (d *Driver) Resize(width, height int, deviceRatio float64) {
	d.viewport.Resize(width, height, deviceRatio)
}

func (d *Driver) Viewport() camera.Viewport { return d.viewport }

func (d *Driver) Elapsed() float64 { return d.clock.Elapsed() }
