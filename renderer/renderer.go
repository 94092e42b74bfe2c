package renderer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/massymassy/gosea/animation"
	"github.com/massymassy/gosea/graphics"
	"github.com/massymassy/gosea/shader"
	"go.uber.org/zap"
)

// ErrRender is returned when GL reports an error while drawing a frame. The render
// loop does not try to recover from it.
var ErrRender = errors.New("render failure")

var glInitOnce sync.Once

// ChangeSource feeds queued parameter edits into the store between frames.
type ChangeSource interface {
	Apply() int
}

type Renderer struct {
	context     graphics.Context
	quadVAO     uint32
	quadVBO     uint32
	offscreen   *OffscreenRenderer
	blitProgram uint32
	blitTexLoc  int32
	width       int
	height      int
	recordMode  bool
}

var quadVertices = []float32{
	-1.0, 1.0, -1.0, -1.0, 1.0, -1.0,
	-1.0, 1.0, 1.0, -1.0, 1.0, 1.0,
}

// NewRenderer prepares GL state shared by every scene. In record mode frames go to
// an offscreen target of exactly width x height; interactively the offscreen target
// is only created when the drawing buffer is smaller than the window.
func NewRenderer(width, height int, recordMode bool, ctx graphics.Context) (*Renderer, error) {
	r := &Renderer{
		context:    ctx,
		width:      width,
		height:     height,
		recordMode: recordMode,
	}

	// Make the context current BEFORE initializing OpenGL.
	r.context.MakeCurrent()

	var initErr error
	glInitOnce.Do(func() {
		initErr = gl.Init()
	})
	if initErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", initErr)
	}
	zap.S().Infof("OpenGL version %s", gl.GoStr(gl.GetString(gl.VERSION)))

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.GenBuffers(1, &r.quadVBO)
	gl.BindVertexArray(r.quadVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(quadVertices)*4, gl.Ptr(quadVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	var err error
	r.blitProgram, err = newProgram(shader.GenerateVertexShader(), shader.GetBlitFragmentShader())
	if err != nil {
		return nil, fmt.Errorf("failed to create blit program: %w", err)
	}
	r.blitTexLoc = gl.GetUniformLocation(r.blitProgram, gl.Str("u_texture\x00"))

	if recordMode {
		r.offscreen, err = NewOffscreenRenderer(width, height)
		if err != nil {
			return nil, fmt.Errorf("failed to create offscreen renderer: %w", err)
		}
	}

	return r, nil
}

func (r *Renderer) Shutdown() {
	gl.DeleteProgram(r.blitProgram)
	if r.offscreen != nil {
		r.offscreen.Destroy()
	}
	gl.DeleteBuffers(1, &r.quadVBO)
	gl.DeleteVertexArrays(1, &r.quadVAO)
}

// drawSize is the size a frame is drawn at: the drawing buffer clamped to the
// framebuffer. A non-positive drawing buffer means the framebuffer itself.
func drawSize(fbWidth, fbHeight, dbWidth, dbHeight int) (int, int) {
	if dbWidth <= 0 || dbHeight <= 0 {
		return fbWidth, fbHeight
	}
	return min(dbWidth, fbWidth), min(dbHeight, fbHeight)
}

// target picks the framebuffer a frame is drawn into. Record mode always uses the
// offscreen target. Interactively, a drawing buffer smaller than the window is drawn
// offscreen and scaled up by present.
func (r *Renderer) target(frame animation.Frame) (fbo uint32, width, height int, err error) {
	if r.recordMode {
		return r.offscreen.fbo, r.width, r.height, nil
	}
	fbWidth, fbHeight := r.context.GetFramebufferSize()
	width, height = drawSize(fbWidth, fbHeight, frame.Width, frame.Height)
	if width == fbWidth && height == fbHeight {
		return 0, width, height, nil
	}
	if r.offscreen == nil || r.offscreen.width != width || r.offscreen.height != height {
		if r.offscreen != nil {
			r.offscreen.Destroy()
		}
		r.offscreen, err = NewOffscreenRenderer(width, height)
		if err != nil {
			r.offscreen = nil
			return 0, 0, 0, err
		}
		zap.S().Debugf("Drawing at %dx%d into a %dx%d framebuffer", width, height, fbWidth, fbHeight)
	}
	return r.offscreen.fbo, width, height, nil
}

// present scales the offscreen drawing buffer up to the default framebuffer.
func (r *Renderer) present(width, height int) {
	fbWidth, fbHeight := r.context.GetFramebufferSize()
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, r.offscreen.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, int32(width), int32(height), 0, 0, int32(fbWidth), int32(fbHeight),
		gl.COLOR_BUFFER_BIT, gl.LINEAR)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
}

// RenderFrame draws the sky and then the ocean for one tick.
func (r *Renderer) RenderFrame(scene *Scene, frame animation.Frame) error {
	fbo, width, height, err := r.target(frame)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}

	gl.BindFramebuffer(gl.FRAMEBUFFER, fbo)
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// sky: fullscreen quad, no depth
	gl.Disable(gl.DEPTH_TEST)
	gl.DepthMask(false)
	gl.UseProgram(r.blitProgram)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, scene.sky.GetTextureID())
	gl.Uniform1i(r.blitTexLoc, 0)
	gl.BindVertexArray(r.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	// ocean
	gl.Enable(gl.DEPTH_TEST)
	gl.DepthMask(true)
	gl.DepthFunc(gl.LESS)
	scene.setCamera(frame)
	gl.UseProgram(scene.ocean.program)
	scene.ocean.upload(scene.material)
	scene.mesh.draw()

	gl.BindVertexArray(0)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if fbo != 0 && !r.recordMode {
		r.present(width, height)
	}

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("%w: gl error 0x%x on frame %d", ErrRender, code, frame.Index)
	}
	return nil
}

// Run is the interactive loop. Each iteration applies pending panel edits, ticks
// the driver with the wall-clock delta, draws, swaps and polls events. It returns
// when the window is closed or a frame fails.
func (r *Renderer) Run(scene *Scene, driver *animation.Driver, changes ChangeSource) error {
	if rc, ok := r.context.(graphics.Resizable); ok {
		w, h := rc.GetSize()
		driver.Resize(w, h, rc.ContentScale())
		rc.SetResizeCallback(func(width, height int, scale float64) {
			driver.Resize(width, height, scale)
			vp := driver.Viewport()
			zap.S().Debugf("Viewport resized to %dx%d (pixel ratio %.2f)", vp.Width, vp.Height, vp.PixelRatio)
		})
	}

	last := r.context.Time()
	for !r.context.ShouldClose() {
		now := r.context.Time()
		dt := now - last
		last = now

		if changes != nil {
			changes.Apply()
		}

		frame, err := driver.Tick(dt)
		if err != nil {
			return err
		}
		if err := r.RenderFrame(scene, frame); err != nil {
			return err
		}
		r.context.EndFrame()
	}
	return nil
}

func newProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", log)
	}

	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", logText)
	}
	return shader, nil
}
