package glfwcontext

import (
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	options "github.com/massymassy/gosea/options"
	"go.uber.org/zap"
)

const windowTitle = "gosea"

// Context wraps a GLFW window and its GL context.
type Context struct {
	window *glfw.Window
	// A map to store functions to be called on key presses.
	keyCallbacks map[glfw.Key]func()
	onResize     func(width, height int, scale float64)
}

// New creates and initializes a new GLFW window and returns a Context object.
// A hidden window still provides a usable context for offscreen rendering.
func New(options *options.SeaOptions, visible bool) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.DepthBits, 24)

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
		glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}

	win, err := glfw.CreateWindow(*options.Width, *options.Height, windowTitle, nil, nil)
	if err != nil {
		return nil, err
	}

	c := &Context{
		window:       win,
		keyCallbacks: make(map[glfw.Key]func()),
	}

	win.SetKeyCallback(c.glfwKeyCallback)
	win.SetSizeCallback(c.glfwSizeCallback)
	win.SetContentScaleCallback(c.glfwContentScaleCallback)

	return c, nil
}

// RegisterKeyCallback allows the main application to register a function to be
// called when a specific key is pressed.
func (c *Context) RegisterKeyCallback(key glfw.Key, f func()) {
	c.keyCallbacks[key] = f
}

func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}

	if action == glfw.Press {
		if callback, ok := c.keyCallbacks[key]; ok {
			callback()
		}
	}
}

func (c *Context) glfwSizeCallback(w *glfw.Window, width, height int) {
	if c.onResize != nil {
		c.onResize(width, height, c.ContentScale())
	}
}

func (c *Context) glfwContentScaleCallback(w *glfw.Window, x, y float32) {
	if c.onResize != nil {
		width, height := w.GetSize()
		c.onResize(width, height, float64(x))
	}
}

// SetResizeCallback installs the handler run from PollEvents when the window size
// or its monitor scale changes.
func (c *Context) SetResizeCallback(f func(width, height int, scale float64)) {
	c.onResize = f
}

func (c *Context) GetSize() (int, int) {
	return c.window.GetSize()
}

// ContentScale is the window's device pixel ratio.
func (c *Context) ContentScale() float64 {
	x, _ := c.window.GetContentScale()
	if x <= 0 {
		return 1
	}
	return float64(x)
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// InitGraphics initializes GLFW. Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	zap.S().Debugf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down GLFW. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	zap.S().Debugf("GLFW Terminated")
}
