package graphics

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
}

// Resizable is implemented by contexts backed by a window the user can resize.
// width and height are in logical pixels; scale is the device pixel ratio.
type Resizable interface {
	SetResizeCallback(func(width, height int, scale float64))
	GetSize() (int, int)
	ContentScale() float64
}
