// Package camera computes the orbiting viewpoint and the projection for the ocean.
package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	OrbitRadius   = 3.0
	OrbitSpeed    = 0.2 // rad/s
	DefaultHeight = 0.23

	DefaultFovY = 75.0 // degrees
	DefaultNear = 0.1
	DefaultFar  = 100.0

	MaxPixelRatio = 2.0
)

var up = mgl32.Vec3{0, 1, 0}

// State is where the camera is and what it looks at.
type State struct {
	Position mgl32.Vec3
	Target   mgl32.Vec3
}

// OrbitPosition is the point on the circle of radius OrbitRadius at time t.
func OrbitPosition(t float64, height float32) mgl32.Vec3 {
	a := t * OrbitSpeed
	return mgl32.Vec3{
		float32(math.Cos(a) * OrbitRadius),
		height,
		float32(math.Sin(a) * OrbitRadius),
	}
}

// LookTarget wanders independently of the orbit.
func LookTarget(t float64) mgl32.Vec3 {
	s := math.Sin(t)
	return mgl32.Vec3{
		float32(math.Cos(t)),
		float32(s * 0.5),
		float32(s * 0.4),
	}
}

func At(t float64, height float32) State {
	return State{
		Position: OrbitPosition(t, height),
		Target:   LookTarget(t),
	}
}

func (s State) View() mgl32.Mat4 {
	return mgl32.LookAtV(s.Position, s.Target, up)
}
