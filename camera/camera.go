// Package camera implements the orbit camera that looks at the color
// volume.
//
// Matrices follow WebGPU conventions: clip-space z runs from 0 at the near
// plane to w at the far plane, and framebuffer row 0 is the top of the
// image (NDC y = +1).
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Limits for Distance and Phi.
const (
	MinDistance = 1.5
	MaxDistance = 12
	minPhi      = 0.05
	maxPhi      = math32.Pi - 0.05
)

// RotateSpeed is radians per pixel of drag.
const RotateSpeed = 0.01

// ZoomSpeed scales the distance per unit of scroll.
const ZoomSpeed = 0.1

// Orbit is a camera on a sphere around Target. Theta is the azimuth around
// +y measured from +z, Phi the polar angle from +y.
type Orbit struct {
	Target   mgl32.Vec3
	Theta    float32
	Phi      float32
	Distance float32
	FovY     float32 // radians
	Near     float32
	Far      float32
}

// Default returns the camera used when none is configured: slightly above
// the volume, looking at its middle.
func Default() Orbit {
	return Orbit{
		Target:   mgl32.Vec3{0, 0.5, 0},
		Theta:    0.6,
		Phi:      1.0,
		Distance: 3.6,
		FovY:     mgl32.DegToRad(45),
		Near:     0.1,
		Far:      20,
	}
}

// Rotate orbits by a pointer drag of (dx, dy) pixels.
func (o *Orbit) Rotate(dx, dy float32) {
	o.Theta -= dx * RotateSpeed
	o.Phi = clamp(o.Phi-dy*RotateSpeed, minPhi, maxPhi)
}

// Zoom moves towards the target for positive scroll and away for negative.
func (o *Orbit) Zoom(scroll float32) {
	o.Distance = clamp(o.Distance*math32.Exp(-scroll*ZoomSpeed), MinDistance, MaxDistance)
}

// Eye returns the camera position.
func (o Orbit) Eye() mgl32.Vec3 {
	sp, cp := math32.Sincos(o.Phi)
	st, ct := math32.Sincos(o.Theta)
	return o.Target.Add(mgl32.Vec3{sp * st, cp, sp * ct}.Mul(o.Distance))
}

// View returns the world-to-camera matrix.
func (o Orbit) View() mgl32.Mat4 {
	return mgl32.LookAtV(o.Eye(), o.Target, mgl32.Vec3{0, 1, 0})
}

// Projection returns the perspective projection for the given aspect
// ratio with z mapped to [0, w].
func (o Orbit) Projection(aspect float32) mgl32.Mat4 {
	return DepthRemap.Mul4(mgl32.Perspective(o.FovY, aspect, o.Near, o.Far))
}

// ViewProjection returns Projection·View for a width×height viewport.
// A degenerate viewport uses aspect 1.
func (o Orbit) ViewProjection(width, height int) mgl32.Mat4 {
	aspect := float32(1)
	if width > 0 && height > 0 {
		aspect = float32(width) / float32(height)
	}
	return o.Projection(aspect).Mul4(o.View())
}

// DepthRemap maps OpenGL clip z in [-w, w] to WebGPU's [0, w].
var DepthRemap = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0,
	0, 0, 0.5, 1,
}

func clamp(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(hi, v))
}
