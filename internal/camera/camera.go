// Package camera implements the pinhole camera model used to project
// world-space Gaussians into screen space.
package camera

import (
	"math"

	"github.com/cwbudde/gosplat/internal/linalg"
)

// Camera holds the accumulated rigid transform and derived intrinsics.
type Camera struct {
	R, RT   linalg.Mat4
	R3, R3T linalg.Mat3
	P       linalg.Mat4

	Width, Height int
	FovX          float32
	Px, Py        float32
	HTanX, HTanY  float32
	F             float32
}

// New builds a camera at the identity pose with the given image size and
// horizontal field of view (radians).
func New(width, height int, fovX float32) *Camera {
	c := &Camera{
		R:      linalg.Identity4(),
		Width:  width,
		Height: height,
		FovX:   fovX,
	}
	c.Px = float32(width) / 2
	c.Py = float32(height) / 2
	c.HTanX = float32(math.Tan(float64(fovX) / 2))
	c.HTanY = c.HTanX / c.Px * c.Py
	c.F = c.Px / c.HTanX

	f, px, py := c.F, c.Px, c.Py
	c.P = linalg.Mat4{
		{f, 0, px, 0},
		{0, f, py, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	c.refresh()
	return c
}

// refresh recomputes the cached rotation blocks and transposes after R
// changes.
func (c *Camera) refresh() {
	c.R3 = c.R.Upper3()
	c.RT = c.R.T()
	c.R3T = c.R3.T()
}

// Tilt rotates the camera about the X axis by rad.
func (c *Camera) Tilt(rad float32) {
	s, co := float32(math.Sin(float64(rad))), float32(math.Cos(float64(rad)))
	rot := linalg.Mat4{
		{1, 0, 0, 0},
		{0, co, -s, 0},
		{0, s, co, 0},
		{0, 0, 0, 1},
	}
	c.R = rot.Mul(c.R)
	c.refresh()
}

// Pan rotates the camera about the Y axis by rad.
func (c *Camera) Pan(rad float32) {
	s, co := float32(math.Sin(float64(rad))), float32(math.Cos(float64(rad)))
	rot := linalg.Mat4{
		{co, 0, s, 0},
		{0, 1, 0, 0},
		{-s, 0, co, 0},
		{0, 0, 0, 1},
	}
	c.R = rot.Mul(c.R)
	c.refresh()
}

// Roll rotates the camera about the Z axis by rad.
func (c *Camera) Roll(rad float32) {
	s, co := float32(math.Sin(float64(rad))), float32(math.Cos(float64(rad)))
	rot := linalg.Mat4{
		{co, -s, 0, 0},
		{s, co, 0, 0},
		{0, 0, 1, 0},
		{0, 0, 0, 1},
	}
	c.R = rot.Mul(c.R)
	c.refresh()
}

// MoveTo translates the camera so its origin reaches v.
func (c *Camera) MoveTo(v linalg.Vec3) {
	rot := linalg.Mat4{
		{1, 0, 0, -v[0]},
		{0, 1, 0, -v[1]},
		{0, 0, 1, -v[2]},
		{0, 0, 0, 1},
	}
	c.R = rot.Mul(c.R)
	c.refresh()
}

// GlobalPosition returns the world-space camera origin.
func (c *Camera) GlobalPosition() linalg.Vec4 {
	o := c.R3T.MulVec3(c.R.Col(3).XYZ())
	return linalg.Vec4{-o[0], -o[1], -o[2], 1}
}

// Transform maps a world-space homogeneous position into camera space.
func (c *Camera) Transform(p linalg.Vec4) linalg.Vec4 {
	return c.R.MulVec4(p)
}

// DepthDirection returns the camera-space vector that projected-depth is
// measured against. +z points away from the camera, so increasing depth
// means farther away; internal/raster draws in ascending depth order
// (front-to-back) using residual-transmittance over-compositing.
func DepthDirection() linalg.Vec4 {
	return linalg.Vec4{0, 0, 1, 0}
}
