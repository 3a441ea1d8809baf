// Package splat projects a 3D Gaussian into screen space: its 2D
// covariance, inverse covariance (power-function coefficients), screen
// center, and 3-sigma pixel extent.
package splat

import (
	"math"

	"github.com/cwbudde/gosplat/internal/camera"
	"github.com/cwbudde/gosplat/internal/linalg"
)

// PlotData is the screen-space footprint of one primitive, as produced by
// Project and consumed by internal/raster.
type PlotData struct {
	A, B, C    float32
	XC, YC     float32
	XR, YR     float32
	Behind     bool
}

// Project computes the screen-space footprint of a Gaussian already
// transformed into camera coordinates (gCam), given its world-space
// covariance cov3d.
func Project(cam *camera.Camera, gCam linalg.Vec4, cov3d linalg.Mat3) PlotData {
	z := gCam[2]
	limX := 1.3 * cam.HTanX * z
	limY := 1.3 * cam.HTanY * z
	x := clamp(gCam[0], -limX, limX)
	y := clamp(gCam[1], -limY, limY)
	z2 := z * z

	f := cam.F
	jacobian := linalg.Mat3{
		{f / z, 0, 0},
		{0, f / z, 0},
		{-(f * x) / z2, -(f * y) / z2, 0},
	}
	tt := jacobian.Mul(cam.R3)

	cov := tt.Mul(cov3d).Mul(tt.T())

	a00 := 0.3 + cov[0][0]
	a01 := cov[0][1]
	a11 := 0.3 + cov[1][1]

	det := a00*a11 - a01*a01
	detInv := 1 / det

	var d PlotData
	d.A = a11 * detInv
	d.B = -a01 * detInv
	d.C = a00 * detInv
	d.XR = 3 * float32(math.Sqrt(float64(a00)))
	d.YR = 3 * float32(math.Sqrt(float64(a11)))

	imageCoord := cam.P.MulVec4(gCam)
	d.XC = imageCoord[0] / imageCoord[2]
	d.YC = imageCoord[1] / imageCoord[2]
	d.Behind = imageCoord[2] <= 0

	return d
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
