// Package raster implements the per-pixel Gaussian evaluation and
// front-to-back over-compositing into a framebuffer.
package raster

import (
	"math"

	"github.com/cwbudde/gosplat/internal/framebuffer"
	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/splat"
)

// maxAlpha caps the per-pixel contribution of a single splat to avoid
// total-occlusion saturation artifacts.
const maxAlpha = 0.99

// Draw rasterizes one splat into fb, given its projection data, its
// view-evaluated color, and base opacity. Primitives behind the camera
// are skipped.
func Draw(fb *framebuffer.Framebuffer, d splat.PlotData, color linalg.Vec3, opacity float32) {
	if d.Behind {
		return
	}

	xs := maxInt(0, round(d.XC-d.XR))
	ys := maxInt(0, round(d.YC-d.YR))
	xe := minInt(fb.W, round(d.XC+d.XR)+1)
	ye := minInt(fb.H, round(d.YC+d.YR)+1)

	for y := ys; y < ye; y++ {
		for x := xs; x < xe; x++ {
			cx := float32(x) - d.XC
			cy := float32(y) - d.YC
			power := -(d.A*cx*cx+d.C*cy*cy)/2 - d.B*cx*cy
			alpha := opacity * float32(math.Exp(float64(power)))
			if alpha > maxAlpha {
				alpha = maxAlpha
			}

			i := fb.Index(x, y)
			tau := fb.Alpha[i]
			fb.Image[i] = fb.Image[i].Add(color.Scale(tau * alpha))
			fb.Alpha[i] = tau * (1 - alpha)
		}
	}
}

func round(v float32) int {
	return int(math.Round(float64(v)))
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
