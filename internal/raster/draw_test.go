package raster

import (
	"testing"

	"github.com/cwbudde/gosplat/internal/framebuffer"
	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/splat"
)

func TestDrawOpaqueSplatSaturatesAlpha(t *testing.T) {
	fb := framebuffer.New(8, 8)
	d := splat.PlotData{A: 1, B: 0, C: 1, XC: 4, YC: 4, XR: 3, YR: 3}
	Draw(fb, d, linalg.Vec3{1, 1, 1}, 1)

	i := fb.Index(4, 4)
	if fb.Alpha[i] > 0.02 {
		t.Errorf("opaque splat center alpha = %v, want near 0", fb.Alpha[i])
	}
	if fb.Image[i][0] < 0.9 {
		t.Errorf("opaque splat center color = %v, want near white", fb.Image[i])
	}
}

func TestDrawSkipsBehindCamera(t *testing.T) {
	fb := framebuffer.New(8, 8)
	d := splat.PlotData{A: 1, B: 0, C: 1, XC: 4, YC: 4, XR: 3, YR: 3, Behind: true}
	Draw(fb, d, linalg.Vec3{1, 0, 0}, 1)

	i := fb.Index(4, 4)
	if fb.Alpha[i] != 1 {
		t.Errorf("splat marked Behind should not affect the framebuffer, alpha = %v", fb.Alpha[i])
	}
}

func TestDrawClampsToFramebufferBounds(t *testing.T) {
	fb := framebuffer.New(4, 4)
	d := splat.PlotData{A: 0.1, B: 0, C: 0.1, XC: 0, YC: 0, XR: 10, YR: 10}
	// Should not panic despite the footprint extending outside [0,4).
	Draw(fb, d, linalg.Vec3{1, 1, 1}, 0.5)
}
