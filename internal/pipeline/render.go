package pipeline

import (
	"github.com/cwbudde/gosplat/internal/camera"
	"github.com/cwbudde/gosplat/internal/depthsort"
	"github.com/cwbudde/gosplat/internal/framebuffer"
	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/primitive"
	"github.com/cwbudde/gosplat/internal/raster"
	"github.com/cwbudde/gosplat/internal/splat"
)

// Background is the color composited behind everything once a frame is
// fully drawn.
var Background = linalg.Vec3{0, 0, 0}

// RenderFrame renders every primitive in store against cam into a fresh
// framebuffer: depth sort, project, rasterize, in that order. This is
// the single-process path; internal/distributed runs the same sequence
// per rank over a partitioned store.
func RenderFrame(cam *camera.Camera, store *primitive.Store) *framebuffer.Framebuffer {
	dir := camera.DepthDirection()
	camXYZ := make([]linalg.Vec4, store.Len())
	for i := 0; i < store.Len(); i++ {
		camXYZ[i] = cam.Transform(store.XYZ[i])
	}
	order := depthsort.SortByDepth(camXYZ, dir)

	fb := framebuffer.New(cam.Width, cam.Height)
	for _, i := range order {
		g := store.At(i)
		gCam := camXYZ[i]
		plot := splat.Project(cam, gCam, g.Cov3D)
		viewDir := gCam.XYZ().Normalized()
		color := g.Color.Eval(viewDir)
		raster.Draw(fb, plot, color, g.Color.Opacity)
	}

	fb.AddBackground(Background)
	return fb
}
