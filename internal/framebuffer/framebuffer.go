// Package framebuffer implements the RGB + residual-alpha accumulation
// buffer that splats are composited into, and its byte-level output.
package framebuffer

import (
	"io"
	"math"

	"github.com/cwbudde/gosplat/internal/linalg"
)

// Framebuffer holds per-pixel accumulated color and residual
// transmittance (the fraction of the background still visible through
// everything composited so far).
type Framebuffer struct {
	W, H  int
	Image []linalg.Vec3
	Alpha []float32
}

// New creates a framebuffer of size W x H with image zeroed and alpha
// initialized to 1 (fully transparent, background fully visible).
func New(w, h int) *Framebuffer {
	fb := &Framebuffer{
		W:     w,
		H:     h,
		Image: make([]linalg.Vec3, w*h),
		Alpha: make([]float32, w*h),
	}
	for i := range fb.Alpha {
		fb.Alpha[i] = 1
	}
	return fb
}

// Index returns the flat pixel index for (x,y).
func (fb *Framebuffer) Index(x, y int) int {
	return y*fb.W + x
}

// Combine merges behind, a framebuffer representing content strictly
// farther from the camera, into fb using residual-alpha semantics:
// image += alpha * behind.image; alpha *= behind.alpha.
func (fb *Framebuffer) Combine(behind *Framebuffer) {
	for i := range fb.Image {
		fb.Image[i] = fb.Image[i].Add(behind.Image[i].Scale(fb.Alpha[i]))
		fb.Alpha[i] *= behind.Alpha[i]
	}
}

// AddBackground composites a constant background color behind everything
// drawn so far and zeroes the residual alpha (nothing left to show
// through).
func (fb *Framebuffer) AddBackground(rgb linalg.Vec3) {
	for i := range fb.Image {
		fb.Image[i] = fb.Image[i].Add(rgb.Scale(fb.Alpha[i]))
		fb.Alpha[i] = 0
	}
}

// WriteRaw writes exactly W*H*3 bytes to w: row-major top-to-bottom,
// left-to-right, channel order RGB, one byte per channel.
func (fb *Framebuffer) WriteRaw(w io.Writer) error {
	buf := make([]byte, fb.W*fb.H*3)
	for i, c := range fb.Image {
		buf[i*3+0] = toByte(c[0])
		buf[i*3+1] = toByte(c[1])
		buf[i*3+2] = toByte(c[2])
	}
	_, err := w.Write(buf)
	return err
}

func toByte(v float32) byte {
	b := int(math.Floor(float64(v) * 256))
	if b < 0 {
		b = 0
	}
	if b > 255 {
		b = 255
	}
	return byte(b)
}
