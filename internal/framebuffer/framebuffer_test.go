package framebuffer

import (
	"bytes"
	"testing"

	"github.com/cwbudde/gosplat/internal/linalg"
)

func TestNewInitializesFullTransparency(t *testing.T) {
	fb := New(2, 2)
	for i, a := range fb.Alpha {
		if a != 1 {
			t.Errorf("Alpha[%d] = %v, want 1", i, a)
		}
	}
}

func TestCombineResidualAlpha(t *testing.T) {
	front := New(1, 1)
	front.Image[0] = linalg.Vec3{1, 0, 0}
	front.Alpha[0] = 0.5

	back := New(1, 1)
	back.Image[0] = linalg.Vec3{0, 0, 1}
	back.Alpha[0] = 0.2

	front.Combine(back)

	wantImage := linalg.Vec3{1, 0, 0.5 * 1}
	if front.Image[0] != wantImage {
		t.Errorf("Combine() image = %v, want %v", front.Image[0], wantImage)
	}
	if got, want := front.Alpha[0], float32(0.1); got != want {
		t.Errorf("Combine() alpha = %v, want %v", got, want)
	}
}

func TestAddBackgroundZeroesAlpha(t *testing.T) {
	fb := New(1, 1)
	fb.Alpha[0] = 0.4
	fb.AddBackground(linalg.Vec3{1, 1, 1})
	if fb.Alpha[0] != 0 {
		t.Errorf("AddBackground() alpha = %v, want 0", fb.Alpha[0])
	}
}

func TestWriteRawSize(t *testing.T) {
	fb := New(3, 2)
	var buf bytes.Buffer
	if err := fb.WriteRaw(&buf); err != nil {
		t.Fatalf("WriteRaw() error = %v", err)
	}
	if got, want := buf.Len(), 3*2*3; got != want {
		t.Errorf("WriteRaw() wrote %d bytes, want %d", got, want)
	}
}
