package primitive

import (
	"testing"

	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/sh"
)

func TestNewPanicsOnLengthMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("New() with mismatched slice lengths should panic")
		}
	}()
	New([]linalg.Vec4{{0, 0, 0, 1}}, nil, nil)
}

func TestAtRoundTrips(t *testing.T) {
	xyz := []linalg.Vec4{{1, 2, 3, 1}}
	cov := []linalg.Mat3{linalg.Diag3(linalg.Vec3{1, 1, 1})}
	colors := []sh.Harmonic{sh.New([16]linalg.Vec3{}, 1)}
	s := New(xyz, cov, colors)

	g := s.At(0)
	if g.XYZ != xyz[0] {
		t.Errorf("At(0).XYZ = %v, want %v", g.XYZ, xyz[0])
	}
}

func TestRangeComputesBounds(t *testing.T) {
	xyz := []linalg.Vec4{{-1, 2, 0, 1}, {3, -4, 5, 1}}
	min, max := Range(xyz)
	wantMin := linalg.Vec4{-1, -4, 0, 1}
	wantMax := linalg.Vec4{3, 2, 5, 1}
	if min != wantMin {
		t.Errorf("Range() min = %v, want %v", min, wantMin)
	}
	if max != wantMax {
		t.Errorf("Range() max = %v, want %v", max, wantMax)
	}
}
