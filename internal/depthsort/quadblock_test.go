package depthsort

import (
	"testing"

	"github.com/cwbudde/gosplat/internal/linalg"
)

func TestQuadBlockPartitionsExhaustively(t *testing.T) {
	xyz := []linalg.Vec4{
		{-1, -1, -1, 1}, {1, -1, -1, 1}, {-1, 1, -1, 1}, {1, 1, -1, 1},
		{-1, -1, 1, 1}, {1, -1, 1, 1}, {-1, 1, 1, 1}, {1, 1, 1, 1},
	}
	seen := make(map[int]bool)
	for id := 0; id < 2; id++ {
		for _, i := range QuadBlock(id, 1, xyz) {
			if seen[i] {
				t.Errorf("index %d assigned to more than one octant", i)
			}
			seen[i] = true
		}
	}
	if len(seen) != len(xyz) {
		t.Errorf("QuadBlock() covered %d of %d indices", len(seen), len(xyz))
	}
}
