package depthsort

import (
	"testing"

	"github.com/cwbudde/gosplat/internal/linalg"
)

func TestSortByDepthAscending(t *testing.T) {
	xyz := []linalg.Vec4{
		{0, 0, 3, 1},
		{0, 0, 1, 1},
		{0, 0, 2, 1},
	}
	order := SortByDepth(xyz, linalg.Vec4{0, 0, 1, 0})
	want := []int{1, 2, 0}
	if len(order) != len(want) {
		t.Fatalf("SortByDepth() len = %d, want %d", len(order), len(want))
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("SortByDepth()[%d] = %d, want %d", i, order[i], want[i])
		}
	}
}

func TestSortByDepthStable(t *testing.T) {
	xyz := []linalg.Vec4{
		{0, 0, 1, 1},
		{1, 1, 1, 1}, // same depth along z, different position
		{0, 0, 1, 1},
	}
	order := SortByDepth(xyz, linalg.Vec4{0, 0, 1, 0})
	// All three have equal depth; stable sort keeps original order.
	want := []int{0, 1, 2}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("SortByDepth() not stable: got %v, want %v", order, want)
		}
	}
}

func TestBlockPartitionCoversEverything(t *testing.T) {
	perm := []int{0, 1, 2, 3, 4, 5, 6}
	blocks := BlockPartition(perm, 3)
	if len(blocks) != 3 {
		t.Fatalf("BlockPartition() returned %d blocks, want 3", len(blocks))
	}
	var total int
	for _, b := range blocks {
		total += len(b)
	}
	if total != len(perm) {
		t.Errorf("BlockPartition() covered %d elements, want %d", total, len(perm))
	}
}

func TestBlockPartitionBalanced(t *testing.T) {
	perm := make([]int, 10)
	for i := range perm {
		perm[i] = i
	}
	blocks := BlockPartition(perm, 4)
	sizes := make([]int, len(blocks))
	for i, b := range blocks {
		sizes[i] = len(b)
	}
	for _, s := range sizes {
		if s < 2 || s > 3 {
			t.Errorf("BlockPartition() produced unbalanced block size %d in %v", s, sizes)
		}
	}
}
