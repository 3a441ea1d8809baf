// Package depthsort implements stable depth ordering of primitive indices
// and the partitioners that split an ordering across workers or octants.
package depthsort

import (
	"sort"

	"github.com/cwbudde/gosplat/internal/linalg"
)

// SortByDepth returns a permutation of {0..len(xyz)-1} stably ordered by
// ascending projection onto dir (xyz[i] . dir).
func SortByDepth(xyz []linalg.Vec4, dir linalg.Vec4) []int {
	idx := make([]int, len(xyz))
	depth := make([]float32, len(xyz))
	for i := range xyz {
		idx[i] = i
		depth[i] = xyz[i].Dot(dir)
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return depth[idx[a]] < depth[idx[b]]
	})
	return idx
}

// BlockPartition splits a globally depth-sorted permutation into k
// contiguous, spatially-coherent-in-depth blocks. The first len(perm)%k
// blocks get ceil(len/k) elements, the rest get floor(len/k).
func BlockPartition(perm []int, k int) [][]int {
	n := len(perm)
	blocks := make([][]int, k)
	base := n / k
	rem := n % k
	offset := 0
	for b := 0; b < k; b++ {
		size := base
		if b < rem {
			size++
		}
		blocks[b] = perm[offset : offset+size]
		offset += size
	}
	return blocks
}
