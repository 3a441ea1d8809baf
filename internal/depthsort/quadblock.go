package depthsort

import "github.com/cwbudde/gosplat/internal/linalg"

// quadDirs are the axes alternated by QuadBlock: X, Y, Z.
var quadDirs = [3]linalg.Vec4{
	{1, 0, 0, 0},
	{0, 1, 0, 0},
	{0, 0, 1, 0},
}

// QuadBlock recursively bisects the primitive set into 2^depth octants by
// alternating sort directions along X, Y, Z, returning the indices owned
// by octant id at the given depth. It is an alternative to the
// contiguous-depth BlockPartition for spatially-local worker assignment.
func QuadBlock(id, depth int, xyz []linalg.Vec4) []int {
	idx := make([]int, len(xyz))
	for i := range idx {
		idx[i] = i
	}

	l, r := 0, len(idx)
	for i := 0; i < depth; i++ {
		view := idx[l:r]
		sorted := SortByDepth(gather(xyz, view), quadDirs[i%3])
		reordered := make([]int, len(view))
		for j, s := range sorted {
			reordered[j] = view[s]
		}
		copy(view, reordered)

		mid := (l + r) / 2
		if id&1 != 0 {
			l = mid
		} else {
			r = mid
		}
		id >>= 1
	}
	return append([]int{}, idx[l:r]...)
}

// gather returns the positions named by idx, in idx's order.
func gather(xyz []linalg.Vec4, idx []int) []linalg.Vec4 {
	out := make([]linalg.Vec4, len(idx))
	for i, v := range idx {
		out[i] = xyz[v]
	}
	return out
}
