// Package primitive implements the columnar store of Gaussian splats.
package primitive

import (
	"math"

	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/sh"
)

// Store is a struct-of-arrays collection of Gaussian primitives. It is
// immutable after construction; order carries no semantics except when
// indexed by a sort permutation.
type Store struct {
	XYZ   []linalg.Vec4
	Cov3D []linalg.Mat3
	Color []sh.Harmonic
}

// New builds a Store from three equal-length parallel slices.
func New(xyz []linalg.Vec4, cov3d []linalg.Mat3, color []sh.Harmonic) *Store {
	if len(xyz) != len(cov3d) || len(xyz) != len(color) {
		panic("primitive: xyz, cov3d and color must have equal length")
	}
	return &Store{XYZ: xyz, Cov3D: cov3d, Color: color}
}

// Len returns the number of primitives in the store.
func (s *Store) Len() int {
	return len(s.XYZ)
}

// Gaussian is a single primitive's attributes, as returned by At.
type Gaussian struct {
	XYZ   linalg.Vec4
	Cov3D linalg.Mat3
	Color sh.Harmonic
}

// At returns the i'th primitive.
func (s *Store) At(i int) Gaussian {
	return Gaussian{XYZ: s.XYZ[i], Cov3D: s.Cov3D[i], Color: s.Color[i]}
}

// Range returns the elementwise min and max of the given positions.
func Range(xyz []linalg.Vec4) (min, max linalg.Vec4) {
	for i := range min {
		min[i] = float32(math.Inf(1))
		max[i] = float32(math.Inf(-1))
	}
	for _, p := range xyz {
		for i := 0; i < 4; i++ {
			if p[i] < min[i] {
				min[i] = p[i]
			}
			if p[i] > max[i] {
				max[i] = p[i]
			}
		}
	}
	return min, max
}
