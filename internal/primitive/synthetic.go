package primitive

import (
	"math/rand"

	"github.com/cwbudde/gosplat/internal/linalg"
	"github.com/cwbudde/gosplat/internal/sh"
)

// identityQuat is the identity rotation (w,x,y,z).
var identityQuat = linalg.Vec4{1, 0, 0, 0}

// loadTestScene builds a hand-placed four-Gaussian smoke-test scene,
// useful for exercising the pipeline without a vertex file.
func loadTestScene() *Store {
	xyz := []linalg.Vec4{
		{0, 0, 0, 1},
		{1, 0, 0, 1},
		{0, 1, 0, 1},
		{0, 0, -1, 1},
	}
	scales := []linalg.Vec3{
		{0.03, 0.03, 0.03},
		{0.2, 0.03, 0.03},
		{0.03, 0.2, 0.03},
		{0.03, 0.03, 0.2},
	}
	colors := []linalg.Vec3{
		{1, 0, 1},
		{1, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
	}

	rot := linalg.QuatToMat(identityQuat)
	cov3d := make([]linalg.Mat3, len(xyz))
	harm := make([]sh.Harmonic, len(xyz))
	for i := range xyz {
		cov3d[i] = linalg.CalcCov3D(scales[i], rot)
		var coeff [16]linalg.Vec3
		coeff[0] = colors[i]
		harm[i] = sh.New(coeff, 1.0)
	}
	return New(xyz, cov3d, harm)
}

// Synthetic returns a deterministic scene of n Gaussians for smoke
// testing. With n <= 4 it returns a prefix of loadTestScene's hand-placed
// primitives; larger n fills the remainder with a seeded random
// scattering of small isotropic splats.
func Synthetic(n int, seed int64) *Store {
	base := loadTestScene()
	if n <= base.Len() {
		return New(base.XYZ[:n], base.Cov3D[:n], base.Color[:n])
	}

	xyz := append([]linalg.Vec4{}, base.XYZ...)
	cov3d := append([]linalg.Mat3{}, base.Cov3D...)
	colors := append([]sh.Harmonic{}, base.Color...)

	rng := rand.New(rand.NewSource(seed))
	identity := linalg.QuatToMat(identityQuat)
	for i := base.Len(); i < n; i++ {
		pos := linalg.Vec4{
			(rng.Float32()*2 - 1) * 2,
			(rng.Float32()*2 - 1) * 2,
			-(rng.Float32()*3 + 0.5),
			1,
		}
		scale := float32(0.02) + rng.Float32()*0.03
		cov := linalg.CalcCov3D(linalg.Vec3{scale, scale, scale}, identity)

		var coeff [16]linalg.Vec3
		coeff[0] = linalg.Vec3{rng.Float32(), rng.Float32(), rng.Float32()}
		harm := sh.New(coeff, 0.5+rng.Float32()*0.5)

		xyz = append(xyz, pos)
		cov3d = append(cov3d, cov)
		colors = append(colors, harm)
	}
	return New(xyz, cov3d, colors)
}
