// Package sh evaluates the view-dependent color of a Gaussian primitive
// from its pre-scaled spherical-harmonic coefficients.
package sh

import "github.com/cwbudde/gosplat/internal/linalg"

// basis holds the standard real spherical-harmonic normalization
// constants up to degree 3, applied once at construction time so
// evaluation is a plain linear combination of direction monomials.
var basis = [16]float32{
	0.28209479177387814,
	0.4886025119029199, 0.4886025119029199, 0.4886025119029199,
	1.0925484305920792, -1.0925484305920792, 0.31539156525252005, -1.0925484305920792, 0.5462742152960396,
	-0.5900435899266435, 2.890611442640554, -0.4570457994644658, 0.3731763325901154, -0.4570457994644658, 1.445305721320277, -0.5900435899266435,
}

// Harmonic is a degree-3 spherical-harmonic color, 16 RGB coefficients
// plus a post-sigmoid opacity.
type Harmonic struct {
	Coeff   [16]linalg.Vec3
	Opacity float32
}

// New builds a Harmonic, scaling the raw coefficients by the fixed SH
// basis constants.
func New(coeff [16]linalg.Vec3, opacity float32) Harmonic {
	h := Harmonic{Opacity: opacity}
	for i := range coeff {
		h.Coeff[i] = coeff[i].Scale(basis[i])
	}
	return h
}

// Eval evaluates the harmonic at unit direction dir, returning a color
// clamped to [0,1] per channel.
func (h Harmonic) Eval(dir linalg.Vec3) linalg.Vec3 {
	dx, dy, dz := dir[0], dir[1], dir[2]

	c := h.Coeff[0]
	c = c.Sub(h.Coeff[1].Scale(dy))
	c = c.Add(h.Coeff[2].Scale(dz))
	c = c.Sub(h.Coeff[3].Scale(dx))

	c = c.Add(h.Coeff[4].Scale(dx * dy))
	c = c.Add(h.Coeff[5].Scale(dy * dz))
	c = c.Add(h.Coeff[6].Scale(2*dz*dz - dx*dx - dy*dy))
	c = c.Add(h.Coeff[7].Scale(dx * dz))
	c = c.Add(h.Coeff[8].Scale(dx*dx - dy*dy))

	c = c.Add(h.Coeff[9].Scale(dy * (3*dx*dx - dy*dy)))
	c = c.Add(h.Coeff[10].Scale(dx * dy * dz))
	c = c.Add(h.Coeff[11].Scale(dy * (4*dz*dz - dx*dx - dy*dy)))
	c = c.Add(h.Coeff[12].Scale(dz * (2*dz*dz - 3*dx*dx - 3*dy*dy)))
	c = c.Add(h.Coeff[13].Scale(dx * (4*dz*dz - dx*dx - dy*dy)))
	c = c.Add(h.Coeff[14].Scale(dz * (dx*dx - dy*dy)))
	c = c.Add(h.Coeff[15].Scale(dx * (dx*dx - 3*dy*dy)))

	c = c.Add(linalg.Vec3{0.5, 0.5, 0.5})
	return c.Clamp01()
}
