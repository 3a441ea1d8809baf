// Package linalg implements fixed-size vector and matrix value types used
// by the splatting pipeline. Everything is sized at 3 or 4 dimensions, so
// plain arrays beat a generic matrix package on both clarity and speed.
package linalg

import "math"

// Vec3 is a 3-component single-precision vector.
type Vec3 [3]float32

// Vec4 is a 4-component single-precision vector, usually homogeneous
// (w == 1 for positions, w == 0 for directions).
type Vec4 [4]float32

// Add returns the elementwise sum.
func (a Vec3) Add(b Vec3) Vec3 {
	return Vec3{a[0] + b[0], a[1] + b[1], a[2] + b[2]}
}

// Sub returns the elementwise difference.
func (a Vec3) Sub(b Vec3) Vec3 {
	return Vec3{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

// Scale returns a scaled by s.
func (a Vec3) Scale(s float32) Vec3 {
	return Vec3{a[0] * s, a[1] * s, a[2] * s}
}

// Dot returns the dot product of a and b.
func (a Vec3) Dot(b Vec3) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// Squared returns the elementwise square.
func (a Vec3) Squared() Vec3 {
	return Vec3{a[0] * a[0], a[1] * a[1], a[2] * a[2]}
}

// Norm2 returns the squared Euclidean norm.
func (a Vec3) Norm2() float32 {
	s := a.Squared()
	return s[0] + s[1] + s[2]
}

// Normalized returns a unit vector in the direction of a.
func (a Vec3) Normalized() Vec3 {
	n := float32(math.Sqrt(float64(a.Norm2())))
	return Vec3{a[0] / n, a[1] / n, a[2] / n}
}

// Clamp01 clamps every channel of a to [0,1].
func (a Vec3) Clamp01() Vec3 {
	return Vec3{clamp01(a[0]), clamp01(a[1]), clamp01(a[2])}
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Dot returns the dot product of a and b.
func (a Vec4) Dot(b Vec4) float32 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2] + a[3]*b[3]
}

// Sub returns the elementwise difference.
func (a Vec4) Sub(b Vec4) Vec4 {
	return Vec4{a[0] - b[0], a[1] - b[1], a[2] - b[2], a[3] - b[3]}
}

// Squared returns the elementwise square.
func (a Vec4) Squared() Vec4 {
	return Vec4{a[0] * a[0], a[1] * a[1], a[2] * a[2], a[3] * a[3]}
}

// Norm2 returns the squared Euclidean norm.
func (a Vec4) Norm2() float32 {
	s := a.Squared()
	return s[0] + s[1] + s[2] + s[3]
}

// Normalized returns a unit vector in the direction of a.
func (a Vec4) Normalized() Vec4 {
	n := float32(math.Sqrt(float64(a.Norm2())))
	return Vec4{a[0] / n, a[1] / n, a[2] / n, a[3] / n}
}

// XYZ returns the first three components as a Vec3.
func (a Vec4) XYZ() Vec3 {
	return Vec3{a[0], a[1], a[2]}
}
