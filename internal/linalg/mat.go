package linalg

// Mat3 is a row-major 3x3 matrix.
type Mat3 [3][3]float32

// Mat4 is a row-major 4x4 matrix.
type Mat4 [4][4]float32

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Diag4(Vec4{1, 1, 1, 1})
}

// Diag4 builds a diagonal 4x4 matrix from a vector.
func Diag4(v Vec4) Mat4 {
	var m Mat4
	for i := 0; i < 4; i++ {
		m[i][i] = v[i]
	}
	return m
}

// Diag3 builds a diagonal 3x3 matrix from a vector.
func Diag3(v Vec3) Mat3 {
	var m Mat3
	for i := 0; i < 3; i++ {
		m[i][i] = v[i]
	}
	return m
}

// T returns the transpose of m.
func (m Mat3) T() Mat3 {
	var o Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o[j][i] = m[i][j]
		}
	}
	return o
}

// T returns the transpose of m.
func (m Mat4) T() Mat4 {
	var o Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			o[j][i] = m[i][j]
		}
	}
	return o
}

// MulVec3 multiplies m by the vector v.
func (m Mat3) MulVec3(v Vec3) Vec3 {
	return Vec3{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// MulVec4 multiplies m by the vector v.
func (m Mat4) MulVec4(v Vec4) Vec4 {
	var o Vec4
	for i := 0; i < 4; i++ {
		o[i] = m[i][0]*v[0] + m[i][1]*v[1] + m[i][2]*v[2] + m[i][3]*v[3]
	}
	return o
}

// mulT computes A * B^T, the primitive all other matrix products are built
// from (mirrors the reference implementation's mat_mul_T).
func (m Mat3) mulT(b Mat3) Mat3 {
	var o Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float32
			for k := 0; k < 3; k++ {
				s += m[i][k] * b[j][k]
			}
			o[i][j] = s
		}
	}
	return o
}

// Mul multiplies two 3x3 matrices.
func (m Mat3) Mul(b Mat3) Mat3 {
	return m.mulT(b.T())
}

func (m Mat4) mulT(b Mat4) Mat4 {
	var o Mat4
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			var s float32
			for k := 0; k < 4; k++ {
				s += m[i][k] * b[j][k]
			}
			o[i][j] = s
		}
	}
	return o
}

// Mul multiplies two 4x4 matrices.
func (m Mat4) Mul(b Mat4) Mat4 {
	return m.mulT(b.T())
}

// MulDiag post-multiplies m's columns by the diagonal of v.
func (m Mat3) MulDiag(v Vec3) Mat3 {
	var o Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o[i][j] = m[i][j] * v[j]
		}
	}
	return o
}

// Upper3 returns the upper-left 3x3 block of a 4x4 matrix.
func (m Mat4) Upper3() Mat3 {
	var o Mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			o[i][j] = m[i][j]
		}
	}
	return o
}

// Col returns column c as a Vec4.
func (m Mat4) Col(c int) Vec4 {
	return Vec4{m[0][c], m[1][c], m[2][c], m[3][c]}
}
