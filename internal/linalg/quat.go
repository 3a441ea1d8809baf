package linalg

// QuatToMat converts a unit quaternion q = (w,x,y,z) to a 3x3 rotation
// matrix. The caller must normalize q first.
func QuatToMat(q Vec4) Mat3 {
	w, x, y, z := q[0], q[1], q[2], q[3]
	return Mat3{
		{2*(w*w+x*x) - 1, 2 * (x*y - w*z), 2 * (x*z + w*y)},
		{2 * (x*y + w*z), 2*(w*w+y*y) - 1, 2 * (y*z - w*x)},
		{2 * (x*z - w*y), 2 * (y*z + w*x), 2*(w*w+z*z) - 1},
	}
}

// CalcCov3D builds Rt * diag(scale^2) * R, the world-space covariance of
// an anisotropic Gaussian with the given axis-aligned scale and rotation.
func CalcCov3D(scale Vec3, r Mat3) Mat3 {
	rt := r.T()
	return rt.MulDiag(scale.Squared()).Mul(r)
}
