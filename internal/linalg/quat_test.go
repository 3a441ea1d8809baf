package linalg

import "testing"

func closeEnough(a, b float32) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-5
}

func TestQuatToMatIdentity(t *testing.T) {
	m := QuatToMat(Vec4{1, 0, 0, 0})
	want := Diag3(Vec3{1, 1, 1})
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !closeEnough(m[i][j], want[i][j]) {
				t.Fatalf("QuatToMat(identity)[%d][%d] = %v, want %v", i, j, m[i][j], want[i][j])
			}
		}
	}
}

func TestQuatToMatPreservesLength(t *testing.T) {
	q := Vec4{0.7071068, 0.7071068, 0, 0}
	m := QuatToMat(q)
	v := Vec3{1, 2, 3}
	rotated := m.MulVec3(v)
	if !closeEnough(rotated.Norm2(), v.Norm2()) {
		t.Errorf("rotation changed vector length: %v vs %v", rotated.Norm2(), v.Norm2())
	}
}

func TestCalcCov3DIdentityRotation(t *testing.T) {
	scale := Vec3{2, 3, 4}
	id := Diag3(Vec3{1, 1, 1})
	cov := CalcCov3D(scale, id)
	want := Diag3(scale.Squared())
	if cov != want {
		t.Errorf("CalcCov3D with identity rotation = %v, want %v", cov, want)
	}
}

func TestCalcCov3DSymmetric(t *testing.T) {
	scale := Vec3{1, 2, 3}
	q := Vec4{0.5, 0.5, 0.5, 0.5}.Normalized()
	rot := QuatToMat(q)
	cov := CalcCov3D(scale, rot)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			if !closeEnough(cov[i][j], cov[j][i]) {
				t.Errorf("covariance not symmetric at [%d][%d]: %v vs [%d][%d]: %v", i, j, cov[i][j], j, i, cov[j][i])
			}
		}
	}
}
