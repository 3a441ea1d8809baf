package linalg

import "testing"

func TestIdentity4MulVec4(t *testing.T) {
	v := Vec4{1, 2, 3, 4}
	if got := Identity4().MulVec4(v); got != v {
		t.Errorf("Identity4().MulVec4(v) = %v, want %v", got, v)
	}
}

func TestMat3Transpose(t *testing.T) {
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	got := m.T().T()
	if got != m {
		t.Errorf("T().T() = %v, want %v", got, m)
	}
}

func TestMat3MulIdentity(t *testing.T) {
	id := Diag3(Vec3{1, 1, 1})
	m := Mat3{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}}
	if got := m.Mul(id); got != m {
		t.Errorf("m.Mul(identity) = %v, want %v", got, m)
	}
}

func TestMat3MulAssociativeWithVec(t *testing.T) {
	a := Mat3{{2, 0, 0}, {0, 3, 0}, {0, 0, 4}}
	b := Diag3(Vec3{1, 1, 1})
	v := Vec3{1, 1, 1}
	lhs := a.Mul(b).MulVec3(v)
	rhs := a.MulVec3(b.MulVec3(v))
	if lhs != rhs {
		t.Errorf("(A*B)*v = %v, want A*(B*v) = %v", lhs, rhs)
	}
}

func TestMat4Col(t *testing.T) {
	m := Mat4{
		{1, 2, 3, 4},
		{5, 6, 7, 8},
		{9, 10, 11, 12},
		{13, 14, 15, 16},
	}
	want := Vec4{3, 7, 11, 15}
	if got := m.Col(2); got != want {
		t.Errorf("Col(2) = %v, want %v", got, want)
	}
}

func TestUpper3(t *testing.T) {
	m := Identity4()
	want := Diag3(Vec3{1, 1, 1})
	if got := m.Upper3(); got != want {
		t.Errorf("Upper3() = %v, want %v", got, want)
	}
}
