package linalg

import "testing"

func TestVec3Dot(t *testing.T) {
	a := Vec3{1, 2, 3}
	b := Vec3{4, 5, 6}
	if got, want := a.Dot(b), float32(32); got != want {
		t.Errorf("Dot() = %v, want %v", got, want)
	}
}

func TestVec3Normalized(t *testing.T) {
	n := Vec3{3, 0, 4}.Normalized()
	if n.Norm2() < 0.999 || n.Norm2() > 1.001 {
		t.Errorf("Normalized() norm2 = %v, want ~1", n.Norm2())
	}
}

func TestVec3Clamp01(t *testing.T) {
	got := Vec3{-1, 0.5, 2}.Clamp01()
	want := Vec3{0, 0.5, 1}
	if got != want {
		t.Errorf("Clamp01() = %v, want %v", got, want)
	}
}

func TestVec4XYZ(t *testing.T) {
	v := Vec4{1, 2, 3, 4}
	if got, want := v.XYZ(), (Vec3{1, 2, 3}); got != want {
		t.Errorf("XYZ() = %v, want %v", got, want)
	}
}

func TestVec4Dot(t *testing.T) {
	a := Vec4{1, 0, 0, 1}
	b := Vec4{0, 0, 1, 0}
	if got, want := a.Dot(b), float32(0); got != want {
		t.Errorf("Dot() = %v, want %v", got, want)
	}
}
