package primitive

import "testing"

func TestSyntheticPrefixMatchesHandPlacedScene(t *testing.T) {
	s := Synthetic(2, 0)
	full := loadTestScene()
	if s.Len() != 2 {
		t.Fatalf("Synthetic(2, _).Len() = %d, want 2", s.Len())
	}
	for i := 0; i < 2; i++ {
		if s.XYZ[i] != full.XYZ[i] {
			t.Errorf("Synthetic(2, _).XYZ[%d] = %v, want %v", i, s.XYZ[i], full.XYZ[i])
		}
	}
}

func TestSyntheticDeterministic(t *testing.T) {
	a := Synthetic(20, 42)
	b := Synthetic(20, 42)
	for i := 0; i < a.Len(); i++ {
		if a.XYZ[i] != b.XYZ[i] {
			t.Errorf("Synthetic() with the same seed produced different results at %d", i)
		}
	}
}

func TestSyntheticExtendsBeyondHandPlacedScene(t *testing.T) {
	s := Synthetic(10, 1)
	if s.Len() != 10 {
		t.Fatalf("Synthetic(10, _).Len() = %d, want 10", s.Len())
	}
}
