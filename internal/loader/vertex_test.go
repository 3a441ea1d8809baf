package loader

import "testing"

func TestRequiredPropertiesCount(t *testing.T) {
	// 4 positional/opacity + 4 rotation + 3 scale + 3 DC + 45 rest = 59
	if got, want := len(RequiredProperties), 59; got != want {
		t.Errorf("len(RequiredProperties) = %d, want %d", got, want)
	}
}

func TestRequiredPropertiesContainsExpectedNames(t *testing.T) {
	names := make(map[string]bool)
	for _, n := range RequiredProperties {
		names[n] = true
	}
	for _, want := range []string{"x", "y", "z", "opacity", "rot_0", "scale_2", "f_dc_0", "f_rest_44"} {
		if !names[want] {
			t.Errorf("RequiredProperties missing %q", want)
		}
	}
}
