package domain

import "testing"

func TestFloatEquals(t *testing.T) {
	if !FloatEquals(1.0, 1.0+Epsilon/2) {
		t.Error("expected values within epsilon/2 to be equal")
	}
	if FloatEquals(1.0, 1.1) {
		t.Error("expected distinct values to be unequal")
	}
}

func TestIsFiniteNonNegative(t *testing.T) {
	cases := []struct {
		name string
		v    float64
		want bool
	}{
		{"zero", 0, true},
		{"positive", 42.5, true},
		{"negative", -1, false},
		{"nan", nan(), false},
		{"posInf", posInf(), false},
		{"negInf", negInf(), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := IsFiniteNonNegative(c.v); got != c.want {
				t.Errorf("IsFiniteNonNegative(%v) = %v, want %v", c.v, got, c.want)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 1, 3); got != 3 {
		t.Errorf("Clamp(5, 1, 3) = %v, want 3", got)
	}
	if got := Clamp(-5, 1, 3); got != 1 {
		t.Errorf("Clamp(-5, 1, 3) = %v, want 1", got)
	}
	if got := Clamp(2, 1, 3); got != 2 {
		t.Errorf("Clamp(2, 1, 3) = %v, want 2", got)
	}
}

func nan() float64 {
	var zero float64
	return zero / zero
}

func posInf() float64 {
	one, zero := 1.0, 0.0
	return one / zero
}

func negInf() float64 {
	one, zero := -1.0, 0.0
	return one / zero
}
