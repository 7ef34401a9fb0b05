package money

import "testing"

func TestRound2(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"already rounded", 12.34, 12.34},
		{"half up", 1.955, 1.96},
		{"drift from float multiply", 112 * 0.0175, 1.96},
		{"negative", -47.855, -47.86},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round2(tt.in); got != tt.want {
				t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMul(t *testing.T) {
	if got := Mul(100, 0.12); got != 12.00 {
		t.Errorf("Mul(100, 0.12) = %v, want 12.00", got)
	}
	if got := Mul(112, 0.0175); got != 1.96 {
		t.Errorf("Mul(112, 0.0175) = %v, want 1.96", got)
	}
}

func TestHalf(t *testing.T) {
	if got := Half(95.70); got != 47.85 {
		t.Errorf("Half(95.70) = %v, want 47.85", got)
	}
}

func TestShare(t *testing.T) {
	if got := Share(16.50, 15.00, 18.26); got != 13.55 {
		t.Errorf("Share(16.50, 15.00, 18.26) = %v, want 13.55", got)
	}
	if got := Share(10, 1, 0); got != 0 {
		t.Errorf("Share with zero denominator = %v, want 0", got)
	}
}

func TestCentsRoundTrip(t *testing.T) {
	if got := ToCents(113.96); got != 11396 {
		t.Errorf("ToCents(113.96) = %v, want 11396", got)
	}
	if got := FromCents(11396); got != 113.96 {
		t.Errorf("FromCents(11396) = %v, want 113.96", got)
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(113.96, 113.97) {
		t.Error("1 cent difference should be within tolerance")
	}
	if WithinTolerance(113.96, 113.98) {
		t.Error("2 cent difference should not be within tolerance")
	}
}
