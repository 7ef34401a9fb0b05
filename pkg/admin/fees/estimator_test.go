package fees

import "testing"

func TestEstimateProcessorFee(t *testing.T) {
	tests := []struct {
		name          string
		amount        float64
		international bool
		want          float64
	}{
		{"domestic", 113.96, false, 3.60},      // 113.96*0.029 = 3.30 + 0.30
		{"international", 113.96, true, 4.74},  // 113.96*0.039 = 4.44 + 0.30
		{"domestic round", 100, false, 3.20},   // 2.90 + 0.30
		{"zero amount", 0, false, 0},
		{"negative amount", -10, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EstimateProcessorFee(tt.amount, tt.international); got != tt.want {
				t.Errorf("EstimateProcessorFee(%v, %v) = %v, want %v", tt.amount, tt.international, got, tt.want)
			}
		})
	}
}
