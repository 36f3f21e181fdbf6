package mathutil

import (
	"math"
	"testing"
)

func TestSafeRatio(t *testing.T) {
	tests := []struct {
		name     string
		num      float64
		den      float64
		expected float64
		wantNaN  bool
	}{
		{
			name:     "Normal division",
			num:      10.0,
			den:      4.0,
			expected: 2.5,
		},
		{
			name:    "Zero denominator",
			num:     500.0,
			den:     0.0,
			wantNaN: true,
		},
		{
			name:     "Zero numerator",
			num:      0.0,
			den:      5.0,
			expected: 0.0,
		},
		{
			name:     "Negative values",
			num:      -10.0,
			den:      5.0,
			expected: -2.0,
		},
		{
			name:    "NaN denominator propagates",
			num:     1.0,
			den:     math.NaN(),
			wantNaN: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SafeRatio(tt.num, tt.den)
			if tt.wantNaN {
				if !math.IsNaN(got) {
					t.Errorf("SafeRatio(%v, %v) = %v, expected NaN", tt.num, tt.den, got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("SafeRatio(%v, %v) = %v, expected %v", tt.num, tt.den, got, tt.expected)
			}
		})
	}
}

func TestPercent(t *testing.T) {
	tests := []struct {
		name     string
		part     float64
		whole    float64
		expected float64
		wantNaN  bool
	}{
		{
			name:     "Half",
			part:     50.0,
			whole:    100.0,
			expected: 50.0,
		},
		{
			name:     "Unclamped above 100",
			part:     120.0,
			whole:    100.0,
			expected: 120.0,
		},
		{
			name:     "Negative part",
			part:     -5000.0,
			whole:    40000.0,
			expected: -12.5,
		},
		{
			name:    "Zero whole",
			part:    1.0,
			whole:   0.0,
			wantNaN: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percent(tt.part, tt.whole)
			if tt.wantNaN {
				if !math.IsNaN(got) {
					t.Errorf("Percent(%v, %v) = %v, expected NaN", tt.part, tt.whole, got)
				}
				return
			}
			if got != tt.expected {
				t.Errorf("Percent(%v, %v) = %v, expected %v", tt.part, tt.whole, got, tt.expected)
			}
		})
	}
}

func TestIsDefined(t *testing.T) {
	if IsDefined(math.NaN()) {
		t.Errorf("IsDefined(NaN) = true, expected false")
	}
	if IsDefined(math.Inf(1)) {
		t.Errorf("IsDefined(+Inf) = true, expected false")
	}
	if IsDefined(math.Inf(-1)) {
		t.Errorf("IsDefined(-Inf) = true, expected false")
	}
	if !IsDefined(0.0) {
		t.Errorf("IsDefined(0) = false, expected true")
	}
	if !IsDefined(-1.5) {
		t.Errorf("IsDefined(-1.5) = false, expected true")
	}
}

func TestRound(t *testing.T) {
	if got := Round(1.006); got != 1.01 {
		t.Errorf("Round(1.006) = %v, expected 1.01", got)
	}
	if got := Round(2.344); got != 2.34 {
		t.Errorf("Round(2.344) = %v, expected 2.34", got)
	}
}

func TestWithinTolerance(t *testing.T) {
	if !WithinTolerance(1.0000000001, 1.0, 1e-9) {
		t.Errorf("WithinTolerance() = false, expected true")
	}
	if WithinTolerance(1.1, 1.0, 1e-9) {
		t.Errorf("WithinTolerance() = true, expected false")
	}
}
