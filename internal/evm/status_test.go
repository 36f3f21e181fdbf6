package evm

import (
	"math"
	"testing"
)

func TestClassifyIndex(t *testing.T) {
	bands := DefaultThresholds().CPI

	tests := []struct {
		name     string
		index    float64
		expected Status
	}{
		{
			name:     "Well above excellent",
			index:    1.25,
			expected: StatusExcellent,
		},
		{
			name:     "Exactly at excellent boundary",
			index:    1.10,
			expected: StatusExcellent,
		},
		{
			name:     "Exactly at good boundary",
			index:    1.00,
			expected: StatusGood,
		},
		{
			name:     "Between fair and good",
			index:    0.97,
			expected: StatusFair,
		},
		{
			name:     "Exactly at poor boundary",
			index:    0.90,
			expected: StatusPoor,
		},
		{
			name:     "Just below poor boundary",
			index:    0.889,
			expected: StatusCritical,
		},
		{
			name:     "Zero index",
			index:    0,
			expected: StatusCritical,
		},
		{
			name:     "Undefined index",
			index:    math.NaN(),
			expected: StatusCritical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyIndex(tt.index, bands)
			if got != tt.expected {
				t.Errorf("ClassifyIndex(%v) = %s, expected %s", tt.index, got, tt.expected)
			}
		})
	}
}

// A lower index must never classify better than a higher one.
func TestClassifyIndexMonotonic(t *testing.T) {
	bands := DefaultThresholds().CPI

	previous := StatusExcellent
	for index := 1.5; index >= -0.5; index -= 0.001 {
		status := ClassifyIndex(index, bands)
		if status.Severity() < previous.Severity() {
			t.Fatalf("ClassifyIndex(%v) = %s improved on %s at a lower index", index, status, previous)
		}
		previous = status
	}
}

func TestCombineStatus(t *testing.T) {
	tests := []struct {
		name     string
		cost     Status
		schedule Status
		expected Status
	}{
		{
			name:     "Both good",
			cost:     StatusGood,
			schedule: StatusGood,
			expected: StatusGood,
		},
		{
			name:     "Schedule worse",
			cost:     StatusExcellent,
			schedule: StatusPoor,
			expected: StatusPoor,
		},
		{
			name:     "Cost worse",
			cost:     StatusCritical,
			schedule: StatusFair,
			expected: StatusCritical,
		},
		{
			name:     "Adjacent bands",
			cost:     StatusGood,
			schedule: StatusFair,
			expected: StatusFair,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CombineStatus(tt.cost, tt.schedule)
			if got != tt.expected {
				t.Errorf("CombineStatus(%s, %s) = %s, expected %s", tt.cost, tt.schedule, got, tt.expected)
			}
		})
	}
}

func TestCombineStatusCommutative(t *testing.T) {
	all := []Status{StatusExcellent, StatusGood, StatusFair, StatusPoor, StatusCritical}
	for _, a := range all {
		for _, b := range all {
			if CombineStatus(a, b) != CombineStatus(b, a) {
				t.Errorf("CombineStatus(%s, %s) != CombineStatus(%s, %s)", a, b, b, a)
			}
		}
	}
}

func TestSeverityUnknownStatus(t *testing.T) {
	if Status("bogus").Severity() != StatusCritical.Severity() {
		t.Errorf("unknown status should rank as critical")
	}
}
