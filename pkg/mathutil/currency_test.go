package mathutil

import (
	"math"
	"testing"
)

func TestRoundRuble(t *testing.T) {
	tests := []struct {
		name     string
		val      float64
		expected float64
	}{
		{
			name:     "Round down",
			val:      1234.49,
			expected: 1234,
		},
		{
			name:     "Round up",
			val:      1234.5,
			expected: 1235,
		},
		{
			name:     "Negative value",
			val:      -99.6,
			expected: -100,
		},
		{
			name:     "Whole value unchanged",
			val:      50000,
			expected: 50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := RoundRuble(tt.val); result != tt.expected {
				t.Errorf("RoundRuble(%v) = %v, expected %v", tt.val, result, tt.expected)
			}
		})
	}
}

func TestMonthlyRate(t *testing.T) {
	tests := []struct {
		name     string
		annual   float64
		expected float64
	}{
		{
			name:     "Twelve percent",
			annual:   12.0,
			expected: 0.01,
		},
		{
			name:     "Zero",
			annual:   0.0,
			expected: 0.0,
		},
		{
			name:     "Negative decline",
			annual:   -6.0,
			expected: -0.005,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := MonthlyRate(tt.annual); math.Abs(result-tt.expected) > 1e-12 {
				t.Errorf("MonthlyRate(%v) = %v, expected %v", tt.annual, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	if !IsZero(0.3) {
		t.Error("IsZero(0.3) should be true within ruble tolerance")
	}
	if IsZero(1.0) {
		t.Error("IsZero(1.0) should be false")
	}
}

func TestApplyPercentage(t *testing.T) {
	if result := ApplyPercentage(10_000_000, 20); result != 2_000_000 {
		t.Errorf("ApplyPercentage(10000000, 20) = %v, expected 2000000", result)
	}
}
