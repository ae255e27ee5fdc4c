package domain

import "testing"

func TestCalculateTrend(t *testing.T) {
	cases := []struct {
		name     string
		prev     int64
		current  int64
		value    float64
		positive bool
	}{
		{"growth", 10, 15, 50, true},
		{"decline", 20, 15, 25, false},
		{"flat", 7, 7, 0, true},
		{"zero baseline", 0, 12, 0, true},
		{"zero baseline zero current", 0, 0, 0, true},
		{"drop to zero", 4, 0, 100, false},
		{"fractional", 3, 4, 33.3, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			trend := CalculateTrend(tc.prev, tc.current)
			if trend.Value != tc.value {
				t.Fatalf("expected value %v, got %v", tc.value, trend.Value)
			}
			if trend.IsPositive != tc.positive {
				t.Fatalf("expected isPositive=%v, got %v", tc.positive, trend.IsPositive)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(66.666); got != 66.7 {
		t.Fatalf("expected 66.7, got %v", got)
	}
	if got := Round1(75.0); got != 75.0 {
		t.Fatalf("expected 75.0, got %v", got)
	}
	if got := Round1(0.04); got != 0.0 {
		t.Fatalf("expected 0.0, got %v", got)
	}
}
