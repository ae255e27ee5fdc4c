package domain

import "math"

// Trend is the percent change of a metric between two 30-day windows.
type Trend struct {
	Value      float64 `json:"value"`
	IsPositive bool    `json:"isPositive"`
}

// CalculateTrend compares a prior-window count against the current one.
// A zero prior window yields {0, true} rather than an infinite ratio; the
// forced-positive sign is deliberate and relied on by the dashboard.
func CalculateTrend(prev, current int64) Trend {
	if prev == 0 {
		return Trend{Value: 0, IsPositive: true}
	}
	change := (float64(current-prev) / float64(prev)) * 100
	return Trend{
		Value:      Round1(math.Abs(change)),
		IsPositive: change >= 0,
	}
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
