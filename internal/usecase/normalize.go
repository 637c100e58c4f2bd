package usecase

import "math"

// Normalize maps v linearly from [min,max] onto [0,100], clamping
// out-of-range inputs. A degenerate range (max <= min) yields 0.
func Normalize(v, min, max float64) float64 {
	if max <= min {
		return 0
	}
	if v <= min {
		return 0
	}
	if v >= max {
		return 100
	}
	return (v - min) / (max - min) * 100
}

// roundScore rounds half away from zero. Scores are non-negative so
// this matches conventional half-up rounding.
func roundScore(v float64) int {
	return int(math.Round(v))
}
