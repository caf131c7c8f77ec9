package core

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// IsFinite reports whether x is neither NaN nor infinite.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}

// FiniteOr returns x when it is finite and fallback otherwise.
func FiniteOr(x, fallback float64) float64 {
	if IsFinite(x) {
		return x
	}

	return fallback
}

// DBToLinear converts dB to linear amplitude (20*log10 convention).
func DBToLinear(db float64) float64 {
	return math.Pow(10, db/20)
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(linear)
}

// MsToSamples converts a duration in milliseconds to a whole number of
// samples, rounded to nearest. Negative or non-finite durations yield 0.
func MsToSamples(ms, sampleRate float64) int {
	if !IsFinite(ms) || ms <= 0 || sampleRate <= 0 {
		return 0
	}

	n := math.Round(ms * sampleRate / 1000)
	if n > math.MaxInt32 {
		return math.MaxInt32
	}

	return int(n)
}

// SamplesToMs converts a sample count to milliseconds.
func SamplesToMs(n int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}

	return float64(n) * 1000 / sampleRate
}
