//go:build fastmath

package dynamics

import (
	"math"

	"github.com/meko-christian/algo-approx"
)

// mathPow computes x^y as e^(y·ln x) for positive x.
func mathPow(x, y float64) float64 {
	if x <= 0 {
		return math.Pow(x, y)
	}
	return approx.FastExp(y * approx.FastLog(x))
}
