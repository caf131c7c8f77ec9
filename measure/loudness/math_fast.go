//go:build fastmath

package loudness

import "github.com/meko-christian/algo-approx"

func mathSqrt(x float64) float64 {
	if x <= 0 {
		return 0
	}
	return approx.FastSqrt(x)
}
