package weighting

import (
	"math"

	"github.com/cwbudde/algo-loudness/dsp/filter/biquad"
)

// BS.1770 stage constants.
const (
	shelfGainDB = 3.99984385397
	shelfQ      = 0.7071752369554193
	shelfFreq   = 1681.9744509555319

	highpassQ    = 0.5003270373253953
	highpassFreq = 38.13547087613982
)

// Type identifies a frequency weighting curve.
type Type int

const (
	// TypeK is the BS.1770 K-weighting curve.
	TypeK Type = iota

	// TypeZ applies no frequency weighting (unity gain at all frequencies).
	TypeZ
)

// String returns a human-readable name for the weighting type.
func (t Type) String() string {
	switch t {
	case TypeK:
		return "K"
	case TypeZ:
		return "Z"
	default:
		return "Unknown"
	}
}

// ParseType returns the Type named by s ("K" or "Z", case-insensitive).
func ParseType(s string) (Type, bool) {
	switch s {
	case "K", "k":
		return TypeK, true
	case "Z", "z":
		return TypeZ, true
	default:
		return 0, false
	}
}

// New returns a [biquad.Chain] configured for the given weighting curve
// at the specified sample rate.
//
// Panics if sampleRate <= 0.
func New(t Type, sampleRate float64) *biquad.Chain {
	return biquad.NewChain(Coefficients(t, sampleRate))
}

// Coefficients returns the section coefficients of the weighting curve at
// sampleRate, in processing order. Use it to refresh an existing chain with
// [biquad.Chain.UpdateCoefficients] after a sample-rate change.
//
// Panics if sampleRate <= 0.
func Coefficients(t Type, sampleRate float64) []biquad.Coefficients {
	if sampleRate <= 0 {
		panic("weighting: sample rate must be positive")
	}

	switch t {
	case TypeK:
		return []biquad.Coefficients{KShelf(sampleRate), KHighpass(sampleRate)}
	case TypeZ:
		return []biquad.Coefficients{{B0: 1}}
	default:
		panic("weighting: unknown type")
	}
}

// KShelf computes the first K-weighting stage, a high shelf, using the
// bilinear transform with K = tan(pi*fc/fs):
//
//	Vh = 10^(G/20), Vb = Vh^0.4997
//	a0 = 1 + K/Q + K^2
//	B0 = (Vh + Vb*K/Q + K^2)/a0, B1 = 2*(K^2 - Vh)/a0, B2 = (Vh - Vb*K/Q + K^2)/a0
//	A1 = 2*(K^2 - 1)/a0,         A2 = (1 - K/Q + K^2)/a0
func KShelf(sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * shelfFreq / sampleRate)
	k2 := k * k
	vh := math.Pow(10, shelfGainDB/20)
	vb := math.Pow(vh, 0.4996667741545416)
	a0 := 1 + k/shelfQ + k2

	return biquad.Coefficients{
		B0: (vh + vb*k/shelfQ + k2) / a0,
		B1: 2 * (k2 - vh) / a0,
		B2: (vh - vb*k/shelfQ + k2) / a0,
		A1: 2 * (k2 - 1) / a0,
		A2: (1 - k/shelfQ + k2) / a0,
	}
}

// KHighpass computes the second K-weighting stage. The numerator is left
// unnormalized at (1, -2, 1), matching the BS.1770 reference table:
//
//	d  = 1 + K/Q + K^2
//	A1 = 2*(K^2 - 1)/d, A2 = (1 - K/Q + K^2)/d
func KHighpass(sampleRate float64) biquad.Coefficients {
	k := math.Tan(math.Pi * highpassFreq / sampleRate)
	k2 := k * k
	d := 1 + k/highpassQ + k2

	return biquad.Coefficients{
		B0: 1,
		B1: -2,
		B2: 1,
		A1: 2 * (k2 - 1) / d,
		A2: (1 - k/highpassQ + k2) / d,
	}
}
