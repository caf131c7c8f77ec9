package response

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/filter/biquad"
)

// ErrInvalidSize is returned for an FFT size that is not a power of two of
// at least 2.
var ErrInvalidSize = errors.New("response: FFT size must be a power of two >= 2")

// magnitudeFloor bounds the dB conversion of empty bins.
const magnitudeFloor = 1e-12

// Curve is a magnitude response sampled at the non-negative FFT bins.
type Curve struct {
	SampleRate  float64
	Size        int
	Freqs       []float64
	MagnitudeDB []float64
}

// Point pairs the measured and the analytic magnitude at one frequency.
type Point struct {
	Freq     float64
	Measured float64
	Analytic float64
}

// Measure computes the magnitude response of chain from a size-point FFT of
// its impulse response. The chain history is left unchanged.
func Measure(chain *biquad.Chain, sampleRate float64, size int) (Curve, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return Curve{}, fmt.Errorf("response: %w", err)
	}

	if size < 2 || size&(size-1) != 0 {
		return Curve{}, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}

	ir := chain.ImpulseResponse(size)
	in := make([]complex128, size)
	for i, v := range ir {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return Curve{}, fmt.Errorf("response: %w", err)
	}

	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return Curve{}, fmt.Errorf("response: %w", err)
	}

	bins := size/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	c := Curve{
		SampleRate:  sampleRate,
		Size:        size,
		Freqs:       make([]float64, bins),
		MagnitudeDB: mag,
	}

	for k := range bins {
		c.Freqs[k] = float64(k) * sampleRate / float64(size)
		c.MagnitudeDB[k] = 20 * math.Log10(math.Max(mag[k], magnitudeFloor))
	}

	return c, nil
}

// At returns the magnitude in dB at freqHz, interpolated linearly between
// neighbouring bins. Frequencies outside [0, fs/2] return the edge bin.
func (c Curve) At(freqHz float64) float64 {
	n := len(c.MagnitudeDB)
	if n == 0 {
		return math.NaN()
	}

	pos := freqHz * float64(c.Size) / c.SampleRate
	switch {
	case !(pos > 0):
		return c.MagnitudeDB[0]
	case pos >= float64(n-1):
		return c.MagnitudeDB[n-1]
	}

	k := int(pos)
	frac := pos - float64(k)

	return c.MagnitudeDB[k] + frac*(c.MagnitudeDB[k+1]-c.MagnitudeDB[k])
}

// Analytic evaluates the transfer function of chain at each frequency.
func Analytic(chain *biquad.Chain, sampleRate float64, freqs []float64) []float64 {
	out := make([]float64, len(freqs))
	for i, f := range freqs {
		out[i] = chain.MagnitudeDB(f, sampleRate)
	}

	return out
}

// Compare measures chain and reports measured and analytic magnitude at
// each of freqs.
func Compare(chain *biquad.Chain, sampleRate float64, size int, freqs []float64) ([]Point, error) {
	c, err := Measure(chain, sampleRate, size)
	if err != nil {
		return nil, err
	}

	analytic := Analytic(chain, sampleRate, freqs)
	points := make([]Point, len(freqs))
	for i, f := range freqs {
		points[i] = Point{Freq: f, Measured: c.At(f), Analytic: analytic[i]}
	}

	return points, nil
}

// LogFrequencies returns n frequencies spaced logarithmically from lo to hi
// inclusive.
func LogFrequencies(lo, hi float64, n int) []float64 {
	if n <= 0 || !(lo > 0) || !(hi >= lo) {
		return nil
	}

	if n == 1 {
		return []float64{lo}
	}

	out := make([]float64, n)
	ratio := math.Log(hi / lo)
	for i := range out {
		out[i] = lo * math.Exp(ratio*float64(i)/float64(n-1))
	}
	out[n-1] = hi

	return out
}
