package loudness

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/filter/biquad"
	"github.com/cwbudde/algo-loudness/dsp/filter/weighting"
)

// Meter measures the loudness of a stereo stream.
type Meter struct {
	cfg MeterConfig

	left  *biquad.Chain
	right *biquad.Chain

	loudness *Gauge
	power    *Gauge
}

// NewMeter creates a meter with the given options. It fails when the sample
// rate is invalid, a window rounds to zero samples or the calculation
// interval is longer than a window.
func NewMeter(opts ...MeterOption) (*Meter, error) {
	cfg := ApplyMeterOptions(opts...)
	if err := core.ValidateSampleRate(cfg.SampleRate); err != nil {
		return nil, fmt.Errorf("loudness meter: %w", err)
	}

	n := core.MsToSamples(cfg.LoudnessWindowMs, cfg.SampleRate)
	interval := max(core.MsToSamples(cfg.IntervalMs, cfg.SampleRate), 1)

	loud, err := NewGauge(n, interval, cfg.Model)
	if err != nil {
		return nil, fmt.Errorf("loudness meter: loudness window: %w", err)
	}

	m := &Meter{
		cfg:      cfg,
		left:     weighting.New(cfg.Weighting, cfg.SampleRate),
		right:    weighting.New(cfg.Weighting, cfg.SampleRate),
		loudness: loud,
	}

	if cfg.DualMeter {
		pn := core.MsToSamples(cfg.PowerWindowMs, cfg.SampleRate)

		m.power, err = NewGauge(pn, interval, cfg.Model)
		if err != nil {
			return nil, fmt.Errorf("loudness meter: power window: %w", err)
		}
	}

	return m, nil
}

// AddSamples feeds one stereo frame.
func (m *Meter) AddSamples(left, right float64) {
	l := m.left.ProcessSample(left)
	r := m.right.ProcessSample(right)
	p := l*l + r*r

	m.loudness.Add(p)
	if m.power != nil {
		m.power.Add(p)
	}
}

// Loudness returns the loudness reading and whether it is valid.
func (m *Meter) Loudness() (float64, bool) {
	return m.loudness.Reading()
}

// Power returns the power reading and whether it is valid. It is never
// valid on a meter without a power gauge.
func (m *Meter) Power() (float64, bool) {
	if m.power == nil {
		return 0, false
	}

	return m.power.Reading()
}

// Ready reports whether the loudness reading is valid.
func (m *Meter) Ready() bool {
	_, ok := m.loudness.Reading()
	return ok
}

// DualMeter reports whether the power gauge is running.
func (m *Meter) DualMeter() bool { return m.power != nil }

// SampleRate returns the configured sample rate.
func (m *Meter) SampleRate() float64 { return m.cfg.SampleRate }

// WindowLengths returns the current loudness and power window lengths and
// the calculation interval, all in samples. power is zero without a power
// gauge.
func (m *Meter) WindowLengths() (loudness, power, interval int) {
	loudness = m.loudness.Window().Len()
	if m.power != nil {
		power = m.power.Window().Len()
	}

	return loudness, power, m.loudness.Interval()
}

// SetWindows changes window and interval lengths in samples. Values are
// clamped rather than rejected; see [Gauge.Resize]. Only gauges whose
// window length changes lose their history.
func (m *Meter) SetWindows(loudness, power, interval int) {
	m.loudness.Resize(loudness, interval)
	if m.power != nil {
		m.power.Resize(power, interval)
	}
}

// SetSampleRate re-derives the prefilter for a new sample rate and clears
// all history. Window lengths in samples are unchanged; callers convert
// their millisecond settings again.
func (m *Meter) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("loudness meter: %w", err)
	}

	m.cfg.SampleRate = sampleRate
	coeffs := weighting.Coefficients(m.cfg.Weighting, sampleRate)
	m.left.UpdateCoefficients(coeffs, 1)
	m.right.UpdateCoefficients(coeffs, 1)
	m.Reset()

	return nil
}

// Reset clears prefilter state, windows and readings.
func (m *Meter) Reset() {
	m.left.Reset()
	m.right.Reset()
	m.loudness.Reset()
	if m.power != nil {
		m.power.Reset()
	}
}

// ToLKFS converts a reading to LKFS. Non-positive readings map to -120.
func ToLKFS(reading float64) float64 {
	if reading <= 0 {
		return -120
	}

	return 20 * math.Log10(reading)
}

// FromLKFS converts an LKFS level to a reading.
func FromLKFS(lkfs float64) float64 {
	return core.DBToLinear(lkfs)
}
