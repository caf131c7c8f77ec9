package loudness

import (
	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/filter/weighting"
)

// MeterConfig defines configuration for the loudness meter.
type MeterConfig struct {
	core.ProcessorConfig

	Weighting weighting.Type
	Model     WindowModel

	// LoudnessWindowMs is the length of the loudness window.
	LoudnessWindowMs float64
	// PowerWindowMs is the length of the fast power window used when
	// DualMeter is set.
	PowerWindowMs float64
	// IntervalMs is the calculation interval. Zero recomputes every sample.
	IntervalMs float64

	DualMeter bool
}

// MeterOption mutates a MeterConfig.
type MeterOption func(*MeterConfig)

// DefaultMeterConfig returns a 400 ms K-weighted loudness meter with a 10 ms
// power window, updated every sample.
func DefaultMeterConfig() MeterConfig {
	return MeterConfig{
		ProcessorConfig:  core.DefaultProcessorConfig(),
		Weighting:        weighting.TypeK,
		Model:            SlidingCompensated,
		LoudnessWindowMs: 400,
		PowerWindowMs:    10,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) MeterOption {
	return func(cfg *MeterConfig) {
		if sampleRate > 0 && core.IsFinite(sampleRate) {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithWeighting selects the prefilter curve.
func WithWeighting(t weighting.Type) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Weighting = t
	}
}

// WithWindowModel selects the accumulator summation model.
func WithWindowModel(m WindowModel) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.Model = m
	}
}

// WithLoudnessWindow sets the loudness window length. The value is passed
// through unchecked so that NewMeter can reject it.
func WithLoudnessWindow(ms float64) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.LoudnessWindowMs = ms
	}
}

// WithPowerWindow sets the power window length and enables the power gauge.
func WithPowerWindow(ms float64) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.PowerWindowMs = ms
		cfg.DualMeter = true
	}
}

// WithInterval sets the calculation interval.
func WithInterval(ms float64) MeterOption {
	return func(cfg *MeterConfig) {
		if ms >= 0 {
			cfg.IntervalMs = ms
		}
	}
}

// WithDualMeter enables or disables the fast power gauge.
func WithDualMeter(enabled bool) MeterOption {
	return func(cfg *MeterConfig) {
		cfg.DualMeter = enabled
	}
}

// ApplyMeterOptions applies zero or more options to the default config.
func ApplyMeterOptions(opts ...MeterOption) MeterConfig {
	cfg := DefaultMeterConfig()

	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
