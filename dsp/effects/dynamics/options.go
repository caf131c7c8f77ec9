package dynamics

import (
	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/filter/weighting"
	"github.com/cwbudde/algo-loudness/measure/loudness"
)

const (
	defaultSilenceThreshold = 1e-4
	defaultSilenceSamples   = 10
)

// LimiterConfig holds the structural configuration of a LoudnessLimiter.
// Runtime values arrive per call as a Params snapshot.
type LimiterConfig struct {
	core.ProcessorConfig

	Envelope  EnvelopeModel
	Window    loudness.WindowModel
	Weighting weighting.Type

	// DualMeter runs a fast power gauge next to the loudness gauge.
	DualMeter bool

	// SilenceGate resets the tracker and the meter after SilenceSamples
	// consecutive frames below SilenceThreshold (linear, after input gain).
	SilenceGate      bool
	SilenceThreshold float64
	SilenceSamples   int

	// SilenceMute mutes the output while infinite sustain is active and
	// the meter has no valid reading.
	SilenceMute bool

	Params Params
}

// LimiterOption mutates a LimiterConfig.
type LimiterOption func(*LimiterConfig)

// DefaultLimiterConfig returns the canonical engine: linear envelope,
// compensated sliding window, K-weighting, silence gate and mute enabled.
func DefaultLimiterConfig() LimiterConfig {
	return LimiterConfig{
		ProcessorConfig:  core.DefaultProcessorConfig(),
		Envelope:         EnvelopeLinear,
		Window:           loudness.SlidingCompensated,
		Weighting:        weighting.TypeK,
		SilenceGate:      true,
		SilenceThreshold: defaultSilenceThreshold,
		SilenceSamples:   defaultSilenceSamples,
		SilenceMute:      true,
		Params:           DefaultParams(),
	}
}

// WithBlockSize sets the largest chunk ProcessBlock handles at once.
func WithBlockSize(blockSize int) LimiterOption {
	return func(cfg *LimiterConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// WithEnvelopeModel selects the smoothing law.
func WithEnvelopeModel(m EnvelopeModel) LimiterOption {
	return func(cfg *LimiterConfig) {
		if m == EnvelopeLinear || m == EnvelopeExponential {
			cfg.Envelope = m
		}
	}
}

// WithWindowModel selects the accumulator summation model.
func WithWindowModel(m loudness.WindowModel) LimiterOption {
	return func(cfg *LimiterConfig) {
		if m == loudness.SlidingCompensated || m == loudness.BlockRecompute {
			cfg.Window = m
		}
	}
}

// WithWeighting selects the meter prefilter.
func WithWeighting(t weighting.Type) LimiterOption {
	return func(cfg *LimiterConfig) {
		if t == weighting.TypeK || t == weighting.TypeZ {
			cfg.Weighting = t
		}
	}
}

// WithDualMeter enables the fast power gauge.
func WithDualMeter(enabled bool) LimiterOption {
	return func(cfg *LimiterConfig) {
		cfg.DualMeter = enabled
	}
}

// WithSilenceGate configures silence detection. A non-positive threshold
// or sample count disables the gate.
func WithSilenceGate(threshold float64, samples int) LimiterOption {
	return func(cfg *LimiterConfig) {
		cfg.SilenceGate = threshold > 0 && samples > 0
		if cfg.SilenceGate {
			cfg.SilenceThreshold = threshold
			cfg.SilenceSamples = samples
		}
	}
}

// WithSilenceMute enables or disables muting under infinite sustain.
func WithSilenceMute(enabled bool) LimiterOption {
	return func(cfg *LimiterConfig) {
		cfg.SilenceMute = enabled
	}
}

// WithInitialParams sets the snapshot applied at construction.
func WithInitialParams(p Params) LimiterOption {
	return func(cfg *LimiterConfig) {
		cfg.Params = p
	}
}

// ApplyLimiterOptions applies zero or more options to the default config.
func ApplyLimiterOptions(opts ...LimiterOption) LimiterConfig {
	cfg := DefaultLimiterConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
