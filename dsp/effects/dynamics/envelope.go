package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

const (
	// envelopeFloor is the smallest value an Envelope reports.
	envelopeFloor = 1e-9

	// linearEnvelopeSpan is the number of one-pole time constants the linear
	// model fits into the configured time (about 98% of a step).
	linearEnvelopeSpan = 4.0

	// exponentialEnvelopeDB is the level change the exponential model
	// covers within the configured time.
	exponentialEnvelopeDB = 80.0
)

// EnvelopeModel selects the smoothing law of an Envelope.
type EnvelopeModel int

const (
	// EnvelopeLinear moves a fixed fraction of the remaining distance each
	// sample: value += (target - value) * coeff, with
	// coeff = min(1, 4000 / (timeMs * sampleRate)).
	EnvelopeLinear EnvelopeModel = iota

	// EnvelopeExponential moves by a fixed number of decibels per sample,
	// 80 dB over the configured time, and stops at the target.
	EnvelopeExponential
)

// String returns the model name.
func (m EnvelopeModel) String() string {
	switch m {
	case EnvelopeLinear:
		return "linear"
	case EnvelopeExponential:
		return "exponential"
	default:
		return "unknown"
	}
}

// Envelope smooths a non-negative control signal. It attacks when the
// target is above the current value and releases otherwise. The output
// never drops below a small positive floor.
type Envelope struct {
	model      EnvelopeModel
	sampleRate float64

	value        float64
	attackCoeff  float64
	releaseCoeff float64
}

// NewEnvelope returns an envelope with instantaneous attack and release.
func NewEnvelope(sampleRate float64, model EnvelopeModel) (*Envelope, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("envelope: %w", err)
	}

	if model != EnvelopeLinear && model != EnvelopeExponential {
		return nil, fmt.Errorf("envelope: invalid model: %d", model)
	}

	e := &Envelope{model: model, sampleRate: sampleRate}
	e.SetCoefficients(0, 0)
	e.Reset()

	return e, nil
}

// Calculate feeds one target value and returns the smoothed value.
func (e *Envelope) Calculate(target float64) float64 {
	if e.model == EnvelopeExponential {
		switch {
		case target > e.value:
			e.value = math.Min(e.value*e.attackCoeff, target)
		case target < e.value:
			e.value = math.Max(e.value*e.releaseCoeff, target)
		}
	} else {
		if target > e.value {
			e.value += (target - e.value) * e.attackCoeff
		} else {
			e.value += (target - e.value) * e.releaseCoeff
		}
	}

	if !(e.value >= envelopeFloor) {
		e.value = envelopeFloor
	}

	return e.value
}

// SetCoefficients derives the attack and release coefficients. Times at or
// below one sample settle within a single sample.
func (e *Envelope) SetCoefficients(attackMs, releaseMs float64) {
	e.attackCoeff = e.coefficient(attackMs, true)
	e.releaseCoeff = e.coefficient(releaseMs, false)
}

func (e *Envelope) coefficient(ms float64, rising bool) float64 {
	samples := ms * e.sampleRate / 1000
	if !(samples > 1) {
		samples = 1
	}

	if e.model == EnvelopeExponential {
		step := exponentialEnvelopeDB / samples
		if !rising {
			step = -step
		}

		return mathPow(10, step/20)
	}

	return math.Min(1, linearEnvelopeSpan/samples)
}

// SetSampleRate changes the sample rate. Call SetCoefficients afterwards.
func (e *Envelope) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("envelope: %w", err)
	}

	e.sampleRate = sampleRate

	return nil
}

// Reset returns the value to the floor.
func (e *Envelope) Reset() {
	e.value = envelopeFloor
}

// Value returns the current smoothed value.
func (e *Envelope) Value() float64 { return e.value }

// Model returns the smoothing model.
func (e *Envelope) Model() EnvelopeModel { return e.model }

// AttackCoeff returns the attack coefficient.
func (e *Envelope) AttackCoeff() float64 { return e.attackCoeff }

// ReleaseCoeff returns the release coefficient.
func (e *Envelope) ReleaseCoeff() float64 { return e.releaseCoeff }
