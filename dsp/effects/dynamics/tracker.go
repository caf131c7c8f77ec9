package dynamics

import (
	"math"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

// releaseBaseCeiling caps the per-release-time decay factor so that a limit
// at or near 0 dBFS still releases (-1 dB per release time).
var releaseBaseCeiling = core.DBToLinear(-1)

// TrackerState is the externally visible state of a PeakTracker.
type TrackerState int

const (
	// StateCold means no signal has been observed since construction or
	// the last reset.
	StateCold TrackerState = iota
	// StateAtLimit means the tracked peak equals the limit (gain is 1).
	StateAtLimit
	// StateTracking means the tracked peak is above the limit (gain < 1).
	StateTracking
)

// String returns the state name.
func (s TrackerState) String() string {
	switch s {
	case StateCold:
		return "cold"
	case StateAtLimit:
		return "at-limit"
	case StateTracking:
		return "tracking"
	default:
		return "unknown"
	}
}

// PeakTracker follows the running peak of a loudness or level estimate
// and derives the gain that maps that peak onto the limit. Attack is
// instantaneous; release decays the peak multiplicatively toward the limit.
//
// Whenever the peak is above the limit, Gain()*Peak() equals the limit up
// to rounding. The peak never falls below the limit, so the gain is always
// finite and in (0, 1].
type PeakTracker struct {
	limit        float64
	releaseSpeed float64

	peak    float64
	gain    float64
	seen    bool
	sustain bool
}

// NewPeakTracker returns a tracker with a 0 dBFS limit and instant release.
func NewPeakTracker() *PeakTracker {
	t := &PeakTracker{limit: 1}
	t.Reset()

	return t
}

// ReleaseSpeed returns the per-sample decay factor for a release time: the
// peak falls by min(limit, -1 dB) once per release time. Non-positive
// release times decay in one sample.
func ReleaseSpeed(limit, releaseMs, sampleRate float64) float64 {
	if !(releaseMs > 0) || !(sampleRate > 0) {
		return 0
	}

	base := math.Min(limit, releaseBaseCeiling)
	if !(base > 0) {
		return 0
	}

	return mathPow(base, 1000/(sampleRate*releaseMs))
}

// Configure applies a new limit and release speed. The peak is raised to
// the limit if it was below it, or set to it while cold, and the gain is
// re-derived. Non-positive or non-finite limits are ignored.
func (t *PeakTracker) Configure(limit, releaseSpeed float64) {
	if limit > 0 && !math.IsInf(limit, 0) {
		t.limit = limit
	}

	if releaseSpeed >= 0 && releaseSpeed <= 1 {
		t.releaseSpeed = releaseSpeed
	}

	if t.seen {
		t.peak = math.Max(t.peak, t.limit)
	} else {
		t.peak = t.limit
	}

	t.gain = t.limit / t.peak
}

// Update feeds one estimate and returns the gain.
func (t *PeakTracker) Update(e float64) float64 {
	if e > 0 {
		t.seen = true
	}

	if e > t.peak {
		t.peak = e
		t.gain = t.limit / t.peak

		return t.gain
	}

	if !t.sustain && e < t.peak && t.peak > t.limit {
		t.peak *= t.releaseSpeed
		if floor := math.Max(e, t.limit); t.peak < floor {
			t.peak = floor
		}

		t.gain = t.limit / t.peak
	}

	return t.gain
}

// Reset sets the peak to the limit and the gain to 1.
func (t *PeakTracker) Reset() {
	t.peak = t.limit
	t.gain = 1
	t.seen = false
}

// SetInfiniteSustain freezes (true) or releases (false) the tracked peak.
// Freezing keeps the current peak; it does not reset.
func (t *PeakTracker) SetInfiniteSustain(enabled bool) {
	t.sustain = enabled
}

// InfiniteSustain reports whether release is suppressed.
func (t *PeakTracker) InfiniteSustain() bool { return t.sustain }

// Peak returns the tracked peak.
func (t *PeakTracker) Peak() float64 { return t.peak }

// Gain returns the current gain.
func (t *PeakTracker) Gain() float64 { return t.gain }

// Limit returns the configured limit.
func (t *PeakTracker) Limit() float64 { return t.limit }

// AtLimit reports whether the peak equals the limit.
func (t *PeakTracker) AtLimit() bool { return t.peak == t.limit }

// State returns the current state.
func (t *PeakTracker) State() TrackerState {
	switch {
	case !t.seen:
		return StateCold
	case t.peak > t.limit:
		return StateTracking
	default:
		return StateAtLimit
	}
}
