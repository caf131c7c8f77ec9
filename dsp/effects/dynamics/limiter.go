package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-loudness/dsp/core"
	"github.com/cwbudde/algo-loudness/dsp/delay"
	"github.com/cwbudde/algo-loudness/measure/loudness"
)

// Stats is a readout of the engine after the last processed frame.
type Stats struct {
	Loudness      float64
	LoudnessReady bool
	Power         float64
	PowerReady    bool

	// Estimate is the value fed to the tracker.
	Estimate float64
	Peak     float64
	Gain     float64
	Limit    float64
	State    TrackerState

	// Muted is set while silence muting holds the output at zero.
	Muted bool
	// Gated is set while the silence gate has fired and no signal returned.
	Gated bool
}

// LoudnessLimiter keeps the loudness of a stereo stream below a ceiling.
//
// Per frame the input is scaled by the input gain and metered. The meter
// reading (or the sample magnitude while the meter is cold) is smoothed by
// an attack envelope and drives a PeakTracker. The tracker gain, together
// with input and output gain, is applied to the optionally delayed input
// and the result is clamped to the hard limit.
//
// A LoudnessLimiter is owned by one audio thread. Parameters arrive as a
// Params snapshot on every call; derived coefficients are recomputed only
// when the snapshot changes.
type LoudnessLimiter struct {
	cfg LimiterConfig

	meter   *loudness.Meter
	env     *Envelope
	tracker *PeakTracker
	line    *delay.StereoLine

	last      Params
	applied   Params
	prevReset bool

	inputGain float64
	totalGain float64
	hardLimit float64
	mix       float64

	silentRun int
	gated     bool
	muted     bool
	estimate  float64

	gains []float64
	bufL  []float64
	bufR  []float64
}

// NewLoudnessLimiter creates an engine. Construction fails on an invalid
// sample rate, a loudness or power window shorter than one sample, a
// calculation interval longer than a window or a negative delay.
func NewLoudnessLimiter(sampleRate float64, opts ...LimiterOption) (*LoudnessLimiter, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("loudness limiter: %w", err)
	}

	cfg := ApplyLimiterOptions(opts...)
	cfg.SampleRate = sampleRate

	p := finiteParams(cfg.Params, DefaultParams())
	if p.DelayMs < 0 {
		return nil, fmt.Errorf("loudness limiter: %w: %v ms", delay.ErrInvalidDelay, p.DelayMs)
	}

	meterOpts := []loudness.MeterOption{
		loudness.WithSampleRate(sampleRate),
		loudness.WithWeighting(cfg.Weighting),
		loudness.WithWindowModel(cfg.Window),
		loudness.WithLoudnessWindow(p.LoudnessWindowMs),
		loudness.WithInterval(math.Max(p.IntervalMs, 0)),
	}
	if cfg.DualMeter {
		meterOpts = append(meterOpts, loudness.WithPowerWindow(p.PowerWindowMs))
	}

	meter, err := loudness.NewMeter(meterOpts...)
	if err != nil {
		return nil, fmt.Errorf("loudness limiter: %w", err)
	}

	env, err := NewEnvelope(sampleRate, cfg.Envelope)
	if err != nil {
		return nil, fmt.Errorf("loudness limiter: %w", err)
	}

	line, err := delay.NewStereo(core.MsToSamples(p.DelayMs, sampleRate))
	if err != nil {
		return nil, fmt.Errorf("loudness limiter: %w", err)
	}

	l := &LoudnessLimiter{
		cfg:     cfg,
		meter:   meter,
		env:     env,
		tracker: NewPeakTracker(),
		line:    line,
		applied: p,
		gains:   make([]float64, cfg.BlockSize),
		bufL:    make([]float64, cfg.BlockSize),
		bufR:    make([]float64, cfg.BlockSize),
	}

	l.prevReset = p.Reset
	l.apply(p)

	return l, nil
}

// Process runs one stereo frame.
func (l *LoudnessLimiter) Process(left, right float32, p Params) (float32, float32) {
	l.update(p)

	dl, dr, g := l.step(float64(left), float64(right))

	return float32(l.clip(dl * g)), float32(l.clip(dr * g))
}

// ProcessBlock runs a block of stereo frames. The number of frames is the
// shortest of the four slices. Outputs may alias inputs.
func (l *LoudnessLimiter) ProcessBlock(outL, outR, inL, inR []float32, p Params) {
	l.update(p)

	n := min(len(outL), len(outR), len(inL), len(inR))
	bs := len(l.gains)

	for start := 0; start < n; start += bs {
		m := min(bs, n-start)
		end := start + m
		gains, bl, br := l.gains[:m], l.bufL[:m], l.bufR[:m]

		// Inputs are widened before any output is written so that
		// aliased buffers are safe.
		core.Widen(bl, inL[start:end])
		core.Widen(br, inR[start:end])

		for i := range m {
			bl[i], br[i], gains[i] = l.step(bl[i], br[i])
		}

		vecmath.MulBlockInPlace(bl, gains)
		vecmath.MulBlockInPlace(br, gains)

		for i := range m {
			bl[i] = l.clip(bl[i])
			br[i] = l.clip(br[i])
		}

		core.Narrow(outL[start:end], bl)
		core.Narrow(outR[start:end], br)
	}
}

// step advances all state by one frame and returns the delayed input pair
// and the total gain to apply to it.
func (l *LoudnessLimiter) step(left, right float64) (float64, float64, float64) {
	if !core.IsFinite(left) {
		left = 0
	}

	if !core.IsFinite(right) {
		right = 0
	}

	xl, xr := left*l.inputGain, right*l.inputGain
	abs := math.Max(math.Abs(xl), math.Abs(xr))

	if l.cfg.SilenceGate {
		l.gate(abs)
	}

	l.meter.AddSamples(xl, xr)

	e, ready := l.detect(abs)
	l.muted = false

	switch {
	case ready:
		e = l.env.Calculate(e)
	case l.cfg.SilenceMute && l.tracker.InfiniteSustain():
		e = 0
		l.muted = true
	default:
		e = abs
	}

	l.estimate = e
	gain := l.tracker.Update(e)

	dl, dr := l.line.Add(left, right)
	if l.muted {
		return dl, dr, 0
	}

	return dl, dr, l.totalGain * gain
}

func (l *LoudnessLimiter) gate(abs float64) {
	if abs >= l.cfg.SilenceThreshold {
		l.silentRun = 0
		l.gated = false

		return
	}

	if l.silentRun < l.cfg.SilenceSamples {
		l.silentRun++
		return
	}

	if !l.gated && (!l.tracker.InfiniteSustain() || l.tracker.AtLimit()) {
		l.Reset()
		l.gated = true
	}
}

func (l *LoudnessLimiter) detect(abs float64) (float64, bool) {
	loud, lok := l.meter.Loudness()
	pow, pok := l.meter.Power()

	var level float64

	switch {
	case lok && pok:
		level = math.Max(loud, pow)
	case lok:
		level = loud
	case pok:
		level = pow
	default:
		return 0, false
	}

	return l.mix*level + (1-l.mix)*abs, true
}

func (l *LoudnessLimiter) clip(x float64) float64 {
	if x > l.hardLimit {
		return l.hardLimit
	}

	if x < -l.hardLimit {
		return -l.hardLimit
	}

	return x
}

func (l *LoudnessLimiter) update(p Params) {
	if p == l.last {
		return
	}

	l.apply(p)
}

// apply derives all coefficients from a snapshot. Non-finite values keep
// the previously applied value; structural values are clamped.
func (l *LoudnessLimiter) apply(raw Params) {
	l.last = raw
	p := finiteParams(raw, l.applied)
	l.applied = p

	fs := l.cfg.SampleRate

	l.inputGain = core.DBToLinear(p.InputGainDB)
	l.totalGain = l.inputGain * core.DBToLinear(p.OutputGainDB)
	l.hardLimit = core.DBToLinear(p.HardLimitDB)
	l.mix = core.Clamp(p.DetectorMix, 0, 1)

	limit := core.DBToLinear(p.LimitDB)
	l.env.SetCoefficients(math.Max(p.AttackMs, 0), 0)
	l.tracker.SetInfiniteSustain(p.InfiniteSustain)
	l.tracker.Configure(limit, ReleaseSpeed(limit, p.ReleaseMs, fs))

	l.meter.SetWindows(
		max(core.MsToSamples(p.LoudnessWindowMs, fs), 1),
		max(core.MsToSamples(p.PowerWindowMs, fs), 1),
		max(core.MsToSamples(p.IntervalMs, fs), 1),
	)
	_ = l.line.SetDelay(core.MsToSamples(p.DelayMs, fs))

	if p.Reset && !l.prevReset {
		l.Reset()
	}

	l.prevReset = p.Reset
}

// Reset sets the tracked peak to the limit and the gain to 1 and clears
// the meter and envelope history. The delay line keeps its content.
func (l *LoudnessLimiter) Reset() {
	l.tracker.Reset()
	l.meter.Reset()
	l.env.Reset()
	l.muted = false
}

// SetSampleRate re-derives the prefilter, windows, delay and time constants
// for a new sample rate. Meter history is cleared.
func (l *LoudnessLimiter) SetSampleRate(sampleRate float64) error {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return fmt.Errorf("loudness limiter: %w", err)
	}

	if err := l.meter.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("loudness limiter: %w", err)
	}

	if err := l.env.SetSampleRate(sampleRate); err != nil {
		return fmt.Errorf("loudness limiter: %w", err)
	}

	l.cfg.SampleRate = sampleRate
	l.apply(l.last)

	return nil
}

// Stats returns a readout for meters in a host UI.
func (l *LoudnessLimiter) Stats() Stats {
	s := Stats{
		Estimate: l.estimate,
		Peak:     l.tracker.Peak(),
		Gain:     l.tracker.Gain(),
		Limit:    l.tracker.Limit(),
		State:    l.tracker.State(),
		Muted:    l.muted,
		Gated:    l.gated,
	}
	s.Loudness, s.LoudnessReady = l.meter.Loudness()
	s.Power, s.PowerReady = l.meter.Power()

	return s
}

// SampleRate returns the sample rate in Hz.
func (l *LoudnessLimiter) SampleRate() float64 { return l.cfg.SampleRate }

// Config returns the structural configuration.
func (l *LoudnessLimiter) Config() LimiterConfig { return l.cfg }

// Params returns the last applied snapshot after non-finite values were
// replaced.
func (l *LoudnessLimiter) Params() Params { return l.applied }

// Latency returns the delay line length in samples.
func (l *LoudnessLimiter) Latency() int { return l.line.Delay() }

// finiteParams replaces every non-finite value in p by the value in prev.
func finiteParams(p, prev Params) Params {
	for id := ParamID(0); id < NumParams; id++ {
		p.Set(id, core.FiniteOr(p.Value(id), prev.Value(id)))
	}

	return p
}
