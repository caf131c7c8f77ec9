package dynamics

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

// ParamID enumerates the engine parameters. The order matches the
// descriptor table and the host-visible parameter indices.
type ParamID int

const (
	ParamInputGain ParamID = iota
	ParamOutputGain
	ParamLimit
	ParamHardLimit
	ParamAttack
	ParamRelease
	ParamLoudnessWindow
	ParamPowerWindow
	ParamInterval
	ParamDelay
	ParamDetectorMix
	ParamReset
	ParamInfiniteSustain

	NumParams
)

// ParamKind describes how a host should present a parameter.
type ParamKind int

const (
	// KindContinuous is a continuously variable value.
	KindContinuous ParamKind = iota
	// KindToggle is an on/off switch.
	KindToggle
	// KindButton is a momentary control; the engine reacts to its rising edge.
	KindButton
)

// String returns the kind name.
func (k ParamKind) String() string {
	switch k {
	case KindContinuous:
		return "continuous"
	case KindToggle:
		return "toggle"
	case KindButton:
		return "button"
	default:
		return "unknown"
	}
}

// Descriptor describes one parameter in engineering units.
type Descriptor struct {
	ID      ParamID
	Key     string
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64
	Kind    ParamKind
}

var descriptors = [NumParams]Descriptor{
	{ParamInputGain, "input_gain", "Input Gain", "dB", -80, 80, 0, KindContinuous},
	{ParamOutputGain, "output_gain", "Output Gain", "dB", -80, 80, 0, KindContinuous},
	{ParamLimit, "limit", "Limit", "LKFS", -80, 0, -14, KindContinuous},
	{ParamHardLimit, "hard_limit", "Hard Limit", "dBFS", -80, 0, 0, KindContinuous},
	{ParamAttack, "attack", "Attack", "ms", 0, 5000, 10, KindContinuous},
	{ParamRelease, "release", "Release", "ms", 0, 5000, 1000, KindContinuous},
	{ParamLoudnessWindow, "loudness_window", "Loudness Window", "ms", 1, 10000, 400, KindContinuous},
	{ParamPowerWindow, "power_window", "Power Window", "ms", 1, 1000, 10, KindContinuous},
	{ParamInterval, "interval", "Calculation Interval", "ms", 0, 1000, 0, KindContinuous},
	{ParamDelay, "delay", "Delay", "ms", 0, 1000, 0, KindContinuous},
	{ParamDetectorMix, "detector_mix", "Loudness Mix", "", 0, 1, 1, KindContinuous},
	{ParamReset, "reset", "Reset", "", 0, 1, 0, KindButton},
	{ParamInfiniteSustain, "infinite_sustain", "Infinite Sustain", "", 0, 1, 0, KindToggle},
}

// Descriptors returns the parameter table in ParamID order.
func Descriptors() []Descriptor {
	out := make([]Descriptor, NumParams)
	copy(out, descriptors[:])

	return out
}

// DescriptorOf returns the descriptor for id.
func DescriptorOf(id ParamID) (Descriptor, bool) {
	if id < 0 || id >= NumParams {
		return Descriptor{}, false
	}

	return descriptors[id], true
}

// ParamByKey looks a parameter up by its key.
func ParamByKey(key string) (ParamID, bool) {
	for _, d := range descriptors {
		if d.Key == key {
			return d.ID, true
		}
	}

	return 0, false
}

// String returns the parameter key.
func (id ParamID) String() string {
	if d, ok := DescriptorOf(id); ok {
		return d.Key
	}

	return fmt.Sprintf("param(%d)", int(id))
}

// Clamp limits v to the declared range. Switches snap to 0 or 1.
func (d Descriptor) Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return d.Default
	}

	if d.Kind != KindContinuous {
		if v >= 0.5 {
			return 1
		}

		return 0
	}

	return core.Clamp(v, d.Min, d.Max)
}

// Normalize maps v onto [0, 1].
func (d Descriptor) Normalize(v float64) float64 {
	return (d.Clamp(v) - d.Min) / (d.Max - d.Min)
}

// Denormalize maps a [0, 1] host value back onto the declared range.
func (d Descriptor) Denormalize(n float64) float64 {
	return d.Clamp(d.Min + core.Clamp(n, 0, 1)*(d.Max-d.Min))
}

// Format renders v for display.
func (d Descriptor) Format(v float64) string {
	switch d.Kind {
	case KindToggle:
		if d.Clamp(v) == 1 {
			return "On"
		}

		return "Off"
	case KindButton:
		if d.Clamp(v) == 1 {
			return "Pressed"
		}

		return "Released"
	}

	if d.Unit == "" {
		return fmt.Sprintf("%.2f", v)
	}

	return fmt.Sprintf("%.2f %s", v, d.Unit)
}

// Params is one immutable snapshot of all engine parameters in engineering
// units. The host hands a snapshot to every processing call.
type Params struct {
	InputGainDB  float64
	OutputGainDB float64
	// LimitDB is the loudness ceiling in LKFS (level in dBFS when the
	// detector runs on sample magnitude).
	LimitDB     float64
	HardLimitDB float64

	AttackMs  float64
	ReleaseMs float64

	LoudnessWindowMs float64
	PowerWindowMs    float64
	IntervalMs       float64
	DelayMs          float64

	// DetectorMix blends the meter reading (1) with the instantaneous
	// sample magnitude (0).
	DetectorMix float64

	Reset           bool
	InfiniteSustain bool
}

// DefaultParams returns the descriptor defaults.
func DefaultParams() Params {
	var p Params
	for _, d := range descriptors {
		p.Set(d.ID, d.Default)
	}

	return p
}

// Value returns the parameter id as a float; switches read 0 or 1.
func (p Params) Value(id ParamID) float64 {
	switch id {
	case ParamInputGain:
		return p.InputGainDB
	case ParamOutputGain:
		return p.OutputGainDB
	case ParamLimit:
		return p.LimitDB
	case ParamHardLimit:
		return p.HardLimitDB
	case ParamAttack:
		return p.AttackMs
	case ParamRelease:
		return p.ReleaseMs
	case ParamLoudnessWindow:
		return p.LoudnessWindowMs
	case ParamPowerWindow:
		return p.PowerWindowMs
	case ParamInterval:
		return p.IntervalMs
	case ParamDelay:
		return p.DelayMs
	case ParamDetectorMix:
		return p.DetectorMix
	case ParamReset:
		return boolValue(p.Reset)
	case ParamInfiniteSustain:
		return boolValue(p.InfiniteSustain)
	default:
		return math.NaN()
	}
}

// Set stores v into parameter id without range checking. Switches are on
// for v >= 0.5.
func (p *Params) Set(id ParamID, v float64) {
	switch id {
	case ParamInputGain:
		p.InputGainDB = v
	case ParamOutputGain:
		p.OutputGainDB = v
	case ParamLimit:
		p.LimitDB = v
	case ParamHardLimit:
		p.HardLimitDB = v
	case ParamAttack:
		p.AttackMs = v
	case ParamRelease:
		p.ReleaseMs = v
	case ParamLoudnessWindow:
		p.LoudnessWindowMs = v
	case ParamPowerWindow:
		p.PowerWindowMs = v
	case ParamInterval:
		p.IntervalMs = v
	case ParamDelay:
		p.DelayMs = v
	case ParamDetectorMix:
		p.DetectorMix = v
	case ParamReset:
		p.Reset = v >= 0.5
	case ParamInfiniteSustain:
		p.InfiniteSustain = v >= 0.5
	}
}

// Clamped returns a copy with every value limited to its declared range.
// Non-finite values fall back to the descriptor default.
func (p Params) Clamped() Params {
	out := p
	for _, d := range descriptors {
		v := p.Value(d.ID)
		if !core.IsFinite(v) {
			v = d.Default
		}

		out.Set(d.ID, d.Clamp(v))
	}

	return out
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}

	return 0
}
