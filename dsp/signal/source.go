package signal

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

// Kind selects the waveform of a Source.
type Kind int

const (
	KindSine Kind = iota
	KindNoise
	KindBursts
	KindSilence
)

var kindNames = [...]string{"sine", "noise", "bursts", "silence"}

// String returns the kind name.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// ParseKind parses a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("signal: unknown kind %q", s)
}

// SourceConfig describes a streaming test signal.
type SourceConfig struct {
	Kind        Kind
	FreqHz      float64
	AmplitudeDB float64
	BurstOnMs   float64
	BurstOffMs  float64
	Seed        int64
}

// DefaultSourceConfig returns a -12 dBFS 1 kHz sine.
func DefaultSourceConfig() SourceConfig {
	return SourceConfig{
		Kind:        KindSine,
		FreqHz:      1000,
		AmplitudeDB: -12,
		BurstOnMs:   500,
		BurstOffMs:  500,
		Seed:        1,
	}
}

// Source produces an endless stereo test signal in blocks. Phase, noise
// sequence and burst position carry across calls to Fill.
type Source struct {
	cfg        SourceConfig
	sampleRate float64

	amp   float64
	phase float64
	step  float64
	on    int
	off   int
	pos   int
	rng   *rand.Rand
}

// NewSource returns a source at sampleRate.
func NewSource(sampleRate float64, cfg SourceConfig) (*Source, error) {
	if err := core.ValidateSampleRate(sampleRate); err != nil {
		return nil, fmt.Errorf("signal: %w", err)
	}
	if cfg.Kind < KindSine || cfg.Kind > KindSilence {
		return nil, fmt.Errorf("signal: invalid kind %d", cfg.Kind)
	}
	if cfg.Kind != KindNoise && cfg.Kind != KindSilence && !(cfg.FreqHz > 0 && cfg.FreqHz < sampleRate/2) {
		return nil, fmt.Errorf("signal: frequency %v Hz outside (0, %v)", cfg.FreqHz, sampleRate/2)
	}

	s := &Source{
		cfg:        cfg,
		sampleRate: sampleRate,
		step:       2 * math.Pi * cfg.FreqHz / sampleRate,
		on:         max(core.MsToSamples(cfg.BurstOnMs, sampleRate), 1),
		off:        core.MsToSamples(cfg.BurstOffMs, sampleRate),
	}
	s.SetAmplitudeDB(cfg.AmplitudeDB)
	s.Reset()

	return s, nil
}

// Fill writes len(left) frames. The right channel receives the same
// signal; it may be nil.
func (s *Source) Fill(left, right []float32) {
	for i := range left {
		x := float32(s.next())
		left[i] = x
		if i < len(right) {
			right[i] = x
		}
	}
}

func (s *Source) next() float64 {
	var x float64

	switch s.cfg.Kind {
	case KindSine:
		x = s.amp * math.Sin(s.phase)
	case KindNoise:
		x = (s.rng.Float64()*2 - 1) * s.amp
	case KindBursts:
		if s.pos < s.on {
			x = s.amp * math.Sin(s.phase)
		}
		s.pos++
		if s.pos >= s.on+s.off {
			s.pos = 0
		}
	}

	s.phase += s.step
	if s.phase >= 2*math.Pi {
		s.phase -= 2 * math.Pi
	}

	return x
}

// SetAmplitudeDB changes the level in dBFS.
func (s *Source) SetAmplitudeDB(db float64) {
	s.cfg.AmplitudeDB = db
	s.amp = core.DBToLinear(db)
}

// Config returns the current configuration.
func (s *Source) Config() SourceConfig { return s.cfg }

// Reset restarts the waveform from its beginning.
func (s *Source) Reset() {
	s.phase = 0
	s.pos = 0
	s.rng = rand.New(rand.NewSource(s.cfg.Seed))
}
