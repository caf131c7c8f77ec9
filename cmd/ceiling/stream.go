package main

import (
	"encoding/binary"
	"math"
	"sync/atomic"

	"github.com/cwbudde/algo-loudness/dsp/effects/dynamics"
	"github.com/cwbudde/algo-loudness/dsp/signal"
)

const bytesPerFrame = 8

// stream is the audio path. Read is called by the output device; it pulls a
// block from the test source, runs the engine with the current parameter
// snapshot and interleaves the result as little-endian float32 stereo.
// Readouts for the UI are published atomically after every block.
type stream struct {
	lim   *dynamics.LoudnessLimiter
	src   *signal.Source
	store *dynamics.ParamStore

	inL, inR   []float32
	outL, outR []float32

	// level holds the requested source level; applied is the bit pattern
	// last handed to the source and is owned by the audio path.
	level   atomic.Uint64
	applied uint64

	stats  statsCell
	blocks atomic.Uint64
}

func newStream(lim *dynamics.LoudnessLimiter, src *signal.Source, store *dynamics.ParamStore, block int) *stream {
	s := &stream{
		lim:   lim,
		src:   src,
		store: store,
		inL:   make([]float32, block),
		inR:   make([]float32, block),
		outL:  make([]float32, block),
		outR:  make([]float32, block),
	}
	s.applied = math.Float64bits(src.Config().AmplitudeDB)
	s.level.Store(s.applied)
	s.stats.store(dynamics.Stats{Gain: 1})

	return s
}

func (s *stream) Read(p []byte) (int, error) {
	frames := len(p) / bytesPerFrame

	if bits := s.level.Load(); bits != s.applied {
		s.src.SetAmplitudeDB(math.Float64frombits(bits))
		s.applied = bits
	}

	for done := 0; done < frames; {
		n := min(len(s.inL), frames-done)
		s.process(p[done*bytesPerFrame:], n)
		done += n
	}

	return frames * bytesPerFrame, nil
}

func (s *stream) process(p []byte, n int) {
	inL, inR := s.inL[:n], s.inR[:n]
	outL, outR := s.outL[:n], s.outR[:n]

	s.src.Fill(inL, inR)
	s.lim.ProcessBlock(outL, outR, inL, inR, s.store.Snapshot())

	for i := range n {
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame:], math.Float32bits(outL[i]))
		binary.LittleEndian.PutUint32(p[i*bytesPerFrame+4:], math.Float32bits(outR[i]))
	}

	s.stats.store(s.lim.Stats())
	s.blocks.Add(1)
}

// Stats returns the readout after the last processed block.
func (s *stream) Stats() dynamics.Stats { return s.stats.load() }

// Blocks returns the number of processed blocks.
func (s *stream) Blocks() uint64 { return s.blocks.Load() }

// SourceLevel returns the test signal level in dBFS.
func (s *stream) SourceLevel() float64 { return math.Float64frombits(s.level.Load()) }

// AddSourceLevel changes the test signal level; the audio path picks it up
// on its next read.
func (s *stream) AddSourceLevel(deltaDB float64) {
	db := min(max(s.SourceLevel()+deltaDB, -80), 0)
	s.level.Store(math.Float64bits(db))
}

const (
	statLoudness = iota
	statPower
	statEstimate
	statPeak
	statGain
	statLimit
	numStatValues
)

const (
	flagLoudnessReady = 1 << iota
	flagPowerReady
	flagMuted
	flagGated

	stateShift = 8
)

// statsCell publishes Stats without allocating. Each field is atomic on
// its own, so a reader may combine fields from adjacent blocks.
type statsCell struct {
	values [numStatValues]atomic.Uint64
	flags  atomic.Uint32
}

func (c *statsCell) store(st dynamics.Stats) {
	c.values[statLoudness].Store(math.Float64bits(st.Loudness))
	c.values[statPower].Store(math.Float64bits(st.Power))
	c.values[statEstimate].Store(math.Float64bits(st.Estimate))
	c.values[statPeak].Store(math.Float64bits(st.Peak))
	c.values[statGain].Store(math.Float64bits(st.Gain))
	c.values[statLimit].Store(math.Float64bits(st.Limit))

	flags := uint32(st.State) << stateShift
	if st.LoudnessReady {
		flags |= flagLoudnessReady
	}
	if st.PowerReady {
		flags |= flagPowerReady
	}
	if st.Muted {
		flags |= flagMuted
	}
	if st.Gated {
		flags |= flagGated
	}
	c.flags.Store(flags)
}

func (c *statsCell) load() dynamics.Stats {
	flags := c.flags.Load()

	return dynamics.Stats{
		Loudness:      math.Float64frombits(c.values[statLoudness].Load()),
		LoudnessReady: flags&flagLoudnessReady != 0,
		Power:         math.Float64frombits(c.values[statPower].Load()),
		PowerReady:    flags&flagPowerReady != 0,
		Estimate:      math.Float64frombits(c.values[statEstimate].Load()),
		Peak:          math.Float64frombits(c.values[statPeak].Load()),
		Gain:          math.Float64frombits(c.values[statGain].Load()),
		Limit:         math.Float64frombits(c.values[statLimit].Load()),
		State:         dynamics.TrackerState(flags >> stateShift),
		Muted:         flags&flagMuted != 0,
		Gated:         flags&flagGated != 0,
	}
}
