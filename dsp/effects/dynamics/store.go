package dynamics

import (
	"math"
	"sync/atomic"
)

// ParamStore holds the live parameter values shared between a control
// thread and the audio thread. Every cell is an independent atomic float:
// writes are never torn and the last write wins. The audio thread takes a
// Snapshot once per block.
type ParamStore struct {
	cells [NumParams]atomic.Uint64
}

// NewParamStore returns a store holding the descriptor defaults.
func NewParamStore() *ParamStore {
	s := &ParamStore{}
	s.Load(DefaultParams())

	return s
}

// Set clamps v to the declared range of id and stores it. Unknown ids are
// ignored.
func (s *ParamStore) Set(id ParamID, v float64) {
	d, ok := DescriptorOf(id)
	if !ok {
		return
	}

	s.cells[id].Store(math.Float64bits(d.Clamp(v)))
}

// SetNormalized stores a [0, 1] host value.
func (s *ParamStore) SetNormalized(id ParamID, n float64) {
	if d, ok := DescriptorOf(id); ok {
		s.Set(id, d.Denormalize(n))
	}
}

// Get returns the current value of id, or NaN for unknown ids.
func (s *ParamStore) Get(id ParamID) float64 {
	if id < 0 || id >= NumParams {
		return math.NaN()
	}

	return math.Float64frombits(s.cells[id].Load())
}

// Add offsets a continuous parameter by delta, clamped to its range.
func (s *ParamStore) Add(id ParamID, delta float64) {
	s.Set(id, s.Get(id)+delta)
}

// Toggle flips a switch parameter.
func (s *ParamStore) Toggle(id ParamID) {
	s.Set(id, 1-s.Get(id))
}

// Load stores every value of p.
func (s *ParamStore) Load(p Params) {
	for id := ParamID(0); id < NumParams; id++ {
		s.Set(id, p.Value(id))
	}
}

// Snapshot reads all cells into an immutable Params value.
func (s *ParamStore) Snapshot() Params {
	var p Params
	for id := ParamID(0); id < NumParams; id++ {
		p.Set(id, s.Get(id))
	}

	return p
}
