package loudness

import (
	"errors"
	"fmt"
)

// ErrInvalidWindow is returned when a window length is not positive.
var ErrInvalidWindow = errors.New("loudness: window length must be positive")

// WindowModel selects how a Window keeps its running sum.
type WindowModel int

const (
	// SlidingCompensated updates the sum on every insertion with Kahan
	// compensation, so drift stays bounded over arbitrarily long runs.
	SlidingCompensated WindowModel = iota

	// BlockRecompute keeps a plain running sum and replaces it with an
	// exact recomputation each time the insertion cursor wraps.
	BlockRecompute
)

// String returns the model name.
func (m WindowModel) String() string {
	switch m {
	case SlidingCompensated:
		return "sliding"
	case BlockRecompute:
		return "block"
	default:
		return "unknown"
	}
}

// Window is a fixed-length sliding sum over the most recently added values.
// Add is O(1) and never allocates.
type Window struct {
	model WindowModel

	buf   []float64
	pos   int
	count int

	sum  float64
	comp float64
}

// NewWindow returns a zeroed window of n slots.
func NewWindow(n int, model WindowModel) (*Window, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWindow, n)
	}

	return &Window{model: model, buf: make([]float64, n)}, nil
}

// Add inserts v, evicting the value added Len() calls earlier, and returns
// the sum over the window.
func (w *Window) Add(v float64) float64 {
	old := w.buf[w.pos]
	w.buf[w.pos] = v

	w.pos++
	wrapped := w.pos == len(w.buf)
	if wrapped {
		w.pos = 0
	}

	if w.count < len(w.buf) {
		w.count++
	}

	if w.model == BlockRecompute {
		w.sum += v - old
		if wrapped {
			w.recompute()
		}

		return w.sum
	}

	w.accumulate(-old)
	w.accumulate(v)

	return w.sum
}

func (w *Window) accumulate(x float64) {
	y := w.comp + x
	t := w.sum + y
	w.comp = y - (t - w.sum)
	w.sum = t
}

func (w *Window) recompute() {
	w.sum, w.comp = 0, 0
	for _, v := range w.buf {
		w.accumulate(v)
	}
	w.comp = 0
}

// Sum returns the current window sum.
func (w *Window) Sum() float64 { return w.sum }

// Mean returns the window sum divided by the window length. Slots that have
// not been written yet count as zero.
func (w *Window) Mean() float64 {
	return w.sum / float64(len(w.buf))
}

// Len returns the window length in slots.
func (w *Window) Len() int { return len(w.buf) }

// Filled reports whether Len() values have been added since the last reset.
func (w *Window) Filled() bool { return w.count == len(w.buf) }

// Model returns the summation model.
func (w *Window) Model() WindowModel { return w.model }

// SetLength resizes the window. A changed length reallocates the buffer and
// clears all history, so the following n additions produce a partial sum.
// An unchanged length is a no-op.
func (w *Window) SetLength(n int) error {
	if n <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, n)
	}

	if n == len(w.buf) {
		return nil
	}

	w.buf = make([]float64, n)
	w.pos, w.count = 0, 0
	w.sum, w.comp = 0, 0

	return nil
}

// Reset clears the history without reallocating.
func (w *Window) Reset() {
	clear(w.buf)
	w.pos, w.count = 0, 0
	w.sum, w.comp = 0, 0
}
