package loudness

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidInterval is returned when a calculation interval is not positive
// or exceeds the window length.
var ErrInvalidInterval = errors.New("loudness: invalid calculation interval")

// calibration maps the square root of mean weighted power to the LKFS scale.
var calibration = math.Pow(10, -0.691/20)

// Gauge holds the reading of one window. The reading is recomputed every
// interval samples once the window is full and held in between.
type Gauge struct {
	window   *Window
	interval int
	since    int
	value    float64
	ready    bool
}

// NewGauge returns a gauge over a window of n slots that recomputes its
// reading every interval samples.
func NewGauge(n, interval int, model WindowModel) (*Gauge, error) {
	w, err := NewWindow(n, model)
	if err != nil {
		return nil, err
	}

	if interval <= 0 || interval > n {
		return nil, fmt.Errorf("%w: %d samples for a %d sample window", ErrInvalidInterval, interval, n)
	}

	return &Gauge{window: w, interval: interval}, nil
}

// Add feeds one summed channel power.
func (g *Gauge) Add(power float64) {
	g.window.Add(power)
	if !g.window.Filled() {
		return
	}

	g.since++
	if g.ready && g.since < g.interval {
		return
	}

	g.since = 0
	g.value = calibration * mathSqrt(max(g.window.Mean(), 0))
	g.ready = true
}

// Reading returns the held reading and whether the window has been filled.
func (g *Gauge) Reading() (float64, bool) {
	return g.value, g.ready
}

// Window returns the underlying accumulator.
func (g *Gauge) Window() *Window { return g.window }

// Interval returns the recomputation interval in samples.
func (g *Gauge) Interval() int { return g.interval }

// Resize changes the window and interval lengths. Out-of-range values are
// clamped: n to at least one slot and interval to [1, n]. A window length
// change clears the history and the ready flag.
func (g *Gauge) Resize(n, interval int) {
	n = max(n, 1)
	if n != g.window.Len() {
		_ = g.window.SetLength(n)
		g.clearReading()
	}

	g.interval = min(max(interval, 1), n)
}

// Reset clears the window and the reading.
func (g *Gauge) Reset() {
	g.window.Reset()
	g.clearReading()
}

func (g *Gauge) clearReading() {
	g.value = 0
	g.ready = false
	g.since = 0
}
