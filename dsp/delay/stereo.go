package delay

import (
	"errors"
	"fmt"
)

// ErrInvalidDelay is returned for a negative delay length.
var ErrInvalidDelay = errors.New("delay: length must be >= 0")

// StereoLine delays (left, right) pairs by a whole number of samples.
// It keeps delay+1 slots; a zero delay passes input through unchanged.
type StereoLine struct {
	left     []float64
	right    []float64
	writePos int
}

// NewStereo returns a zeroed line delaying by the given number of samples.
func NewStereo(delay int) (*StereoLine, error) {
	if delay < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDelay, delay)
	}

	return &StereoLine{
		left:  make([]float64, delay+1),
		right: make([]float64, delay+1),
	}, nil
}

// Delay returns the delay in samples.
func (d *StereoLine) Delay() int {
	return len(d.left) - 1
}

// Add writes one pair and returns the pair written Delay() calls earlier.
func (d *StereoLine) Add(left, right float64) (float64, float64) {
	d.left[d.writePos] = left
	d.right[d.writePos] = right

	d.writePos++
	if d.writePos == len(d.left) {
		d.writePos = 0
	}

	return d.left[d.writePos], d.right[d.writePos]
}

// SetDelay changes the delay. A changed length reallocates and zeroes the
// buffer, so the next delay+1 reads return silence. An unchanged length is a
// no-op.
func (d *StereoLine) SetDelay(delay int) error {
	if delay < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDelay, delay)
	}

	if delay == d.Delay() {
		return nil
	}

	d.left = make([]float64, delay+1)
	d.right = make([]float64, delay+1)
	d.writePos = 0

	return nil
}

// Reset clears the line state.
func (d *StereoLine) Reset() {
	clear(d.left)
	clear(d.right)
	d.writePos = 0
}
