// Package biquad provides second-order IIR filter runtime primitives.
//
// A [Section] evaluates one second-order section in direct form I, keeping
// the last two inputs and the last two outputs. [Chain] cascades sections in
// series; the loudness prefilter is a two-section chain per channel.
//
// Coefficient design lives with the caller (see dsp/filter/weighting).
package biquad
