// Package response measures the magnitude response of a biquad cascade
// from an FFT of its impulse response and compares it against the
// analytic transfer function.
//
// It is used to verify meter prefilters such as K-weighting at the sample
// rates a host runs at.
package response
