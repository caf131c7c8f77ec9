// Package weighting provides the frequency weighting prefilters used ahead
// of loudness integration.
//
// K-weighting (ITU-R BS.1770) is a two-stage cascade: a high shelf of about
// +4 dB above 1.68 kHz that models the acoustic effect of the head, followed
// by a second-order high-pass near 38 Hz (the "RLB" curve). The stage
// constants are the ones published with pyloudnorm, which reproduce the
// 48 kHz reference coefficients of the recommendation and re-derive them
// exactly for any other sample rate.
//
// Z-weighting is a flat reference used to bypass the prefilter.
//
// The returned [biquad.Chain] runs sample by sample in a real-time callback
// or block-wise offline.
package weighting
