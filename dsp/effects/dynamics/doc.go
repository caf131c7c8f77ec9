// Package dynamics provides the loudness ceiling engine and its building
// blocks.
//
//   - Envelope: attack/release smoother with a linear (default) or an
//     exponential decibel-domain law.
//   - PeakTracker: peak follower with instant attack, multiplicative
//     release, reset and infinite sustain; derives gain = limit / peak.
//   - LoudnessLimiter: stereo engine combining a K-weighted loudness meter,
//     the envelope, the tracker, an optional look-ahead delay and a hard
//     output clamp.
//   - Params, Descriptor and ParamStore: the parameter snapshot passed to
//     every processing call, the static parameter table, and atomic cells
//     for sharing values between a control thread and the audio thread.
package dynamics
