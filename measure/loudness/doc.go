// Package loudness provides real-time loudness and power metering for a
// stereo stream.
//
// Each channel is K-weighted, the weighted channel powers are summed, and
// the sum feeds one or two sliding [Window] accumulators. A [Gauge] turns a
// window sum into a calibrated amplitude-domain reading
//
//	reading = K * sqrt(sum / W),  K = 10^(-0.691/20) ≈ 0.9235
//
// so that 20*log10(reading) is the BS.1770 loudness in LKFS. A full-scale
// 1 kHz sine on both channels reads 1.0 (0 LKFS).
//
// Readings are reported together with a ready flag that stays false until
// the window has been filled once after construction, a reset or a resize.
package loudness
