// Package signal provides streaming stereo test signals.
//
// A Source produces a sine, white noise, gated sine bursts or silence in
// blocks of any size, carrying phase and noise sequence across calls. It
// feeds the demo host and the engine tests.
package signal
