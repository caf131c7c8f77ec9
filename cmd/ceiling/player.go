//go:build !headless

package main

import (
	"io"
	"time"

	"github.com/ebitengine/oto/v3"
)

// player plays interleaved float32 stereo from a reader on the default
// output device.
type player struct {
	ctx *oto.Context
	p   *oto.Player
}

func startPlayer(sampleRate int, r io.Reader, buffer time.Duration) (*player, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 2,
		Format:       oto.FormatFloat32LE,
		BufferSize:   buffer,
	})
	if err != nil {
		return nil, err
	}
	<-ready

	p := ctx.NewPlayer(r)
	p.Play()

	return &player{ctx: ctx, p: p}, nil
}

func (pl *player) Close() error {
	return pl.p.Close()
}
