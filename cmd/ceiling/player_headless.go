//go:build headless

package main

import (
	"io"
	"time"
)

// player pulls from the reader in real time without an output device.
type player struct {
	stop chan struct{}
	done chan struct{}
}

func startPlayer(sampleRate int, r io.Reader, buffer time.Duration) (*player, error) {
	if buffer <= 0 {
		buffer = 10 * time.Millisecond
	}

	frames := max(int(float64(sampleRate)*buffer.Seconds()), 1)
	buf := make([]byte, frames*bytesPerFrame)

	pl := &player{stop: make(chan struct{}), done: make(chan struct{})}

	go func() {
		defer close(pl.done)

		t := time.NewTicker(buffer)
		defer t.Stop()

		for {
			select {
			case <-pl.stop:
				return
			case <-t.C:
				if _, err := io.ReadFull(r, buf); err != nil {
					return
				}
			}
		}
	}()

	return pl, nil
}

func (pl *player) Close() error {
	close(pl.stop)
	<-pl.done

	return nil
}
