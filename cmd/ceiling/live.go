package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/cwbudde/algo-loudness/dsp/effects/dynamics"
	"github.com/cwbudde/algo-loudness/dsp/signal"
)

// LiveCmd streams a test signal through the engine to the audio device.
type LiveCmd struct {
	Signal string             `default:"sine" enum:"sine,noise,bursts,silence" help:"Test signal (sine, noise, bursts, silence)."`
	Freq   float64            `default:"1000" help:"Signal frequency in Hz."`
	Level  float64            `default:"-6" help:"Signal level in dBFS."`
	Rate   int                `default:"48000" help:"Sample rate in Hz."`
	Block  int                `default:"512" help:"Engine block size in frames."`
	Buffer time.Duration      `default:"50ms" help:"Output buffer length."`
	Dual   bool               `help:"Run the fast power gauge next to the loudness gauge."`
	Watch  string             `type:"path" placeholder:"FILE" help:"JSON parameter file to load and hot-reload."`
	Set    map[string]float64 `placeholder:"KEY=VALUE" help:"Initial parameter value, e.g. --set limit=-23."`
}

func (c *LiveCmd) Run(rc *runContext) error {
	store := dynamics.NewParamStore()
	for key, v := range c.Set {
		id, ok := dynamics.ParamByKey(key)
		if !ok {
			return fmt.Errorf("unknown parameter %q", key)
		}
		store.Set(id, v)
	}

	if c.Watch != "" {
		if err := loadParamFile(c.Watch, store); err != nil {
			return err
		}
	}

	st, err := c.newStream(store)
	if err != nil {
		return err
	}

	pl, err := startPlayer(c.Rate, st, c.Buffer)
	if err != nil {
		return fmt.Errorf("audio output: %w", err)
	}
	defer pl.Close()

	rc.log.Info("live started", "signal", c.Signal, "rate", c.Rate, "block", c.Block, "latency", st.lim.Latency())

	prog := tea.NewProgram(newLiveModel(st, store, rc.log, c.Watch), tea.WithAltScreen())

	if c.Watch != "" {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		onLoad := func(err error) { prog.Send(paramFileMsg{err: err}) }
		if err := watchParamFile(ctx, c.Watch, store, rc.log, onLoad); err != nil {
			return fmt.Errorf("watch %s: %w", c.Watch, err)
		}
	}

	_, err = prog.Run()
	rc.log.Info("live stopped", "err", err)

	return err
}

func (c *LiveCmd) newStream(store *dynamics.ParamStore) (*stream, error) {
	kind, err := signal.ParseKind(c.Signal)
	if err != nil {
		return nil, err
	}

	cfg := signal.DefaultSourceConfig()
	cfg.Kind = kind
	cfg.FreqHz = c.Freq
	cfg.AmplitudeDB = c.Level

	fs := float64(c.Rate)

	src, err := signal.NewSource(fs, cfg)
	if err != nil {
		return nil, err
	}

	block := max(c.Block, 1)

	lim, err := dynamics.NewLoudnessLimiter(fs,
		dynamics.WithBlockSize(block),
		dynamics.WithDualMeter(c.Dual),
		dynamics.WithInitialParams(store.Snapshot()),
	)
	if err != nil {
		return nil, err
	}

	return newStream(lim, src, store, block), nil
}
