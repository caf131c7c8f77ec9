package main

import (
	"fmt"
	"runtime"

	"github.com/cwbudde/algo-loudness/dsp/effects/dynamics"
	"github.com/cwbudde/algo-loudness/internal/cpu"
)

// InfoCmd prints build and platform information.
type InfoCmd struct{}

func (c *InfoCmd) Run(rc *runContext) error {
	f := cpu.DetectFeatures()
	cfg := dynamics.DefaultLimiterConfig()

	rows := [][2]string{
		{"Version", version},
		{"Go", runtime.Version()},
		{"Platform", runtime.GOOS + "/" + f.Architecture},
		{"SIMD", f.Best().String()},
		{"SIMD levels", fmt.Sprint(f.Levels())},
		{"Envelope", cfg.Envelope.String()},
		{"Window", cfg.Window.String()},
		{"Weighting", cfg.Weighting.String()},
		{"Block size", fmt.Sprint(cfg.BlockSize)},
	}

	fmt.Fprintln(rc.stdout, titleStyle.Render("ceiling"))
	for _, r := range rows {
		fmt.Fprintln(rc.stdout, labelStyle.Render(r[0])+valueStyle.Render(r[1]))
	}

	return nil
}
