package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/cwbudde/algo-loudness/dsp/filter/weighting"
	"github.com/cwbudde/algo-loudness/measure/response"
)

// ResponseCmd prints the measured and analytic prefilter response.
type ResponseCmd struct {
	Rate      float64 `default:"48000" help:"Sample rate in Hz."`
	Size      int     `default:"16384" help:"FFT size (power of two)."`
	Points    int     `default:"16" help:"Number of log-spaced frequencies."`
	Min       float64 `default:"20" help:"Lowest frequency in Hz."`
	Max       float64 `default:"20000" help:"Highest frequency in Hz, capped at Nyquist."`
	Weighting string  `default:"k" enum:"k,z,K,Z" help:"Weighting curve (k or z)."`
}

func (c *ResponseCmd) Run(rc *runContext) error {
	wt, ok := weighting.ParseType(c.Weighting)
	if !ok {
		return fmt.Errorf("unknown weighting %q", c.Weighting)
	}

	if !(c.Rate > 0) {
		return fmt.Errorf("sample rate must be positive: %v", c.Rate)
	}

	freqs := response.LogFrequencies(c.Min, min(c.Max, c.Rate/2), c.Points)
	if len(freqs) == 0 {
		return fmt.Errorf("empty frequency range %v..%v Hz", c.Min, c.Max)
	}

	points, err := response.Compare(weighting.New(wt, c.Rate), c.Rate, c.Size, freqs)
	if err != nil {
		return err
	}

	rc.log.Debug("response", "weighting", wt, "rate", c.Rate, "size", c.Size, "points", len(points))

	fmt.Fprintln(rc.stdout, titleStyle.Render(fmt.Sprintf("%v-weighting at %.0f Hz", wt, c.Rate)))

	tw := tabwriter.NewWriter(rc.stdout, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "FREQ (Hz)\tANALYTIC (dB)\tMEASURED (dB)\tDIFF (dB)\t")

	for _, p := range points {
		fmt.Fprintf(tw, "%.1f\t%+.4f\t%+.4f\t%+.2e\t\n", p.Freq, p.Analytic, p.Measured, p.Measured-p.Analytic)
	}

	return tw.Flush()
}
