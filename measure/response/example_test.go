package response_test

import (
	"fmt"

	"github.com/cwbudde/algo-loudness/dsp/filter/weighting"
	"github.com/cwbudde/algo-loudness/measure/response"
)

func ExampleCompare() {
	chain := weighting.New(weighting.TypeK, 48000)

	points, err := response.Compare(chain, 48000, 8192, []float64{100, 1000, 10000})
	if err != nil {
		panic(err)
	}

	for _, p := range points {
		fmt.Printf("%.0f Hz: %+.1f dB\n", p.Freq, p.Analytic)
	}
	// Output:
	// 100 Hz: -1.1 dB
	// 1000 Hz: +0.7 dB
	// 10000 Hz: +4.0 dB
}
