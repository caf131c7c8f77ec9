package dynamics_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-loudness/dsp/effects/dynamics"
	"github.com/cwbudde/algo-loudness/measure/loudness"
)

func ExampleLoudnessLimiter() {
	p := dynamics.DefaultParams()
	p.LimitDB = -3
	p.ReleaseMs = 200

	lim, err := dynamics.NewLoudnessLimiter(48000, dynamics.WithInitialParams(p))
	if err != nil {
		panic(err)
	}

	meter, _ := loudness.NewMeter(loudness.WithSampleRate(48000))

	for i := range 48000 {
		x := float32(math.Sin(2 * math.Pi * 1000 * float64(i) / 48000))
		l, r := lim.Process(x, x, p)
		meter.AddSamples(float64(l), float64(r))
	}

	s := lim.Stats()
	out, _ := meter.Loudness()
	fmt.Printf("state=%v gain=%.3f\n", s.State, s.Gain)
	fmt.Printf("output=%.1f LKFS\n", loudness.ToLKFS(out))
	// Output:
	// state=tracking gain=0.707
	// output=-3.0 LKFS
}

func ExampleParamStore() {
	store := dynamics.NewParamStore()
	store.Set(dynamics.ParamLimit, -23)
	store.Set(dynamics.ParamRelease, 99999)
	store.Toggle(dynamics.ParamInfiniteSustain)

	p := store.Snapshot()
	fmt.Println(p.LimitDB, p.ReleaseMs, p.InfiniteSustain)
	// Output:
	// -23 5000 true
}

func ExampleDescriptor_Format() {
	for _, d := range dynamics.Descriptors() {
		fmt.Printf("%s: %s\n", d.Name, d.Format(d.Default))
	}
	// Output:
	// Input Gain: 0.00 dB
	// Output Gain: 0.00 dB
	// Limit: -14.00 LKFS
	// Hard Limit: 0.00 dBFS
	// Attack: 10.00 ms
	// Release: 1000.00 ms
	// Loudness Window: 400.00 ms
	// Power Window: 10.00 ms
	// Calculation Interval: 0.00 ms
	// Delay: 0.00 ms
	// Loudness Mix: 1.00
	// Reset: Released
	// Infinite Sustain: Off
}
