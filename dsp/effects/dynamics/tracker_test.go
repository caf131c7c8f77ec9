package dynamics

import (
	"math"
	"math/rand/v2"
	"testing"
)

func TestPeakTrackerStates(t *testing.T) {
	tr := NewPeakTracker()
	if tr.State() != StateCold || tr.Gain() != 1 || tr.Peak() != 1 {
		t.Fatalf("new tracker: state=%v gain=%v peak=%v", tr.State(), tr.Gain(), tr.Peak())
	}

	tr.Configure(0.5, ReleaseSpeed(0.5, 100, 48000))
	if tr.Peak() != 0.5 || tr.Gain() != 1 || tr.State() != StateCold {
		t.Fatalf("configured cold: state=%v gain=%v peak=%v", tr.State(), tr.Gain(), tr.Peak())
	}

	if g := tr.Update(0.25); g != 1 || tr.State() != StateAtLimit {
		t.Fatalf("below limit: gain=%v state=%v", g, tr.State())
	}

	if g := tr.Update(1); g != 0.5 || tr.State() != StateTracking {
		t.Fatalf("above limit: gain=%v state=%v", g, tr.State())
	}
}

func TestPeakTrackerReleasesOncePerReleaseTime(t *testing.T) {
	tr := NewPeakTracker()
	tr.Configure(0.5, ReleaseSpeed(0.5, 100, 48000))
	tr.Update(1)

	for range 2400 {
		tr.Update(0)
	}
	if got, want := tr.Peak(), math.Sqrt(0.5); math.Abs(got-want) > 1e-9 {
		t.Fatalf("peak after half release time = %v, want %v", got, want)
	}

	for range 2500 {
		tr.Update(0)
	}
	if tr.Peak() != 0.5 || tr.Gain() != 1 || !tr.AtLimit() {
		t.Fatalf("peak=%v gain=%v, want released to limit", tr.Peak(), tr.Gain())
	}
}

func TestPeakTrackerReleaseStopsAtEstimate(t *testing.T) {
	tr := NewPeakTracker()
	tr.Configure(0.5, 0)
	tr.Update(1)

	if g := tr.Update(0.8); tr.Peak() != 0.8 || math.Abs(g-0.625) > 1e-15 {
		t.Fatalf("peak=%v gain=%v, want 0.8 and 0.625", tr.Peak(), g)
	}
}

func TestPeakTrackerGainTimesPeakIsLimit(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	tr := NewPeakTracker()
	limit := 0.2
	tr.Configure(limit, ReleaseSpeed(limit, 5, 48000))

	for i := range 200000 {
		e := rng.Float64() * rng.Float64()
		g := tr.Update(e)

		if !(g > 0 && g <= 1) {
			t.Fatalf("step %d: gain %v out of (0, 1]", i, g)
		}
		if tr.Peak() < limit {
			t.Fatalf("step %d: peak %v below limit", i, tr.Peak())
		}
		if tr.Peak() > limit && math.Abs(g*tr.Peak()-limit) > 1e-12 {
			t.Fatalf("step %d: gain*peak = %v, want %v", i, g*tr.Peak(), limit)
		}
	}
}

func TestPeakTrackerReset(t *testing.T) {
	tr := NewPeakTracker()
	tr.Configure(0.3, ReleaseSpeed(0.3, 1000, 48000))
	tr.Update(0.9)

	tr.Reset()
	if tr.Gain() != 1 || tr.Peak() != tr.Limit() || tr.State() != StateCold {
		t.Fatalf("after reset: gain=%v peak=%v state=%v", tr.Gain(), tr.Peak(), tr.State())
	}
}

func TestPeakTrackerInfiniteSustain(t *testing.T) {
	tr := NewPeakTracker()
	tr.Configure(0.5, ReleaseSpeed(0.5, 1, 48000))
	tr.Update(1)

	tr.SetInfiniteSustain(true)
	for range 48000 {
		tr.Update(0)
	}
	if tr.Peak() != 1 || tr.Gain() != 0.5 {
		t.Fatalf("sustained peak=%v gain=%v", tr.Peak(), tr.Gain())
	}

	tr.Update(2)
	if tr.Peak() != 2 {
		t.Fatalf("attack under sustain: peak=%v, want 2", tr.Peak())
	}

	tr.SetInfiniteSustain(false)
	for range 480 {
		tr.Update(0)
	}
	if !tr.AtLimit() {
		t.Fatalf("peak=%v after sustain off, want limit", tr.Peak())
	}
}

func TestPeakTrackerConfigure(t *testing.T) {
	tr := NewPeakTracker()
	tr.Configure(0.5, 0.9)
	tr.Update(1)

	tr.Configure(2, 0.9)
	if tr.Peak() != 2 || tr.Gain() != 1 {
		t.Fatalf("raised limit: peak=%v gain=%v", tr.Peak(), tr.Gain())
	}

	tr.Configure(0.25, 0.9)
	if tr.Peak() != 2 || tr.Gain() != 0.125 {
		t.Fatalf("lowered limit: peak=%v gain=%v", tr.Peak(), tr.Gain())
	}

	for _, bad := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		tr.Configure(bad, bad)
		if tr.Limit() != 0.25 {
			t.Fatalf("Configure(%v) changed limit to %v", bad, tr.Limit())
		}
	}
}

func TestPeakTrackerIgnoresNaN(t *testing.T) {
	tr := NewPeakTracker()
	tr.Configure(0.5, 0.99)
	tr.Update(1)

	if g := tr.Update(math.NaN()); g != 0.5 || tr.Peak() != 1 {
		t.Fatalf("NaN estimate: gain=%v peak=%v", g, tr.Peak())
	}
}

func TestReleaseSpeed(t *testing.T) {
	rs := ReleaseSpeed(0.5, 100, 48000)
	if got := math.Pow(rs, 4800); math.Abs(got-0.5) > 1e-9 {
		t.Fatalf("decay per release time = %v, want 0.5", got)
	}

	rs = ReleaseSpeed(1, 100, 48000)
	if got, want := math.Pow(rs, 4800), math.Pow(10, -1.0/20); math.Abs(got-want) > 1e-9 {
		t.Fatalf("decay at 0 dB limit = %v, want %v", got, want)
	}

	for _, tc := range []struct{ limit, ms, fs float64 }{
		{0.5, 0, 48000},
		{0.5, -10, 48000},
		{0.5, math.NaN(), 48000},
		{0, 100, 48000},
		{0.5, 100, 0},
	} {
		if got := ReleaseSpeed(tc.limit, tc.ms, tc.fs); got != 0 {
			t.Fatalf("ReleaseSpeed(%v, %v, %v) = %v, want 0", tc.limit, tc.ms, tc.fs, got)
		}
	}
}
