package loudness

import (
	"errors"
	"math"
	"testing"
)

func TestGaugeReadyAfterFullWindow(t *testing.T) {
	g, err := NewGauge(4, 1, SlidingCompensated)
	if err != nil {
		t.Fatalf("NewGauge: %v", err)
	}

	for range 3 {
		g.Add(1)
		if _, ok := g.Reading(); ok {
			t.Fatal("reading valid before window filled")
		}
	}

	g.Add(1)
	v, ok := g.Reading()
	if !ok {
		t.Fatal("reading not valid after window filled")
	}
	if math.Abs(v-calibration) > 1e-15 {
		t.Fatalf("reading = %v, want %v", v, calibration)
	}
}

func TestGaugeHoldsBetweenIntervals(t *testing.T) {
	g, _ := NewGauge(4, 2, SlidingCompensated)
	for range 4 {
		g.Add(1)
	}
	first, _ := g.Reading()

	g.Add(4)
	if v, _ := g.Reading(); v != first {
		t.Fatalf("reading changed inside interval: %v -> %v", first, v)
	}

	g.Add(4)
	want := calibration * math.Sqrt(2.5)
	if v, _ := g.Reading(); math.Abs(v-want) > 1e-12 {
		t.Fatalf("reading after interval = %v, want %v", v, want)
	}
}

func TestGaugeRejectsBadInterval(t *testing.T) {
	for _, interval := range []int{0, 5} {
		if _, err := NewGauge(4, interval, SlidingCompensated); !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("interval %d: error = %v, want ErrInvalidInterval", interval, err)
		}
	}
}

func TestGaugeResizeClamps(t *testing.T) {
	g, _ := NewGauge(4, 2, SlidingCompensated)
	for range 4 {
		g.Add(1)
	}

	g.Resize(4, 9)
	if _, ok := g.Reading(); !ok {
		t.Fatal("same-length resize cleared the reading")
	}
	if g.Interval() != 4 {
		t.Fatalf("interval = %d, want clamp to 4", g.Interval())
	}

	g.Resize(0, 0)
	if g.Window().Len() != 1 || g.Interval() != 1 {
		t.Fatalf("len=%d interval=%d, want 1/1", g.Window().Len(), g.Interval())
	}
	if _, ok := g.Reading(); ok {
		t.Fatal("resize kept a stale reading")
	}
}
