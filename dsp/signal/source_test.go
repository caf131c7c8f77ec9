package signal

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-loudness/dsp/core"
)

func TestSourceSineIsContinuousAcrossBlocks(t *testing.T) {
	cfg := DefaultSourceConfig()
	src, err := NewSource(48000, cfg)
	if err != nil {
		t.Fatal(err)
	}

	left := make([]float32, 4800)
	right := make([]float32, 4800)
	for start := 0; start < len(left); start += 100 {
		src.Fill(left[start:start+100], right[start:start+100])
	}

	amp := core.DBToLinear(cfg.AmplitudeDB)
	for i := range left {
		want := amp * math.Sin(2*math.Pi*1000*float64(i)/48000)
		if math.Abs(float64(left[i])-want) > 1e-6 {
			t.Fatalf("sample %d = %v, want %v", i, left[i], want)
		}
		if left[i] != right[i] {
			t.Fatalf("sample %d: channels differ", i)
		}
	}
}

func TestSourceNoiseIsReproducible(t *testing.T) {
	cfg := DefaultSourceConfig()
	cfg.Kind = KindNoise
	cfg.AmplitudeDB = 0

	src, err := NewSource(48000, cfg)
	if err != nil {
		t.Fatal(err)
	}

	a := make([]float32, 256)
	src.Fill(a, nil)
	src.Reset()
	b := make([]float32, 256)
	src.Fill(b, nil)

	for i := range a {
		if a[i] != b[i] || math.Abs(float64(a[i])) > 1 {
			t.Fatalf("sample %d: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestSourceSilenceAndLevel(t *testing.T) {
	cfg := DefaultSourceConfig()
	cfg.Kind = KindSilence

	src, err := NewSource(48000, cfg)
	if err != nil {
		t.Fatal(err)
	}

	buf := make([]float32, 64)
	src.Fill(buf, nil)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("sample %d = %v", i, v)
		}
	}

	src.SetAmplitudeDB(-6)
	if src.Config().AmplitudeDB != -6 {
		t.Fatalf("amplitude = %v", src.Config().AmplitudeDB)
	}
}

func TestNewSourceErrors(t *testing.T) {
	cfg := DefaultSourceConfig()
	if _, err := NewSource(0, cfg); err == nil {
		t.Fatal("expected sample rate error")
	}

	cfg.FreqHz = 30000
	if _, err := NewSource(48000, cfg); err == nil {
		t.Fatal("expected frequency error")
	}

	cfg = DefaultSourceConfig()
	cfg.Kind = Kind(12)
	if _, err := NewSource(48000, cfg); err == nil {
		t.Fatal("expected kind error")
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range []Kind{KindSine, KindNoise, KindBursts, KindSilence} {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Fatalf("ParseKind(%q) = %v, %v", k.String(), got, err)
		}
	}
	if k, err := ParseKind("NOISE"); err != nil || k != KindNoise {
		t.Fatalf("ParseKind(NOISE) = %v, %v", k, err)
	}
	if _, err := ParseKind("square"); err == nil {
		t.Fatal("expected error")
	}
	if Kind(9).String() != "unknown" {
		t.Fatal("unexpected name for invalid kind")
	}
}
