package biquad

import (
	"math"
	"testing"
)

const eps = 1e-12

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

var smoothing = Coefficients{B0: 0.25, B1: 0.5, B2: 0.25, A1: -0.2, A2: 0.04}

func TestNewSection(t *testing.T) {
	c := Coefficients{B0: 1, B1: 2, B2: 3, A1: 4, A2: 5}
	s := NewSection(c)
	if s.Coefficients != c {
		t.Fatalf("coefficients mismatch: got %v, want %v", s.Coefficients, c)
	}
	if st := s.State(); st != [4]float64{} {
		t.Fatalf("initial state not zero: %v", st)
	}
}

func TestProcessSample_DirectFormI(t *testing.T) {
	// x = [1, 0, 0, ...]
	// y0 = 0.25
	// y1 = 0.5 + 0.2*0.25 = 0.55
	// y2 = 0.25 + 0.2*0.55 - 0.04*0.25 = 0.35
	// y3 = 0.2*0.35 - 0.04*0.55 = 0.048
	s := NewSection(smoothing)

	want := []float64{0.25, 0.55, 0.35, 0.048, -0.0044, -0.0028}
	for i, w := range want {
		var x float64
		if i == 0 {
			x = 1
		}
		if y := s.ProcessSample(x); !almostEqual(y, w, eps) {
			t.Fatalf("y[%d] = %.15f, want %.15f", i, y, w)
		}
	}
}

func TestProcessSample_HistoryShift(t *testing.T) {
	s := NewSection(Coefficients{B0: 1})
	s.ProcessSample(3)
	s.ProcessSample(7)

	if got := s.State(); got != [4]float64{7, 3, 7, 3} {
		t.Fatalf("state = %v, want [7 3 7 3]", got)
	}
}

func TestProcessBlockMatchesSample(t *testing.T) {
	input := []float64{0.3, -1, 0.5, 0.25, 0, 0.8, -0.4, 0.1}

	ref := NewSection(smoothing)
	want := make([]float64, len(input))
	for i, x := range input {
		want[i] = ref.ProcessSample(x)
	}

	s := NewSection(smoothing)
	buf := append([]float64(nil), input...)
	s.ProcessBlock(buf[:3])
	s.ProcessBlock(buf[3:])

	for i := range want {
		if !almostEqual(buf[i], want[i], eps) {
			t.Fatalf("index %d: got %v, want %v", i, buf[i], want[i])
		}
	}
	if s.State() != ref.State() {
		t.Fatalf("state mismatch: %v vs %v", s.State(), ref.State())
	}
}

func TestResetAndSetState(t *testing.T) {
	s := NewSection(smoothing)
	s.ProcessSample(1)
	s.ProcessSample(0.5)
	saved := s.State()

	next := s.ProcessSample(0.2)

	s.Reset()
	if s.State() != [4]float64{} {
		t.Fatalf("reset did not clear state: %v", s.State())
	}

	s.SetState(saved)
	if got := s.ProcessSample(0.2); got != next {
		t.Fatalf("restored output = %v, want %v", got, next)
	}
}

func TestChainCascades(t *testing.T) {
	c := NewChain([]Coefficients{smoothing, {B0: 2}}, WithGain(0.5))
	if c.NumSections() != 2 {
		t.Fatalf("NumSections() = %d, want 2", c.NumSections())
	}

	// gain 0.5 and a x2 section cancel out.
	ref := NewSection(smoothing)
	for i := range 8 {
		x := math.Sin(float64(i))
		if got, want := c.ProcessSample(x), ref.ProcessSample(x); !almostEqual(got, want, eps) {
			t.Fatalf("sample %d: got %v, want %v", i, got, want)
		}
	}
}

func TestChainEmptyPassesThrough(t *testing.T) {
	c := NewChain(nil)
	buf := []float64{1, -2, 3}
	c.ProcessBlock(buf)
	if buf[0] != 1 || buf[1] != -2 || buf[2] != 3 {
		t.Fatalf("buf = %v", buf)
	}
}

func TestChainUpdateCoefficientsKeepsHistory(t *testing.T) {
	c := NewChain([]Coefficients{smoothing})
	c.ProcessSample(1)
	before := c.State()

	c.UpdateCoefficients([]Coefficients{{B0: 1}}, 1)
	if got := c.State(); got[0] != before[0] {
		t.Fatalf("history changed: %v vs %v", got, before)
	}

	c.UpdateCoefficients([]Coefficients{{B0: 1}, {B0: 1}}, 1)
	if c.NumSections() != 2 || c.State()[0] != [4]float64{} {
		t.Fatal("expected fresh sections after section count change")
	}
}

func TestChainImpulseResponseRestoresState(t *testing.T) {
	c := NewChain([]Coefficients{smoothing})
	c.ProcessSample(0.7)
	saved := c.State()

	ir := c.ImpulseResponse(4)
	want := []float64{0.25, 0.55, 0.35, 0.048}
	for i := range want {
		if !almostEqual(ir[i], want[i], eps) {
			t.Fatalf("ir[%d] = %v, want %v", i, ir[i], want[i])
		}
	}
	if c.State()[0] != saved[0] {
		t.Fatal("ImpulseResponse modified chain state")
	}
	if c.ImpulseResponse(0) != nil {
		t.Fatal("expected nil for n=0")
	}
}

func TestResponseAtDCAndNyquist(t *testing.T) {
	// H(1) = (0.25+0.5+0.25)/(1-0.2+0.04)
	dc := real(smoothing.Response(0, 48000))
	if !almostEqual(dc, 1/0.84, 1e-12) {
		t.Fatalf("DC gain = %v, want %v", dc, 1/0.84)
	}
	// Zeros at z = -1.
	if mag := smoothing.MagnitudeDB(24000, 48000); mag > -200 {
		t.Fatalf("Nyquist magnitude = %v dB, want deep null", mag)
	}

	c := NewChain([]Coefficients{smoothing, smoothing})
	if got, want := c.MagnitudeDB(1000, 48000), 2*smoothing.MagnitudeDB(1000, 48000); !almostEqual(got, want, 1e-9) {
		t.Fatalf("chain magnitude = %v, want %v", got, want)
	}
}
