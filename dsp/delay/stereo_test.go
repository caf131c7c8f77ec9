package delay

import (
	"errors"
	"testing"
)

func TestNewStereoValidation(t *testing.T) {
	if _, err := NewStereo(-1); !errors.Is(err, ErrInvalidDelay) {
		t.Fatalf("NewStereo(-1) error = %v, want ErrInvalidDelay", err)
	}

	d, err := NewStereo(0)
	if err != nil {
		t.Fatal(err)
	}
	if d.Delay() != 0 {
		t.Fatalf("Delay() = %d, want 0", d.Delay())
	}
}

func TestStereoZeroDelayIsIdentity(t *testing.T) {
	d, _ := NewStereo(0)
	for i := range 10 {
		l, r := float64(i), -float64(i)*0.5
		gl, gr := d.Add(l, r)
		if gl != l || gr != r {
			t.Fatalf("call %d: got (%v, %v), want (%v, %v)", i, gl, gr, l, r)
		}
	}
}

func TestStereoDelayAlignment(t *testing.T) {
	for _, delay := range []int{1, 3, 17} {
		d, _ := NewStereo(delay)

		for n := 1; n <= 3*delay+5; n++ {
			gl, gr := d.Add(float64(n), float64(n)+0.5)

			if n <= delay {
				if gl != 0 || gr != 0 {
					t.Fatalf("delay %d output %d: got (%v, %v), want silence", delay, n, gl, gr)
				}
				continue
			}

			want := float64(n - delay)
			if gl != want || gr != want+0.5 {
				t.Fatalf("delay %d output %d: got (%v, %v), want (%v, %v)", delay, n, gl, gr, want, want+0.5)
			}
		}
	}
}

func TestStereoSetDelay(t *testing.T) {
	d, _ := NewStereo(2)
	d.Add(1, 1)
	d.Add(2, 2)

	if err := d.SetDelay(2); err != nil {
		t.Fatal(err)
	}
	if l, _ := d.Add(3, 3); l != 1 {
		t.Fatalf("unchanged delay lost history: got %v, want 1", l)
	}

	if err := d.SetDelay(3); err != nil {
		t.Fatal(err)
	}
	for n := range 3 {
		if l, r := d.Add(9, 9); l != 0 || r != 0 {
			t.Fatalf("read %d after resize: got (%v, %v), want silence", n, l, r)
		}
	}
	if l, _ := d.Add(10, 10); l != 9 {
		t.Fatalf("first delayed read after resize = %v, want 9", l)
	}

	if err := d.SetDelay(-2); !errors.Is(err, ErrInvalidDelay) {
		t.Fatalf("SetDelay(-2) error = %v", err)
	}
	if d.Delay() != 3 {
		t.Fatalf("failed SetDelay changed length to %d", d.Delay())
	}
}

func TestStereoReset(t *testing.T) {
	d, _ := NewStereo(1)
	d.Add(4, 5)
	d.Reset()
	if l, r := d.Add(1, 1); l != 0 || r != 0 {
		t.Fatalf("reset left history: (%v, %v)", l, r)
	}
}
