package dynamics

import (
	"math"
	"sync"
	"testing"
)

func TestParamStoreDefaults(t *testing.T) {
	s := NewParamStore()
	if got := s.Snapshot(); got != DefaultParams() {
		t.Fatalf("Snapshot = %+v, want defaults", got)
	}
}

func TestParamStoreSetClamps(t *testing.T) {
	s := NewParamStore()

	s.Set(ParamLimit, 12)
	if got := s.Get(ParamLimit); got != 0 {
		t.Fatalf("limit = %v, want 0", got)
	}

	s.Set(ParamLimit, math.NaN())
	if got := s.Get(ParamLimit); got != -14 {
		t.Fatalf("limit after NaN = %v, want default", got)
	}

	s.Set(ParamID(-1), 3)
	s.Set(NumParams, 3)
	if !math.IsNaN(s.Get(NumParams)) {
		t.Fatal("Get(NumParams) is not NaN")
	}
}

func TestParamStoreAddToggleNormalized(t *testing.T) {
	s := NewParamStore()

	s.Add(ParamAttack, 5)
	if got := s.Get(ParamAttack); got != 15 {
		t.Fatalf("attack = %v, want 15", got)
	}

	s.Add(ParamDetectorMix, 3)
	if got := s.Get(ParamDetectorMix); got != 1 {
		t.Fatalf("mix = %v, want 1", got)
	}

	s.Toggle(ParamInfiniteSustain)
	if !s.Snapshot().InfiniteSustain {
		t.Fatal("sustain not toggled on")
	}
	s.Toggle(ParamInfiniteSustain)
	if s.Snapshot().InfiniteSustain {
		t.Fatal("sustain not toggled off")
	}

	s.SetNormalized(ParamLimit, 0.25)
	if got := s.Get(ParamLimit); got != -60 {
		t.Fatalf("limit = %v, want -60", got)
	}
}

func TestParamStoreLoadSnapshot(t *testing.T) {
	p := DefaultParams()
	p.LimitDB = -23
	p.ReleaseMs = 250
	p.DelayMs = 5
	p.InfiniteSustain = true

	s := NewParamStore()
	s.Load(p)
	if got := s.Snapshot(); got != p {
		t.Fatalf("Snapshot = %+v, want %+v", got, p)
	}
}

func TestParamStoreConcurrentAccess(t *testing.T) {
	s := NewParamStore()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := range 10000 {
			if i%2 == 0 {
				s.Set(ParamLimit, -20)
			} else {
				s.Set(ParamLimit, -10)
			}
			s.Toggle(ParamReset)
		}
	}()

	go func() {
		defer wg.Done()
		for range 10000 {
			p := s.Snapshot()
			if p.LimitDB != -14 && p.LimitDB != -20 && p.LimitDB != -10 {
				t.Errorf("torn limit value %v", p.LimitDB)
				return
			}
		}
	}()

	wg.Wait()
}
