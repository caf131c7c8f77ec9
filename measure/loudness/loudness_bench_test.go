package loudness

import (
	"testing"

	"github.com/cwbudde/algo-loudness/internal/testutil"
)

func BenchmarkMeterAddSamples(b *testing.B) {
	m, err := NewMeter(WithSampleRate(48000), WithPowerWindow(10))
	if err != nil {
		b.Fatal(err)
	}

	sig := testutil.DeterministicNoise(1, 0.5, 4096)
	b.SetBytes(int64(len(sig) * 2 * 4))
	b.ReportAllocs()
	b.ResetTimer()

	for range b.N {
		for _, x := range sig {
			m.AddSamples(x, -x)
		}
	}
}
