// Package cpu reports the SIMD extensions available to the block kernels
// used by the engine (gain application and spectrum magnitude).
package cpu

import "sync"

// SIMDLevel is a SIMD instruction set extension.
type SIMDLevel int

const (
	SIMDNone SIMDLevel = iota
	SIMDSSE2
	SIMDAVX
	SIMDAVX2
	SIMDAVX512
	SIMDNEON
)

var levelNames = [...]string{"None", "SSE2", "AVX", "AVX2", "AVX-512", "NEON"}

// String returns the conventional name of the extension.
func (s SIMDLevel) String() string {
	if s < 0 || int(s) >= len(levelNames) {
		return "Unknown"
	}
	return levelNames[s]
}

// Features describes the detected processor capabilities.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	// Architecture is runtime.GOARCH.
	Architecture string
}

var detect = sync.OnceValue(detectFeaturesImpl)

// DetectFeatures returns the features of the current processor. Detection
// runs once; later calls return the cached result.
func DetectFeatures() Features {
	return detect()
}

// Supports reports whether level can run on f.
func (f Features) Supports(level SIMDLevel) bool {
	switch level {
	case SIMDNone:
		return true
	case SIMDSSE2:
		return f.HasSSE2
	case SIMDAVX:
		return f.HasAVX
	case SIMDAVX2:
		return f.HasAVX2
	case SIMDAVX512:
		return f.HasAVX512
	case SIMDNEON:
		return f.HasNEON
	default:
		return false
	}
}

// Levels lists every supported level, SIMDNone first.
func (f Features) Levels() []SIMDLevel {
	var out []SIMDLevel
	for l := SIMDNone; int(l) < len(levelNames); l++ {
		if f.Supports(l) {
			out = append(out, l)
		}
	}
	return out
}

// Best returns the widest supported level.
func (f Features) Best() SIMDLevel {
	levels := f.Levels()
	best := SIMDNone
	for _, l := range levels {
		if l == SIMDNEON || l > best {
			best = l
		}
	}
	return best
}
