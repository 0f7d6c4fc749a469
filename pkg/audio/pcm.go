package audio

import (
	"encoding/binary"
	"math"
)

// PCM16 converts float samples to 16-bit signed little-endian PCM
func PCM16(samples []float64) []byte {
	buf := make([]byte, len(samples)*2)
	for i, s := range samples {
		// Clamp
		if s > 1.0 {
			s = 1.0
		}
		if s < -1.0 {
			s = -1.0
		}
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(int16(s*math.MaxInt16)))
	}
	return buf
}

// Peak returns the largest absolute sample value
func Peak(samples []float64) float64 {
	var peak float64
	for _, s := range samples {
		peak = max(peak, math.Abs(s))
	}
	return peak
}

// Normalize scales samples so the peak equals level
func Normalize(samples []float64, level float64) []float64 {
	peak := Peak(samples)
	if peak == 0 {
		return samples
	}
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s / peak * level
	}
	return out
}
