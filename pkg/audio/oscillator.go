// Package audio renders and plays the metronome tick
package audio

import (
	"math"
	"time"
)

// Waveform selects the oscillator shape
type Waveform uint8

const (
	WaveSine Waveform = iota
	WaveSquare
	WaveTriangle
	WaveNoise
)

// Oscillator generates a waveform one sample at a time
type Oscillator struct {
	Wave       Waveform
	Phase      float64
	Frequency  float64
	SampleRate float64
	seed       uint32
}

// NewOscillator creates a new oscillator
func NewOscillator(wave Waveform, freq, sampleRate float64) *Oscillator {
	return &Oscillator{
		Wave:       wave,
		Frequency:  freq,
		SampleRate: sampleRate,
		seed:       22222,
	}
}

// Sample generates the next sample value (-1.0 to 1.0)
func (o *Oscillator) Sample() float64 {
	if o.Frequency <= 0 || o.SampleRate <= 0 {
		return 0
	}

	var v float64
	switch o.Wave {
	case WaveSine:
		v = math.Sin(2 * math.Pi * o.Phase)
	case WaveSquare:
		v = -1
		if o.Phase < 0.5 {
			v = 1
		}
	case WaveTriangle:
		if o.Phase < 0.5 {
			v = 4*o.Phase - 1
		} else {
			v = 3 - 4*o.Phase
		}
	case WaveNoise:
		// LCG
		o.seed = o.seed*1103515245 + 12345
		v = float64(int32(o.seed)) / (1 << 31)
	}

	o.Phase += o.Frequency / o.SampleRate
	if o.Phase >= 1.0 {
		o.Phase -= math.Floor(o.Phase)
	}
	return v
}

// Tone describes the tick sound
type Tone struct {
	Wave      Waveform
	Frequency float64       // Hz
	Length    time.Duration // Total length of the tick
	Decay     time.Duration // Time for the envelope to fall to 1/e
	Volume    float64       // Peak amplitude (0.0-1.0)
	Noise     float64       // Share of noise mixed into the attack (0.0-1.0)
}

// DefaultTone is a short high woodblock-like tick
var DefaultTone = Tone{
	Wave:      WaveSine,
	Frequency: 1760,
	Length:    40 * time.Millisecond,
	Decay:     8 * time.Millisecond,
	Volume:    0.8,
	Noise:     0.15,
}

// Render renders the tone to mono float samples
func (t Tone) Render(sampleRate int) []float64 {
	n := int(t.Length.Seconds() * float64(sampleRate))
	if n <= 0 {
		return nil
	}

	osc := NewOscillator(t.Wave, t.Frequency, float64(sampleRate))
	noise := NewOscillator(WaveNoise, 1, float64(sampleRate))
	decaySamples := t.Decay.Seconds() * float64(sampleRate)
	attack := sampleRate / 1000 // 1ms click onset

	out := make([]float64, n)
	for i := range out {
		env := 1.0
		if decaySamples > 0 {
			env = math.Exp(-float64(i) / decaySamples)
		}
		if i < attack {
			env *= float64(i+1) / float64(attack)
		}
		v := osc.Sample()
		if t.Noise > 0 && i < attack*4 {
			v = v*(1-t.Noise) + noise.Sample()*t.Noise
		}
		out[i] = v * env * t.Volume
	}
	return out
}
