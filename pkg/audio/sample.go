package audio

import (
	"fmt"
	"os"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

// MaxSampleLength bounds a loaded tick sample
const MaxSampleLength = time.Second

// resampleQuality is the beep.Resample interpolation quality
const resampleQuality = 4

// LoadWAV decodes a tick sample, resamples it to sampleRate and downmixes it
// to mono. Samples longer than MaxSampleLength are cut.
func LoadWAV(path string, sampleRate int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open click sample: %w", err)
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("cannot decode click sample %s: %w", path, err)
	}
	defer streamer.Close()

	target := beep.SampleRate(sampleRate)
	var s beep.Streamer = streamer
	if format.SampleRate != target {
		s = beep.Resample(resampleQuality, format.SampleRate, target, streamer)
	}
	s = beep.Take(target.N(MaxSampleLength), s)

	var out []float64
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			out = append(out, (buf[i][0]+buf[i][1])/2)
		}
		if !ok {
			break
		}
	}
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("cannot read click sample %s: %w", path, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("click sample %s is empty", path)
	}
	return out, nil
}

// TickSamples returns the tick to play: the WAV file at path, or the
// synthesized DefaultTone when path is empty
func TickSamples(path string, sampleRate int) ([]float64, error) {
	if path == "" {
		return DefaultTone.Render(sampleRate), nil
	}
	samples, err := LoadWAV(path, sampleRate)
	if err != nil {
		return nil, err
	}
	return Normalize(samples, DefaultTone.Volume), nil
}
