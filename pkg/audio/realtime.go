package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// ErrClosed is returned by Click after Close
var ErrClosed = errors.New("audio output closed")

// Output plays a fixed tick through the system audio device
type Output struct {
	otoCtx    *oto.Context
	otoPlayer *oto.Player

	mu     sync.Mutex
	closed bool
}

// NewOutput opens the audio device and prepares the tick for playback.
// oto allows one context per process, so only one Output may exist.
func NewOutput(sampleRate int, samples []float64) (*Output, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1, // Mono
		Format:       oto.FormatSignedInt16LE,
	}

	otoCtx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("cannot create oto context: %w", err)
	}
	<-ready

	out := &Output{otoCtx: otoCtx}
	out.otoPlayer = otoCtx.NewPlayer(bytes.NewReader(PCM16(samples)))
	out.otoPlayer.SetBufferSize(sampleRate / 50 * 2) // 20ms of mono int16
	return out, nil
}

// Click restarts the tick from the beginning. It does not wait for playback.
func (o *Output) Click() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return ErrClosed
	}
	o.otoPlayer.Pause()
	if _, err := o.otoPlayer.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("cannot rewind click: %w", err)
	}
	o.otoPlayer.Play()
	if err := o.otoPlayer.Err(); err != nil {
		return fmt.Errorf("cannot play click: %w", err)
	}
	return nil
}

// Close stops the audio output
func (o *Output) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.closed {
		return nil
	}
	o.closed = true
	if err := o.otoPlayer.Close(); err != nil {
		return fmt.Errorf("cannot close oto player: %w", err)
	}
	return nil
}
