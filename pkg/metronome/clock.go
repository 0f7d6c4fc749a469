// Package metronome implements the beat clock and the practice session it drives
package metronome

import (
	"sync"
	"time"
)

// Tempo limits
const (
	MinBPM     = 40
	MaxBPM     = 240
	DefaultBPM = 120
)

// Tick is one clock firing. Epoch identifies the Start call that armed it.
type Tick struct {
	Epoch uint64
	At    time.Time
}

// timer is the part of *time.Timer the clock needs
type timer interface {
	Stop() bool
}

type afterFunc func(d time.Duration, f func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// Clock fires every 60/bpm seconds while playing.
// It owns its timer; ticks are handed to fire and never touch session state.
type Clock struct {
	mu      sync.Mutex
	bpm     int
	period  time.Duration
	playing bool
	epoch   uint64
	next    time.Time // Deadline of the pending firing
	timer   timer

	fire  func(Tick)
	after afterFunc
	now   func() time.Time
}

// NewClock creates a stopped clock
func NewClock(bpm int, fire func(Tick)) *Clock {
	c := &Clock{
		fire:  fire,
		after: realAfterFunc,
		now:   time.Now,
	}
	c.setBPM(bpm)
	return c
}

// ClampBPM limits a tempo to the supported range
func ClampBPM(bpm int) int {
	return max(min(bpm, MaxBPM), MinBPM)
}

// PeriodOf returns the beat period for a tempo
func PeriodOf(bpm int) time.Duration {
	return time.Minute / time.Duration(ClampBPM(bpm))
}

func (c *Clock) setBPM(bpm int) {
	c.bpm = ClampBPM(bpm)
	c.period = PeriodOf(c.bpm)
}

// Start cancels any pending firing, opens a new epoch and arms a fresh timer
func (c *Clock) Start() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancelLocked()
	c.epoch++
	c.playing = true
	c.next = c.now().Add(c.period)
	c.armLocked()
	return c.epoch
}

// Stop cancels the pending firing. A callback already racing the cancel
// sees playing == false and is dropped.
func (c *Clock) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.playing = false
	c.cancelLocked()
}

// SetBPM changes the tempo. While playing the timer is re-armed so the next
// firing already uses the new period. Returns the clamped tempo.
func (c *Clock) SetBPM(bpm int) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.setBPM(bpm)
	if c.playing {
		c.cancelLocked()
		c.next = c.now().Add(c.period)
		c.armLocked()
	}
	return c.bpm
}

// BPM returns the current tempo
func (c *Clock) BPM() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bpm
}

// Period returns the current beat period
func (c *Clock) Period() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.period
}

// Playing reports whether the clock is running
func (c *Clock) Playing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playing
}

func (c *Clock) cancelLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Clock) armLocked() {
	epoch := c.epoch
	d := c.next.Sub(c.now())
	if d < 0 {
		d = 0
	}
	c.timer = c.after(d, func() { c.onTimer(epoch) })
}

func (c *Clock) onTimer(epoch uint64) {
	c.mu.Lock()
	if !c.playing || epoch != c.epoch {
		c.mu.Unlock()
		return
	}
	at := c.next
	// Deadlines advance from the previous deadline, not from now. Beats
	// missed during a stall are skipped rather than fired back to back.
	c.next = c.next.Add(c.period)
	if now := c.now(); !c.next.After(now) {
		missed := now.Sub(c.next)/c.period + 1
		c.next = c.next.Add(missed * c.period)
	}
	c.armLocked()
	fire := c.fire
	c.mu.Unlock()

	if fire != nil {
		fire(Tick{Epoch: epoch, At: at})
	}
}
