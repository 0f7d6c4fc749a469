package metronome

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/moonmeter/moonmeter/pkg/track"
)

// Clicker plays the audible tick. Click must not block; errors are logged
// by the session and never affect scheduling.
type Clicker interface {
	Click() error
	Close() error
}

// Change records what one track did on a beat
type Change struct {
	TrackID string
	Name    string
	Action  track.Action
	Current string
	Next    string
}

// Report summarizes one evaluated beat
type Report struct {
	Beat    int
	Changes []Change
}

// Reveals returns the promote changes of the report
func (r Report) Reveals() []Change {
	var out []Change
	for _, c := range r.Changes {
		if c.Action == track.Promote {
			out = append(out, c)
		}
	}
	return out
}

// Session owns the beat clock, the beat counter and the tracks.
//
// Apart from the clock, a Session is not safe for concurrent use: every
// method must be called from the goroutine running the event loop. Clock
// ticks reach that goroutine through the notify function and are applied
// with HandleTick.
type Session struct {
	clock   *Clock
	clicker Clicker
	rng     *rand.Rand
	notify  func(Tick)
	log     zerolog.Logger

	tracks []track.Track
	index  map[string]int

	beat    int
	epoch   uint64
	playing bool
}

// Option configures a Session
type Option func(*Session)

// WithRand sets the random source used for draws
func WithRand(rng *rand.Rand) Option {
	return func(s *Session) { s.rng = rng }
}

// WithClicker sets the tick sound
func WithClicker(c Clicker) Option {
	return func(s *Session) { s.clicker = c }
}

// WithBPM sets the starting tempo
func WithBPM(bpm int) Option {
	return func(s *Session) { s.clock.SetBPM(bpm) }
}

// WithTracks sets the starting tracks, in display and evaluation order
func WithTracks(tracks ...track.Track) Option {
	return func(s *Session) {
		s.tracks = nil
		for _, t := range tracks {
			s.tracks = append(s.tracks, t.Clone())
		}
	}
}

// WithNotify sets where clock ticks are delivered. f is called from the
// clock's timer goroutine.
func WithNotify(f func(Tick)) Option {
	return func(s *Session) { s.notify = f }
}

// WithLogger sets the session logger
func WithLogger(l zerolog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// withAfterFunc replaces the clock's timer source
func withAfterFunc(f afterFunc, now func() time.Time) Option {
	return func(s *Session) {
		s.clock.after = f
		s.clock.now = now
	}
}

// NewSession creates a stopped session
func NewSession(opts ...Option) *Session {
	s := &Session{
		clicker: Silent{},
		log:     log.Logger,
	}
	s.clock = NewClock(DefaultBPM, func(t Tick) {
		if s.notify != nil {
			s.notify(t)
		}
	})
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		now := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(now, now>>1|1))
	}
	s.reindex()
	return s
}

// Start resets the beat counter to 0, arms the clock under a new epoch and
// evaluates beat 0 immediately
func (s *Session) Start() Report {
	s.epoch = s.clock.Start()
	s.playing = true
	s.beat = 0
	s.log.Info().Int("bpm", s.clock.BPM()).Uint64("epoch", s.epoch).Msg("playback started")
	return s.evaluate()
}

// Stop cancels the clock; no further beats are evaluated until Start
func (s *Session) Stop() {
	if !s.playing {
		return
	}
	s.clock.Stop()
	s.playing = false
	s.log.Info().Int("beat", s.beat).Msg("playback stopped")
}

// Toggle starts a stopped session or stops a playing one
func (s *Session) Toggle() Report {
	if s.playing {
		s.Stop()
		return Report{Beat: s.beat}
	}
	return s.Start()
}

// HandleTick advances the counter by one and evaluates every track.
// Ticks from an earlier epoch or arriving after Stop are ignored.
func (s *Session) HandleTick(t Tick) (Report, bool) {
	if !s.playing || t.Epoch != s.epoch {
		s.log.Debug().Uint64("epoch", t.Epoch).Uint64("current", s.epoch).Msg("stale tick dropped")
		return Report{}, false
	}
	s.beat++
	return s.evaluate(), true
}

func (s *Session) evaluate() Report {
	if err := s.clicker.Click(); err != nil {
		s.log.Warn().Err(err).Int("beat", s.beat).Msg("click playback failed")
	}

	r := Report{Beat: s.beat}
	for i, t := range s.tracks {
		action := t.Due(s.beat)
		next := track.Step(t, s.beat, s.rng)
		s.tracks[i] = next
		if next.Current == t.Current && next.Next == t.Next {
			continue
		}
		r.Changes = append(r.Changes, Change{
			TrackID: next.ID,
			Name:    next.Name,
			Action:  action,
			Current: next.Current,
			Next:    next.Next,
		})
	}
	return r
}

// Close stops playback and releases the clicker
func (s *Session) Close() error {
	s.Stop()
	return s.clicker.Close()
}

// SetBPM changes the tempo and returns the clamped value
func (s *Session) SetBPM(bpm int) int {
	bpm = s.clock.SetBPM(bpm)
	s.log.Debug().Int("bpm", bpm).Msg("tempo changed")
	return bpm
}

// BPM returns the tempo
func (s *Session) BPM() int { return s.clock.BPM() }

// Beat returns the beat counter
func (s *Session) Beat() int { return s.beat }

// Playing reports whether the session is running
func (s *Session) Playing() bool { return s.playing }

// Epoch returns the current playback epoch
func (s *Session) Epoch() uint64 { return s.epoch }

// Tracks returns the tracks in evaluation order
func (s *Session) Tracks() []track.Track {
	return slices.Clone(s.tracks)
}

// Len returns the number of tracks
func (s *Session) Len() int { return len(s.tracks) }

// Track returns the track with the given ID
func (s *Session) Track(id string) (track.Track, bool) {
	i, ok := s.index[id]
	if !ok {
		return track.Track{}, false
	}
	return s.tracks[i], true
}

// Update applies an edit to a track. The edit takes effect from the next
// evaluated beat. Reports whether the track exists and fn changed it.
func (s *Session) Update(id string, fn func(*track.Track) bool) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	t := s.tracks[i]
	if !fn(&t) {
		return false
	}
	s.tracks[i] = t
	return true
}

// AddTrack appends a default track and returns it
func (s *Session) AddTrack() track.Track {
	t := track.NewNumbered(len(s.tracks) + 1)
	s.tracks = append(s.tracks, t)
	s.index[t.ID] = len(s.tracks) - 1
	s.log.Debug().Str("track", t.ID).Str("name", t.Name).Msg("track added")
	return t
}

// RemoveTrack deletes a track
func (s *Session) RemoveTrack(id string) bool {
	i, ok := s.index[id]
	if !ok {
		return false
	}
	s.tracks = slices.Delete(s.tracks, i, i+1)
	s.reindex()
	s.log.Debug().Str("track", id).Msg("track removed")
	return true
}

func (s *Session) reindex() {
	s.index = make(map[string]int, len(s.tracks))
	for i, t := range s.tracks {
		s.index[t.ID] = i
	}
}

// Silent is a Clicker that makes no sound
type Silent struct{}

func (Silent) Click() error { return nil }
func (Silent) Close() error { return nil }
