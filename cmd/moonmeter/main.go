package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/moonmeter/moonmeter/pkg/audio"
	"github.com/moonmeter/moonmeter/pkg/config"
	"github.com/moonmeter/moonmeter/pkg/metronome"
	"github.com/moonmeter/moonmeter/pkg/track"
	"github.com/moonmeter/moonmeter/pkg/tui"
)

func main() {
	cfg := config.Load()

	bpm := flag.Int("bpm", cfg.BPM, "Tempo in beats per minute (40-240)")
	click := flag.String("click", cfg.ClickPath, "WAV file used as the tick, empty for the built-in tick")
	tracksPath := flag.String("tracks", cfg.TracksPath, "YAML track preset")
	seed := flag.Uint64("seed", cfg.Seed, "Random seed for draws, 0 for a time-based seed")
	mute := flag.Bool("mute", cfg.Mute, "Disable audio output")
	logPath := flag.String("log", cfg.LogPath, "Log file used while the TUI owns the terminal")
	headless := flag.Bool("headless", false, "Run without the TUI and log every reveal to stderr")
	beats := flag.Int("beats", 0, "Headless only: stop after this many beats, 0 runs until interrupted")
	flag.Parse()

	closeLog, err := setupLogging(*headless, *logPath, cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	tracks := track.Defaults()
	if *tracksPath != "" {
		preset, err := config.LoadTracksFile(*tracksPath)
		if err != nil {
			log.Fatal().Err(err).Str("tracks", *tracksPath).Msg("failed to load track preset")
		}
		tracks = preset.Tracks
		if preset.BPM != 0 && !flagSet("bpm") {
			*bpm = preset.BPM
		}
		log.Info().Str("tracks", *tracksPath).Int("count", len(tracks)).Msg("preset loaded")
	}

	opts := []metronome.Option{
		metronome.WithBPM(*bpm),
		metronome.WithTracks(tracks...),
		metronome.WithClicker(newClicker(*mute, *click, cfg.SampleRate)),
	}
	if *seed != 0 {
		opts = append(opts, metronome.WithRand(rand.New(rand.NewPCG(*seed, *seed^0x9e3779b97f4a7c15))))
	}

	if *headless {
		runHeadless(opts, *beats)
		return
	}
	runTUI(opts)
}

func runTUI(opts []metronome.Option) {
	// p is set before the session is started
	var p *tea.Program
	session := metronome.NewSession(append(opts, metronome.WithNotify(func(t metronome.Tick) {
		p.Send(tui.BeatMsg(t))
	}))...)
	defer session.Close()

	p = tea.NewProgram(tui.NewModel(session), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	session.Stop()

	for _, t := range session.Tracks() {
		fmt.Println(t.Summary())
	}
}

func runHeadless(opts []metronome.Option, beats int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticks := make(chan metronome.Tick, tickBuffer)
	session := metronome.NewSession(append(opts, metronome.WithNotify(func(t metronome.Tick) {
		forwardTick(ticks, t)
	}))...)
	defer session.Close()

	done := func() bool { return beats > 0 && session.Beat()+1 >= beats }

	logReport(session.Start())
	for !done() {
		select {
		case <-ctx.Done():
			log.Info().Msg("interrupted")
			logSummary(session)
			return
		case t := <-ticks:
			if r, ok := session.HandleTick(t); ok {
				logReport(r)
			}
		}
	}
	session.Stop()
	logSummary(session)
}

// tickBuffer holds ten seconds of beats at the fastest tempo
const tickBuffer = 10 * metronome.MaxBPM / 60

// forwardTick hands a clock tick to the headless loop without blocking the
// clock. When the loop is that far behind the tick is dropped, so the beat
// counter lags the wall clock by one beat per dropped tick.
func forwardTick(ticks chan<- metronome.Tick, t metronome.Tick) bool {
	select {
	case ticks <- t:
		return true
	default:
		log.Warn().Time("at", t.At).Int("buffered", len(ticks)).Msg("beat dropped, event loop is behind")
		return false
	}
}

func logReport(r metronome.Report) {
	for _, c := range r.Changes {
		ev := log.Debug()
		if c.Action == track.Promote {
			ev = log.Info()
		}
		ev.Int("beat", r.Beat).
			Str("track", c.Name).
			Str("action", c.Action.String()).
			Str("current", c.Current).
			Str("next", c.Next).
			Msg("beat")
	}
}

func logSummary(s *metronome.Session) {
	for _, t := range s.Tracks() {
		log.Info().
			Str("track", t.Name).
			Str("current", t.CurrentLabel()).
			Interface("reveals", t.Reveals).
			Int("beats", s.Beat()+1).
			Msg("summary")
	}
}

// newClicker opens the audio device. Any failure falls back to silence.
func newClicker(mute bool, path string, sampleRate int) metronome.Clicker {
	if mute {
		return metronome.Silent{}
	}
	samples, err := audio.TickSamples(path, sampleRate)
	if err != nil {
		log.Warn().Err(err).Str("click", path).Msg("click sample unusable, using built-in tick")
		samples = audio.DefaultTone.Render(sampleRate)
	}
	out, err := audio.NewOutput(sampleRate, samples)
	if err != nil {
		log.Warn().Err(err).Msg("audio unavailable, running silent")
		return metronome.Silent{}
	}
	return out
}

// setupLogging points the global logger at stderr in headless mode and at a
// file otherwise
func setupLogging(headless bool, path, level string) (func(), error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)

	if headless {
		log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			With().Timestamp().Logger()
		return func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	return func() { f.Close() }, nil
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}
