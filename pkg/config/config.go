package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds runtime configuration, loaded from environment variables.
// Command-line flags override it in cmd/moonmeter.
type Config struct {
	BPM        int    // starting tempo
	ClickPath  string // WAV tick sample, empty = synthesized tick
	SampleRate int    // audio output rate
	Mute       bool   // no audio device at all

	TracksPath string // YAML track preset
	Seed       uint64 // random seed for draws, 0 = time-seeded

	LogPath  string // log file, the TUI owns the terminal
	LogLevel string // zerolog level name
}

// Load reads configuration from environment variables with sane defaults.
func Load() Config {
	return Config{
		BPM:        envInt("MOONMETER_BPM", 120),
		ClickPath:  envStr("MOONMETER_CLICK", ""),
		SampleRate: envInt("MOONMETER_SAMPLE_RATE", 44100),
		Mute:       envBool("MOONMETER_MUTE", false),

		TracksPath: envStr("MOONMETER_TRACKS", ""),
		Seed:       envUint64("MOONMETER_SEED", 0),

		LogPath:  envStr("MOONMETER_LOG", filepath.Join(os.TempDir(), "moonmeter.log")),
		LogLevel: envStr("MOONMETER_LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint64(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
