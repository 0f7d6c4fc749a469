package config

import (
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"MOONMETER_BPM", "MOONMETER_CLICK", "MOONMETER_SAMPLE_RATE", "MOONMETER_MUTE",
	"MOONMETER_TRACKS", "MOONMETER_SEED", "MOONMETER_LOG", "MOONMETER_LOG_LEVEL",
}

func TestLoadDefaults(t *testing.T) {
	for _, k := range envVars {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg := Load()

	if cfg.BPM != 120 {
		t.Errorf("BPM = %d, want 120", cfg.BPM)
	}
	if cfg.ClickPath != "" {
		t.Errorf("ClickPath = %q, want empty default", cfg.ClickPath)
	}
	if cfg.SampleRate != 44100 {
		t.Errorf("SampleRate = %d, want 44100", cfg.SampleRate)
	}
	if cfg.Mute {
		t.Error("Mute = true, want false")
	}
	if cfg.TracksPath != "" {
		t.Errorf("TracksPath = %q, want empty default", cfg.TracksPath)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, want 0", cfg.Seed)
	}
	if want := filepath.Join(os.TempDir(), "moonmeter.log"); cfg.LogPath != want {
		t.Errorf("LogPath = %q, want %q", cfg.LogPath, want)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("MOONMETER_BPM", "90")
	t.Setenv("MOONMETER_CLICK", "/tmp/click.wav")
	t.Setenv("MOONMETER_SAMPLE_RATE", "48000")
	t.Setenv("MOONMETER_MUTE", "true")
	t.Setenv("MOONMETER_TRACKS", "/tmp/tracks.yaml")
	t.Setenv("MOONMETER_SEED", "42")
	t.Setenv("MOONMETER_LOG", "/tmp/mm.log")
	t.Setenv("MOONMETER_LOG_LEVEL", "debug")

	cfg := Load()

	if cfg.BPM != 90 {
		t.Errorf("BPM = %d, want 90", cfg.BPM)
	}
	if cfg.ClickPath != "/tmp/click.wav" {
		t.Errorf("ClickPath = %q, want env override", cfg.ClickPath)
	}
	if cfg.SampleRate != 48000 {
		t.Errorf("SampleRate = %d, want 48000", cfg.SampleRate)
	}
	if !cfg.Mute {
		t.Error("Mute = false, want env override")
	}
	if cfg.TracksPath != "/tmp/tracks.yaml" {
		t.Errorf("TracksPath = %q, want env override", cfg.TracksPath)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.LogPath != "/tmp/mm.log" {
		t.Errorf("LogPath = %q, want env override", cfg.LogPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestInvalidEnvFallsBack(t *testing.T) {
	t.Setenv("MOONMETER_BPM", "fast")
	t.Setenv("MOONMETER_SEED", "-1")
	t.Setenv("MOONMETER_MUTE", "maybe")

	cfg := Load()
	if cfg.BPM != 120 {
		t.Errorf("invalid int should fall back: got %d", cfg.BPM)
	}
	if cfg.Seed != 0 {
		t.Errorf("invalid uint should fall back: got %d", cfg.Seed)
	}
	if cfg.Mute {
		t.Error("invalid bool should fall back to false")
	}
}
