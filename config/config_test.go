package config

import (
	"strings"
	"testing"
)

func TestDefaultHasNonZeroSampleRate(t *testing.T) {
	cfg := Default()
	if cfg.Emulation.SampleRate != 44100 {
		t.Fatalf("expected a default sample rate of 44100, got %d", cfg.Emulation.SampleRate)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	doc := `
[input]
pad1_connected = true
pad2_connected = true

[emulation]
sample_rate = 48000
frame_counter_five_step = true
`
	cfg, err := Load(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.Input.Pad1Connected || !cfg.Input.Pad2Connected {
		t.Fatal("expected both controller ports to be marked connected")
	}
	if cfg.Emulation.SampleRate != 48000 {
		t.Fatalf("expected sample_rate override to take effect, got %d", cfg.Emulation.SampleRate)
	}
	if !cfg.Emulation.FrameCounterFiveStep {
		t.Fatal("expected frame_counter_five_step override to take effect")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	if _, err := Load(strings.NewReader("not valid toml [[[")); err == nil {
		t.Fatal("expected an error decoding malformed TOML")
	}
}

func TestLoadFileFallsBackToDefaultWhenMissing(t *testing.T) {
	cfg, err := LoadFile("/nonexistent/path/to/nescore.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Emulation.SampleRate != Default().Emulation.SampleRate {
		t.Fatal("expected LoadFile to fall back to Default for a missing file")
	}
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	want := Default()
	want.Input.Pad1Connected = true
	want.Emulation.SampleRate = 22050

	dir := t.TempDir()
	path := dir + "/nescore.toml"
	if err := Save(want, path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got.Input.Pad1Connected != want.Input.Pad1Connected {
		t.Fatalf("Pad1Connected did not round-trip: got %v, want %v", got.Input.Pad1Connected, want.Input.Pad1Connected)
	}
	if got.Emulation.SampleRate != want.Emulation.SampleRate {
		t.Fatalf("SampleRate did not round-trip: got %d, want %d", got.Emulation.SampleRate, want.Emulation.SampleRate)
	}
}
