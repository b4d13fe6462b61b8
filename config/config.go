// Package config holds the TOML-backed configuration consumed by a
// front-end when it constructs a console.
package config

import (
	"io"
	"os"

	"github.com/BurntSushi/toml"

	"nescore/input"
)

// Config is the top-level configuration document. The windowing/audio
// front-end owns its own settings; this only covers what the core needs to
// know to build a console.
type Config struct {
	Input      input.Config    `toml:"input"`
	Emulation  EmulationConfig `toml:"emulation"`

	TraceOut io.WriteCloser `toml:"-"`
}

// EmulationConfig tunes core emulation parameters that have no single
// correct value (sample rate depends on the audio backend, frame-counter
// mode is a cartridge/region convention, not a hardware constant the core
// can infer on its own).
type EmulationConfig struct {
	SampleRate        int  `toml:"sample_rate"`
	FrameCounterFiveStep bool `toml:"frame_counter_five_step"`
}

// Default returns the configuration used when no TOML document is
// available.
func Default() Config {
	return Config{
		Emulation: EmulationConfig{
			SampleRate: 44100,
		},
	}
}

// Load reads a TOML configuration document.
func Load(r io.Reader) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeReader(r, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadFile reads a TOML configuration document from path, falling back to
// Default if the file does not exist.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	return Load(f)
}

// Save writes cfg as a TOML document to path.
func Save(cfg Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
