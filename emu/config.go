package emu

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"famicore/emu/log"
)

// Config controls console construction. The zero value is usable, see
// setDefaults.
type Config struct {
	// Audio enables sample synthesis. Register-level APU emulation runs
	// either way.
	Audio bool `toml:"audio"`

	// SampleRate is the audio output rate in Hz.
	SampleRate int `toml:"sample_rate"`

	Debug DebugConfig `toml:"debug"`
}

type DebugConfig struct {
	// Modules lists the hardware modules with debug logging enabled.
	Modules []string `toml:"modules"`
}

func (cfg *Config) setDefaults() {
	if cfg.SampleRate == 0 {
		cfg.SampleRate = 44100
	}
}

// LoadConfig reads a TOML configuration file and applies its debug
// settings.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}

	var mask log.ModuleMask
	for _, name := range cfg.Debug.Modules {
		mod, ok := log.ModuleByName(name)
		if !ok {
			return Config{}, fmt.Errorf("config %s: unknown debug module %q", path, name)
		}
		mask |= mod.Mask()
	}
	log.EnableDebugModules(mask)

	cfg.setDefaults()
	return cfg, nil
}
