package config

import (
	"sort"

	"github.com/san-kum/blobline/internal/blob"
)

func preset(mutate func(*Config)) *Config {
	cfg := DefaultConfig()
	mutate(cfg)
	return cfg
}

var Presets = map[string]*Config{
	"classic": DefaultConfig(),
	"calm": preset(func(c *Config) {
		c.MinSpeed, c.MaxSpeed = -1, 1
		c.SpeedVar = 0
		c.ColorVar = 10
		c.NoiseAmount = 5
	}),
	"storm": preset(func(c *Config) {
		c.NumBlobs = 250
		c.MinSpeed, c.MaxSpeed = -12, 12
		c.SpeedVar = 1
		c.AccVar = 0.8
		c.ColorVar = 40
		c.NoiseAmount = 60
	}),
	"integer": preset(func(c *Config) {
		c.Integral = true
		c.SpeedVar = 0
	}),
	"static": preset(func(c *Config) {
		c.MinSpeed, c.MaxSpeed = 0, 0
		c.SpeedVar = 0
		c.NoiseAmount = 0
		c.Background = Background(blob.Gray(0))
	}),
}

// GetPreset returns a copy, so callers may override fields freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
