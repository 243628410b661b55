package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/san-kum/blobline/internal/blob"
	"github.com/san-kum/blobline/internal/factory"
	"gopkg.in/yaml.v3"
)

const (
	DefaultNumBlobs    = 100
	DefaultSpaceWidth  = 600
	DefaultFrameCount  = 200
	DefaultMinSpeed    = -5.0
	DefaultMaxSpeed    = 5.0
	DefaultMinPos      = -800.0
	DefaultMaxPos      = DefaultSpaceWidth - DefaultMinPos
	DefaultMinWidth    = 40
	DefaultMaxWidth    = 60
	DefaultBackground  = 30
	DefaultColorVar    = 25
	DefaultSpeedVar    = 1.0
	DefaultNoiseAmount = 20
	DefaultHeight      = 64
	DefaultFPS         = 30
	DefaultScale       = 1
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

type Config struct {
	NumBlobs    int        `yaml:"num_blobs"`
	SpaceWidth  int        `yaml:"space_width"`
	FrameCount  int        `yaml:"frame_count"`
	MinSpeed    float64    `yaml:"min_speed"`
	MaxSpeed    float64    `yaml:"max_speed"`
	MinPos      float64    `yaml:"min_pos"`
	MaxPos      float64    `yaml:"max_pos"`
	MinWidth    int        `yaml:"min_width"`
	MaxWidth    int        `yaml:"max_width"`
	Background  Background `yaml:"background"`
	ColorVar    int        `yaml:"color_var"`
	SpeedVar    float64    `yaml:"speed_var"`
	AccVar      float64    `yaml:"acc_var"`
	NoiseAmount int        `yaml:"noise_amount"`
	Integral    bool       `yaml:"integral"`
	Seed        int64      `yaml:"seed"`
	Output      Output     `yaml:"output"`
}

// Output controls the video and raster sinks.
type Output struct {
	Height int `yaml:"height"`
	FPS    int `yaml:"fps"`
	Scale  int `yaml:"scale"`
}

// Background is a color that may be written as a scalar (broadcast to all
// channels) or as an [r, g, b] sequence.
type Background blob.Color

func (b *Background) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var v int
		if err := value.Decode(&v); err != nil {
			return err
		}
		*b = Background(blob.Gray(v))
		return nil
	case yaml.SequenceNode:
		var v []int
		if err := value.Decode(&v); err != nil {
			return err
		}
		if len(v) != 3 {
			return fmt.Errorf("background: expected 3 channels, got %d", len(v))
		}
		*b = Background(blob.RGB(v[0], v[1], v[2]))
		return nil
	}
	return fmt.Errorf("background: unsupported yaml node at line %d", value.Line)
}

func (b Background) MarshalYAML() (interface{}, error) {
	if b.R == b.G && b.G == b.B {
		return int(b.R), nil
	}
	return []int{int(b.R), int(b.G), int(b.B)}, nil
}

func (b Background) Color() blob.Color { return blob.Color(b) }

func DefaultConfig() *Config {
	return &Config{
		NumBlobs:    DefaultNumBlobs,
		SpaceWidth:  DefaultSpaceWidth,
		FrameCount:  DefaultFrameCount,
		MinSpeed:    DefaultMinSpeed,
		MaxSpeed:    DefaultMaxSpeed,
		MinPos:      DefaultMinPos,
		MaxPos:      DefaultMaxPos,
		MinWidth:    DefaultMinWidth,
		MaxWidth:    DefaultMaxWidth,
		Background:  Background(blob.Gray(DefaultBackground)),
		ColorVar:    DefaultColorVar,
		SpeedVar:    DefaultSpeedVar,
		NoiseAmount: DefaultNoiseAmount,
		Output: Output{
			Height: DefaultHeight,
			FPS:    DefaultFPS,
			Scale:  DefaultScale,
		},
	}
}

func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := LoadInto(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadInto decodes the file onto cfg. Keys the file omits keep their
// current values, so a preset survives a partial config file.
func LoadInto(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Ranges extracts the blob generation bounds.
func (c *Config) Ranges() factory.Ranges {
	return factory.Ranges{
		MinPos:   c.MinPos,
		MaxPos:   c.MaxPos,
		MinSpeed: c.MinSpeed,
		MaxSpeed: c.MaxSpeed,
		MinWidth: c.MinWidth,
		MaxWidth: c.MaxWidth,
		ColorVar: c.ColorVar,
		SpeedVar: c.SpeedVar,
		AccelVar: c.AccVar,
		Integral: c.Integral,
	}
}

func (c *Config) Validate() error {
	if c.NumBlobs < 0 {
		return fmt.Errorf("%w: num_blobs %d is negative", ErrInvalidConfig, c.NumBlobs)
	}
	if c.SpaceWidth < 0 {
		return fmt.Errorf("%w: space_width %d is negative", ErrInvalidConfig, c.SpaceWidth)
	}
	if c.FrameCount < 0 {
		return fmt.Errorf("%w: frame_count %d is negative", ErrInvalidConfig, c.FrameCount)
	}
	if c.NoiseAmount < 0 {
		return fmt.Errorf("%w: noise_amount %d is negative", ErrInvalidConfig, c.NoiseAmount)
	}
	if c.Output.Height < 1 || c.Output.FPS < 1 || c.Output.Scale < 1 {
		return fmt.Errorf("%w: output height, fps and scale must be positive", ErrInvalidConfig)
	}
	if err := c.Ranges().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
