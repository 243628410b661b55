package automation

import (
	"fmt"
	"os"

	"github.com/san-kum/blobline/internal/config"
	"github.com/san-kum/blobline/internal/experiment"
	"github.com/san-kum/blobline/internal/sequencer"
	"gopkg.in/yaml.v3"
)

// Scenario is a batch of runs described in YAML.
type Scenario struct {
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	Runs        []RunSpec `yaml:"runs"`
}

// RunSpec starts from a preset (or the defaults) and overlays Overrides,
// which uses the same keys as a config file.
type RunSpec struct {
	Name      string    `yaml:"name"`
	Preset    string    `yaml:"preset"`
	Seed      int64     `yaml:"seed"`
	Overrides yaml.Node `yaml:"overrides"`
}

// RunFunc receives every finished run, typically to store it.
type RunFunc func(spec RunSpec, cfg *config.Config, result *sequencer.Result) error

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// Resolve builds the config a spec describes.
func (s RunSpec) Resolve() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		cfg = config.GetPreset(s.Preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", s.Preset, config.ListPresets())
		}
	}
	if !s.Overrides.IsZero() {
		if err := s.Overrides.Decode(cfg); err != nil {
			return nil, fmt.Errorf("overrides: %w", err)
		}
	}
	if s.Seed != 0 {
		cfg.Seed = s.Seed
	}
	return cfg, nil
}

// RunScenario executes the runs in order and stops at the first failure.
func RunScenario(scenario *Scenario, fn RunFunc) error {
	for i, spec := range scenario.Runs {
		fmt.Printf("running %d/%d: %s\n", i+1, len(scenario.Runs), spec.Name)

		cfg, err := spec.Resolve()
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}

		exp := experiment.New(*cfg)
		if err := exp.Setup(); err != nil {
			return fmt.Errorf("run %d setup: %w", i+1, err)
		}

		result, err := exp.Run()
		if err != nil {
			return fmt.Errorf("run %d: %w", i+1, err)
		}

		if fn != nil {
			if err := fn(spec, cfg, result); err != nil {
				return fmt.Errorf("run %d: %w", i+1, err)
			}
		}
	}

	return nil
}

// ParameterSweep varies one numeric config key across a range, keeping
// the seed fixed so only that parameter changes.
type ParameterSweep struct {
	Base      config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
}

// SweepParams lists the keys a sweep can vary.
var SweepParams = []string{"noise_amount", "color_var", "speed_var", "acc_var", "num_blobs", "max_speed"}

// SetParam assigns v to the config key name, truncating for integer keys.
func SetParam(cfg *config.Config, name string, v float64) error {
	switch name {
	case "noise_amount":
		cfg.NoiseAmount = int(v)
	case "color_var":
		cfg.ColorVar = int(v)
	case "speed_var":
		cfg.SpeedVar = v
	case "acc_var":
		cfg.AccVar = v
	case "num_blobs":
		cfg.NumBlobs = int(v)
	case "max_speed":
		cfg.MaxSpeed = v
	default:
		return fmt.Errorf("unknown sweep parameter: %s (available: %v)", name, SweepParams)
	}
	return nil
}

func RunSweep(sweep *ParameterSweep) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step, got %d", sweep.NumSteps)
	}

	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		cfg := sweep.Base
		if err := SetParam(&cfg, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		exp := experiment.New(cfg)
		if err := exp.Setup(); err != nil {
			return nil, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		result, err := exp.Run()
		if err != nil {
			return nil, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    result.Metrics,
		})
	}

	return results, nil
}
