package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed engine.yaml
var defaultYAML []byte

var ErrInvalid = errors.New("config: invalid")

type Window struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type World struct {
	CellSize  float64 `yaml:"cell_size"`
	TimeScale float64 `yaml:"time_scale"`
	Debug     bool    `yaml:"debug"`
}

type AI struct {
	// ScriptDir overrides the embedded brain scripts when set.
	ScriptDir string `yaml:"script_dir"`
}

// Config is the engine configuration read from yaml.
type Config struct {
	Window Window `yaml:"window"`
	TPS    int    `yaml:"tps"`
	World  World  `yaml:"world"`
	AI     AI     `yaml:"ai"`
}

// Default returns the embedded defaults.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Config{
			Window: Window{Width: 1280, Height: 720, Title: "brawler"},
			TPS:    60,
			World:  World{CellSize: 128, TimeScale: 1},
		}
	}
	return cfg
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return Parse(data, cfg)
}

// Parse decodes data over base and validates the result.
func Parse(data []byte, base Config) (Config, error) {
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return base, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if c.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps %d must be positive", c.TPS))
	}
	if c.World.CellSize <= 0 {
		errs = append(errs, fmt.Errorf("cell_size %v must be positive", c.World.CellSize))
	}
	if c.World.TimeScale < 0 {
		errs = append(errs, fmt.Errorf("time_scale %v must not be negative", c.World.TimeScale))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}
