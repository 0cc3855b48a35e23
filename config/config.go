package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var ErrInvalid = errors.New("invalid config")

// Config holds everything needed for a self-play run. Fields missing from a
// YAML file keep their default values.
type Config struct {
	Iterations        int     `yaml:"iterations" json:"iterations"`         // Simulations per move decision
	BoardSize         int     `yaml:"board_size" json:"board_size"`         // Hex board edge length
	PolicyWidth       int     `yaml:"policy_width" json:"policy_width"`     // 0 derives it from the board
	Sentinel          float64 `yaml:"sentinel" json:"sentinel"`             // Policy value of unexplored moves
	Seed              uint64  `yaml:"seed" json:"seed"`                     // 0 seeds from the clock
	Games             int     `yaml:"games" json:"games"`                   // Games per run
	Workers           int     `yaml:"workers" json:"workers"`               // Games played concurrently
	OutputDir         string  `yaml:"output_dir" json:"output_dir"`         // Root folder for datasets
	PerspectiveBackup bool    `yaml:"perspective_backup" json:"perspective_backup"`
	Temperature       float64 `yaml:"temperature" json:"temperature"` // 0 plays the most visited move
	MaxPlies          int     `yaml:"max_plies" json:"max_plies"`     // 0 means no limit
	Verbose           bool    `yaml:"verbose" json:"verbose"`
	LogLevel          string  `yaml:"log_level" json:"log_level"`
}

func Default() Config {
	return Config{
		Iterations: 1000,
		BoardSize:  5,
		Sentinel:   -1.0,
		Games:      500,
		Workers:    1,
		OutputDir:  "games",
		LogLevel:   "info",
	}
}

// Load reads a YAML file on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch {
	case c.Iterations < 0:
		return fmt.Errorf("%w: iterations must not be negative", ErrInvalid)
	case c.BoardSize < 1:
		return fmt.Errorf("%w: board_size must be positive", ErrInvalid)
	case c.PolicyWidth < 0:
		return fmt.Errorf("%w: policy_width must not be negative", ErrInvalid)
	case c.PolicyWidth > 0 && c.PolicyWidth < c.BoardSize*c.BoardSize:
		return fmt.Errorf("%w: policy_width %d cannot hold %d moves", ErrInvalid, c.PolicyWidth, c.BoardSize*c.BoardSize)
	case c.Games < 0:
		return fmt.Errorf("%w: games must not be negative", ErrInvalid)
	case c.Workers < 1:
		return fmt.Errorf("%w: workers must be positive", ErrInvalid)
	case c.Temperature < 0:
		return fmt.Errorf("%w: temperature must not be negative", ErrInvalid)
	case c.MaxPlies < 0:
		return fmt.Errorf("%w: max_plies must not be negative", ErrInvalid)
	case c.OutputDir == "":
		return fmt.Errorf("%w: output_dir must be set", ErrInvalid)
	}
	return nil
}

// Width is the policy vector width, derived from the board when unset.
func (c Config) Width() int {
	if c.PolicyWidth > 0 {
		return c.PolicyWidth
	}
	return c.BoardSize * c.BoardSize
}
