package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/arbor/pkg/domain"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the configuration file looked up in the working directory.
const DefaultPath = "arbor.yaml"

// Config holds the settings shared by the CLI commands and the servers.
// Zero-valued pointer fields mean "use the grammar's own default".
type Config struct {
	Step          *float64 `yaml:"step,omitempty" json:"step,omitempty"`
	Angle         *float64 `yaml:"angle,omitempty" json:"angle,omitempty"`
	Iterations    uint     `yaml:"iterations" json:"iterations"`
	MaxIterations uint     `yaml:"max_iterations" json:"max_iterations"`
	Seed          *int64   `yaml:"seed,omitempty" json:"seed,omitempty"`
	Format        string   `yaml:"format" json:"format"`
	PresetsFile   string   `yaml:"presets_file,omitempty" json:"presets_file,omitempty"`
	CacheDir      string   `yaml:"cache_dir,omitempty" json:"cache_dir,omitempty"`

	Log   LogConfig   `yaml:"log" json:"log"`
	HTTP  HTTPConfig  `yaml:"http" json:"http"`
	Redis RedisConfig `yaml:"redis" json:"redis"`
}

// LogConfig selects the log level and handler.
type LogConfig struct {
	Level  string `yaml:"level" json:"level"`
	Format string `yaml:"format" json:"format"`
}

// HTTPConfig configures `arbor serve`.
type HTTPConfig struct {
	Port int `yaml:"port" json:"port"`
}

// RedisConfig enables the shared branch cache when Address is set.
type RedisConfig struct {
	Address  string        `yaml:"address" json:"address"`
	Password string        `yaml:"password" json:"password"`
	DB       int           `yaml:"db" json:"db"`
	Prefix   string        `yaml:"prefix" json:"prefix"`
	TTL      time.Duration `yaml:"ttl" json:"ttl"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Iterations:    4,
		MaxIterations: domain.PracticalIterations,
		Format:        "obj",
		Log:           LogConfig{Level: "info", Format: "text"},
		HTTP:          HTTPConfig{Port: 8080},
	}
}

// Load reads a configuration file (YAML or JSON) on top of the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	if strings.ToLower(filepath.Ext(path)) == ".json" {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	} else {
		// Default to YAML
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
		}
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the engine would refuse later anyway.
func (c Config) Validate() error {
	if c.Step != nil && (!(*c.Step > 0) || math.IsInf(*c.Step, 1)) {
		return &domain.InvalidParameterError{Name: "step", Value: *c.Step, Reason: "must be a positive finite number"}
	}
	if c.Angle != nil && (math.IsNaN(*c.Angle) || math.IsInf(*c.Angle, 0)) {
		return &domain.InvalidParameterError{Name: "angle", Value: *c.Angle, Reason: "must be finite"}
	}
	if c.MaxIterations == 0 {
		return fmt.Errorf("max_iterations must be at least 1")
	}
	if c.Iterations > c.MaxIterations {
		return fmt.Errorf("iterations %d exceed max_iterations %d", c.Iterations, c.MaxIterations)
	}
	return nil
}
