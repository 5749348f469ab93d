package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sartorproj/govolatility/forecaster"
)

// Config is the top-level demo configuration.
type Config struct {
	Data     DataConfig    `yaml:"data"`
	Horizon  int           `yaml:"horizon"`   // Forecast steps (default 10)
	Coverage []float64     `yaml:"coverage"`  // Interval coverages in (0, 1)
	TestSize int           `yaml:"test_size"` // Held-out tail used for scoring (0 = none)
	Models   []ModelConfig `yaml:"models"`
	Auto     *AutoConfig   `yaml:"auto"`
	Output   string        `yaml:"output"` // JSON results path (optional)
	Log      LogConfig     `yaml:"log"`
}

// DataConfig describes the input series.
type DataConfig struct {
	File        string   `yaml:"file"`
	ValueColumn string   `yaml:"value_column"`
	DateColumn  string   `yaml:"date_column"`
	IDColumn    string   `yaml:"id_column"`
	IDFilter    string   `yaml:"id_filter"`
	ExogColumns []string `yaml:"exog_columns"`
	Transform   string   `yaml:"transform"` // none, returns, or log_returns
	Scale       float64  `yaml:"scale"`     // Multiplier applied after the transform (0 = 1)
	MaxObs      int      `yaml:"max_obs"`   // Keep only the last MaxObs observations (0 = all)
}

// ModelConfig selects one estimator and its hyperparameters.
type ModelConfig struct {
	Kind   string            `yaml:"kind"` // arch or garch
	Params forecaster.Params `yaml:"params"`
}

// AutoConfig enables order selection alongside the listed models.
type AutoConfig struct {
	MaxP          int    `yaml:"max_p"`
	MaxQ          int    `yaml:"max_q"`
	Criterion     string `yaml:"criterion"`
	Stepwise      *bool  `yaml:"stepwise"`
	Approximation bool   `yaml:"approximation"`
}

// LogConfig controls the demo's structured logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// LoadConfig reads a YAML file and returns a Config with defaults applied.
// Environment variables referenced as ${VAR} or $VAR are expanded before
// parsing, so paths can come from a .env file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("demo: load config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig parses YAML bytes into a Config with defaults applied.
func ParseConfig(data []byte) (Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return Config{}, fmt.Errorf("demo: parse config: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Horizon == 0 {
		c.Horizon = 10
	}
	if len(c.Coverage) == 0 {
		c.Coverage = []float64{0.8, 0.95}
	}
	if c.Data.ValueColumn == "" {
		c.Data.ValueColumn = "y"
	}
	if c.Data.Transform == "" {
		c.Data.Transform = "log_returns"
	}
	if c.Data.Scale == 0 {
		c.Data.Scale = 1
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks that the configuration is internally consistent.
func (c Config) Validate() error {
	if c.Data.File == "" {
		return fmt.Errorf("demo: config: data.file is required")
	}
	switch c.Data.Transform {
	case "none", "returns", "log_returns":
	default:
		return fmt.Errorf("demo: config: data.transform %q must be none, returns, or log_returns", c.Data.Transform)
	}
	if c.Horizon < 1 {
		return fmt.Errorf("demo: config: horizon must be at least 1")
	}
	if c.TestSize < 0 {
		return fmt.Errorf("demo: config: test_size must be non-negative")
	}
	if len(c.Data.ExogColumns) > 0 && c.TestSize < c.Horizon {
		return fmt.Errorf("demo: config: test_size must cover the horizon when exogenous columns are used")
	}
	for _, cv := range c.Coverage {
		if cv <= 0 || cv >= 1 {
			return fmt.Errorf("demo: config: coverage %v must be in (0, 1)", cv)
		}
	}
	if len(c.Models) == 0 && c.Auto == nil {
		return fmt.Errorf("demo: config: at least one model or the auto section is required")
	}
	for i, m := range c.Models {
		switch m.Kind {
		case "arch", "garch":
		default:
			return fmt.Errorf("demo: config: models[%d]: kind %q must be arch or garch", i, m.Kind)
		}
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("demo: config: log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// NewLogger builds a slog.Logger writing to w from the log section.
func (c LogConfig) NewLogger(w io.Writer) (*slog.Logger, error) {
	level, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("demo: config: log.level %q: %w", s, err)
	}
	return level, nil
}
