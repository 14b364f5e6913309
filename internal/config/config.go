package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/napolitain/colony-sim/internal/engine"
)

// Config is the engine and shell configuration
type Config struct {
	DataDir       string        `yaml:"data_dir"`
	TickInterval  time.Duration `yaml:"tick_interval"`
	LogLevel      string        `yaml:"log_level"`
	MaxLogEntries int           `yaml:"max_log_entries"`

	Reputation Reputation `yaml:"reputation"`
	Scoring    Scoring    `yaml:"scoring"`
}

// Reputation bounds bot reputation and sets the ally threshold
type Reputation struct {
	Min           float64 `yaml:"min"`
	Max           float64 `yaml:"max"`
	AllyThreshold float64 `yaml:"ally_threshold"`
}

// Scoring tunes the empire points formula
type Scoring struct {
	BankPointsDivisor float64 `yaml:"bank_points_divisor"`
}

// Default returns the built-in configuration, matching engine.DefaultRules
func Default() Config {
	return Config{
		DataDir:       "data",
		TickInterval:  time.Second,
		LogLevel:      "info",
		MaxLogEntries: 200,
		Reputation: Reputation{
			Min:           engine.ReputationMin,
			Max:           engine.ReputationMax,
			AllyThreshold: engine.ReputationAllyThreshold,
		},
		Scoring: Scoring{
			BankPointsDivisor: engine.BankPointsDivisor,
		},
	}
}

// Load reads a YAML config file on top of the defaults
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values are usable
func (c Config) Validate() error {
	if c.Reputation.Min >= c.Reputation.Max {
		return fmt.Errorf("reputation min %v must be below max %v", c.Reputation.Min, c.Reputation.Max)
	}
	if c.Reputation.AllyThreshold < c.Reputation.Min || c.Reputation.AllyThreshold > c.Reputation.Max {
		return fmt.Errorf("ally threshold %v outside [%v, %v]", c.Reputation.AllyThreshold, c.Reputation.Min, c.Reputation.Max)
	}
	if c.Scoring.BankPointsDivisor <= 0 {
		return errors.New("bank points divisor must be positive")
	}
	if c.TickInterval <= 0 {
		return errors.New("tick interval must be positive")
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// Rules converts the config to engine rules
func (c Config) Rules() engine.Rules {
	return engine.Rules{
		ReputationMin:     c.Reputation.Min,
		ReputationMax:     c.Reputation.Max,
		AllyThreshold:     c.Reputation.AllyThreshold,
		BankPointsDivisor: c.Scoring.BankPointsDivisor,
	}
}

// SlogLevel parses LogLevel
func (c Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", c.LogLevel)
}

// NewLogger builds a text logger at the configured level
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, _ := c.SlogLevel()
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
