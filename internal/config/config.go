// Package config loads solver settings from a YAML file, the environment and
// command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/robalobadob/wordle/apps/solver/internal/daily"
	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

var (
	ErrConflictingOptions = errors.New("conflicting options")
	ErrInvalidOption      = errors.New("invalid option")
)

// Config holds every setting of the CLI and the server.
type Config struct {
	// Game options; the same keys a config file for the interactive game uses.
	Random        bool    `yaml:"random"`
	Difficult     bool    `yaml:"difficult"`
	Stats         bool    `yaml:"stats"`
	Day           *int    `yaml:"day,omitempty"`
	Seed          *uint64 `yaml:"seed,omitempty"`
	FinalSet      string  `yaml:"final_set,omitempty"`
	AcceptableSet string  `yaml:"acceptable_set,omitempty"`
	State         string  `yaml:"state,omitempty"`
	Word          string  `yaml:"word,omitempty"`

	Server  ServerConfig  `yaml:"server"`
	Ranking RankingConfig `yaml:"ranking"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig configures `serve`.
type ServerConfig struct {
	Port         string `yaml:"port"`
	DatabasePath string `yaml:"database_path"`
	JWTSecret    string `yaml:"jwt_secret"`
	DailySalt    string `yaml:"daily_salt"`
}

// RankingConfig configures the entropy ranker.
type RankingConfig struct {
	Workers int `yaml:"workers"` // 0 means one per CPU
	Top     int `yaml:"top"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         "5175",
			DatabasePath: "./data/solver.db",
			JWTSecret:    "dev_secret_change_me",
			DailySalt:    "local_dev_salt",
		},
		Ranking: RankingConfig{Top: 5},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("WORDS_ANSWERS_FILE"); v != "" {
		c.FinalSet = v
	}
	if v := os.Getenv("WORDS_ALLOWED_FILE"); v != "" {
		c.AcceptableSet = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.Server.DatabasePath = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		c.Server.JWTSecret = v
	}
	if v := os.Getenv("DAILY_SALT"); v != "" {
		c.Server.DailySalt = v
	}
	if v := os.Getenv("RANK_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Ranking.Workers = n
		}
	}
}

// Validate rejects option combinations the game cannot honour.
func (c *Config) Validate() error {
	if c.Random && c.Word != "" {
		return fmt.Errorf("%w: -w/--word cannot be used in random mode", ErrConflictingOptions)
	}
	if (c.Seed != nil || c.Day != nil) && !c.Random {
		return fmt.Errorf("%w: -s/--seed and -d/--day can only be used in random mode", ErrConflictingOptions)
	}
	if c.Day != nil && *c.Day < 1 {
		return fmt.Errorf("%w: day must be at least 1, got %d", ErrInvalidOption, *c.Day)
	}
	if c.Word != "" {
		if _, err := words.Parse(c.Word); err != nil {
			return fmt.Errorf("%w: word %q: %v", ErrInvalidOption, c.Word, err)
		}
	}
	if c.Ranking.Workers < 0 {
		return fmt.Errorf("%w: ranking.workers must not be negative", ErrInvalidOption)
	}
	if c.Ranking.Top < 0 {
		return fmt.Errorf("%w: ranking.top must not be negative", ErrInvalidOption)
	}
	return nil
}

// SeedOrDefault returns the configured seed or daily.DefaultSeed.
func (c *Config) SeedOrDefault() uint64 {
	if c.Seed != nil {
		return *c.Seed
	}
	return daily.DefaultSeed
}

// DayOrDefault returns the configured day or 1.
func (c *Config) DayOrDefault() int {
	if c.Day != nil {
		return *c.Day
	}
	return 1
}

// WordSources maps the word-list settings onto words.Load.
func (c *Config) WordSources() words.Sources {
	return words.Sources{Final: c.FinalSet, Acceptable: c.AcceptableSet}
}
