package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cosmicfriends/promptkit/internal/prompt"
)

// Config holds promptkit configuration.
// Stored at: {home}/config.yaml
type Config struct {
	// CharactersDir holds the character record files. Empty means
	// {home}/characters. Supports ${ENV_VAR} references.
	CharactersDir string      `mapstructure:"characters_dir" yaml:"characters_dir"`
	Log           LogCfg      `mapstructure:"log" yaml:"log"`
	Server        ServerCfg   `mapstructure:"server" yaml:"server"`
	Defaults      DefaultsCfg `mapstructure:"defaults" yaml:"defaults"`
}

// LogCfg configures the slog handler.
type LogCfg struct {
	Level  string `mapstructure:"level" yaml:"level"`   // debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

// ServerCfg configures the HTTP API.
type ServerCfg struct {
	Host      string  `mapstructure:"host" yaml:"host"`
	Port      int     `mapstructure:"port" yaml:"port"`
	RateLimit float64 `mapstructure:"rate_limit" yaml:"rate_limit"` // requests per second, 0 disables
	Burst     int     `mapstructure:"burst" yaml:"burst"`

	// MetricsHistory is how many generation metrics the server keeps in memory.
	MetricsHistory int `mapstructure:"metrics_history" yaml:"metrics_history"`
}

// DefaultsCfg holds request defaults for the API and CLI.
type DefaultsCfg struct {
	Platform   string `mapstructure:"platform" yaml:"platform"`
	Background string `mapstructure:"background" yaml:"background"`
	Variety    string `mapstructure:"variety" yaml:"variety"`
	BatchCount int    `mapstructure:"batch_count" yaml:"batch_count"`
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		CharactersDir: "",
		Log: LogCfg{
			Level:  "info",
			Format: "text",
		},
		Server: ServerCfg{
			Host:      "127.0.0.1",
			Port:      8080,
			RateLimit: 0,
			Burst:     20,

			MetricsHistory: 1000,
		},
		Defaults: DefaultsCfg{
			Platform:   string(prompt.Midjourney),
			Background: string(prompt.BackgroundNeutral),
			Variety:    string(prompt.VarietyAll),
			BatchCount: 4,
		},
	}
}

// Validate checks the values viper cannot type-check on its own.
func (c *Config) Validate() error {
	if _, err := parseLevel(c.Log.Level); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log.format %q: want text or json", c.Log.Format)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("invalid server.rate_limit %v: must not be negative", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.Burst < 1 {
		return fmt.Errorf("invalid server.burst %d: must be at least 1 when rate limiting", c.Server.Burst)
	}

	if c.Server.MetricsHistory < 0 {
		return fmt.Errorf("invalid server.metrics_history %d: must not be negative", c.Server.MetricsHistory)
	}

	if c.Defaults.Platform != "" && !knownPlatform(c.Defaults.Platform) {
		return fmt.Errorf("invalid defaults.platform %q", c.Defaults.Platform)
	}
	if _, err := prompt.ParseBackground(c.Defaults.Background); err != nil {
		return fmt.Errorf("invalid defaults.background: %w", err)
	}
	if _, err := prompt.ParseVariety(c.Defaults.Variety); err != nil {
		return fmt.Errorf("invalid defaults.variety: %w", err)
	}
	if c.Defaults.BatchCount < 1 {
		return fmt.Errorf("invalid defaults.batch_count %d: must be at least 1", c.Defaults.BatchCount)
	}
	return nil
}

// ResolvedCharactersDir returns CharactersDir with env references expanded,
// or fallback when it is empty.
func (c *Config) ResolvedCharactersDir(fallback string) string {
	if dir := ResolveEnvVars(c.CharactersDir); dir != "" {
		return dir
	}
	return fallback
}

// SlogLevel returns the configured log level. Invalid values map to info.
func (c *Config) SlogLevel() slog.Level {
	level, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// Addr returns host:port for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log.level %q", s)
	}
}

func knownPlatform(name string) bool {
	for _, p := range prompt.Platforms() {
		if string(p) == name {
			return true
		}
	}
	return false
}
