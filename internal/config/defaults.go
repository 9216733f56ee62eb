package config

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// Entry documents a single configuration key.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description" yaml:"description"`
}

// DefaultEntries returns every configuration key with its default value.
// The Manager registers these with viper so env overrides work for nested
// keys.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		{
			Key:         "characters_dir",
			Value:       d.CharactersDir,
			Description: "Directory of character record files (empty uses {home}/characters)",
		},

		// ===================
		// Logging
		// ===================
		{
			Key:         "log.level",
			Value:       d.Log.Level,
			Description: "Log level: debug, info, warn or error",
		},
		{
			Key:         "log.format",
			Value:       d.Log.Format,
			Description: "Log format: text or json",
		},

		// ===================
		// HTTP server
		// ===================
		{
			Key:         "server.host",
			Value:       d.Server.Host,
			Description: "Address the API server binds to",
		},
		{
			Key:         "server.port",
			Value:       d.Server.Port,
			Description: "Port the API server listens on",
		},
		{
			Key:         "server.rate_limit",
			Value:       d.Server.RateLimit,
			Description: "Requests per second across all clients (0 disables rate limiting)",
		},
		{
			Key:         "server.burst",
			Value:       d.Server.Burst,
			Description: "Burst size for the rate limiter",
		},
		{
			Key:         "server.metrics_history",
			Value:       d.Server.MetricsHistory,
			Description: "Generation metrics kept in memory for /api/metrics (0 uses the built-in default)",
		},

		// ===================
		// Request defaults
		// ===================
		{
			Key:         "defaults.platform",
			Value:       d.Defaults.Platform,
			Description: "Export platform used when a request names none",
		},
		{
			Key:         "defaults.background",
			Value:       d.Defaults.Background,
			Description: "Sprite sheet background: neutral, transparent or scene",
		},
		{
			Key:         "defaults.variety",
			Value:       d.Defaults.Variety,
			Description: "Batch variety: scenes, outfits, moods or all",
		},
		{
			Key:         "defaults.batch_count",
			Value:       d.Defaults.BatchCount,
			Description: "Batch size used when a request names none",
		},
	}
}

// GetDefault returns the default entry for a config key.
// Returns nil if no default exists for the key.
func GetDefault(key string) *Entry {
	for _, entry := range DefaultEntries() {
		if entry.Key == key {
			return &entry
		}
	}
	return nil
}

// LookupDefault is GetDefault with an error for unknown keys.
func LookupDefault(key string) (*Entry, error) {
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	entry := GetDefault(key)
	if entry == nil {
		return nil, fmt.Errorf("%w for key %q", ErrNoDefault, key)
	}
	return entry, nil
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}
