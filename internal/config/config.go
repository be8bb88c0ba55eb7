// Package config loads aimea configuration from YAML with environment
// overrides. Durations are stored as strings ("1s", "5s") and parsed through
// accessors that fall back to defaults on bad input.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults; the polling cadences and the trigger delay come from the
// transcript backend's contract.
const (
	DefaultServerURL      = "http://localhost:8000"
	DefaultPollInterval   = time.Second
	DefaultTriggerDelay   = 5 * time.Second
	DefaultMeetingLength  = 30 * time.Minute
	DefaultRequestTimeout = 10 * time.Second
)

// Config holds all aimea configuration.
type Config struct {
	// Transcription backend base URL.
	ServerURL string `yaml:"server_url"`

	// Polling and trigger cadence.
	PollInterval string `yaml:"poll_interval"`
	TriggerDelay string `yaml:"trigger_delay"`

	// Default calendar event length.
	MeetingLength string `yaml:"meeting_length"`

	// Per-request timeout for boundary calls.
	RequestTimeout string `yaml:"request_timeout"`

	// Logging.
	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls the category file logger.
type LoggingConfig struct {
	Debug bool `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		ServerURL:      DefaultServerURL,
		PollInterval:   DefaultPollInterval.String(),
		TriggerDelay:   DefaultTriggerDelay.String(),
		MeetingLength:  DefaultMeetingLength.String(),
		RequestTimeout: DefaultRequestTimeout.String(),
	}
}

// Load reads the config file at path, layering file values over defaults and
// environment overrides over both. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// DefaultPath returns the standard config file location
// (~/.aimea/config.yaml).
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".aimea", "config.yaml")
	}
	return filepath.Join(home, ".aimea", "config.yaml")
}

// StateDir returns the directory for logs and other local state.
func StateDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".aimea"
	}
	return filepath.Join(home, ".aimea")
}

// applyEnv applies AIMEA_* environment overrides.
func (c *Config) applyEnv() {
	if v := os.Getenv("AIMEA_SERVER_URL"); v != "" {
		c.ServerURL = v
	}
	if v := os.Getenv("AIMEA_POLL_INTERVAL"); v != "" {
		c.PollInterval = v
	}
	if v := os.Getenv("AIMEA_TRIGGER_DELAY"); v != "" {
		c.TriggerDelay = v
	}
	if v := os.Getenv("AIMEA_DEBUG"); v == "1" || v == "true" {
		c.Logging.Debug = true
	}
}

// PollEvery returns the parsed buffer/catalog poll interval.
func (c Config) PollEvery() time.Duration {
	return parseDuration(c.PollInterval, DefaultPollInterval)
}

// TriggerAfter returns the parsed deferred-trigger delay.
func (c Config) TriggerAfter() time.Duration {
	return parseDuration(c.TriggerDelay, DefaultTriggerDelay)
}

// MeetingFor returns the parsed default meeting length.
func (c Config) MeetingFor() time.Duration {
	return parseDuration(c.MeetingLength, DefaultMeetingLength)
}

// RequestTimeoutFor returns the parsed boundary-call timeout.
func (c Config) RequestTimeoutFor() time.Duration {
	return parseDuration(c.RequestTimeout, DefaultRequestTimeout)
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
