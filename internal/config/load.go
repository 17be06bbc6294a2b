package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// matches $(VAR_NAME)
var envPattern = regexp.MustCompile(`\$\(([A-Za-z0-9_]+)\)`)

// replaces $(VAR) with os.Getenv(VAR)
func expandEnvVars(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(m string) string {
		key := envPattern.FindStringSubmatch(m)[1]
		return os.Getenv(key)
	})
}

// Defaults returns a config populated with every non-required default.
func Defaults() Config {
	return Config{
		DataDir: "/data",
		Snapshot: SnapshotConfig{
			IntervalSeconds: 60,
		},
		Timelapse: TimelapseConfig{
			Framerate:     30,
			CRF:           23,
			Preset:        "medium",
			MinFrames:     5,
			EncodeTimeout: 10 * time.Minute,
		},
		Retention: RetentionConfig{
			ImageDays: 3,
			VideoDays: 30,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load builds the effective configuration: defaults, then the optional YAML
// file at path (with $(ENV_VAR) placeholders expanded), then environment
// variables. path may be empty; a missing file at an explicit path is an
// error only when the path was explicitly given.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		expanded := expandEnvVars(string(data))
		if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
			return nil, fmt.Errorf("unmarshalling yaml: %w", err)
		}
	}

	// Env wins. No envDefault tags on the struct, so absent variables leave
	// the yaml/default values untouched.
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Host == "" {
		return errors.New("config: UNIFI_HOST is required")
	}
	if c.APIKey == "" {
		return errors.New("config: UNIFI_API_KEY is required")
	}
	if c.Snapshot.IntervalSeconds <= 0 {
		return fmt.Errorf("config: snapshot interval must be positive, got %d", c.Snapshot.IntervalSeconds)
	}
	if c.Retention.ImageDays < 0 || c.Retention.VideoDays < 0 {
		return errors.New("config: retention windows must not be negative")
	}
	return nil
}
