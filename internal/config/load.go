package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a knup.yaml and merges it over the defaults.
// Unset fields keep their default values.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse merges YAML config bytes over the defaults.
func Parse(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg := Default()
	if err := mapstructure.Decode(rawConfig, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	// Durations come in as strings ("30s", "10m"); mapstructure cannot
	// decode them without a hook, so they are pulled out of the raw map.
	interval, err := durationField(rawConfig, "pollInterval", cfg.PollInterval)
	if err != nil {
		return nil, err
	}
	cfg.PollInterval = interval

	timeout, err := durationField(rawConfig, "timeout", cfg.Timeout)
	if err != nil {
		return nil, err
	}
	cfg.Timeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func durationField(raw map[string]interface{}, key string, fallback time.Duration) (time.Duration, error) {
	val, ok := raw[key]
	if !ok {
		return fallback, nil
	}
	s, ok := val.(string)
	if !ok {
		return 0, fmt.Errorf("field %s must be a duration string, got %T", key, val)
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", key, err)
	}
	return d, nil
}
