/*
Copyright 2026 The Douro Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package douro holds the exporter's configuration types: the JSON file
// shape, environment-variable overrides, and persistence (§6).
package douro

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DomainConfig is one probed domain entry.
type DomainConfig struct {
	Name        string `json:"name"`
	Enabled     bool   `json:"enabled"`
	Description string `json:"description,omitempty"`
}

// ExporterConfig holds the scrape cadence and timeouts.
type ExporterConfig struct {
	Port            int `json:"port"`
	IntervalSeconds int `json:"interval_seconds"`
	TimeoutSeconds  int `json:"timeout_seconds"`
}

// Interval and Timeout return ExporterConfig's duration fields as
// time.Duration for use by the scheduler and probes.
func (e ExporterConfig) Interval() time.Duration {
	return time.Duration(e.IntervalSeconds) * time.Second
}

func (e ExporterConfig) Timeout() time.Duration {
	return time.Duration(e.TimeoutSeconds) * time.Second
}

// MonitoringConfig holds logging verbosity settings.
type MonitoringConfig struct {
	LogLevel             string `json:"log_level"`
	EnableVerboseLogging bool   `json:"enable_verbose_logging"`
}

// Config is the complete exporter configuration.
type Config struct {
	Exporter   ExporterConfig   `json:"exporter"`
	Domains    []DomainConfig   `json:"domains"`
	Monitoring MonitoringConfig `json:"monitoring"`
}

// defaults mirror the zero-config values the exporter falls back to.
func defaults() Config {
	return Config{
		Exporter: ExporterConfig{
			Port:            9105,
			IntervalSeconds: 300,
			TimeoutSeconds:  10,
		},
		Monitoring: MonitoringConfig{
			LogLevel: "INFO",
		},
	}
}

// EnabledDomains returns the names of every domain with Enabled == true.
func (c *Config) EnabledDomains() []string {
	var names []string
	for _, d := range c.Domains {
		if d.Enabled {
			names = append(names, d.Name)
		}
	}
	return names
}

// DomainCount returns the total number of configured domains.
func (c *Config) DomainCount() int { return len(c.Domains) }

// EnabledDomainCount returns the number of enabled domains.
func (c *Config) EnabledDomainCount() int { return len(c.EnabledDomains()) }

// Load reads a JSON configuration file and applies environment-variable
// overrides; it does not validate the result (see
// validation.ValidateConfig). The DOURO_CONFIG environment variable, when
// set, overrides path.
func Load(path string) (*Config, error) {
	if env := os.Getenv("DOURO_CONFIG"); env != "" {
		path = env
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %q: %w", path, err)
	}

	cfg := defaults()
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides layers DOURO_* environment variables on top of the
// parsed JSON configuration, matching the precedence env > file > default.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DOURO_EXPORTER_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Exporter.Port = n
		}
	}
	if v := os.Getenv("DOURO_EXPORTER_INTERVAL"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Exporter.IntervalSeconds = n
		}
	}
	if v := os.Getenv("DOURO_EXPORTER_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Exporter.TimeoutSeconds = n
		}
	}
	if v := os.Getenv("DOURO_LOG_LEVEL"); v != "" {
		cfg.Monitoring.LogLevel = v
	}
	if v := os.Getenv("DOURO_ENABLE_VERBOSE_LOGGING"); v != "" {
		switch strings.ToLower(v) {
		case "true", "1", "yes", "on":
			cfg.Monitoring.EnableVerboseLogging = true
		default:
			cfg.Monitoring.EnableVerboseLogging = false
		}
	}
}

// Save writes cfg back out as indented JSON, the inverse of Load (minus env
// overrides, which are never persisted).
func (c *Config) Save(path string) error {
	raw, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("writing config file %q: %w", path, err)
	}
	return nil
}
