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

// Package validation validates a parsed Config against the invariants the
// exporter requires at startup. Configuration errors are fatal only here,
// at process start (§7).
package validation

import (
	"fmt"

	"github.com/aboutmoi/douro/pkg/apis/douro"
)

var validLogLevels = map[string]bool{
	"DEBUG": true, "INFO": true, "WARNING": true, "ERROR": true, "CRITICAL": true,
}

// ValidateConfig checks port range, interval/timeout floors, log level, and
// that at least one enabled domain is configured.
func ValidateConfig(cfg *douro.Config) error {
	if cfg.Exporter.Port < 1 || cfg.Exporter.Port > 65535 {
		return fmt.Errorf("exporter port must be between 1 and 65535, got %d", cfg.Exporter.Port)
	}
	if cfg.Exporter.IntervalSeconds < 30 {
		return fmt.Errorf("exporter interval must be at least 30 seconds, got %d", cfg.Exporter.IntervalSeconds)
	}
	if cfg.Exporter.TimeoutSeconds < 1 {
		return fmt.Errorf("exporter timeout must be at least 1 second, got %d", cfg.Exporter.TimeoutSeconds)
	}
	if !validLogLevels[cfg.Monitoring.LogLevel] {
		return fmt.Errorf("log level must be one of DEBUG, INFO, WARNING, ERROR, CRITICAL, got %q", cfg.Monitoring.LogLevel)
	}
	if cfg.EnabledDomainCount() == 0 {
		return fmt.Errorf("at least one enabled domain must be configured")
	}
	for i, d := range cfg.Domains {
		if d.Name == "" {
			return fmt.Errorf("domain at index %d has an empty name", i)
		}
	}
	return nil
}
