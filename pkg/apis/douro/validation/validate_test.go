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

package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aboutmoi/douro/pkg/apis/douro"
)

func validConfig() *douro.Config {
	return &douro.Config{
		Exporter:   douro.ExporterConfig{Port: 9105, IntervalSeconds: 300, TimeoutSeconds: 10},
		Domains:    []douro.DomainConfig{{Name: "example.com", Enabled: true}},
		Monitoring: douro.MonitoringConfig{LogLevel: "INFO"},
	}
}

func TestValidateConfigAccepts(t *testing.T) {
	assert.NoError(t, ValidateConfig(validConfig()))
}

func TestValidateConfigRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*douro.Config)
	}{
		{"port too low", func(c *douro.Config) { c.Exporter.Port = 0 }},
		{"port too high", func(c *douro.Config) { c.Exporter.Port = 70000 }},
		{"interval too short", func(c *douro.Config) { c.Exporter.IntervalSeconds = 10 }},
		{"timeout too short", func(c *douro.Config) { c.Exporter.TimeoutSeconds = 0 }},
		{"bad log level", func(c *douro.Config) { c.Monitoring.LogLevel = "VERBOSE" }},
		{"no domains", func(c *douro.Config) { c.Domains = nil }},
		{"all domains disabled", func(c *douro.Config) {
			c.Domains = []douro.DomainConfig{{Name: "a.example", Enabled: false}, {Name: "b.example", Enabled: false}}
		}},
		{"empty domain name", func(c *douro.Config) { c.Domains[0].Name = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.Error(t, ValidateConfig(cfg))
		})
	}
}
