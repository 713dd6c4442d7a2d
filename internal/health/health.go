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

// Package health implements the Health Monitor (§4.10): process-wide
// scrape counters and the healthy/degraded/unhealthy state machine exposed
// on /health, /ready, and /live.
package health

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

const (
	// StatusHealthy means a scrape completed recently with no errors.
	StatusHealthy = "healthy"
	// StatusDegraded means a scrape completed recently but with errors.
	StatusDegraded = "degraded"
	// StatusUnhealthy means no scrape has completed within the staleness window.
	StatusUnhealthy = "unhealthy"

	staleAfter      = 10 * time.Minute
	startupGrace    = 5 * time.Minute
)

// Status is the full health snapshot returned by /health.
type Status struct {
	Status               string     `json:"status"`
	Timestamp            time.Time  `json:"timestamp"`
	UptimeSeconds        float64    `json:"uptime_seconds"`
	Version              string     `json:"version"`
	Environment          string     `json:"environment"`
	LastScrapeTimestamp  *time.Time `json:"last_scrape_timestamp,omitempty"`
	LastScrapeDuration   *float64   `json:"last_scrape_duration,omitempty"`
	LastScrapeErrors     int        `json:"last_scrape_errors"`
	TotalScrapes         int        `json:"total_scrapes"`
	TotalErrors          int        `json:"total_errors"`
	EnabledDomainsCount  int        `json:"enabled_domains_count"`
}

// Monitor tracks scrape outcomes and derives the health state machine from
// them. All fields are mutex-protected; the zero value is not usable, use
// New.
type Monitor struct {
	version     string
	environment string
	startTime   time.Time

	mu                  sync.Mutex
	lastScrapeTimestamp time.Time
	lastScrapeDuration  time.Duration
	lastScrapeErrors    int
	totalScrapes        int
	totalErrors         int
	enabledDomainsCount int
}

// New returns a Monitor whose uptime clock starts now.
func New(version, environment string) *Monitor {
	return &Monitor{
		version:     version,
		environment: environment,
		startTime:   time.Now(),
	}
}

// RecordScrape updates the counters after one completed scheduler
// iteration (§4.8/§4.10).
func (m *Monitor) RecordScrape(duration time.Duration, errorCount, domainsCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastScrapeTimestamp = time.Now()
	m.lastScrapeDuration = duration
	m.lastScrapeErrors = errorCount
	m.totalScrapes++
	m.totalErrors += errorCount
	m.enabledDomainsCount = domainsCount
}

// Snapshot returns the current Status, deriving the health state from the
// staleness and error rules documented in §4.10.
func (m *Monitor) Snapshot() Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	uptime := now.Sub(m.startTime)

	status := StatusHealthy
	switch {
	case !m.lastScrapeTimestamp.IsZero():
		if now.Sub(m.lastScrapeTimestamp) > staleAfter {
			status = StatusUnhealthy
		} else if m.lastScrapeErrors > 0 {
			status = StatusDegraded
		}
	case uptime > startupGrace:
		status = StatusUnhealthy
	}

	s := Status{
		Status:              status,
		Timestamp:           now,
		UptimeSeconds:        uptime.Seconds(),
		Version:             m.version,
		Environment:         m.environment,
		LastScrapeErrors:    m.lastScrapeErrors,
		TotalScrapes:        m.totalScrapes,
		TotalErrors:         m.totalErrors,
		EnabledDomainsCount: m.enabledDomainsCount,
	}
	if !m.lastScrapeTimestamp.IsZero() {
		ts := m.lastScrapeTimestamp
		s.LastScrapeTimestamp = &ts
		d := m.lastScrapeDuration.Seconds()
		s.LastScrapeDuration = &d
	}
	return s
}

// Ready reports whether the process should be considered ready to receive
// traffic: either a scrape has completed, or the process is still within
// its startup grace window (§4.10).
func (m *Monitor) Ready() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return !m.lastScrapeTimestamp.IsZero() || time.Since(m.startTime) < startupGrace
}

// RegisterHandlers wires /health, /ready, and /live onto mux.
func (m *Monitor) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/health", m.handleHealth)
	mux.HandleFunc("/ready", m.handleReady)
	mux.HandleFunc("/live", m.handleLive)
}

func (m *Monitor) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := m.Snapshot()
	code := http.StatusOK
	if status.Status == StatusUnhealthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, status)
}

func (m *Monitor) handleReady(w http.ResponseWriter, _ *http.Request) {
	if m.Ready() {
		writeJSON(w, http.StatusOK, map[string]any{"status": "ready", "timestamp": time.Now()})
		return
	}
	writeJSON(w, http.StatusServiceUnavailable, map[string]any{"status": "not_ready", "timestamp": time.Now()})
}

func (m *Monitor) handleLive(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "alive",
		"timestamp":      time.Now(),
		"uptime_seconds": time.Since(m.startTime).Seconds(),
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
