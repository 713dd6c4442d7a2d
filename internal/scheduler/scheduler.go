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

// Package scheduler runs the periodic collection loop (§4.8): a warm start
// followed by fixed-interval iterations over the enabled-domains list, with
// atomic per-iteration publication of results.
package scheduler

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/aboutmoi/douro/internal/model"
)

// Runner executes the per-domain pipeline. Satisfied by *pipeline.Pipeline.
type Runner interface {
	Run(ctx context.Context, domain string) *model.DomainInfo
}

// Publisher receives the full result set and timing of one completed
// iteration. Satisfied by *metrics.Collector.
type Publisher interface {
	Set(infos []*model.DomainInfo, scrapeDurationSeconds float64)
}

// HealthRecorder receives the scrape-level counters for the Health Monitor.
type HealthRecorder interface {
	RecordScrape(duration time.Duration, errorCount, domainsCount int)
}

// Scheduler owns the periodic loop.
type Scheduler struct {
	runner    Runner
	publisher Publisher
	health    HealthRecorder
	interval  time.Duration
	domains   []string
}

// New returns a Scheduler over the given enabled-domains list, preserving
// declared order (§4.8).
func New(runner Runner, publisher Publisher, health HealthRecorder, interval time.Duration, domains []string) *Scheduler {
	return &Scheduler{
		runner:    runner,
		publisher: publisher,
		health:    health,
		interval:  interval,
		domains:   domains,
	}
}

// Run performs an immediate warm collection, then iterates every interval
// until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	s.iterate(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info("scheduler stopping: context cancelled")
			return
		case <-ticker.C:
			s.iterate(ctx)
		}
	}
}

// iterate runs the pipeline for every enabled domain, in declared order,
// and publishes the full batch atomically once the iteration completes
// (I6: no scraper ever observes a partial update).
func (s *Scheduler) iterate(ctx context.Context) {
	start := time.Now()

	infos := make([]*model.DomainInfo, 0, len(s.domains))
	errorCount := 0
	for _, domain := range s.domains {
		info := s.runner.Run(ctx, domain)
		if len(info.Errors) > 0 {
			errorCount++
		}
		infos = append(infos, info)
	}

	duration := time.Since(start)
	s.publisher.Set(infos, duration.Seconds())
	s.health.RecordScrape(duration, errorCount, len(s.domains))

	log.WithFields(log.Fields{
		"domains":  len(s.domains),
		"errors":   errorCount,
		"duration": duration,
	}).Info("scrape iteration complete")
}
