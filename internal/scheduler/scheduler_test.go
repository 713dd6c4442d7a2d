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

package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutmoi/douro/internal/model"
)

type fakeRunner struct {
	calls []string
}

func (f *fakeRunner) Run(ctx context.Context, domain string) *model.DomainInfo {
	f.calls = append(f.calls, domain)
	info := model.New(domain)
	if domain == "broken.example" {
		info.SetError("dns", errors.New("boom"))
	}
	return info
}

type fakePublisher struct {
	lastInfos []*model.DomainInfo
	sets      int
}

func (f *fakePublisher) Set(infos []*model.DomainInfo, duration float64) {
	f.lastInfos = infos
	f.sets++
}

type fakeHealth struct {
	lastErrorCount, lastDomainsCount int
	records                          int
}

func (f *fakeHealth) RecordScrape(duration time.Duration, errorCount, domainsCount int) {
	f.lastErrorCount = errorCount
	f.lastDomainsCount = domainsCount
	f.records++
}

func TestIterateRunsAllDomainsInDeclaredOrder(t *testing.T) {
	runner := &fakeRunner{}
	publisher := &fakePublisher{}
	health := &fakeHealth{}

	s := New(runner, publisher, health, time.Hour, []string{"a.example", "broken.example", "c.example"})
	s.iterate(context.Background())

	assert.Equal(t, []string{"a.example", "broken.example", "c.example"}, runner.calls)
	require.Len(t, publisher.lastInfos, 3)
	assert.Equal(t, 1, health.lastErrorCount)
	assert.Equal(t, 3, health.lastDomainsCount)
	assert.Equal(t, 1, publisher.sets, "one atomic publish per iteration")
	assert.Equal(t, 1, health.records)
}

func TestRunPerformsWarmStartBeforeFirstTick(t *testing.T) {
	runner := &fakeRunner{}
	publisher := &fakePublisher{}
	health := &fakeHealth{}

	s := New(runner, publisher, health, time.Hour, []string{"a.example"})

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	s.Run(ctx)

	assert.GreaterOrEqual(t, publisher.sets, 1, "warm start must publish before waiting for the first tick")
}
