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

package region

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutmoi/douro/internal/patterns"
)

type fakeHops struct {
	hops []string
}

func (f *fakeHops) Hops(ctx context.Context, target string, maxTTL int) []string {
	return f.hops
}

func TestDetectStep1RangeHeuristicOnTarget(t *testing.T) {
	store := patterns.New()
	hops := &fakeHops{}
	e := New(store, hops)

	result := e.Detect(context.Background(), "104.16.1.1", Evidence{})
	assert.Equal(t, "cloudflare", result.Provider)
	assert.Empty(t, result.Hops, "E2-on-target must not trigger a hop fetch")
}

func TestDetectStep2IPWhoisEvidence(t *testing.T) {
	store := patterns.New()
	hops := &fakeHops{}
	e := New(store, hops)

	result := e.Detect(context.Background(), "203.0.113.7", Evidence{
		ASNOrg:  "OVH SAS",
		Country: "FR",
	})
	require.Equal(t, "ovh", result.Provider)
	assert.Equal(t, "gra7", result.Region)
	assert.Empty(t, result.Hops)
}

func TestDetectStep5ProviderOnlyFallback(t *testing.T) {
	store := patterns.New()
	hops := &fakeHops{}
	e := New(store, hops)

	result := e.Detect(context.Background(), "203.0.113.7", Evidence{
		ASNOrg:  "OVH SAS",
		Country: "ZZ",
	})
	assert.Equal(t, "ovh", result.Provider)
	assert.Empty(t, result.Region)
}

func TestDetectStep6NothingSettled(t *testing.T) {
	store := patterns.New()
	hops := &fakeHops{}
	e := New(store, hops)

	result := e.Detect(context.Background(), "203.0.113.7", Evidence{})
	assert.Empty(t, result.Provider)
	assert.Empty(t, result.Region)
}

func TestIataCandidatesOrderIsDeterministic(t *testing.T) {
	got := iataCandidates("xcdgxamsx")
	assert.Equal(t, []string{"xcd", "cdg", "dgx", "gxa", "xam", "ams", "msx"}, got)
}
