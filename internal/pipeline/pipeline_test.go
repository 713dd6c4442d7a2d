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

package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/aboutmoi/douro/internal/model"
	"github.com/aboutmoi/douro/internal/patterns"
	"github.com/aboutmoi/douro/internal/probe/dnsprobe"
	"github.com/aboutmoi/douro/internal/probe/httpsprobe"
	"github.com/aboutmoi/douro/internal/probe/rdap"
	"github.com/aboutmoi/douro/internal/probe/whoisdomain"
	"github.com/aboutmoi/douro/internal/region"
	"github.com/aboutmoi/douro/internal/stageerrors"
)

func TestRunStopsEarlyWhenDNSResolvesNothing(t *testing.T) {
	store := patterns.New()
	dns := &dnsprobe.Resolver{Nameserver: "127.0.0.1:1"}
	p := New(dns, whoisdomain.New(), rdap.New(), region.New(store, nil), httpsprobe.New(0), store)

	info := p.Run(context.Background(), "example.invalid")

	assert.True(t, info.Unresolved())
	assert.Contains(t, info.Errors, stageerrors.StageDNS)
	assert.Empty(t, info.HostingProvider, "remaining stages must not run once DNS yields nothing")
}

func TestRunRegionEngineNoMatchIsNotAnError(t *testing.T) {
	store := patterns.New()
	// 203.0.113.0/24 is reserved for documentation (RFC 5737) and matches no
	// provider range, ASN, or org token in the Pattern Store, so the engine
	// settles nothing (fusion step 6) without any subsystem failing.
	p := &Pipeline{regionEng: region.New(store, noHops{}), patterns: store}

	info := model.New("example.com")
	info.IPs = []string{"203.0.113.7"}

	p.runRegionEngine(context.Background(), info)

	assert.Empty(t, info.HostingProvider)
	assert.Empty(t, info.HostingRegion)
	assert.NotContains(t, info.Errors, stageerrors.StageRegionDetection,
		"a clean 'no evidence matched' result must not populate DomainInfo.Errors (§8 scenario 1)")
}

type noHops struct{}

func (noHops) Hops(ctx context.Context, target string, maxTTL int) []string { return nil }

func TestIsCDNChecksASNThenOrgTokenThenProvider(t *testing.T) {
	store := patterns.New()
	p := &Pipeline{patterns: store}

	byASN := model.New("a.example")
	byASN.ASN = "13335"
	assert.True(t, p.isCDN(byASN))

	byOrg := model.New("b.example")
	byOrg.ASNOrg = "Cloudflare, Inc."
	assert.True(t, p.isCDN(byOrg))

	byProvider := model.New("d.example")
	byProvider.HostingProvider = "cloudflare"
	assert.True(t, p.isCDN(byProvider), "a CDN-class provider must settle it even without ASN evidence")

	neither := model.New("c.example")
	neither.ASNOrg = "Some Random Hosting LLC"
	neither.HostingProvider = "ovh"
	assert.False(t, p.isCDN(neither))
}
