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

// Package region implements the Region Engine (§4.6): fusing IP-range
// heuristics (E2), IP-WHOIS evidence (E1), and hop-chain matching (E3)
// into a single (provider, region) determination for a probed target.
package region

import (
	"context"
	"net"
	"strings"

	"github.com/aboutmoi/douro/internal/patterns"
)

// MaxTTL bounds traceroute/mtr hop discovery (§4.5).
const MaxTTL = 30

// Evidence is the E1 input: what WHOIS/RDAP already determined about the
// target IP, gathered independently by the pipeline before the engine runs.
type Evidence struct {
	ASN     string
	ASNOrg  string
	Country string
}

// HopSource fetches the hop chain for a target, lazily, since E3 is only
// consulted when E1/E2 don't already settle the question (§4.6 priority 3).
type HopSource interface {
	Hops(ctx context.Context, target string, maxTTL int) []string
}

// Result is the engine's output: hosting_provider, hosting_region (empty
// when undetermined, per I3: region is never set without provider), and the
// hop chain actually consulted (empty if E3 was never reached).
type Result struct {
	Provider string
	Region   string
	Hops     []string
}

// Engine evaluates the fusion policy against a Pattern Store.
type Engine struct {
	patterns *patterns.Store
	hops     HopSource
}

// New returns an Engine backed by the given Pattern Store and hop source.
func New(store *patterns.Store, hops HopSource) *Engine {
	return &Engine{patterns: store, hops: hops}
}

// Detect implements the §4.6 fusion policy for a single target IP, applying
// the six priority steps in order and returning as soon as one settles both
// provider and region.
func (e *Engine) Detect(ctx context.Context, targetIP string, ev Evidence) Result {
	ip := net.ParseIP(targetIP)

	// 1. E2 on the target itself.
	if provider, reg, ok := e.rangeHeuristic(ip, ""); ok {
		return Result{Provider: provider, Region: reg}
	}

	// 2. E1 with both provider and region.
	if provider, reg, ok := e.ipWhoisEvidence(ip, ev); ok {
		return Result{Provider: provider, Region: reg}
	}

	// 3. E3 over hops, fetched lazily only now.
	hops := e.hops.Hops(ctx, targetIP, MaxTTL)
	if provider, reg, ok := e.hopChainMatch(hops); ok {
		return Result{Provider: provider, Region: reg, Hops: hops}
	}

	// 4. E2 on hops.
	for _, h := range hops {
		hIP := net.ParseIP(h)
		if provider, reg, ok := e.rangeHeuristic(hIP, h); ok {
			return Result{Provider: provider, Region: reg, Hops: hops}
		}
	}

	// 5. Provider-only fallback from E1 or E3.
	if provider, ok := e.providerOnly(ip, ev, hops); ok {
		return Result{Provider: provider, Hops: hops}
	}

	// 6. Nothing settled.
	return Result{Hops: hops}
}

// rangeHeuristic implements E2 against either a raw IP (hostnameHint == "")
// or a hop token that may carry a resolved IP plus a hostname hint.
func (e *Engine) rangeHeuristic(ip net.IP, hostnameHint string) (provider, reg string, ok bool) {
	if ip != nil {
		if v4 := ip.To4(); v4 != nil {
			if inCIDR(v4, "104.16.0.0/12") || inCIDR(v4, "172.64.0.0/13") {
				return "cloudflare", "", true
			}
		} else {
			if r, ok := cloudflareIPv6Region(ip); ok {
				return "cloudflare", r, true
			}
			if r, ok := akamaiIPv6Region(ip); ok {
				if r == "" {
					return "akamai", "", true
				}
				return "akamai", r, true
			}
		}
	}

	if hostnameHint != "" {
		lower := strings.ToLower(hostnameHint)
		if strings.Contains(lower, "akamaitechnologies.com") || strings.Contains(lower, "akamaiedge.net") {
			for _, code := range iataCandidates(lower) {
				if e.patterns.IsKnownIATA(code) {
					return "akamai", code, true
				}
			}
		}
	}

	return "", "", false
}

func inCIDR(ip net.IP, cidr string) bool {
	_, n, err := net.ParseCIDR(cidr)
	if err != nil {
		return false
	}
	return n.Contains(ip)
}

// iataCandidates yields every 3-letter lowercase alphabetic substring of s,
// left to right, letting the caller check each against the known IATA set.
// The first match in this order wins (I5/I7: deterministic evaluation).
func iataCandidates(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for i := 0; i+3 <= len(s); i++ {
		tok := s[i : i+3]
		if isAlpha(tok) && !seen[tok] {
			seen[tok] = true
			out = append(out, tok)
		}
	}
	return out
}

func isAlpha(s string) bool {
	for _, c := range s {
		if (c < 'a' || c > 'z') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}

// ipWhoisEvidence implements E1: provider from the ASN-organization string
// (the ASN number itself is not mapped to a provider), region from the
// country table with the OVH-FR IPv4 refinement.
func (e *Engine) ipWhoisEvidence(ip net.IP, ev Evidence) (provider, reg string, ok bool) {
	provider, provOK := e.providerFromEvidence(ev)
	if !provOK {
		return "", "", false
	}

	if provider == "ovh" && ev.Country == "FR" && ip != nil && ip.To4() != nil {
		return provider, ovhFRIPv4Refinement(ip), true
	}

	if region, regOK := e.patterns.CountryRegion(provider, ev.Country); regOK {
		return provider, region, true
	}
	return "", "", false
}

func (e *Engine) providerFromEvidence(ev Evidence) (string, bool) {
	if ev.ASNOrg != "" {
		if provider, ok := e.patterns.IdentifyProvider(ev.ASNOrg); ok {
			return provider, true
		}
	}
	return "", false
}

// hopChainMatch implements E3: walk hops in order, for each identify a
// provider then a region; stop at the first hop that yields both.
func (e *Engine) hopChainMatch(hops []string) (provider, reg string, ok bool) {
	for _, hop := range hops {
		p, pOK := e.patterns.IdentifyProvider(hop)
		if !pOK {
			continue
		}
		if r, rOK := e.patterns.IdentifyRegion(p, hop); rOK {
			return p, r, true
		}
	}
	return "", "", false
}

// providerOnly implements step 5: a provider identified by E1 or E3 without
// a matching region.
func (e *Engine) providerOnly(ip net.IP, ev Evidence, hops []string) (string, bool) {
	if provider, ok := e.providerFromEvidence(ev); ok {
		return provider, true
	}
	for _, hop := range hops {
		if provider, ok := e.patterns.IdentifyProvider(hop); ok {
			return provider, true
		}
	}
	return "", false
}
