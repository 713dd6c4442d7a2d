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

// Package whoisdomain implements the WHOIS Domain Probe (§4.2): registrar
// and expiration date extraction for a registered domain name.
package whoisdomain

import (
	"regexp"
	"strings"
	"time"

	"github.com/likexian/whois"
	"golang.org/x/net/publicsuffix"
)

// registrarLine matches the handful of label spellings registries use for
// the sponsoring registrar.
var registrarLine = regexp.MustCompile(`(?i)^\s*(Registrar|Sponsoring Registrar)\s*:\s*(.+)$`)

// expiryLine matches the handful of label spellings registries use for the
// domain's expiration date.
var expiryLine = regexp.MustCompile(`(?i)^\s*(Registry Expiry Date|Registrar Registration Expiration Date|Expiration Date|Expiry Date|paid-till)\s*:\s*(.+)$`)

// dateLayouts are the date formats seen across TLD WHOIS servers, tried in
// order.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02-Jan-2006",
	"20060102",
}

// Result is the outcome of one domain WHOIS lookup.
type Result struct {
	Registrar string // "" if absent
	ExpiresAt time.Time // zero if absent
}

// Prober queries WHOIS for domain registration metadata.
type Prober struct {
	client *whois.Client
}

// New returns a ready-to-use Prober.
func New() *Prober {
	return &Prober{client: whois.NewClient()}
}

// Lookup implements whois_domain(domain) -> (registrar?, expires_at?).
// A failed WHOIS query (unavailable TLD, rate-limit) yields a zero Result
// together with the query error, which the pipeline records. A response
// with no recognizable fields yields a zero Result and a nil error.
func (p *Prober) Lookup(domain string) (Result, error) {
	registrable, err := publicsuffix.EffectiveTLDPlusOne(domain)
	if err != nil {
		registrable = domain
	}

	raw, err := p.client.Whois(registrable)
	if err != nil {
		return Result{}, err
	}
	return parse(raw), nil
}

// parse extracts the registrar and first expiration date from raw WHOIS
// text. When multiple expiration dates are present (common for thin/thick
// registry splits), the first one encountered wins (§4.2).
func parse(raw string) Result {
	var res Result
	for _, line := range strings.Split(raw, "\n") {
		if res.Registrar == "" {
			if m := registrarLine.FindStringSubmatch(line); m != nil {
				res.Registrar = strings.TrimSpace(m[2])
			}
		}
		if res.ExpiresAt.IsZero() {
			if m := expiryLine.FindStringSubmatch(line); m != nil {
				if t, ok := parseDate(strings.TrimSpace(m[2])); ok {
					res.ExpiresAt = t
				}
			}
		}
		if res.Registrar != "" && !res.ExpiresAt.IsZero() {
			break
		}
	}
	return res
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
