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

// Package rdap implements the WHOIS/RDAP IP Probe (§4.3): ASN, ASN
// organization, and country lookup for an IP address, preferring RDAP
// with a legacy-WHOIS fallback.
package rdap

import (
	"context"
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/likexian/whois"
	"github.com/openrdap/rdap"
)

var defaultNetResolver = net.DefaultResolver

// Timeout bounds the RDAP attempt (IP network, Cymru ASN and Autnum
// lookups). The legacy WHOIS fallback is bounded by the WHOIS client's own
// timeout, not by this one.
const Timeout = 10 * time.Second

// Result is the outcome of one IP lookup. Any field may be "" if the
// corresponding piece of information could not be determined.
type Result struct {
	ASN     string
	ASNOrg  string
	Country string
}

// trailingCountryCode matches a bare two-letter ISO code at the end of a
// WHOIS/RDAP contact address line (§4.3 precedence (b)/(c)).
var trailingCountryCode = regexp.MustCompile(`\b([A-Z]{2})\b\s*$`)

// Prober looks up ASN/organization/country information for an IP address.
type Prober struct {
	rdapClient  *rdap.Client
	whoisClient *whois.Client
	// cymruLookup resolves an IP to its origin ASN via the Team Cymru DNS
	// whois service. Overridable in tests.
	cymruLookup func(ctx context.Context, ip string) (asn string, ok bool)
}

// New returns a ready-to-use Prober.
func New() *Prober {
	p := &Prober{
		rdapClient:  &rdap.Client{},
		whoisClient: whois.NewClient(),
	}
	p.cymruLookup = p.lookupASNViaCymru
	return p
}

// Lookup implements whois_ip(ip) -> (asn?, asn_org?, country?). It never
// returns an error; callers treat an all-empty Result as a soft failure.
func (p *Prober) Lookup(ctx context.Context, ip string) Result {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	if res, ok := p.lookupRDAP(ctx, ip); ok {
		return res
	}
	return p.lookupLegacyWHOIS(ip)
}

func (p *Prober) lookupRDAP(ctx context.Context, ip string) (Result, bool) {
	req := &rdap.Request{
		Type:  rdap.IPRequest,
		Query: ip,
	}
	req = req.WithContext(ctx)

	resp, err := p.rdapClient.Do(req)
	if err != nil || resp == nil {
		return Result{}, false
	}

	network, ok := resp.Object.(*rdap.IPNetwork)
	if !ok || network == nil {
		return Result{}, false
	}

	var res Result
	res.Country = network.Country

	if asn, found := p.cymruLookup(ctx, ip); found {
		res.ASN = asn
		if org, ok := p.lookupAutnumOrg(ctx, asn); ok {
			res.ASNOrg = org
		}
	}

	if res.Country == "" {
		res.Country, _ = countryFromObjects(network.Entities)
	}
	if res.Country == "" && res.ASNOrg != "" {
		res.Country, _ = countryFromOrgHeuristic(res.ASNOrg)
	}

	if res.ASN == "" && res.ASNOrg == "" && res.Country == "" {
		return Result{}, false
	}
	return res, true
}

func (p *Prober) lookupAutnumOrg(ctx context.Context, asn string) (string, bool) {
	num, err := strconv.Atoi(asn)
	if err != nil {
		return "", false
	}
	req := (&rdap.Request{
		Type:  rdap.AutnumRequest,
		Query: strconv.Itoa(num),
	}).WithContext(ctx)

	resp, err := p.rdapClient.Do(req)
	if err != nil || resp == nil {
		return "", false
	}
	autnum, ok := resp.Object.(*rdap.Autnum)
	if !ok || autnum == nil {
		return "", false
	}
	if autnum.Name != "" {
		return autnum.Name, true
	}
	return "", false
}

// lookupLegacyWHOIS falls back to a raw WHOIS query (port 43) when RDAP is
// unavailable, matching the WHOIS/RDAP IP Probe's documented fallback path.
func (p *Prober) lookupLegacyWHOIS(ip string) Result {
	raw, err := p.whoisClient.Whois(ip)
	if err != nil || raw == "" {
		return Result{}
	}

	var res Result
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		if res.ASN == "" && (strings.HasPrefix(lower, "originas:") || strings.HasPrefix(lower, "origin:")) {
			res.ASN = strings.TrimSpace(stripDigitPrefix(valueAfterColon(line)))
		}
		if res.ASNOrg == "" && (strings.HasPrefix(lower, "orgname:") || strings.HasPrefix(lower, "org-name:")) {
			res.ASNOrg = valueAfterColon(line)
		}
		if res.Country == "" && strings.HasPrefix(lower, "country:") {
			res.Country = strings.ToUpper(strings.TrimSpace(valueAfterColon(line)))
		}
	}

	if res.Country == "" && res.ASNOrg != "" {
		res.Country, _ = countryFromOrgHeuristic(res.ASNOrg)
	}
	return res
}

func valueAfterColon(line string) string {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(line[idx+1:])
}

func stripDigitPrefix(s string) string {
	return strings.TrimPrefix(strings.TrimPrefix(s, "AS"), "as")
}

// countryFromObjects implements precedence (b)/(c): scan entity vCard
// addresses for a trailing two-letter ISO code.
func countryFromObjects(entities []rdap.Entity) (string, bool) {
	for _, e := range entities {
		if e.VCard == nil {
			continue
		}
		for _, addr := range e.VCard.Properties() {
			if m := trailingCountryCode.FindStringSubmatch(strings.TrimSpace(addr)); m != nil {
				return m[1], true
			}
		}
		if country, ok := countryFromObjects(e.Entities); ok {
			return country, true
		}
	}
	return "", false
}

// countryFromOrgHeuristic implements precedence (d): the text after the
// last comma in the organization description, when it is exactly two
// uppercase letters, is taken as the country code. The code is not checked
// against a list of known ISO codes.
func countryFromOrgHeuristic(org string) (string, bool) {
	idx := strings.LastIndex(org, ",")
	if idx < 0 {
		return "", false
	}
	tail := strings.TrimSpace(org[idx+1:])
	if len(tail) == 2 && isUpperAlpha(tail) {
		return tail, true
	}
	return "", false
}

func isUpperAlpha(s string) bool {
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return true
}

// lookupASNViaCymru resolves the origin ASN for ip using Team Cymru's IP-to-ASN
// DNS mapping service, the same technique the legacy ipwhois-style clients use
// when an RDAP response omits the autonomous system number.
func (p *Prober) lookupASNViaCymru(ctx context.Context, ip string) (string, bool) {
	octets := strings.Split(ip, ".")
	if len(octets) != 4 {
		return "", false
	}
	reversed := fmt.Sprintf("%s.%s.%s.%s", octets[3], octets[2], octets[1], octets[0])
	qname := reversed + ".origin.asn.cymru.com"

	var resolver = defaultNetResolver
	txts, err := resolver.LookupTXT(ctx, qname)
	if err != nil || len(txts) == 0 {
		return "", false
	}
	fields := strings.Split(txts[0], "|")
	if len(fields) == 0 {
		return "", false
	}
	asn := strings.TrimSpace(fields[0])
	if asn == "" {
		return "", false
	}
	return asn, true
}
