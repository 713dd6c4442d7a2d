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

// Package pipeline runs the per-domain probe sequence (§4.7): DNS, then
// (unless DNS resolved nothing) WHOIS-domain, WHOIS-IP, Region Engine, and
// HTTPS, each isolated so a single stage's failure never aborts the others.
package pipeline

import (
	"context"
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/aboutmoi/douro/internal/model"
	"github.com/aboutmoi/douro/internal/patterns"
	"github.com/aboutmoi/douro/internal/probe/dnsprobe"
	"github.com/aboutmoi/douro/internal/probe/httpsprobe"
	"github.com/aboutmoi/douro/internal/probe/rdap"
	"github.com/aboutmoi/douro/internal/probe/whoisdomain"
	"github.com/aboutmoi/douro/internal/region"
	"github.com/aboutmoi/douro/internal/stageerrors"
)

// Pipeline wires the five probes and the Region Engine together.
type Pipeline struct {
	dns       *dnsprobe.Resolver
	whoisDom  *whoisdomain.Prober
	whoisIP   *rdap.Prober
	regionEng *region.Engine
	https     *httpsprobe.Prober
	patterns  *patterns.Store
}

// New builds a Pipeline from its component probes.
func New(dns *dnsprobe.Resolver, whoisDom *whoisdomain.Prober, whoisIP *rdap.Prober, regionEng *region.Engine, https *httpsprobe.Prober, store *patterns.Store) *Pipeline {
	return &Pipeline{
		dns:       dns,
		whoisDom:  whoisDom,
		whoisIP:   whoisIP,
		regionEng: regionEng,
		https:     https,
		patterns:  store,
	}
}

// Run executes the full per-domain sequence and returns a populated
// DomainInfo. It never returns an error: every stage failure is recorded in
// the returned DomainInfo's Errors map instead (§7).
func (p *Pipeline) Run(ctx context.Context, domain string) *model.DomainInfo {
	info := model.New(domain)

	dnsResult := p.dns.Resolve(ctx, domain)
	info.DNSDuration = dnsResult.Duration
	info.IPs = dnsResult.IPs
	info.Nameservers = dnsResult.Nameservers

	if len(info.IPs) == 0 {
		info.SetError(stageerrors.StageDNS, stageerrors.DNS(errors.New("no A/AAAA records resolved")))
		log.WithField("domain", domain).Debug("dns resolved no addresses, skipping remaining stages")
		return info
	}

	p.runWHOISDomain(info, domain)
	p.runWHOISIP(ctx, info)
	p.runRegionEngine(ctx, info)
	p.runHTTPS(ctx, info)

	info.CDNDetected = p.isCDN(info)

	log.WithFields(log.Fields{
		"domain":   domain,
		"provider": info.HostingProvider,
		"region":   info.HostingRegion,
		"errors":   len(info.Errors),
	}).Debug("pipeline iteration complete")

	return info
}

func (p *Pipeline) runWHOISDomain(info *model.DomainInfo, domain string) {
	result, err := p.whoisDom.Lookup(domain)
	if err != nil {
		info.SetError(stageerrors.StageWHOISDomain, stageerrors.WHOISDomain(err))
		return
	}
	info.Registrar = result.Registrar
	info.DomainExpires = result.ExpiresAt
}

func (p *Pipeline) runWHOISIP(ctx context.Context, info *model.DomainInfo) {
	ip := info.FirstIP()
	result := p.whoisIP.Lookup(ctx, ip)
	if result.ASN == "" && result.ASNOrg == "" && result.Country == "" {
		info.SetError(stageerrors.StageWHOISIP, stageerrors.WHOISIP(errNoWHOISData))
		return
	}
	info.ASN = result.ASN
	info.ASNOrg = result.ASNOrg
	info.Country = result.Country
}

var errNoWHOISData = errors.New("no WHOIS/RDAP data available for IP")

// runRegionEngine records the engine's determination as-is. An empty
// Provider is a legitimate "no evidence matched" outcome (§4.6 priority 6),
// not a probe failure, so it must never populate info.Errors.
func (p *Pipeline) runRegionEngine(ctx context.Context, info *model.DomainInfo) {
	ip := info.FirstIP()
	result := p.regionEng.Detect(ctx, ip, region.Evidence{
		ASN:     info.ASN,
		ASNOrg:  info.ASNOrg,
		Country: info.Country,
	})
	info.HostingProvider = result.Provider
	info.HostingRegion = result.Region
}

func (p *Pipeline) runHTTPS(ctx context.Context, info *model.DomainInfo) {
	result := p.https.Probe(ctx, info.Domain)
	if result.HTTPStatus == 0 {
		info.SetError(stageerrors.StageHTTPS, stageerrors.HTTPS(errUnreachable))
	}
	info.HTTPStatus = result.HTTPStatus
	info.ServerHeader = result.ServerHeader
	info.TLSExpires = result.TLSExpires
}

var errUnreachable = errors.New("HTTPS endpoint unreachable")

// isCDN tests the WHOIS-IP-derived asn/asn_org against the CDN hint set,
// then falls back to the Region Engine's resolved hosting provider when
// neither ASN signal fired (§4.7): a provider the Pattern Store already
// classifies as CDN-class settles the question even without ASN evidence.
func (p *Pipeline) isCDN(info *model.DomainInfo) bool {
	if info.ASN != "" && p.patterns.IsCDNASN(info.ASN) {
		return true
	}
	if info.ASNOrg != "" && p.patterns.HasCDNOrgToken(info.ASNOrg) {
		return true
	}
	if info.HostingProvider != "" && p.patterns.IsCDNProvider(info.HostingProvider) {
		return true
	}
	return false
}
