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

// Package metrics implements the Metric Projection (§4.9): mapping a batch
// of DomainInfo snapshots to the douro_ Prometheus gauge set.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aboutmoi/douro/internal/model"
	"github.com/aboutmoi/douro/internal/stageerrors"
)

const unknown = "unknown"

// Collector owns the registered gauge vectors and re-renders them from a
// full-iteration snapshot. It is process-wide but mutex-protected on the
// snapshot swap, matching the "no partial updates" invariant (I6): callers
// replace the whole set atomically via Set.
type Collector struct {
	registry *prometheus.Registry

	info           *prometheus.GaugeVec
	httpStatus     *prometheus.GaugeVec
	dnsDuration    *prometheus.GaugeVec
	domainExpiry   *prometheus.GaugeVec
	tlsExpiry      *prometheus.GaugeVec
	scrapeError    *prometheus.GaugeVec
	scrapeDuration prometheus.Gauge

	mu sync.Mutex
}

// New constructs and registers every metric in the projection.
func New() *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		info: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "douro_domain_info",
			Help: "Static information about a probed domain; value is always 1.",
		}, []string{"domain", "registrar", "asn", "asn_org", "country", "hosting_provider", "hosting_region", "cdn"}),
		httpStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "douro_http_status_code",
			Help: "Observed HTTP status code for the domain's HTTPS probe, 0 if unreachable.",
		}, []string{"domain"}),
		dnsDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "douro_dns_resolve_duration_seconds",
			Help: "Wall-clock duration of the DNS probe.",
		}, []string{"domain"}),
		domainExpiry: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "douro_domain_expiration_timestamp",
			Help: "Unix timestamp of domain registration expiry, 0 if unknown.",
		}, []string{"domain"}),
		tlsExpiry: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "douro_tls_cert_expiration_timestamp",
			Help: "Unix timestamp of TLS certificate expiry, 0 if unknown.",
		}, []string{"domain"}),
		scrapeError: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "douro_scrape_error",
			Help: "1 if the given pipeline stage recorded an error for this domain in the last scrape.",
		}, []string{"domain", "stage"}),
		scrapeDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "douro_scrape_duration_seconds",
			Help: "Duration of the most recently completed full scrape iteration.",
		}),
	}

	registry.MustRegister(c.info, c.httpStatus, c.dnsDuration, c.domainExpiry, c.tlsExpiry, c.scrapeError, c.scrapeDuration)
	return c
}

// Registry returns the underlying Prometheus registry for use by the
// metrics HTTP handler.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Set replaces the full metric snapshot from one completed scheduler
// iteration (§4.7/§4.9). Replacing every per-domain series under a single
// lock keeps a concurrent scrape from observing a partially-updated set.
func (c *Collector) Set(infos []*model.DomainInfo, scrapeDuration float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.info.Reset()
	c.httpStatus.Reset()
	c.dnsDuration.Reset()
	c.domainExpiry.Reset()
	c.tlsExpiry.Reset()
	c.scrapeError.Reset()

	for _, d := range infos {
		c.setDomain(d)
	}
	c.scrapeDuration.Set(scrapeDuration)
}

func (c *Collector) setDomain(d *model.DomainInfo) {
	cdn := "false"
	if d.CDNDetected {
		cdn = "true"
	}
	c.info.WithLabelValues(
		d.Domain,
		orUnknown(d.Registrar),
		orUnknown(d.ASN),
		orUnknown(d.ASNOrg),
		orUnknown(d.Country),
		orUnknown(d.HostingProvider),
		orUnknown(d.HostingRegion),
		cdn,
	).Set(1)

	c.httpStatus.WithLabelValues(d.Domain).Set(float64(d.HTTPStatus))
	c.dnsDuration.WithLabelValues(d.Domain).Set(d.DNSDuration.Seconds())

	if d.HasDomainExpiry() {
		c.domainExpiry.WithLabelValues(d.Domain).Set(float64(d.DomainExpires.Unix()))
	} else {
		c.domainExpiry.WithLabelValues(d.Domain).Set(0)
	}

	if d.HasTLSExpiry() {
		c.tlsExpiry.WithLabelValues(d.Domain).Set(float64(d.TLSExpires.Unix()))
	} else {
		c.tlsExpiry.WithLabelValues(d.Domain).Set(0)
	}

	for _, stage := range stageerrors.AllStages {
		v := 0.0
		if _, hasErr := d.Errors[stage]; hasErr {
			v = 1
		}
		c.scrapeError.WithLabelValues(d.Domain, stage).Set(v)
	}
}

func orUnknown(s string) string {
	if s == "" {
		return unknown
	}
	return s
}
