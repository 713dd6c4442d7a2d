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

// Package httpsprobe implements the HTTPS Probe (§4.4): HTTP reachability
// and TLS certificate expiry, as two independent probes against the same
// domain (design note §9 (c): the GET and the raw TLS dial are never
// combined into one code path).
package httpsprobe

import (
	"context"
	"crypto/tls"
	"net"
	"net/http"
	"time"
)

// Result is the outcome of one HTTPS probe. HTTPStatus is 0 when the GET
// could not be completed at all.
type Result struct {
	HTTPStatus   int
	ServerHeader string    // "" if absent
	TLSExpires   time.Time // zero if the TLS dial failed or yielded no cert
}

// Prober issues an HTTP GET and an independent TLS dial against a domain.
type Prober struct {
	// Timeout bounds each of the two independent probes (§4.4, §6
	// exporter.timeout_seconds).
	Timeout time.Duration
}

// New returns a Prober using the given per-probe timeout.
func New(timeout time.Duration) *Prober {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Prober{Timeout: timeout}
}

// Probe performs the HTTPS reachability check and the independent TLS
// certificate inspection. A failure in either leaves the corresponding
// fields at their zero values; the two never short-circuit each other.
func (p *Prober) Probe(ctx context.Context, domain string) Result {
	var res Result

	if status, server, ok := p.probeHTTP(ctx, domain); ok {
		res.HTTPStatus = status
		res.ServerHeader = server
	}

	if notAfter, ok := p.probeTLS(ctx, domain); ok {
		res.TLSExpires = notAfter
	}

	return res
}

func (p *Prober) probeHTTP(ctx context.Context, domain string) (int, string, bool) {
	ctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "https://"+domain, nil)
	if err != nil {
		return 0, "", false
	}

	client := &http.Client{Timeout: p.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", false
	}
	defer resp.Body.Close()

	return resp.StatusCode, resp.Header.Get("Server"), true
}

func (p *Prober) probeTLS(ctx context.Context, domain string) (time.Time, bool) {
	dialer := &net.Dialer{Timeout: p.Timeout}
	conn, err := tls.DialWithDialer(dialer, "tcp", net.JoinHostPort(domain, "443"), &tls.Config{
		ServerName: domain,
		MinVersion: tls.VersionTLS12,
	})
	if err != nil {
		return time.Time{}, false
	}
	defer conn.Close()

	state := conn.ConnectionState()
	if len(state.PeerCertificates) == 0 {
		return time.Time{}, false
	}
	return state.PeerCertificates[0].NotAfter, true
}
