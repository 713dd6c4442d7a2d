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

// Package dnsprobe resolves A/AAAA and NS records for a domain, timing the
// full resolution wall-clock.
package dnsprobe

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/miekg/dns"
)

// QueryTimeout is the per-query budget (§4.1).
const QueryTimeout = 5 * time.Second

// Result is the outcome of one Resolve call. A resolver-level failure
// collapses the corresponding field to an empty slice; Resolve never
// returns an error — an empty IPs list signals "unresolved".
type Result struct {
	Duration    time.Duration
	IPs         []string // ordered, primary first
	Nameservers []string
}

// Resolver resolves DNS records. The zero value uses the system's default
// resolver configuration (/etc/resolv.conf on Unix).
type Resolver struct {
	// Nameserver, if set, overrides resolv.conf (host:port). Used by tests.
	Nameserver string
}

// Resolve performs the full DNS probe: A, falling back to AAAA when empty,
// plus an independent NS lookup. Wall-clock duration spans every query
// made (two when A answers, three when the AAAA fallback runs).
func (r *Resolver) Resolve(ctx context.Context, domain string) Result {
	start := time.Now()
	res := Result{}

	res.IPs = r.lookupAddrs(ctx, domain, dns.TypeA)
	if len(res.IPs) == 0 {
		res.IPs = r.lookupAddrs(ctx, domain, dns.TypeAAAA)
	}
	res.Nameservers = r.lookupNS(ctx, domain)

	res.Duration = time.Since(start)
	return res
}

func (r *Resolver) lookupAddrs(ctx context.Context, domain string, qtype uint16) []string {
	msg, err := r.query(ctx, domain, qtype)
	if err != nil {
		return nil
	}
	var out []string
	for _, rr := range msg.Answer {
		switch rec := rr.(type) {
		case *dns.A:
			out = append(out, rec.A.String())
		case *dns.AAAA:
			out = append(out, rec.AAAA.String())
		}
	}
	return out
}

func (r *Resolver) lookupNS(ctx context.Context, domain string) []string {
	msg, err := r.query(ctx, domain, dns.TypeNS)
	if err != nil {
		return nil
	}
	var out []string
	for _, rr := range msg.Answer {
		if ns, ok := rr.(*dns.NS); ok {
			out = append(out, strings.TrimSuffix(ns.Ns, "."))
		}
	}
	return out
}

func (r *Resolver) query(ctx context.Context, domain string, qtype uint16) (*dns.Msg, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeout)
	defer cancel()

	nameserver := r.Nameserver
	if nameserver == "" {
		conf, err := dns.ClientConfigFromFile("/etc/resolv.conf")
		if err != nil {
			return nil, err
		}
		if len(conf.Servers) == 0 {
			return nil, errors.New("no nameserver configured")
		}
		nameserver = conf.Servers[0] + ":" + conf.Port
	}

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(domain), qtype)
	m.RecursionDesired = true

	c := new(dns.Client)
	c.Timeout = QueryTimeout

	in, _, err := c.ExchangeContext(ctx, m, nameserver)
	if err != nil {
		return nil, err
	}
	if in.Rcode != dns.RcodeSuccess {
		return in, errRcode(in.Rcode)
	}
	return in, nil
}

type errRcode int

func (e errRcode) Error() string { return dns.RcodeToString[int(e)] }
