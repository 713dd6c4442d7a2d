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

// Package model holds the per-domain result produced by the pipeline.
package model

import "time"

// DomainInfo is the per-domain fact sheet produced by one pipeline run.
// It is constructed empty, populated by stages in order, and becomes
// read-only once the pipeline returns. Instances are never shared
// mutably across domains or across scrapes.
type DomainInfo struct {
	Domain string

	DNSDuration  time.Duration
	IPs          []string // ordered, primary first
	Nameservers  []string

	Registrar      string // "" if absent
	DomainExpires  time.Time // zero if absent

	ASN     string // "" if absent
	ASNOrg  string // "" if absent
	Country string // "" if absent

	HostingProvider string // "" if absent
	HostingRegion   string // "" if absent

	HTTPStatus   int // 0 = unreachable
	ServerHeader string // "" if absent
	TLSExpires   time.Time // zero if absent

	CDNDetected bool

	// Errors maps stage name -> short message. Stage names are the
	// stageerrors.Stage* constants. Absence of a key means the stage
	// either succeeded or never ran.
	Errors map[string]string
}

// New returns an empty DomainInfo ready for the pipeline to populate.
func New(domain string) *DomainInfo {
	return &DomainInfo{
		Domain: domain,
		Errors: make(map[string]string),
	}
}

// HasRegistrar reports whether a registrar was recorded.
func (d *DomainInfo) HasRegistrar() bool { return d.Registrar != "" }

// HasDomainExpiry reports whether a domain expiration timestamp was recorded.
func (d *DomainInfo) HasDomainExpiry() bool { return !d.DomainExpires.IsZero() }

// HasTLSExpiry reports whether a TLS certificate expiration timestamp was recorded.
func (d *DomainInfo) HasTLSExpiry() bool { return !d.TLSExpires.IsZero() }

// Unresolved reports whether DNS resolution produced no IPs.
func (d *DomainInfo) Unresolved() bool { return len(d.IPs) == 0 }

// SetError records a stage-tagged error message. Fields already written
// by the stage are left untouched.
func (d *DomainInfo) SetError(stage string, err error) {
	if d.Errors == nil {
		d.Errors = make(map[string]string)
	}
	d.Errors[stage] = err.Error()
}

// FirstIP returns the primary IP, or "" if none resolved.
func (d *DomainInfo) FirstIP() string {
	if len(d.IPs) == 0 {
		return ""
	}
	return d.IPs[0]
}
