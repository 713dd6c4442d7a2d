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

// Package stageerrors contains standardized error utilities for pipeline stages.
// Using these functions ensures consistent error messages across probes.
package stageerrors

import "fmt"

// Stage names, used both as map keys in DomainInfo.Errors and as the
// "stage" label on the scrape_error gauge.
const (
	StageDNS             = "dns"
	StageWHOISDomain     = "whois_domain"
	StageWHOISIP         = "whois_ip"
	StageRegionDetection = "region_detection"
	StageHTTPS           = "https"
)

// AllStages lists every stage name in pipeline execution order.
var AllStages = []string{StageDNS, StageWHOISDomain, StageWHOISIP, StageRegionDetection, StageHTTPS}

// DNS wraps a DNS resolution failure.
func DNS(err error) error {
	return fmt.Errorf("dns resolution failed: %w", err)
}

// WHOISDomain wraps a domain WHOIS lookup failure.
func WHOISDomain(err error) error {
	return fmt.Errorf("whois lookup failed: %w", err)
}

// WHOISIP wraps an RDAP/WHOIS IP lookup failure.
func WHOISIP(err error) error {
	return fmt.Errorf("ip whois/rdap lookup failed: %w", err)
}

// RegionDetection wraps a hosting-region detection failure.
func RegionDetection(err error) error {
	return fmt.Errorf("region detection failed: %w", err)
}

// HTTPS wraps an HTTPS reachability probe failure.
func HTTPS(err error) error {
	return fmt.Errorf("https probe failed: %w", err)
}
