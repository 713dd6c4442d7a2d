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

package region

import "net"

// ovhFRIPv4Refinement is the single irreducible OVH heuristic named in the
// design notes (§9): for a France-located OVH address, the first two
// octets of the IPv4 address pick a specific datacenter among {GRA, RBX,
// SBG} rather than the generic country-table region. Kept behind a named
// predicate per the spec's instruction to never hard-code provider
// identity anywhere else in the engine.
//
// Declared as an ordered slice, not a map, so evaluation order is fixed
// even though these particular ranges happen not to overlap.
type ovhRange struct {
	net    *net.IPNet
	region string
}

var ovhIPv4Ranges = mustParseOVHRanges(
	ovhCIDR{"54.39.0.0/16", "gra7"},
	ovhCIDR{"151.80.0.0/16", "rbx8"},
	ovhCIDR{"51.38.0.0/16", "sbg5"},
)

type ovhCIDR struct {
	cidr   string
	region string
}

func mustParseOVHRanges(ranges ...ovhCIDR) []ovhRange {
	out := make([]ovhRange, 0, len(ranges))
	for _, r := range ranges {
		_, n, err := net.ParseCIDR(r.cidr)
		if err != nil {
			panic(err)
		}
		out = append(out, ovhRange{net: n, region: r.region})
	}
	return out
}

// ovhFRIPv4Refinement returns the specific OVH datacenter region for ip, or
// the "gra7" default for any other French OVH address (§6).
func ovhFRIPv4Refinement(ip net.IP) string {
	if v4 := ip.To4(); v4 != nil {
		for _, r := range ovhIPv4Ranges {
			if r.net.Contains(v4) {
				return r.region
			}
		}
	}
	return "gra7"
}
