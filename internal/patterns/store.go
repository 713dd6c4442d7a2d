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

// Package patterns holds the static, immutable-after-init Pattern Store:
// provider indicators, per-provider region regex tables, country/location
// fallbacks, and the CDN hint set. None of this requires synchronization
// once New() returns — it is read-only for the lifetime of the process.
package patterns

import (
	"regexp"
	"strings"
)

// RegionRule is one (region, ordered-regex-list) entry. Regexes are
// evaluated in declared order; the first one that matches (substring
// search, not full-match) wins.
type RegionRule struct {
	Region   string
	Patterns []*regexp.Regexp
}

// providerRegions is the ordered set of region rules for one provider.
// Order matters: more-specific regions must be listed before more-general
// ones so that first-match evaluation picks the right one.
type providerRegions struct {
	Provider string
	Regions  []RegionRule
}

// indicatorSet is the ordered substring-token list used to identify one
// provider from a hostname or an ASN-organization string.
type indicatorSet struct {
	Provider string
	Tokens   []string // matched case-insensitively as plain substrings
}

// CDNHint is the fixed set of provider ids, ASNs, and organization-name
// tokens considered CDN-class.
type CDNHint struct {
	ProviderIDs map[string]bool
	ASNs        map[string]bool
	OrgTokens   []string
}

// Store is the full, immutable Pattern Store. Construct with New(); the
// zero value is not usable.
type Store struct {
	// hostnameIndicators identifies a provider from a hostname (traceroute
	// hops) or ASN-organization string. Declared order: first token match
	// wins.
	hostnameIndicators []indicatorSet

	// regions holds the per-provider RegionPattern table, declared order
	// preserved for deterministic first-match evaluation (I5, I7).
	regions []providerRegions

	// countryToRegion is CountryToRegion: provider -> ISO-3166 alpha-2 -> region.
	// Key lookup is exact, so map order does not affect determinism.
	countryToRegion map[string]map[string]string

	// locationToRegion is LocationToRegion: provider -> ordered (token, region)
	// pairs, used when a geolocation API is consulted. Order preserved because
	// lookup is substring containment, not exact match.
	locationToRegion map[string][]locationEntry

	// orgCountryHints backs WHOIS/RDAP IP Probe precedence (d): asn_org
	// containing ", <cc>" or a country name implies a country code.
	orgCountryHints []orgCountryHint

	cdn CDNHint

	// knownIATA is the fixed set of three-letter airport codes CDNs use
	// as edge-location identifiers (E2 Akamai hostname heuristic).
	knownIATA map[string]bool
}

type locationEntry struct {
	Token  string
	Region string
}

type orgCountryHint struct {
	Country string // ISO-3166 alpha-2
	Tokens  []string
}

func re(pattern string) *regexp.Regexp { return regexp.MustCompile(pattern) }

// New builds the Pattern Store. Region lists are ordered most-specific
// first per provider (invariant: every region in CountryToRegion appears
// in the corresponding provider's region list).
func New() *Store {
	s := &Store{
		countryToRegion:  map[string]map[string]string{},
		locationToRegion: map[string][]locationEntry{},
	}

	s.hostnameIndicators = []indicatorSet{
		{Provider: "aws", Tokens: []string{"amazonaws.com", "aws.com", "ec2", "cloudfront", "amazon"}},
		{Provider: "gcp", Tokens: []string{"googleapis.com", "google.com", "gcp", "googlers.com", "1e100.net", "googleusercontent.com", "google"}},
		{Provider: "azure", Tokens: []string{"azure.com", "microsoft.com", "azureedge.net", "microsoft", "azure", "msft"}},
		{Provider: "ovh", Tokens: []string{"ovh.net", "ovh.com", "ovh.fr", "kimsufi.com", "soyoustart.com", ".fr.eu", "gra-g", "rbx-", "sbg-", "bhs-", "ovh", "kimsufi", "soyoustart"}},
		{Provider: "cloudflare", Tokens: []string{"cloudflare.com", "cloudflare.net", "cf-dns.com", "cloudflare"}},
		{Provider: "akamai", Tokens: []string{"akamai.com", "akamai.net", "akamaitechnologies.com", "akam.net", "akamai-asn1", "akamai technologies", "akamai"}},
		{Provider: "hetzner", Tokens: []string{"hetzner.de", "hetzner.com", "your-server.de", "hetzner"}},
		{Provider: "digitalocean", Tokens: []string{"digitalocean.com", "do.co", "nyc.co", "digitalocean", "digital ocean"}},
		{Provider: "github", Tokens: []string{"github.com", "github.io", "githubassets.com"}},
	}

	s.regions = []providerRegions{
		{Provider: "aws", Regions: []RegionRule{
			{Region: "us-east-1", Patterns: []*regexp.Regexp{re(`us-east-1`), re(`iad\d*`), re(`virginia`), re(`use1`)}},
			{Region: "us-east-2", Patterns: []*regexp.Regexp{re(`us-east-2`), re(`cmh\d*`), re(`ohio`), re(`use2`)}},
			{Region: "us-west-1", Patterns: []*regexp.Regexp{re(`us-west-1`), re(`sfo\d*`), re(`california`), re(`usw1`)}},
			{Region: "us-west-2", Patterns: []*regexp.Regexp{re(`us-west-2`), re(`pdx\d*`), re(`oregon`), re(`usw2`)}},
			{Region: "eu-west-1", Patterns: []*regexp.Regexp{re(`eu-west-1`), re(`dub\d*`), re(`ireland`), re(`euw1`)}},
			{Region: "eu-west-2", Patterns: []*regexp.Regexp{re(`eu-west-2`), re(`lhr\d*`), re(`london`), re(`euw2`)}},
			{Region: "eu-west-3", Patterns: []*regexp.Regexp{re(`eu-west-3`), re(`cdg\d*`), re(`paris`), re(`euw3`)}},
			{Region: "eu-central-1", Patterns: []*regexp.Regexp{re(`eu-central-1`), re(`fra\d*`), re(`frankfurt`), re(`euc1`)}},
			{Region: "ap-southeast-1", Patterns: []*regexp.Regexp{re(`ap-southeast-1`), re(`sin\d*`), re(`singapore`), re(`apse1`)}},
			{Region: "ap-northeast-1", Patterns: []*regexp.Regexp{re(`ap-northeast-1`), re(`nrt\d*`), re(`tokyo`), re(`apne1`)}},
		}},
		{Provider: "gcp", Regions: []RegionRule{
			{Region: "europe-west9", Patterns: []*regexp.Regexp{re(`europe-west9`), re(`ew9`), re(`paris`), re(`par\d+s\d+`), re(`cdg\d*`)}},
			{Region: "europe-west1", Patterns: []*regexp.Regexp{re(`europe-west1`), re(`ew1`), re(`belgium`), re(`st\.ghislain`)}},
			{Region: "europe-west2", Patterns: []*regexp.Regexp{re(`europe-west2`), re(`ew2`), re(`london`), re(`lhr\d*`)}},
			{Region: "europe-west3", Patterns: []*regexp.Regexp{re(`europe-west3`), re(`ew3`), re(`frankfurt`), re(`fra\d*`)}},
			{Region: "europe-west4", Patterns: []*regexp.Regexp{re(`europe-west4`), re(`ew4`), re(`netherlands`), re(`eemshaven`), re(`ams\d*`)}},
			{Region: "us-central1", Patterns: []*regexp.Regexp{re(`us-central1`), re(`uc1`), re(`iowa`), re(`central`)}},
			{Region: "us-east1", Patterns: []*regexp.Regexp{re(`us-east1`), re(`ue1`), re(`south\.carolina`), re(`eastern`)}},
			{Region: "us-west1", Patterns: []*regexp.Regexp{re(`us-west1`), re(`uw1`), re(`oregon`), re(`western`)}},
			{Region: "us-west2", Patterns: []*regexp.Regexp{re(`us-west2`), re(`uw2`), re(`los\.angeles`)}},
			{Region: "us-west3", Patterns: []*regexp.Regexp{re(`us-west3`), re(`uw3`), re(`salt\.lake`)}},
			{Region: "us-west4", Patterns: []*regexp.Regexp{re(`us-west4`), re(`uw4`), re(`las\.vegas`)}},
			{Region: "asia-southeast1", Patterns: []*regexp.Regexp{re(`asia-southeast1`), re(`as1`), re(`singapore`), re(`sin\d*`)}},
			{Region: "asia-northeast1", Patterns: []*regexp.Regexp{re(`asia-northeast1`), re(`an1`), re(`tokyo`), re(`nrt\d*`)}},
		}},
		{Provider: "azure", Regions: []RegionRule{
			{Region: "eastus2", Patterns: []*regexp.Regexp{re(`eastus2`), re(`east\.us\.2`), re(`virginia2`)}},
			{Region: "eastus", Patterns: []*regexp.Regexp{re(`eastus`), re(`east\.us`), re(`virginia`)}},
			{Region: "westus2", Patterns: []*regexp.Regexp{re(`westus2`), re(`west\.us\.2`), re(`washington`)}},
			{Region: "westus", Patterns: []*regexp.Regexp{re(`westus`), re(`west\.us`), re(`california`)}},
			{Region: "northeurope", Patterns: []*regexp.Regexp{re(`northeurope`), re(`north\.europe`), re(`ireland`)}},
			{Region: "westeurope", Patterns: []*regexp.Regexp{re(`westeurope`), re(`west\.europe`), re(`netherlands`)}},
			{Region: "francecentral", Patterns: []*regexp.Regexp{re(`francecentral`), re(`france\.central`), re(`paris`)}},
			{Region: "germanywestcentral", Patterns: []*regexp.Regexp{re(`germanywestcentral`), re(`germany\.west`), re(`frankfurt`)}},
			{Region: "eastasia", Patterns: []*regexp.Regexp{re(`eastasia`), re(`east\.asia`), re(`hong\.kong`)}},
			{Region: "southeastasia", Patterns: []*regexp.Regexp{re(`southeastasia`), re(`southeast\.asia`), re(`singapore`)}},
		}},
		{Provider: "ovh", Regions: []RegionRule{
			{Region: "gra9", Patterns: []*regexp.Regexp{re(`gra9`), re(`gravelines9`)}},
			{Region: "gra7", Patterns: []*regexp.Regexp{re(`gravelines`), re(`gra7`), re(`\.gra-`), re(`gra-g\d+`), re(`gra\d*`)}},
			{Region: "rbx8", Patterns: []*regexp.Regexp{re(`roubaix`), re(`rbx8`), re(`\.rbx-`), re(`rbx\d*`)}},
			{Region: "sbg5", Patterns: []*regexp.Regexp{re(`strasbourg`), re(`sbg5`), re(`\.sbg-`), re(`sbg\d*`)}},
			{Region: "bhs5", Patterns: []*regexp.Regexp{re(`beauharnois`), re(`montreal`), re(`bhs5`), re(`\.bhs-`), re(`bhs\d*`)}},
			{Region: "waw1", Patterns: []*regexp.Regexp{re(`warsaw`), re(`poland`), re(`waw1`), re(`\.waw-`), re(`waw\d*`)}},
			{Region: "lon1", Patterns: []*regexp.Regexp{re(`london`), re(`lon1`), re(`\.lon-`), re(`lon\d*`)}},
			{Region: "fra1", Patterns: []*regexp.Regexp{re(`frankfurt`), re(`fra1`), re(`\.fra-`), re(`fra\d*`)}},
			{Region: "sin1", Patterns: []*regexp.Regexp{re(`singapore`), re(`sin1`), re(`\.sin-`), re(`sin\d*`)}},
			{Region: "syd1", Patterns: []*regexp.Regexp{re(`sydney`), re(`australia`), re(`syd1`), re(`\.syd-`), re(`syd\d*`)}},
		}},
		{Provider: "cloudflare", Regions: []RegionRule{
			{Region: "ams", Patterns: []*regexp.Regexp{re(`amsterdam`), re(`ams\d*`)}},
			{Region: "atl", Patterns: []*regexp.Regexp{re(`atlanta`), re(`atl\d*`)}},
			{Region: "bom", Patterns: []*regexp.Regexp{re(`mumbai`), re(`bom\d*`)}},
			{Region: "cdg", Patterns: []*regexp.Regexp{re(`paris`), re(`cdg\d*`)}},
			{Region: "dfw", Patterns: []*regexp.Regexp{re(`dallas`), re(`dfw\d*`)}},
			{Region: "fra", Patterns: []*regexp.Regexp{re(`frankfurt`), re(`fra\d*`)}},
			{Region: "iad", Patterns: []*regexp.Regexp{re(`washington`), re(`ashburn`), re(`iad\d*`)}},
			{Region: "lax", Patterns: []*regexp.Regexp{re(`los\.angeles`), re(`lax\d*`)}},
			{Region: "lhr", Patterns: []*regexp.Regexp{re(`london`), re(`lhr\d*`)}},
			{Region: "nrt", Patterns: []*regexp.Regexp{re(`tokyo`), re(`nrt\d*`)}},
			{Region: "ord", Patterns: []*regexp.Regexp{re(`chicago`), re(`ord\d*`)}},
			{Region: "sea", Patterns: []*regexp.Regexp{re(`seattle`), re(`sea\d*`)}},
			{Region: "sin", Patterns: []*regexp.Regexp{re(`singapore`), re(`sin\d*`)}},
			{Region: "syd", Patterns: []*regexp.Regexp{re(`sydney`), re(`syd\d*`)}},
		}},
		{Provider: "akamai", Regions: []RegionRule{
			{Region: "ams", Patterns: []*regexp.Regexp{re(`amsterdam`), re(`ams\d*`)}},
			{Region: "atl", Patterns: []*regexp.Regexp{re(`atlanta`), re(`atl\d*`)}},
			{Region: "bos", Patterns: []*regexp.Regexp{re(`boston`), re(`bos\d*`)}},
			{Region: "cdg", Patterns: []*regexp.Regexp{re(`paris`), re(`cdg\d*`)}},
			{Region: "dfw", Patterns: []*regexp.Regexp{re(`dallas`), re(`dfw\d*`)}},
			{Region: "fra", Patterns: []*regexp.Regexp{re(`frankfurt`), re(`fra\d*`)}},
			{Region: "lax", Patterns: []*regexp.Regexp{re(`los\.angeles`), re(`lax\d*`)}},
			{Region: "lhr", Patterns: []*regexp.Regexp{re(`london`), re(`lhr\d*`)}},
			{Region: "mia", Patterns: []*regexp.Regexp{re(`miami`), re(`mia\d*`)}},
			{Region: "nrt", Patterns: []*regexp.Regexp{re(`tokyo`), re(`nrt\d*`)}},
			{Region: "ord", Patterns: []*regexp.Regexp{re(`chicago`), re(`ord\d*`)}},
			{Region: "sea", Patterns: []*regexp.Regexp{re(`seattle`), re(`sea\d*`)}},
			{Region: "sin", Patterns: []*regexp.Regexp{re(`singapore`), re(`sin\d*`)}},
			{Region: "syd", Patterns: []*regexp.Regexp{re(`sydney`), re(`syd\d*`)}},
		}},
		{Provider: "hetzner", Regions: []RegionRule{
			{Region: "fsn", Patterns: []*regexp.Regexp{re(`falkenstein`), re(`fsn\d*`)}},
			{Region: "nbg", Patterns: []*regexp.Regexp{re(`nuremberg`), re(`nbg\d*`)}},
			{Region: "hel", Patterns: []*regexp.Regexp{re(`helsinki`), re(`hel\d*`)}},
			{Region: "ash", Patterns: []*regexp.Regexp{re(`ashburn`), re(`ash\d*`)}},
			{Region: "hil", Patterns: []*regexp.Regexp{re(`hillsboro`), re(`hil\d*`)}},
		}},
		{Provider: "digitalocean", Regions: []RegionRule{
			{Region: "nyc", Patterns: []*regexp.Regexp{re(`new-york`), re(`nyc\d*`)}},
			{Region: "sfo", Patterns: []*regexp.Regexp{re(`san-francisco`), re(`sfo\d*`)}},
			{Region: "ams", Patterns: []*regexp.Regexp{re(`amsterdam`), re(`ams\d*`)}},
			{Region: "sgp", Patterns: []*regexp.Regexp{re(`singapore`), re(`sgp\d*`)}},
			{Region: "lon", Patterns: []*regexp.Regexp{re(`london`), re(`lon\d*`)}},
			{Region: "fra", Patterns: []*regexp.Regexp{re(`frankfurt`), re(`fra\d*`)}},
			{Region: "tor", Patterns: []*regexp.Regexp{re(`toronto`), re(`tor\d*`)}},
			{Region: "blr", Patterns: []*regexp.Regexp{re(`bangalore`), re(`blr\d*`)}},
		}},
		{Provider: "github", Regions: []RegionRule{
			{Region: "fra", Patterns: []*regexp.Regexp{re(`de-cix\.fra`), re(`\.fra\.github`), re(`-fra\.github`), re(`\bfra\b`), re(`frankfurt`)}},
			{Region: "sea", Patterns: []*regexp.Regexp{re(`\bsea\b`), re(`seattle`)}},
			{Region: "iad", Patterns: []*regexp.Regexp{re(`\biad\b`), re(`ashburn`), re(`washington`)}},
			{Region: "sjc", Patterns: []*regexp.Regexp{re(`\bsjc\b`), re(`san-jose`)}},
			{Region: "lhr", Patterns: []*regexp.Regexp{re(`\blhr\b`), re(`london`)}},
			{Region: "sin", Patterns: []*regexp.Regexp{re(`\bsin\b`), re(`singapore`)}},
		}},
	}

	s.countryToRegion = map[string]map[string]string{
		"aws": {
			"US": "us-east-1", "IE": "eu-west-1", "GB": "eu-west-2", "FR": "eu-west-3",
			"DE": "eu-central-1", "SG": "ap-southeast-1", "JP": "ap-northeast-1",
		},
		"gcp": {
			"US": "us-central1", "BE": "europe-west1", "GB": "europe-west2", "DE": "europe-west3",
			"NL": "europe-west4", "SG": "asia-southeast1", "JP": "asia-northeast1", "FR": "europe-west9",
		},
		"azure": {
			"US": "eastus", "IE": "northeurope", "NL": "westeurope", "FR": "francecentral",
			"DE": "germanywestcentral", "HK": "eastasia", "SG": "southeastasia",
		},
		"ovh": {
			"FR": "gra7", "DE": "fra1", "GB": "lon1", "CA": "bhs5", "PL": "waw1", "SG": "sin1", "AU": "syd1",
		},
		"digitalocean": {
			"US": "nyc", "NL": "ams", "GB": "lon", "DE": "fra", "SG": "sgp",
		},
		"hetzner": {
			"DE": "fsn", "FI": "hel", "US": "ash",
		},
		"cloudflare": {
			"US": "iad", "GB": "lhr", "DE": "fra", "SG": "sin", "FR": "cdg", "NL": "ams", "JP": "nrt",
		},
	}

	s.locationToRegion = map[string][]locationEntry{
		"aws": {
			{"virginia", "us-east-1"}, {"ohio", "us-east-2"}, {"california", "us-west-1"},
			{"oregon", "us-west-2"}, {"ireland", "eu-west-1"}, {"london", "eu-west-2"},
			{"paris", "eu-west-3"}, {"frankfurt", "eu-central-1"}, {"singapore", "ap-southeast-1"},
			{"tokyo", "ap-northeast-1"},
		},
		"gcp": {
			{"iowa", "us-central1"}, {"oregon", "us-west1"}, {"belgium", "europe-west1"},
			{"london", "europe-west2"}, {"frankfurt", "europe-west3"}, {"netherlands", "europe-west4"},
			{"paris", "europe-west9"}, {"singapore", "asia-southeast1"}, {"tokyo", "asia-northeast1"},
		},
		"azure": {
			{"virginia", "eastus"}, {"ireland", "northeurope"}, {"netherlands", "westeurope"},
			{"paris", "francecentral"}, {"frankfurt", "germanywestcentral"},
		},
		"ovh": {
			{"gravelines", "gra7"}, {"roubaix", "rbx8"}, {"strasbourg", "sbg5"},
			{"beauharnois", "bhs5"}, {"montreal", "bhs5"}, {"warsaw", "waw1"},
			{"london", "lon1"}, {"frankfurt", "fra1"}, {"singapore", "sin1"}, {"sydney", "syd1"},
		},
		"digitalocean": {
			{"new york", "nyc"}, {"san francisco", "sfo"}, {"amsterdam", "ams"},
			{"singapore", "sgp"}, {"london", "lon"}, {"frankfurt", "fra"}, {"toronto", "tor"},
			{"bangalore", "blr"},
		},
		"hetzner": {
			{"falkenstein", "fsn"}, {"nuremberg", "nbg"}, {"helsinki", "hel"},
			{"ashburn", "ash"}, {"hillsboro", "hil"},
		},
		"cloudflare": {
			{"amsterdam", "ams"}, {"atlanta", "atl"}, {"mumbai", "bom"}, {"paris", "cdg"},
			{"dallas", "dfw"}, {"frankfurt", "fra"}, {"washington", "iad"}, {"ashburn", "iad"},
			{"los angeles", "lax"}, {"london", "lhr"}, {"tokyo", "nrt"}, {"chicago", "ord"},
			{"seattle", "sea"}, {"singapore", "sin"}, {"sydney", "syd"},
		},
	}

	s.orgCountryHints = []orgCountryHint{
		{"US", []string{"united states", "usa", ", us"}},
		{"GB", []string{"united kingdom", "uk", ", gb"}},
		{"DE", []string{"germany", "deutschland", ", de"}},
		{"FR", []string{"france", ", fr"}},
		{"NL", []string{"netherlands", "holland", ", nl"}},
		{"CA", []string{"canada", ", ca"}},
		{"AU", []string{"australia", ", au"}},
		{"JP", []string{"japan", ", jp"}},
		{"CN", []string{"china", ", cn"}},
		{"IN", []string{"india", ", in"}},
		{"BR", []string{"brazil", ", br"}},
		{"RU", []string{"russia", ", ru"}},
		{"KR", []string{"korea", ", kr"}},
		{"SG", []string{"singapore", ", sg"}},
		{"IT", []string{"italy", ", it"}},
		{"ES", []string{"spain", ", es"}},
		{"CH", []string{"switzerland", ", ch"}},
		{"SE", []string{"sweden", ", se"}},
		{"NO", []string{"norway", ", no"}},
		{"DK", []string{"denmark", ", dk"}},
		{"FI", []string{"finland", ", fi"}},
		{"IE", []string{"ireland", ", ie"}},
		{"AT", []string{"austria", ", at"}},
		{"BE", []string{"belgium", ", be"}},
		{"PT", []string{"portugal", ", pt"}},
	}

	s.cdn = CDNHint{
		ProviderIDs: map[string]bool{
			"cloudflare": true, "akamai": true, "aws": true, "azure": true, "gcp": true,
		},
		ASNs: map[string]bool{
			"13335": true, // Cloudflare
			"16625": true, // Akamai
			"54113": true, // Fastly
			"16509": true, // AWS
			"8075":  true, // Microsoft
			"15169": true, // Google
		},
		OrgTokens: []string{
			"cloudflare", "akamai", "fastly", "cdn", "amazon", "aws",
			"microsoft", "azure", "google", "gcp", "limelight", "edgecast",
			"stackpath", "keycdn", "cloudfront",
		},
	}

	s.knownIATA = map[string]bool{
		"cdg": true, "ams": true, "lhr": true, "iad": true, "lax": true,
		"fra": true, "sin": true, "nrt": true, "syd": true, "dfw": true,
		"ord": true, "sea": true, "atl": true, "bom": true, "mia": true,
		"bos": true, "sjc": true,
	}

	return s
}

// IdentifyProvider returns the first provider whose indicator token is a
// case-insensitive substring of text, in declared order.
func (s *Store) IdentifyProvider(text string) (string, bool) {
	lower := strings.ToLower(text)
	for _, e := range s.hostnameIndicators {
		for _, tok := range e.Tokens {
			if strings.Contains(lower, strings.ToLower(tok)) {
				return e.Provider, true
			}
		}
	}
	return "", false
}

// IdentifyRegion returns the first region whose pattern matches text, among
// the given provider's declared region list.
func (s *Store) IdentifyRegion(provider, text string) (string, bool) {
	for _, pr := range s.regions {
		if pr.Provider != provider {
			continue
		}
		for _, rule := range pr.Regions {
			for _, p := range rule.Patterns {
				if p.MatchString(text) {
					return rule.Region, true
				}
			}
		}
		return "", false
	}
	return "", false
}

// CountryRegion looks up CountryToRegion[provider][country].
func (s *Store) CountryRegion(provider, country string) (string, bool) {
	m, ok := s.countryToRegion[provider]
	if !ok {
		return "", false
	}
	region, ok := m[country]
	return region, ok
}

// LocationRegion looks up LocationToRegion[provider] for the first token
// contained in locationText (declared order).
func (s *Store) LocationRegion(provider, locationText string) (string, bool) {
	entries, ok := s.locationToRegion[provider]
	if !ok {
		return "", false
	}
	lower := strings.ToLower(locationText)
	for _, e := range entries {
		if strings.Contains(lower, e.Token) {
			return e.Region, true
		}
	}
	return "", false
}

// OrgCountry applies the org-description country heuristic (method (d) of
// §4.3): the first known country whose hint token is contained in orgText.
func (s *Store) OrgCountry(orgText string) (string, bool) {
	lower := strings.ToLower(orgText)
	for _, h := range s.orgCountryHints {
		for _, tok := range h.Tokens {
			if strings.Contains(lower, tok) {
				return h.Country, true
			}
		}
	}
	return "", false
}

// IsCDNProvider reports whether provider is CDN-class.
func (s *Store) IsCDNProvider(provider string) bool { return s.cdn.ProviderIDs[provider] }

// IsCDNASN reports whether asn is a known CDN ASN (digits only, no "AS" prefix).
func (s *Store) IsCDNASN(asn string) bool { return s.cdn.ASNs[asn] }

// HasCDNOrgToken reports whether org contains a known CDN indicator token.
func (s *Store) HasCDNOrgToken(org string) bool {
	lower := strings.ToLower(org)
	for _, tok := range s.cdn.OrgTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// IsKnownIATA reports whether code (lowercase, three letters) is in the
// fixed IATA code set CDN hostnames are matched against.
func (s *Store) IsKnownIATA(code string) bool { return s.knownIATA[strings.ToLower(code)] }
