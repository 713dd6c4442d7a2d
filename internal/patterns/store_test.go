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

package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifyProvider(t *testing.T) {
	store := New()

	tests := []struct {
		text string
		want string
		ok   bool
	}{
		{"ec2-1-2-3-4.compute-1.amazonaws.com", "aws", true},
		{"gra-g1.ovh.net", "ovh", true},
		{"cloudflare.com", "cloudflare", true},
		{"totally-unrelated.example", "", false},
	}
	for _, tt := range tests {
		provider, ok := store.IdentifyProvider(tt.text)
		assert.Equal(t, tt.ok, ok, tt.text)
		assert.Equal(t, tt.want, provider, tt.text)
	}
}

func TestIdentifyRegionFirstMatchWins(t *testing.T) {
	store := New()

	// "gravelines9" contains both the gra9 and the more general gra7 tokens;
	// gra9's more specific rule is declared first and must win (I7).
	region, ok := store.IdentifyRegion("ovh", "gravelines9.ovh.net")
	assert.True(t, ok)
	assert.Equal(t, "gra9", region)
}

func TestIdentifyRegionUnknownProvider(t *testing.T) {
	_, ok := New().IdentifyRegion("no-such-provider", "anything")
	assert.False(t, ok)
}

func TestCountryRegion(t *testing.T) {
	store := New()
	region, ok := store.CountryRegion("ovh", "FR")
	assert.True(t, ok)
	assert.Equal(t, "gra7", region)

	_, ok = store.CountryRegion("ovh", "ZZ")
	assert.False(t, ok)
}

func TestLocationRegion(t *testing.T) {
	store := New()
	region, ok := store.LocationRegion("aws", "somewhere in Paris, France")
	assert.True(t, ok)
	assert.Equal(t, "eu-west-3", region)
}

func TestOrgCountry(t *testing.T) {
	store := New()
	country, ok := store.OrgCountry("Some Hosting Co, France")
	assert.True(t, ok)
	assert.Equal(t, "FR", country)
}

func TestCDNHints(t *testing.T) {
	store := New()
	assert.True(t, store.IsCDNASN("13335"))
	assert.False(t, store.IsCDNASN("99999"))
	assert.True(t, store.HasCDNOrgToken("Cloudflare, Inc."))
	assert.False(t, store.HasCDNOrgToken("Some Random Hosting LLC"))
	assert.True(t, store.IsCDNProvider("cloudflare"))
	assert.False(t, store.IsCDNProvider("ovh"))
}

func TestIsKnownIATA(t *testing.T) {
	store := New()
	assert.True(t, store.IsKnownIATA("CDG"))
	assert.False(t, store.IsKnownIATA("zzz"))
}
