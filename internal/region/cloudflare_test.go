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

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCloudflareIPv6Region(t *testing.T) {
	tests := []struct {
		name   string
		ip     string
		region string
		ok     bool
	}{
		{"cdg sub-block", "2606:4700:10::1", "cdg", true},
		{"ams sub-block", "2606:4700:14::1", "ams", true},
		{"lhr sub-block", "2606:4700:18::1", "lhr", true},
		{"iad sub-block", "2606:4700:20::1", "iad", true},
		{"lax sub-block", "2606:4700:24::1", "lax", true},
		{"european block, unclassified sub-range", "2606:4700:1c::1", "cdg", true},
		{"outside both macro sub-blocks, in the /32", "2606:4700:30::1", "iad", true},
		{"outside the /32 block entirely", "2a00::1", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			region, ok := cloudflareIPv6Region(net.ParseIP(tt.ip))
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.region, region)
		})
	}
}

func TestCloudflareIPv6RegionRejectsIPv4(t *testing.T) {
	_, ok := cloudflareIPv6Region(net.ParseIP("104.16.1.1"))
	assert.False(t, ok)
}

func TestAkamaiIPv6Region(t *testing.T) {
	region, ok := akamaiIPv6Region(net.ParseIP("2a02:26f0:2b80::1"))
	assert.True(t, ok)
	assert.Equal(t, "ams", region)

	region, ok = akamaiIPv6Region(net.ParseIP("2a02:26f0:1::1"))
	assert.True(t, ok)
	assert.Empty(t, region)

	_, ok = akamaiIPv6Region(net.ParseIP("2606:4700::1"))
	assert.False(t, ok)
}
