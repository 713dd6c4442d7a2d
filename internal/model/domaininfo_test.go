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

package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewIsEmpty(t *testing.T) {
	info := New("example.com")
	assert.Equal(t, "example.com", info.Domain)
	assert.True(t, info.Unresolved())
	assert.Empty(t, info.FirstIP())
	assert.False(t, info.HasRegistrar())
	assert.False(t, info.HasDomainExpiry())
	assert.False(t, info.HasTLSExpiry())
	assert.Empty(t, info.Errors)
}

func TestFirstIPPrefersFirstEntry(t *testing.T) {
	info := New("example.com")
	info.IPs = []string{"1.2.3.4", "5.6.7.8"}
	assert.Equal(t, "1.2.3.4", info.FirstIP())
	assert.False(t, info.Unresolved())
}

func TestHasExpiryFields(t *testing.T) {
	info := New("example.com")
	info.DomainExpires = time.Now()
	info.TLSExpires = time.Now()
	assert.True(t, info.HasDomainExpiry())
	assert.True(t, info.HasTLSExpiry())
}

func TestSetErrorRecordsMessage(t *testing.T) {
	info := New("example.com")
	info.SetError("dns", errors.New("no records"))
	assert.Equal(t, "no records", info.Errors["dns"])
}

func TestSetErrorOnNilMap(t *testing.T) {
	info := &DomainInfo{Domain: "example.com"}
	info.SetError("dns", errors.New("no records"))
	assert.Equal(t, "no records", info.Errors["dns"])
}
