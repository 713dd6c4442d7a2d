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

package whoisdomain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExtractsRegistrarAndExpiryFromVerisignStyleRecord(t *testing.T) {
	raw := "Domain Name: EXAMPLE.COM\n" +
		"Registrar: Example Registrar, LLC\n" +
		"Registry Expiry Date: 2027-03-15T04:00:00Z\n"

	res := parse(raw)
	assert.Equal(t, "Example Registrar, LLC", res.Registrar)
	require.False(t, res.ExpiresAt.IsZero())
	assert.Equal(t, 2027, res.ExpiresAt.Year())
}

func TestParseStopsAtFirstExpiryDateWhenMultiplePresent(t *testing.T) {
	raw := "Registrar: First Registrar\n" +
		"Registry Expiry Date: 2025-01-01T00:00:00Z\n" +
		"Registrar Registration Expiration Date: 2099-01-01T00:00:00Z\n"

	res := parse(raw)
	assert.Equal(t, 2025, res.ExpiresAt.Year())
}

func TestParseHandlesPaidTillLabelAndDateOnlyLayout(t *testing.T) {
	raw := "paid-till: 2026-12-31\n"
	res := parse(raw)
	require.False(t, res.ExpiresAt.IsZero())
	assert.Equal(t, time.December, res.ExpiresAt.Month())
}

func TestParseReturnsZeroValueWhenNothingMatches(t *testing.T) {
	res := parse("% No match for domain\n")
	assert.Empty(t, res.Registrar)
	assert.True(t, res.ExpiresAt.IsZero())
}

func TestParseDateTriesEachLayoutInOrder(t *testing.T) {
	cases := []string{
		"2027-03-15T04:00:00Z",
		"2027-03-15 04:00:00",
		"2027-03-15",
		"15-Mar-2027",
		"20270315",
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			tm, ok := parseDate(s)
			require.True(t, ok)
			assert.Equal(t, 2027, tm.Year())
		})
	}
}

func TestParseDateRejectsUnrecognizedLayout(t *testing.T) {
	_, ok := parseDate("not a date")
	assert.False(t, ok)
}
