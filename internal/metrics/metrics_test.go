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

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aboutmoi/douro/internal/model"
)

func TestSetPopulatesInfoGaugeWithUnknownForMissingFields(t *testing.T) {
	c := New()

	info := model.New("example.com")
	info.HTTPStatus = 200

	c.Set([]*model.DomainInfo{info}, 1.5)

	value := testutil.ToFloat64(c.info.WithLabelValues("example.com", unknown, unknown, unknown, unknown, unknown, unknown, "false"))
	assert.Equal(t, float64(1), value)
}

func TestSetResetsBetweenIterations(t *testing.T) {
	c := New()

	first := model.New("a.example")
	first.HTTPStatus = 200
	c.Set([]*model.DomainInfo{first}, 1.0)
	require.Equal(t, float64(200), testutil.ToFloat64(c.httpStatus.WithLabelValues("a.example")))

	// a.example absent from the second iteration: its series must be gone.
	second := model.New("b.example")
	c.Set([]*model.DomainInfo{second}, 1.0)

	count, err := testutil.GatherAndCount(c.registry, "douro_http_status_code")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSetMarksScrapeErrorPerStage(t *testing.T) {
	c := New()

	info := model.New("example.com")
	info.SetError("dns", assertError("boom"))

	c.Set([]*model.DomainInfo{info}, 1.0)

	assert.Equal(t, float64(1), testutil.ToFloat64(c.scrapeError.WithLabelValues("example.com", "dns")))
	assert.Equal(t, float64(0), testutil.ToFloat64(c.scrapeError.WithLabelValues("example.com", "https")))
}

type assertError string

func (e assertError) Error() string { return string(e) }
