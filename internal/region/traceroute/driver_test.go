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

package traceroute

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLinesRecognizesAllThreeShapes(t *testing.T) {
	lines := []string{
		"  1.|-- edge-fra.example.net (192.168.1.1)  0.4ms",
		"  2.|-- 10.0.0.1  0.9ms",
		"  3  203.0.113.1  0.423 ms",
		"unrelated noise",
	}
	tokens := parseLines(lines)
	// mtr's "-b" classic-with-parens shape puts the resolved hostname first
	// and the raw IP in parens; the hostname is what hop-chain region
	// matching needs, so it must be the captured token, not the IP.
	assert.Equal(t, []string{"edge-fra.example.net", "10.0.0.1", "203.0.113.1"}, tokens)
}

func TestFilterAndDedupDropsPlaceholdersAndPrivateRanges(t *testing.T) {
	// 203.0.113.0/24 is reserved for documentation (RFC 5737) and has no
	// real reverse DNS, so this stays deterministic even with network access.
	tokens := []string{"???", "*", "10.0.0.1", "192.168.1.1", "203.0.113.1", "203.0.113.1", "waiting"}
	out := filterAndDedup(tokens)
	assert.Equal(t, []string{"203.0.113.1"}, out)
}

func TestFilterAndDedupPreservesFirstSeenOrder(t *testing.T) {
	tokens := []string{"203.0.113.9", "203.0.113.1", "203.0.113.9"}
	out := filterAndDedup(tokens)
	assert.Equal(t, []string{"203.0.113.9", "203.0.113.1"}, out)
}

func TestHopsFallsThroughToTraceroute(t *testing.T) {
	d := &Driver{
		LookPath: func(file string) (string, error) {
			if file == "mtr" {
				return "", errors.New("not found")
			}
			return "/usr/bin/traceroute", nil
		},
	}
	d.runCommand = func(ctx context.Context, name string, args []string) ([]string, error) {
		return []string{"  1  203.0.113.5  1.0 ms"}, nil
	}

	hops := d.Hops(context.Background(), "example.com", 5)
	assert.Equal(t, []string{"203.0.113.5"}, hops)
}

func TestHopsPrefersMTRWhenAvailable(t *testing.T) {
	d := &Driver{
		LookPath: func(file string) (string, error) { return "/usr/bin/" + file, nil },
	}
	calls := 0
	d.runCommand = func(ctx context.Context, name string, args []string) ([]string, error) {
		calls++
		return []string{"  1.|-- hop-one.example.net (203.0.113.7)  1.0ms"}, nil
	}

	hops := d.Hops(context.Background(), "example.com", 5)
	assert.Equal(t, []string{"hop-one.example.net"}, hops)
	assert.Equal(t, 1, calls, "mtr ipv4 must succeed on the first call without falling through")
}
