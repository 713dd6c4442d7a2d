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

// Package traceroute implements the Traceroute Driver (§4.5): an mtr-then-
// traceroute fallback chain that returns a deduplicated, filtered hop list
// for use by the Region Engine's hop-chain evidence source.
package traceroute

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os/exec"
	"regexp"
	"runtime"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// Per-invocation ceilings (§4.5).
const (
	mtrTimeout         = 60 * time.Second
	tracerouteTimeout  = 30 * time.Second
	mtrReportCycles    = "10"
	maxTracerouteWaitS = "2"
)

var privateBlocks = mustParseCIDRs(
	"10.0.0.0/8",
	"172.16.0.0/12",
	"192.168.0.0/16",
)

func mustParseCIDRs(cidrs ...string) []*net.IPNet {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, c := range cidrs {
		_, n, err := net.ParseCIDR(c)
		if err != nil {
			panic(err)
		}
		nets = append(nets, n)
	}
	return nets
}

// lines recognize the three hop shapes documented in §4.5:
//   - classic pipe-dash with parens: "  1.|-- 192.168.1.1 (192.168.1.1)  0.4ms"
//   - classic pipe-dash without parens: "  1.|-- 192.168.1.1  0.4ms"
//   - modern: "  1  192.168.1.1  0.423 ms"
var (
	pipeDashParens = regexp.MustCompile(`^\s*\d+\.\|--\s+(\S+)\s+\(([^)]+)\)`)
	pipeDashBare   = regexp.MustCompile(`^\s*\d+\.\|--\s+(\S+)\s*`)
	modernShape    = regexp.MustCompile(`^\s*\d+\s+(\S+)`)
)

// Driver runs the mtr/traceroute fallback chain for a target host.
type Driver struct {
	// LookPath resolves a command name to an executable path; overridable
	// in tests. Defaults to exec.LookPath.
	LookPath func(file string) (string, error)
	// runCommand executes a command and streams stdout line by line;
	// overridable in tests to avoid invoking real subprocesses.
	runCommand func(ctx context.Context, name string, args []string) ([]string, error)
}

// New returns a ready-to-use Driver backed by real subprocesses.
func New() *Driver {
	d := &Driver{LookPath: exec.LookPath}
	d.runCommand = d.execStreaming
	return d
}

// Hops implements hops(target, max_ttl) -> [hostname_or_ip] (§4.5): mtr
// IPv4, then mtr IPv6, then platform traceroute, stopping at the first
// attempt that yields at least one usable hop.
func (d *Driver) Hops(ctx context.Context, target string, maxTTL int) []string {
	if hops := d.runMTR(ctx, target, maxTTL, false); len(hops) > 0 {
		return hops
	}
	if hops := d.runMTR(ctx, target, maxTTL, true); len(hops) > 0 {
		return hops
	}
	return d.runPlatformTraceroute(ctx, target, maxTTL)
}

func (d *Driver) runMTR(ctx context.Context, target string, maxTTL int, ipv6 bool) []string {
	path, err := d.LookPath("mtr")
	if err != nil {
		log.WithError(err).Debug("mtr not available")
		return nil
	}

	// -b shows both hostname and IP per hop; -4/-6 select the address family.
	args := []string{"--report", "--report-cycles", mtrReportCycles, "-m", fmt.Sprintf("%d", maxTTL), "-b"}
	if ipv6 {
		args = append(args, "-6")
	} else {
		args = append(args, "-4")
	}
	args = append(args, target)

	ctx, cancel := context.WithTimeout(ctx, mtrTimeout)
	defer cancel()

	lines, err := d.runCommand(ctx, path, args)
	if err != nil && len(lines) == 0 {
		log.WithError(err).WithField("target", target).Debug("mtr invocation failed")
		return nil
	}
	return filterAndDedup(parseLines(lines))
}

func (d *Driver) runPlatformTraceroute(ctx context.Context, target string, maxTTL int) []string {
	name := "traceroute"
	var args []string
	if runtime.GOOS == "windows" {
		name = "tracert"
		args = []string{"-h", fmt.Sprintf("%d", maxTTL), "-w", "2000", target}
	} else {
		args = []string{"-m", fmt.Sprintf("%d", maxTTL), "-w", maxTracerouteWaitS, target}
	}

	path, err := d.LookPath(name)
	if err != nil {
		log.WithError(err).Debug("traceroute command not available")
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, tracerouteTimeout)
	defer cancel()

	lines, err := d.runCommand(ctx, path, args)
	if err != nil && len(lines) == 0 {
		log.WithError(err).WithField("target", target).Debug("traceroute invocation failed")
		return nil
	}
	return filterAndDedup(parseLines(lines))
}

func (d *Driver) execStreaming(ctx context.Context, name string, args []string) ([]string, error) {
	cmd := exec.Command(name, args...)
	setProcessGroup(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			killProcessGroup(cmd)
		case <-done:
		}
	}()

	var lines []string
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	_ = drainAndClose(stdout)

	waitErr := cmd.Wait()
	close(done)
	if ctx.Err() != nil {
		return lines, ctx.Err()
	}
	return lines, waitErr
}

func drainAndClose(r io.ReadCloser) error {
	_, _ = io.Copy(io.Discard, r)
	return r.Close()
}

// parseLines extracts the raw hostname-or-IP token from each recognized hop
// line, trying the three known shapes in order.
func parseLines(lines []string) []string {
	var tokens []string
	for _, line := range lines {
		if m := pipeDashParens.FindStringSubmatch(line); m != nil {
			tokens = append(tokens, m[1])
			continue
		}
		if m := pipeDashBare.FindStringSubmatch(line); m != nil {
			tokens = append(tokens, m[1])
			continue
		}
		if m := modernShape.FindStringSubmatch(line); m != nil {
			tokens = append(tokens, m[1])
		}
	}
	return tokens
}

// filterAndDedup drops unusable placeholders and private-range addresses,
// resolves remaining IPs via reverse DNS where possible, and deduplicates
// while preserving first-seen order (§4.5).
func filterAndDedup(tokens []string) []string {
	seen := make(map[string]bool, len(tokens))
	out := make([]string, 0, len(tokens))

	for _, tok := range tokens {
		tok = strings.TrimSuffix(strings.TrimSpace(tok), ".")
		if !usable(tok) {
			continue
		}

		resolved := tok
		if ip := net.ParseIP(tok); ip != nil {
			if isPrivate(ip) {
				continue
			}
			if names, err := net.LookupAddr(tok); err == nil && len(names) > 0 {
				resolved = strings.TrimSuffix(names[0], ".")
			}
		}

		if seen[resolved] {
			continue
		}
		seen[resolved] = true
		out = append(out, resolved)
	}
	return out
}

func usable(tok string) bool {
	switch tok {
	case "", "???", "*", "0.0.0.0", "waiting", "bbox.lan":
		return false
	}
	return true
}

func isPrivate(ip net.IP) bool {
	for _, n := range privateBlocks {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
