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

// Package exporter is the composition root: it parses flags, loads and
// validates configuration, wires every probe and owned process-wide state
// together, and runs the metrics/health servers and the scheduler loop
// until signalled to stop.
package exporter

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/aboutmoi/douro/internal/health"
	"github.com/aboutmoi/douro/internal/metrics"
	"github.com/aboutmoi/douro/internal/patterns"
	"github.com/aboutmoi/douro/internal/pipeline"
	"github.com/aboutmoi/douro/internal/probe/dnsprobe"
	"github.com/aboutmoi/douro/internal/probe/httpsprobe"
	"github.com/aboutmoi/douro/internal/probe/rdap"
	"github.com/aboutmoi/douro/internal/probe/whoisdomain"
	"github.com/aboutmoi/douro/internal/region"
	"github.com/aboutmoi/douro/internal/region/traceroute"
	"github.com/aboutmoi/douro/internal/scheduler"
	"github.com/aboutmoi/douro/pkg/apis/douro"
	"github.com/aboutmoi/douro/pkg/apis/douro/validation"
)

// Version is set at build time via -ldflags.
var Version = "dev"

// Flags holds the handful of CLI overrides exposed alongside the JSON
// config file; most configuration lives in the file and its DOURO_* env
// overrides (§6).
type Flags struct {
	ConfigPath string
	HealthPort int

	// healthPortSet is true when --health-port or DOURO_HEALTH_PORT was
	// explicitly given. When false, the health port defaults to
	// exporter.port + 1 once the config file is loaded (§6), not to a
	// fixed constant.
	healthPortSet bool
}

// ParseFlags parses os.Args[1:] into Flags using kingpin.
func ParseFlags(args []string) (*Flags, error) {
	app := kingpin.New("douro-exporter", "Periodic hosting-infrastructure probe and Prometheus exporter.")
	f := &Flags{}

	app.Flag("config", "Path to the JSON configuration file.").
		Default("/etc/douro/config.json").
		Envar("DOURO_CONFIG").
		StringVar(&f.ConfigPath)
	app.Flag("health-port", "Port for the /health, /ready, and /live endpoints. Defaults to exporter.port + 1.").
		Envar("DOURO_HEALTH_PORT").
		IsSetByUser(&f.healthPortSet).
		IntVar(&f.HealthPort)

	if _, err := app.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}
	// IsSetByUser only tracks the command line; an env-supplied value is
	// an explicit override too.
	if os.Getenv("DOURO_HEALTH_PORT") != "" {
		f.healthPortSet = true
	}
	return f, nil
}

// resolveHealthPort returns the health port to bind: the explicit
// --health-port/DOURO_HEALTH_PORT override if the user gave one, otherwise
// exporter.port + 1 from the loaded config (§6).
func resolveHealthPort(flags *Flags, cfg *douro.Config) int {
	if flags.healthPortSet {
		return flags.HealthPort
	}
	return cfg.Exporter.Port + 1
}

// Execute is the composition root. It exits the process with status 1 on
// any startup failure (§4.10).
func Execute() {
	flags, err := ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := douro.Load(flags.ConfigPath)
	if err != nil {
		log.Fatal(err)
	}
	if err := validation.ValidateConfig(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}

	configureLogger(cfg.Monitoring)
	log.Infof("douro-exporter %s starting: %d domains configured (%d enabled)", Version, cfg.DomainCount(), cfg.EnabledDomainCount())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSigterm(cancel)

	collector := metrics.New()
	healthMonitor := health.New(Version, "production")

	store := patterns.New()
	dnsResolver := &dnsprobe.Resolver{}
	whoisDomainProber := whoisdomain.New()
	whoisIPProber := rdap.New()
	hopDriver := traceroute.New()
	regionEngine := region.New(store, hopDriver)
	httpsProber := httpsprobe.New(cfg.Exporter.Timeout())

	pipe := pipeline.New(dnsResolver, whoisDomainProber, whoisIPProber, regionEngine, httpsProber, store)

	sched := scheduler.New(pipe, collector, healthMonitor, cfg.Exporter.Interval(), cfg.EnabledDomains())

	go serveMetrics(fmt.Sprintf(":%d", cfg.Exporter.Port), collector)
	go serveHealth(fmt.Sprintf(":%d", resolveHealthPort(flags, cfg)), healthMonitor)

	sched.Run(ctx)
}

func configureLogger(m douro.MonitoringConfig) {
	name := m.LogLevel
	if strings.EqualFold(name, "CRITICAL") {
		// logrus has no "critical" level; fatal is its level above error.
		name = "fatal"
	}
	level, err := log.ParseLevel(name)
	if err != nil {
		log.Fatalf("invalid log level %q: %v", m.LogLevel, err)
	}
	log.SetLevel(level)
	if m.EnableVerboseLogging {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

func handleSigterm(cancel func()) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGTERM, syscall.SIGINT)
	<-signals
	log.Info("received termination signal, shutting down")
	cancel()
}

func serveMetrics(address string, collector *metrics.Collector) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(collector.Registry(), promhttp.HandlerOpts{}))

	log.Debugf("serving metrics on %s/metrics", address)
	server := &http.Server{Addr: address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func serveHealth(address string, monitor *health.Monitor) {
	mux := http.NewServeMux()
	monitor.RegisterHandlers(mux)

	log.Debugf("serving health endpoints on %s", address)
	server := &http.Server{Addr: address, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}
