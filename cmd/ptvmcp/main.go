// Command ptvmcp is an MCP server exposing PTV (Public Transport Victoria)
// Timetable API data: departures, stop search, routes, disruptions, and the
// transit mode enumeration.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/melbtransit/ptvmcp/internal/config"
	"github.com/melbtransit/ptvmcp/internal/health"
	"github.com/melbtransit/ptvmcp/internal/mcpserver"
	"github.com/melbtransit/ptvmcp/internal/observe"
	"github.com/melbtransit/ptvmcp/internal/ptv"
	"github.com/melbtransit/ptvmcp/internal/transit"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "", "path to the YAML configuration file (optional)")
	transportFlag := flag.String("transport", "", "override the configured transport: stdio or http")
	flag.Parse()

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ptvmcp: %v\n", err)
		return 1
	}
	if *transportFlag != "" {
		t := config.Transport(*transportFlag)
		if !t.IsValid() {
			fmt.Fprintf(os.Stderr, "ptvmcp: unknown transport %q; valid values: stdio, http\n", *transportFlag)
			return 1
		}
		cfg.Server.Transport = t
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	// The stdio transport owns stdout, so logs always go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Server.LogLevel.Level(),
	}))
	slog.SetDefault(logger)

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Observability ─────────────────────────────────────────────────────────
	shutdown, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:    "ptvmcp",
		ServiceVersion: version,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", "err", err)
		}
	}()
	metrics := observe.DefaultMetrics()

	// ── PTV client activation ─────────────────────────────────────────────────
	desc := cfg.Descriptor()
	var facade *transit.Facade
	client, err := desc.Activate(ptv.WithMetrics(metrics))
	switch {
	case err == nil:
		facade = transit.New(client, transit.Caps{
			MaxDepartures:         cfg.Display.MaxDepartures,
			MaxStops:              cfg.Display.MaxStops,
			MaxRoutes:             cfg.Display.MaxRoutes,
			MaxDisruptionsPerMode: cfg.Display.MaxDisruptionsPerMode,
		})
	case errors.Is(err, ptv.ErrMissingCredentials):
		// Introspection still works: hosts can list tools, prompts, and
		// resources; data tools report the configuration error in-band.
		slog.Warn("PTV credentials not configured; data tools will return a configuration error",
			"hint", "set "+ptv.EnvDevID+" and "+ptv.EnvDevKey)
	default:
		slog.Error("failed to activate PTV client", "err", err)
		return 1
	}

	srv := mcpserver.New(mcpserver.Options{
		Version:    version,
		Descriptor: desc,
		Facade:     facade,
		Metrics:    metrics,
	})

	slog.Info("ptvmcp starting",
		"version", version,
		"transport", cfg.Server.Transport,
		"base_url", desc.BaseURL,
		"api_version", desc.Version,
		"credentials_configured", desc.KeyConfigured(),
	)

	// ── Serve ─────────────────────────────────────────────────────────────────
	switch cfg.Server.Transport {
	case config.TransportHTTP:
		err = serveHTTP(ctx, cfg, srv, desc, metrics)
	default:
		err = srv.Run(ctx)
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "err", err)
		return 1
	}

	slog.Info("shutdown complete")
	return 0
}

// serveHTTP runs the streamable-HTTP transport together with health and
// metrics endpoints, shutting down gracefully when ctx is cancelled.
func serveHTTP(ctx context.Context, cfg *config.Config, srv *mcpserver.Server, desc ptv.Descriptor, metrics *observe.Metrics) error {
	mux := http.NewServeMux()
	mux.Handle("/mcp", srv.Handler())
	mux.Handle("GET /metrics", promhttp.Handler())

	health.New(health.Checker{
		Name: "credentials",
		Check: func(context.Context) error {
			if !desc.KeyConfigured() {
				return ptv.ErrMissingCredentials
			}
			return nil
		},
	}).Register(mux)

	httpSrv := &http.Server{
		Addr:    cfg.Server.ListenAddr,
		Handler: observe.Middleware(metrics)(mux),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("http server listening", "addr", cfg.Server.ListenAddr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpSrv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
