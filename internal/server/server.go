// Package server provides the worldclock service lifecycle runner:
// signal handling, config loading, observability init, the game-clock
// tick loop, the read-only HTTP display surface, and graceful shutdown.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/r4nd0lph-c/Playground2D/internal/config"
	"github.com/r4nd0lph-c/Playground2D/internal/gameclock"
	"github.com/r4nd0lph-c/Playground2D/internal/observability"
)

// Shutdown budget: drain delay lets a load balancer see the 503 before
// the listener closes; the overall graceful window is their sum plus the
// OTel flush.
const (
	ShutdownDrainDelay  = 200 * time.Millisecond
	ShutdownHTTPTimeout = 10 * time.Second
	ShutdownOTELTimeout = 5 * time.Second
)

// Params configures the service lifecycle runner.
type Params struct {
	// Name identifies the service (e.g. "worldclock").
	Name string

	// PortFromConfig extracts the HTTP port for this service from config.
	PortFromConfig func(cfg *config.Config) int
}

// Run executes the full service lifecycle. If ln is non-nil, it is used
// instead of creating a new listener from config (enables port-0
// testing). The game clock ticks for as long as the service runs; the
// HTTP surface only reads it.
func Run(ctx context.Context, p Params, ln net.Listener) error {
	// Signal-based cancellation: ctx.Done() closes on SIGTERM/SIGINT.
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: p.Name,
		Environment: cfg.Environment,
	})

	// --- Startup order: tracer -> metrics -> driver -> HTTP server ---

	tracerProvider, err := observability.InitTracer(ctx, observability.TracerConfig{
		ServiceName:    p.Name,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize tracer: %w", err)
	}

	metricsProvider, err := observability.InitMetrics(ctx, observability.MetricsConfig{
		ServiceName:    p.Name,
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTEL.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	driver, err := gameclock.New(gameclock.Options{
		Logger: logger,
		Scale:  cfg.Clock.Scale,
		Paused: cfg.Clock.Paused,
		Start:  cfg.Clock.StartAbsolute,
	})
	if err != nil {
		return fmt.Errorf("create game clock: %w", err)
	}
	if err := gameclock.SetDefault(driver); err != nil {
		return fmt.Errorf("install default game clock: %w", err)
	}
	defer gameclock.ResetDefault()

	// Health check shutdown coordination via atomic flag.
	var shuttingDown atomic.Bool

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if shuttingDown.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			fmt.Fprintf(w, `{"status":"shutting_down","service":%q}`, p.Name)
			return
		}
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","service":%q}`, p.Name)
	})
	mux.HandleFunc("/time", timeHandler(driver, logger))

	// Bind listener (use injected listener or create from config).
	if ln == nil {
		ln, err = (&net.ListenConfig{}).Listen(ctx, "tcp", fmt.Sprintf(":%d", p.PortFromConfig(cfg)))
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	}

	server := &http.Server{
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Structured concurrency via errgroup ---
	g, ctx := errgroup.WithContext(ctx)

	// Goroutine 1: tick the game clock.
	g.Go(func() error {
		return driver.Run(ctx, cfg.Clock.TickInterval)
	})

	// Goroutine 2: Serve HTTP
	g.Go(func() error {
		logger.Info("starting HTTP server",
			slog.String("addr", ln.Addr().String()),
			slog.String("environment", cfg.Environment),
		)
		if serveErr := server.Serve(ln); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			return serveErr
		}
		return nil
	})

	// Goroutine 3: Shutdown trigger - waits for context cancellation,
	// then drains in explicit reverse of startup: HTTP -> metrics -> tracer.
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("received shutdown signal, starting graceful shutdown")

		shuttingDown.Store(true)
		time.Sleep(ShutdownDrainDelay)

		httpCtx, httpCancel := context.WithTimeout(context.Background(), ShutdownHTTPTimeout)
		defer httpCancel()
		if shutdownErr := server.Shutdown(httpCtx); shutdownErr != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", shutdownErr.Error()))
		}

		otelCtx, otelCancel := context.WithTimeout(context.Background(), ShutdownOTELTimeout)
		defer otelCancel()
		if shutdownErr := metricsProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown metrics", slog.String("error", shutdownErr.Error()))
		}
		if shutdownErr := tracerProvider.Shutdown(otelCtx); shutdownErr != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", shutdownErr.Error()))
		}

		logger.Info("shutdown complete")
		return nil
	})

	return g.Wait()
}

// timeResponse is the read-only display payload. The canonical display
// string is the only serialization of the structured time.
type timeResponse struct {
	AbsoluteSeconds float64 `json:"absolute_seconds"`
	Display         string  `json:"display"`
	Scale           float64 `json:"scale"`
	Paused          bool    `json:"paused"`
}

// timeHandler serves the current game time. It is a display consumer:
// it reads the clock and renders, never controls it.
func timeHandler(driver *gameclock.Driver, logger *slog.Logger) http.HandlerFunc {
	tracer := observability.Tracer("server")
	return func(w http.ResponseWriter, r *http.Request) {
		_, span := tracer.Start(r.Context(), "time.render")
		defer span.End()

		current, err := driver.Current()
		if err != nil {
			// Only reachable once the accumulated time overflows the
			// calendar's year bound.
			logger.Error("game time not representable", slog.String("error", err.Error()))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"game time out of calendar range"}`)
			return
		}

		resp := timeResponse{
			AbsoluteSeconds: driver.Absolute(),
			Display:         current.String(),
			Scale:           driver.Scale(),
			Paused:          driver.IsPaused(),
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if encodeErr := json.NewEncoder(w).Encode(resp); encodeErr != nil {
			logger.Error("encode time response", slog.String("error", encodeErr.Error()))
		}
	}
}
