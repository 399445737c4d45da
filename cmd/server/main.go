package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/gpacalc/internal/api"
	"github.com/mmynk/gpacalc/internal/config"
	"github.com/mmynk/gpacalc/internal/metrics"
	"github.com/mmynk/gpacalc/internal/middleware"
	"github.com/mmynk/gpacalc/internal/service"
	"github.com/mmynk/gpacalc/internal/session"
	"github.com/mmynk/gpacalc/internal/storage/sqlite"
	"github.com/mmynk/gpacalc/internal/visits"
	"github.com/mmynk/gpacalc/pkg/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.LogLevel)

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	counter, closeCounter, err := newCounter(cfg)
	if err != nil {
		return err
	}
	defer closeCounter()

	registry := session.NewRegistry(cfg.SessionTTL)
	if cfg.SessionTTL > 0 {
		go registry.Run(ctx, cfg.SessionPruneInterval)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, func() float64 { return float64(registry.Len()) })

	interceptors := connect.WithInterceptors(
		middleware.RequestID(),
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(m),
	)

	mux := http.NewServeMux()

	gpaPath, gpaHandler := api.NewGPAServiceHandler(service.NewGPAService(registry, m), interceptors)
	mux.Handle(gpaPath, gpaHandler)

	visitPath, visitHandler := api.NewVisitServiceHandler(
		service.NewVisitService(counter, cfg.CounterBackend, cfg.CounterTimeout, m),
		interceptors,
	)
	mux.Handle(visitPath, visitHandler)

	mux.Handle("GET /metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr), "counter", cfg.CounterBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newCounter builds the configured visit counter and a function releasing its resources.
func newCounter(cfg config.Config) (visits.Counter, func(), error) {
	switch cfg.CounterBackend {
	case config.CounterJSONBin:
		slog.Warn("Remote visit counter does not serialize concurrent increments; counts may drift",
			"url", cfg.CounterURL,
		)
		client := &http.Client{Timeout: cfg.CounterTimeout}
		return visits.NewRemoteCounter(client, cfg.CounterURL, cfg.CounterKey), func() {}, nil
	default:
		store, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		slog.Info("Storage initialized", "database", cfg.DBPath)
		return visits.NewStoreCounter(store), func() { store.Close() }, nil
	}
}

// loggingMiddleware logs requests that do not reach a Connect handler
// (metrics scrapes, health checks, unknown paths) at debug level.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms, Request-Id")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Request-Id, Gpa-Validation-Kind")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
