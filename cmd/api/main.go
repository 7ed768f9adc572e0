// Package main is the entry point for the guest bookings API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pkordes/guestbook/internal/config"
	"github.com/pkordes/guestbook/internal/handler"
	"github.com/pkordes/guestbook/internal/metrics"
	"github.com/pkordes/guestbook/internal/middleware"
	"github.com/pkordes/guestbook/internal/registry"
	"github.com/pkordes/guestbook/internal/repo"
	"github.com/pkordes/guestbook/internal/service"
	"github.com/pkordes/guestbook/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// The default logger writes to stderr until ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Registry ---------------------------------------------------------
	// One registry per process: the session is the lifetime of the server.
	bookings := registry.New(logger.With("component", "registry"))

	// --- Metrics ----------------------------------------------------------
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics, err := metrics.New(promReg)
	if err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}
	unsubscribeMetrics := bookings.Subscribe(bookingMetrics.Observe)
	defer unsubscribeMetrics()

	// --- Journal (optional) -----------------------------------------------
	opts := []service.Option{service.WithLogger(logger)}
	if cfg.JournalEnabled() {
		pool, err := openJournalDB(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to open journal database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		opts = append(opts, service.WithJournal(repo.NewJournalRepo(pool)))
		slog.Info("booking journal enabled")
	} else {
		slog.Info("DATABASE_URL not set; booking journal disabled")
	}

	svc := service.NewBookingService(bookings, opts...)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → MaxBodySize.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	r.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	r.Mount("/", handler.NewServer(svc, bookings, logger).Routes())

	// --- HTTP Server ------------------------------------------------------
	// No WriteTimeout: /bookings/stream holds its response open for as long
	// as the client stays connected.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing. Cancelling
	// baseCtx ends open snapshot streams.
	baseCtx, cancelStreams := context.WithCancel(context.Background())
	srv.BaseContext = func(_ net.Listener) context.Context { return baseCtx }

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")
	cancelStreams()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped", "bookings", bookings.Len())
}

// openJournalDB connects to Postgres, verifies the connection and applies
// any pending migrations.
func openJournalDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	// goose needs a *sql.DB; OpenDBFromPool shares the pgx pool's connections.
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		pool.Close()
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		pool.Close()
		return nil, err
	}
	slog.Info("journal migrations applied", "count", len(results))
	return pool, nil
}
