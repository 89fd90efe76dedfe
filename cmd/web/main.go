package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/api"
	"github.com/eventtune/web/internal/api/handler"
	"github.com/eventtune/web/internal/core/ports"
	"github.com/eventtune/web/internal/infrastructure/backend"
	"github.com/eventtune/web/internal/infrastructure/db/memory"
	mongostore "github.com/eventtune/web/internal/infrastructure/db/mongo"
	redisstore "github.com/eventtune/web/internal/infrastructure/db/redis"
	"github.com/eventtune/web/internal/infrastructure/jobs"
	"github.com/eventtune/web/internal/pkg/config"
	"github.com/eventtune/web/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "eventtune-web",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, checks, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("store", cfg.Session.Store).Msg("session store unavailable")
	}
	defer closeStore()

	transport, err := backend.NewTransport(backend.Config{
		BaseURL:          cfg.Backend.URL,
		Timeout:          cfg.Backend.Timeout,
		MaxResponseBytes: cfg.Backend.MaxResponseBytes,
	}, logger.Component("backend"))
	if err != nil {
		log.Fatal().Err(err).Msg("invalid backend configuration")
	}

	router := api.NewRouter(api.Deps{
		Backend:       transport,
		Store:         store,
		Checks:        checks,
		SecureCookies: cfg.Session.CookieSecure,
		Log:           log,
	})

	runner := housekeeping(router.Dashboards, store, cfg, logger.Component("jobs"))
	runner.Start(ctx)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("graceful shutdown failed")
		}
	}()

	log.Info().
		Str("port", cfg.Port).
		Str("backend", cfg.Backend.URL).
		Str("store", cfg.Session.Store).
		Msg("listening")

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("server stopped")
	}
	runner.Wait()
	log.Info().Msg("server closed")
}

// openStore connects the configured token slot backend and returns its
// readiness checks and a close func.
func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.TokenStore, map[string]handler.Check, func(), error) {
	switch cfg.Session.Store {
	case config.StoreRedis:
		store, err := redisstore.Open(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Session.TTL,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		return store, map[string]handler.Check{"redis": store.Ping}, closer(store, "redis", log), nil

	case config.StoreMongo:
		store, err := mongostore.Open(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
			TTL:      cfg.Session.TTL,
		})
		if store == nil {
			return nil, nil, nil, err
		}
		if err != nil {
			log.Warn().Err(err).Msg("session ttl index not created")
		}
		return store, map[string]handler.Check{"mongodb": store.Ping}, closer(store, "mongodb", log), nil

	default:
		store := memory.NewTokenStore(cfg.Session.TTL)
		return store, map[string]handler.Check{"memory": store.Ping}, func() {}, nil
	}
}

func closer(s interface{ Close(context.Context) error }, name string, log zerolog.Logger) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.Close(ctx); err != nil {
			log.Warn().Err(err).Str("store", name).Msg("session store close failed")
		}
	}
}

// housekeeping sweeps idle dashboards and, for the in-memory store, expired
// sessions. A zero interval disables the job.
func housekeeping(d *handler.DashboardHandler, store ports.TokenStore, cfg *config.Config, log zerolog.Logger) *jobs.Runner {
	idle := cfg.Dashboard.IdleTTL
	sweep := jobs.Job{
		Name:     "dashboard_sweep",
		Interval: idle / 2,
		Run: func(context.Context) (int, error) {
			return d.Sweep(idle), nil
		},
	}

	purge := jobs.Job{Name: "session_purge"}
	if mem, ok := store.(*memory.TokenStore); ok {
		purge.Interval = cfg.Session.TTL
		purge.Run = func(context.Context) (int, error) {
			return mem.Purge(), nil
		}
	}
	return jobs.NewRunner(log, sweep, purge)
}
