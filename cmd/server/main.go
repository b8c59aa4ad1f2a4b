package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"opsportal/internal/audit"
	"opsportal/internal/auth"
	"opsportal/internal/platform/config"
	"opsportal/internal/platform/httpserver"
	"opsportal/internal/platform/logger"
	"opsportal/internal/platform/metrics"
	platformredis "opsportal/internal/platform/redis"
	"opsportal/internal/token"
	httptransport "opsportal/internal/transport/http"
	"opsportal/pkg/notify"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal services.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	m := metrics.New()

	auditStore, cleanup, err := newAuditStore(ctx, cfg)
	if err != nil {
		log.Error("audit store init failed", "error", err)
		return
	}
	defer cleanup()

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		log.Error("session store init failed", "error", err)
		return
	}

	provider := auth.NewMemoryProvider()
	if cfg.BootstrapAdminEmail != "" && cfg.BootstrapAdminPassword != "" {
		err := provider.Register(auth.Identity{
			SubjectID: "bootstrap-admin",
			Email:     cfg.BootstrapAdminEmail,
		}, cfg.BootstrapAdminPassword)
		if err != nil {
			log.Error("bootstrap admin registration failed", "error", err)
			return
		}
	}

	recorder := audit.NewRecorder(auditStore, log, m, cfg.AuditBuffer)
	tokens := token.NewService(cfg.JWTSigningKey, cfg.JWTIssuer)
	authService := auth.NewService(provider, sessionStore, tokens, recorder, log, m, cfg.SessionTTL)

	handler := httptransport.NewHandler(authService, auditStore, notify.NewLogNotifier(log), log)
	gate := httptransport.NewSessionGate(tokens, sessionStore, log)
	router := httptransport.NewRouter(handler, gate)

	srv := httpserver.New(cfg.Addr, router)

	log.Info("starting opsportal", "addr", cfg.Addr)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := recorder.Run(groupCtx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		log.Error("server exited with error", "error", err)
		return
	}
	log.Info("shutdown complete")
}

// newAuditStore picks the Postgres-backed store when a database is configured
// and falls back to the in-memory store for local runs.
func newAuditStore(ctx context.Context, cfg config.Config) (audit.Store, func(), error) {
	if cfg.Postgres.URL == "" {
		return audit.NewInMemoryStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, nil, err
	}

	store := audit.NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}
	return store, pool.Close, nil
}

// newSessionStore picks the Redis-backed store when configured, falling back
// to the in-memory store.
func newSessionStore(cfg config.Config) (auth.SessionStore, error) {
	client, err := platformredis.New(cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return auth.NewInMemorySessionStore(), nil
	}
	return auth.NewRedisSessionStore(client.Client), nil
}
