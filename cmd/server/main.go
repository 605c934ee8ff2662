package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/formguard/pkg/config"
	"github.com/dmitrymomot/formguard/pkg/cookie"
	"github.com/dmitrymomot/formguard/pkg/csrf"
	"github.com/dmitrymomot/formguard/pkg/httpserver"
	"github.com/dmitrymomot/formguard/pkg/logger"
	"github.com/dmitrymomot/formguard/pkg/redis"
	"github.com/dmitrymomot/formguard/pkg/requestid"
	"github.com/dmitrymomot/formguard/pkg/session"
)

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("formguard exited", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	var cfg settings
	if err := errors.Join(
		config.Load(&cfg.app),
		config.Load(&cfg.http),
		config.Load(&cfg.redis),
		config.Load(&cfg.cookie),
		config.Load(&cfg.session),
		config.Load(&cfg.csrf),
	); err != nil {
		return err
	}

	log := logger.New(
		logger.WithEnvironment(cfg.app.Env, cfg.app.Service),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	cookies, err := cookie.NewFromConfig(cfg.cookie)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	srv := httpserver.NewFromConfig(cfg.http, httpserver.WithLogger(log))
	probes := map[string]httpserver.Probe{}

	store, err := newStore(ctx, cfg, srv, probes)
	if err != nil {
		return err
	}

	sessions := session.NewFromConfig(cfg.session,
		session.WithStore(store),
		session.WithCookieManager(cookies),
		session.WithLogger(log),
	)

	guard, err := csrf.NewFromConfig(cfg.csrf)
	if err != nil {
		return fmt.Errorf("csrf manager: %w", err)
	}

	log.InfoContext(ctx, "starting formguard",
		slog.String("session_store", cfg.app.SessionStore),
		slog.Int("token_length", guard.TokenLength()),
	)

	return srv.Run(ctx, newRouter(log, sessions, guard, probes))
}

// newStore builds the session backend selected by SESSION_STORE.
func newStore(ctx context.Context, cfg settings, srv *httpserver.Server, probes map[string]httpserver.Probe) (session.Store, error) {
	switch cfg.app.SessionStore {
	case storeMemory:
		store := session.NewMemoryStore(cfg.session.CleanupInterval)
		srv.OnShutdown(func(context.Context) error { return store.Close() })
		return store, nil
	case storeRedis:
		client, err := redis.Connect(ctx, cfg.redis)
		if err != nil {
			return nil, err
		}
		srv.OnShutdown(func(context.Context) error { return client.Close() })
		probes["redis"] = redis.Healthcheck(client)
		return session.NewRedisStore(client, session.WithKeyPrefix(cfg.app.RedisPrefix)), nil
	default:
		return nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.app.SessionStore)
	}
}
