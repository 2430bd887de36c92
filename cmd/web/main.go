// @title        FitFlow Web
// @version      1.0
// @description  JSON endpoints of the FitFlow gym-membership web frontend.
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	_ "github.com/fitflow/fitflow-web/docs"
	"github.com/fitflow/fitflow-web/internal/api"
	"github.com/fitflow/fitflow-web/internal/core/ports"
	"github.com/fitflow/fitflow-web/internal/infrastructure/backend"
	"github.com/fitflow/fitflow-web/internal/infrastructure/db/memory"
	mongostore "github.com/fitflow/fitflow-web/internal/infrastructure/db/mongo"
	redisstore "github.com/fitflow/fitflow-web/internal/infrastructure/db/redis"
	"github.com/fitflow/fitflow-web/internal/pkg/config"
	"github.com/fitflow/fitflow-web/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.IsDevelopment(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, guard, closeStore, err := openSessionBackend(ctx, cfg, logger.Component("session_store"))
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Session.Backend).Msg("failed to open session store")
	}
	defer closeStore()

	client := backend.NewClient(backend.Config{
		BaseURL: cfg.Backend.URL,
		Timeout: cfg.Backend.Timeout,
	}, store, logger.Component("backend"))

	e, err := api.NewRouter(api.Dependencies{
		Store:   store,
		Backend: client,
		Guard:   guard,
		Log:     log,
	}, api.Options{
		SessionKey:    secret(cfg.Session.Key, "SESSION_KEY", log),
		CSRFKey:       secret(cfg.Session.CSRFKey, "CSRF_KEY", log),
		SessionMaxAge: cfg.Session.MaxAge,
		CookieSecure:  cfg.Session.CookieSecure,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build router")
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend_url", cfg.Backend.URL).Msg("fitflow web listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// openSessionBackend connects the configured session store and the submit guard
// that goes with it.
func openSessionBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (ports.SessionStore, ports.SubmitGuard, func(), error) {
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		closeFn := func() {
			if err := rdb.Close(); err != nil {
				log.Error().Err(err).Msg("redis close")
			}
		}
		return redisstore.NewSessionStore(rdb, cfg.Session.TTL),
			redisstore.NewSubmitGuard(rdb, cfg.Session.SubmitGuardTTL),
			closeFn, nil

	case config.SessionBackendMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		store := mongostore.NewSessionStore(db, cfg.Session.TTL)
		guard := mongostore.NewSubmitGuard(db, cfg.Session.SubmitGuardTTL)
		for _, ensure := range []func(context.Context) error{store.EnsureIndexes, guard.EnsureIndexes} {
			if err := ensure(ctx); err != nil {
				_ = client.Disconnect(ctx)
				return nil, nil, nil, err
			}
		}
		closeFn := func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("mongo disconnect")
			}
		}
		return store, guard, closeFn, nil
	}

	log.Warn().Msg("using in-memory session store; sessions are lost on restart")
	return memory.NewSessionStore(), memory.NewSubmitGuard(cfg.Session.SubmitGuardTTL), func() {}, nil
}

// secret returns value as bytes, or a random 32-byte key when it is unset.
func secret(value, name string, log zerolog.Logger) []byte {
	if value != "" {
		return []byte(value)
	}
	log.Warn().Str("var", name).Msg("not set; using a random key that changes on restart")
	return securecookie.GenerateRandomKey(32)
}
