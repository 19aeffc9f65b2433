package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"
	"golang.org/x/sync/errgroup"

	"github.com/playperu/countryquiz/internal/catalog"
	"github.com/playperu/countryquiz/internal/config"
	"github.com/playperu/countryquiz/internal/countryquiz"
	"github.com/playperu/countryquiz/internal/database"
	"github.com/playperu/countryquiz/internal/handler/health"
	"github.com/playperu/countryquiz/internal/server"
	"github.com/playperu/countryquiz/internal/store"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := newLogger(stdout, cfg)

	// --- Catalog ---
	countries, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return fmt.Errorf("loading catalog: %w", err)
	}
	logger.Info("loaded catalog", "countries", countries.Len(), "path", cfg.CatalogPath)

	// --- Store ---
	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()
	logger.Info("opened game state store", "backend", cfg.StoreBackend)

	// --- HTTP Server ---
	sessions := server.NewSessions(st, countries, countryquiz.NewRand(cfg.QuizSeed), cfg.SessionIdleTimeout)
	srv := server.New(cfg.HTTPAddr, logger, countries, sessions, server.NewBroker(), map[string]health.Checker{
		"store": st,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		return sessions.Run(gctx, logger, cfg.SessionSweepInterval)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func newLogger(w io.Writer, cfg *config.Config) *slog.Logger {
	if cfg.LogFormat == "text" {
		return slog.New(tint.NewHandler(w, &tint.Options{
			Level:      cfg.LogLevel,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return store.NewMemoryStore(), nil

	case "redis":
		rdb, err := store.OpenRedis(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return store.NewRedisStore(rdb, cfg.RedisPrefix), nil

	default:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("connecting to sqlite: %w", err)
		}
		s, err := store.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("preparing sqlite store: %w", err)
		}
		return s, nil
	}
}
