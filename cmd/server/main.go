// BookStar - Hybrid Book Recommendation Service
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command server runs the BookStar recommendation HTTP service.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/bookstar/bookstar/internal/api"
	"github.com/bookstar/bookstar/internal/config"
	"github.com/bookstar/bookstar/internal/database"
	"github.com/bookstar/bookstar/internal/logging"
	"github.com/bookstar/bookstar/internal/recommend"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		logging.Fatal().Err(err).Msg("Server failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("version", version).
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Msg("Starting BookStar")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Failed to close database")
		}
	}()

	if cfg.Database.Seed {
		if err := db.Seed(context.Background()); err != nil {
			return fmt.Errorf("seed database: %w", err)
		}
	}

	engine, err := recommend.NewEngine(engineConfig(cfg), logging.Logger())
	if err != nil {
		return fmt.Errorf("create engine: %w", err)
	}
	engine.SetDataProvider(db)

	router := api.NewRouter(api.NewHandler(cfg, db, engine))
	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logging.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}

	logging.Info().Msg("Server stopped")
	return nil
}

// engineConfig maps the service configuration onto the engine's own config.
func engineConfig(cfg *config.Config) recommend.Config {
	return recommend.Config{
		Weights: recommend.WeightConfig{
			ReadBook:           cfg.Recommendation.ReadBookWeight,
			UnreadBook:         cfg.Recommendation.UnreadBookWeight,
			CategoryPreference: cfg.Recommendation.CategoryPreferenceWeight,
			AuthorPreference:   cfg.Recommendation.AuthorPreferenceWeight,
			Content:            cfg.Recommendation.ContentWeight,
			Collaborative:      cfg.Recommendation.CollaborativeWeight,
		},
		Limits: recommend.LimitConfig{
			DefaultCount: cfg.Recommendation.DefaultRecommendationsCount,
			SimilarUsers: cfg.Recommendation.SimilarUsersCount,
		},
		Cache: recommend.CacheConfig{
			TTL: cfg.Recommendation.CacheTTL,
		},
	}
}
