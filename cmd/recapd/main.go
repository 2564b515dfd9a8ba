// Command recapd serves movie and series recaps over HTTP.
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

	"github.com/spf13/afero"

	"recapstream/api"
	"recapstream/config"
	"recapstream/handlers"
	"recapstream/internal/logging"
	"recapstream/services/canon"
	"recapstream/services/llm"
	"recapstream/services/metadata"
	"recapstream/services/recap"
	"recapstream/utils"
)

const shutdownGrace = 15 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("recapd exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, closer := logging.Init(cfg.Log)
	defer closer.Close()

	httpc := &http.Client{}
	tmdb := metadata.NewTMDBClient(cfg.TMDB, afero.NewOsFs(), httpc)

	// A nil interface, not a nil *Fetcher, disables enrichment.
	var canonSrc recap.CanonSource
	if cfg.Canon.Enabled {
		fetcher := canon.NewFetcher(cfg.Canon, httpc)
		canonSrc = fetcher
		log.Info("canon enrichment enabled", "strategies", fetcher.Strategies())
	}

	gen, err := llm.NewFromConfig(cfg.LLM, httpc)
	if err != nil {
		return fmt.Errorf("llm: %w", err)
	}

	cache := recap.NewResultCache(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	svc := recap.NewService(
		recap.NewContextBuilder(tmdb, canonSrc),
		gen,
		llm.PolicyFromConfig(cfg.Retry),
		cache,
		cfg.Recap.ChunkEpisodeLimit,
	)

	r := utils.NewRouter(utils.RouterOptions{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Health: func() map[string]any {
			return map[string]any{
				"cacheEntries": cache.Len(),
				"llmProvider":  cfg.LLM.Provider,
				"canon":        cfg.Canon.Enabled,
			}
		},
	})
	r.Use(api.RequestLogger)

	recapRoutes := r.NewRoute().Subrouter()
	recapRoutes.Use(api.APIKeyMiddleware(cfg.Server.APIKey), api.RateLimit(cfg.Server.RateLimit))
	recapHandler := handlers.NewRecapHandler(svc, svc.Cache())
	recapHandler.Metadata = tmdb
	recapHandler.RegisterRoutes(recapRoutes)

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           r,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", srv.Addr, "llm_provider", cfg.LLM.Provider, "llm_model", cfg.LLM.Model)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
