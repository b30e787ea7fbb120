package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/flavorquiz/backend/config"
	httpDelivery "github.com/flavorquiz/backend/internal/delivery/http"
	"github.com/flavorquiz/backend/internal/domain"
	"github.com/flavorquiz/backend/internal/infrastructure/cache"
	"github.com/flavorquiz/backend/internal/infrastructure/taxonomy"
	"github.com/flavorquiz/backend/internal/logger"
	"github.com/flavorquiz/backend/internal/usecase"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Environment, cfg.Server.LogLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := run(cfg, zlog); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, zlog *zap.Logger) error {
	zlog.Info("starting flavorquiz backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.Float64("close_threshold", cfg.Matching.CloseThreshold),
		zap.Float64("accept_threshold", cfg.Matching.AcceptThreshold),
		zap.Bool("strict_flavors", cfg.Matching.StrictFlavors),
	)

	// Initialize infrastructure dependencies
	taxonomyCache := cache.NewMemoryCache[[]domain.ProductCategoryEntry](cache.DefaultCleanupInterval)
	defer taxonomyCache.Close()

	store := taxonomy.NewStore(taxonomy.StoreConfig{
		Path: cfg.Taxonomy.Path,
		TTL:  cfg.Taxonomy.TTL,
	}, taxonomyCache, zlog)

	if store.Configured() {
		// Warm the cache; a bad file is reported per request rather than refusing to start
		if _, err := store.Entries(context.Background()); err != nil {
			zlog.Warn("taxonomy not loaded at startup", zap.Error(err))
		}
	} else {
		zlog.Info("no taxonomy configured, category fallback disabled")
	}

	// Initialize usecase layer
	validator := usecase.NewAnswerValidator(usecase.ValidatorConfig{Logger: zlog})
	answerService := usecase.NewAnswerService(validator, store, usecase.AnswerServiceConfig{
		Defaults: cfg.Matching,
	}, zlog)

	handler := httpDelivery.NewHandler(answerService, zlog)
	router := httpDelivery.SetupRouter(cfg, handler, zlog)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zlog.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(signals)

	for {
		select {
		case err, ok := <-errCh:
			if ok {
				return err
			}
			return nil
		case sig := <-signals:
			if sig == syscall.SIGHUP {
				if err := store.Invalidate(context.Background()); err != nil {
					zlog.Warn("taxonomy reload failed", zap.Error(err))
				} else {
					zlog.Info("taxonomy cache cleared, next request reloads the file")
				}
				continue
			}

			zlog.Info("shutting down", zap.String("signal", sig.String()))
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(ctx)
		}
	}
}
