package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/api"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/cache"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/cache/memory"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/cache/redis"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/config"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/dataset"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/loader"
	"github.com/WambuaRack/Business-Analyst-Job-Listings/internal/telemetry"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return zap.NewProduction()
}

func newCache(cfg *config.Config) cache.Cache {
	opts := cache.Options{
		DefaultTTL:    cfg.CacheTTL,
		RedisURL:      cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	}
	if cfg.CacheBackend == "redis" {
		return redis.New(opts)
	}
	return memory.New(opts)
}

func newLoader(logger *zap.Logger) *loader.Loader {
	return loader.New(logger)
}

func newStore(l *loader.Loader, c cache.Cache, logger *zap.Logger, cfg *config.Config) *dataset.Store {
	return dataset.NewStore(l, c, logger, cfg.CacheTTL)
}

func newRouter(handler *api.Handler) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)
	return r
}

func initTracing(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) error {
	if !cfg.TracingEnabled {
		return nil
	}

	shutdown, err := telemetry.InitTracer(context.Background(), "job-listings-dashboard", cfg.OTELCollectorURL)
	if err != nil {
		return err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdown()
			return nil
		},
	})
	return nil
}

func registerServer(lc fx.Lifecycle, router *gin.Engine, cfg *config.Config, logger *zap.Logger, c cache.Cache) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("starting dashboard API",
				zap.String("addr", cfg.HTTPAddr),
				zap.String("dataset_path", cfg.DatasetPath),
				zap.String("cache_backend", cfg.CacheBackend))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("http server failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			return c.Close()
		},
	})
}

func main() {
	app := fx.New(
		fx.Provide(
			config.LoadConfig,
			newLogger,
			newCache,
			newLoader,
			newStore,
			api.NewHandler,
			newRouter,
		),
		fx.Invoke(
			initTracing,
			registerServer,
		),
	)

	startCtx := context.Background()
	if err := app.Start(startCtx); err != nil {
		log.Fatal(err)
	}

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	<-c

	stopCtx := context.Background()
	if err := app.Stop(stopCtx); err != nil {
		log.Fatal(err)
	}
}
