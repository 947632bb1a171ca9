package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/Cri010101/toelettatura-system/internal/cache"
	"github.com/Cri010101/toelettatura-system/internal/config"
	dbpkg "github.com/Cri010101/toelettatura-system/internal/db"
	"github.com/Cri010101/toelettatura-system/internal/logger"
	"github.com/Cri010101/toelettatura-system/internal/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger.Init(cfg.LogLevel, cfg.IsProduction())

	db, err := dbpkg.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := dbpkg.Bootstrap(bootCtx, db, dbpkg.Seed{
		AdminEmail:    cfg.SeedAdminEmail,
		AdminPassword: cfg.SeedAdminPassword,
	}); err != nil {
		cancel()
		log.Fatal().Err(err).Msg("failed to initialise database")
	}
	cancel()

	var catalogCache *cache.CatalogCache
	if cfg.RedisURL != "" {
		rdb, err := cache.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Warn().Err(err).Msg("redis unavailable, catalog cache disabled")
		} else {
			defer rdb.Close()
			catalogCache = cache.NewCatalogCache(rdb, cfg.CatalogCacheTTL)
		}
	}

	notifier := routes.NewNotifier(db)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	routes.RegisterRoutes(r, routes.Deps{
		DB:       db,
		Config:   cfg,
		Cache:    catalogCache,
		Notifier: notifier,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Addr()).Str("env", cfg.AppEnv).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}

	notifier.Close()

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
