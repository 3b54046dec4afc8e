// Package main provides the cosmic legends API server binary.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Gzeu/cosmic-legends-server/internal/arena"
	"github.com/Gzeu/cosmic-legends-server/internal/config"
	"github.com/Gzeu/cosmic-legends-server/internal/flavor"
	"github.com/Gzeu/cosmic-legends-server/internal/game/battle"
	"github.com/Gzeu/cosmic-legends-server/internal/game/dice"
	"github.com/Gzeu/cosmic-legends-server/internal/game/herogen"
	"github.com/Gzeu/cosmic-legends-server/internal/httpapi"
	"github.com/Gzeu/cosmic-legends-server/internal/marketplace"
	"github.com/Gzeu/cosmic-legends-server/internal/observability"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/clock"
	"github.com/Gzeu/cosmic-legends-server/internal/pkg/idgen"
	"github.com/Gzeu/cosmic-legends-server/internal/roster"
	"github.com/Gzeu/cosmic-legends-server/internal/server"
	"github.com/Gzeu/cosmic-legends-server/internal/storage/memory"
	"github.com/Gzeu/cosmic-legends-server/internal/storage/postgres"
	"github.com/Gzeu/cosmic-legends-server/internal/storage/redis"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	src := dice.NewCryptoSource()
	clk := clock.New()
	group := server.NewGroup(logger)

	// Battle store
	var battleStore arena.Store
	switch cfg.Storage.Battles {
	case "redis":
		client, err := redis.NewClient(ctx, cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Fatal("connecting to redis", zap.Error(err))
		}
		logger.Info("redis connected", zap.String("addr", cfg.Redis.Addr()))
		battleStore = redis.NewBattleStore(client)
		group.Add("redis", &server.ComponentFunc{
			RunFn: func() error {
				for {
					time.Sleep(30 * time.Second)
					pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
					err := client.Ping(pingCtx).Err()
					cancel()
					if err != nil {
						logger.Warn("redis health check failed", zap.Error(err))
					}
				}
			},
			ShutdownFn: func() { _ = client.Close() },
		})
	default:
		battleStore = memory.NewBattleStore()
	}

	// Hero store
	var heroStore roster.Store
	switch cfg.Storage.Heroes {
	case "postgres":
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Duration("elapsed", time.Since(dbStart)))
		heroStore = postgres.NewHeroRepository(pool.DB())
		group.Add("postgres", &server.ComponentFunc{
			RunFn: func() error {
				for {
					time.Sleep(30 * time.Second)
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			},
			ShutdownFn: func() { pool.Close() },
		})
	default:
		heroStore = memory.NewHeroStore()
	}

	// Content library and backstory generation
	lib := herogen.DefaultLibrary()
	if cfg.Flavor.LibraryPath != "" {
		lib, err = herogen.LoadLibrary(cfg.Flavor.LibraryPath)
		if err != nil {
			logger.Fatal("loading content library", zap.Error(err))
		}
	}
	var backstories flavor.Generator
	if cfg.Flavor.APIKey != "" {
		backstories = flavor.NewAnthropic(cfg.Flavor.APIKey, cfg.Flavor.Model, cfg.Flavor.Timeout)
		logger.Info("AI backstory generation enabled", zap.String("model", cfg.Flavor.Model))
	}

	// Services
	engine := battle.NewEngine(src, idgen.NewPrefixed("action"), clk)
	arenaSvc := arena.NewService(battleStore, engine, idgen.NewPrefixed("battle"), clk, logger)
	rosterSvc := roster.NewService(heroStore, src, idgen.NewPrefixed("hero"), clk, logger)
	marketSvc := marketplace.NewService(memory.NewMarketStore(),
		idgen.NewPrefixed("listing"), idgen.NewPrefixed("bid"), clk, logger)
	generator := herogen.New(src, idgen.NewUUID("hero"), clk, lib, backstories)

	api := httpapi.New(arenaSvc, rosterSvc, marketSvc, generator, logger)
	httpServer := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      api.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	group.Add("http", &server.ComponentFunc{
		RunFn: func() error {
			err := httpServer.ListenAndServe()
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		},
		ShutdownFn: func() {
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := httpServer.Shutdown(shutdownCtx); err != nil {
				logger.Warn("http shutdown", zap.Error(err))
			}
		},
	})

	logger.Info("server initialized",
		zap.Duration("startup", time.Since(start)),
		zap.String("http_addr", cfg.Server.Addr()),
		zap.String("battle_store", cfg.Storage.Battles),
		zap.String("hero_store", cfg.Storage.Heroes))

	if err := group.Serve(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
