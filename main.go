package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	authzService "schoolku_backend/internals/features/platform/authz/service"
	scheduler "schoolku_backend/internals/features/users/auth/scheduler"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/storage"
	middlewares "schoolku_backend/internals/middlewares"
	"schoolku_backend/internals/middlewares/logger"
	"schoolku_backend/internals/middlewares/metrics"
	routes "schoolku_backend/internals/route"
	"schoolku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	cfg := configs.App

	log, err := logger.InitLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		ErrorHandler:            helper.ErrorHandler,
		BodyLimit:               int(cfg.MaxUploadSize) + 1<<20, // multipart overhead
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
		ReadTimeout:             15 * time.Second,
		WriteTimeout:            30 * time.Second,
		IdleTimeout:             90 * time.Second,
	})

	app.Use(middlewares.RecoveryMiddleware())
	app.Use(logger.LoggerMiddleware(log))
	app.Use(metrics.Middleware())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	app.Use(middlewares.CorsMiddleware(cfg.CorsOrigins))
	app.Use(middlewares.GlobalRateLimiter())

	db, err := database.ConnectDB(cfg, log)
	if err != nil {
		log.Fatal("database connection failed", zap.Error(err))
	}
	if err := database.TunePool(db); err != nil {
		log.Fatal("pool tuning failed", zap.Error(err))
	}
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	seedCtx, cancelSeeds := context.WithTimeout(context.Background(), 30*time.Second)
	err = seeds.RunAllSeeds(seedCtx, db, cfg)
	cancelSeeds()
	if err != nil {
		log.Fatal("seeding failed", zap.Error(err))
	}
	database.WarmUp(db, log)

	cleanup, err := scheduler.StartBlacklistCleanupScheduler(db, cfg.BlacklistCleanupCron, log)
	if err != nil {
		log.Fatal("scheduler setup failed", zap.Error(err))
	}

	store, err := storage.NewFromConfig(cfg)
	if err != nil {
		log.Fatal("storage setup failed", zap.Error(err))
	}

	routes.SetupRoutes(app, db, store, authzService.NewAuthorizer(db))

	go func() {
		log.Info("listening", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
		if err := app.Listen("0.0.0.0:" + cfg.Port); err != nil {
			log.Fatal("server error", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Warn("server shutdown", zap.Error(err))
	}
	<-cleanup.Stop().Done()
	if err := database.Close(db); err != nil {
		log.Warn("closing database", zap.Error(err))
	}
}
