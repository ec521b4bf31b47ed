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

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dkirsanov/inventorypro/internal/cache"
	"github.com/dkirsanov/inventorypro/internal/config"
	"github.com/dkirsanov/inventorypro/internal/events"
	"github.com/dkirsanov/inventorypro/internal/httpserver"
	"github.com/dkirsanov/inventorypro/internal/logging"
	"github.com/dkirsanov/inventorypro/internal/mailer"
	"github.com/dkirsanov/inventorypro/internal/metrics"
	loggingmw "github.com/dkirsanov/inventorypro/internal/middleware/logging"
	"github.com/dkirsanov/inventorypro/internal/repo"
	"github.com/dkirsanov/inventorypro/internal/search"
	"github.com/dkirsanov/inventorypro/internal/service"
	"github.com/dkirsanov/inventorypro/internal/storage"
)

func main() {
	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)

	ctx := context.Background()
	db, err := config.OpenDB(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	producer := events.NewProducer(cfg.KafkaBrokers)

	esClient, err := search.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
	if err != nil {
		log.Fatalf("elasticsearch init: %v", err)
	}

	rcache := cache.New(cfg.RedisAddr)

	disk, err := storage.Open(ctx, storage.Options{
		Driver:     cfg.StorageDriver,
		Dir:        cfg.StorageDir,
		BaseURL:    cfg.PublicBaseURL,
		S3Bucket:   cfg.S3Bucket,
		S3Region:   cfg.S3Region,
		S3Key:      cfg.S3Key,
		S3Secret:   cfg.S3Secret,
		S3Endpoint: cfg.S3Endpoint,
	})
	if err != nil {
		log.Fatalf("storage init: %v", err)
	}

	smtp := mailer.New(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)

	r := &repo.GormRepo{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID(), middleware.CORS())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(metrics.Middleware())

	if cfg.StorageDriver == "local" {
		e.Static("/"+cfg.StorageDir, cfg.StorageDir)
	}

	deps := httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{Svc: &service.AuthService{
			Repo:     r,
			Secret:   cfg.JWTSecret,
			TokenTTL: cfg.AccessTokenTTL,
			Producer: producer,
			Mailer:   smtp,
		}},
		CatalogHandler: &httpserver.CatalogHTTP{Svc: &service.CatalogService{
			Repo:     r,
			Cache:    rcache,
			Search:   esClient,
			Producer: producer,
			Policy:   cfg.ProductCreatePolicy,
		}},
		OrderHandler: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Repo:     r,
			Producer: producer,
		}},
		FilesHandler: &httpserver.FilesHTTP{Disk: disk},
		JWTSecret:    cfg.JWTSecret,
	}

	httpserver.Register(e, &deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close error", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close error", "error", err)
	}

	if err := rcache.Close(); err != nil {
		logger.Error("redis close error", "error", err)
	}

	logger.Info("shutdown complete")
}
