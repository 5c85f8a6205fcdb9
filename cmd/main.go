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

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-portfolio-builder/config"
	"github.com/oksasatya/go-portfolio-builder/internal/application"
	"github.com/oksasatya/go-portfolio-builder/internal/container"
	"github.com/oksasatya/go-portfolio-builder/internal/domain/repository"
	meminfra "github.com/oksasatya/go-portfolio-builder/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/go-portfolio-builder/internal/infrastructure/postgres"
	redisinfra "github.com/oksasatya/go-portfolio-builder/internal/infrastructure/redis"
	sqliteinfra "github.com/oksasatya/go-portfolio-builder/internal/infrastructure/sqlite"
	"github.com/oksasatya/go-portfolio-builder/internal/router"
	"github.com/oksasatya/go-portfolio-builder/pkg/bundle"
	"github.com/oksasatya/go-portfolio-builder/pkg/helpers"
	"github.com/oksasatya/go-portfolio-builder/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()
	c := &container.Container{Config: cfg, Logger: logger}
	defer c.Close()

	// Redis backs rate limiting and, when selected, the state slots
	if cfg.RedisAddr != "" {
		rdb := helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis unavailable, rate limiting disabled")
			_ = rdb.Close()
		} else {
			c.Redis = rdb
			c.OnClose(func() { _ = rdb.Close() })
		}
	}

	repo, err := openStateRepository(ctx, cfg, logger, c)
	if err != nil {
		log.Fatalf("failed to open state storage: %v", err)
	}
	persist := application.NewPersistence(repo, cfg.StateSlotKey, logger)
	c.Portfolio = application.NewPortfolioService(ctx, persist, logger, application.ServiceOptions{
		HistoryLimit:   cfg.HistoryLimit,
		PersistTimeout: cfg.PersistTimeout,
	})

	// GCS is optional; without it uploads answer 503
	var uploader application.ObjectUploader
	if cfg.GCSBucket != "" {
		gcsClient, err := helpers.NewGCSClient(ctx, cfg.GCSCredentialsJSONPath)
		if err != nil {
			logger.WithError(err).Warn("failed to init GCS client, uploads disabled")
		} else {
			c.OnClose(func() { _ = gcsClient.Close() })
			uploader = helpers.NewGCSUploader(gcsClient, cfg.GCSBucket, "")
		}
	}
	c.Uploads = application.NewUploadService(uploader, cfg.UploadMaxBytes, logger)

	// RabbitMQ is optional; without it export jobs answer 503
	var queue application.JobPublisher
	if cfg.RabbitMQURL != "" {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQExportQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable, export jobs disabled")
		} else {
			c.OnClose(pub.Close)
			queue = pub
		}
	}
	builder := bundle.NewBuilder(bundle.NewHTTPFetcher(cfg.BundleFetchTimeout), logger)
	c.Exports = application.NewExportService(c.Portfolio, builder, queue, logger)

	r := router.NewEngine(c)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r}
	go func() {
		logger.WithField("storage", cfg.StorageDriver).Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

// openStateRepository opens the driver named by STORAGE_DRIVER. Every driver
// keys its slots under STATE_NAMESPACE.
func openStateRepository(ctx context.Context, cfg *config.Config, logger *logrus.Logger, c *container.Container) (repository.StateRepository, error) {
	ns := cfg.StateNamespace
	switch cfg.StorageDriver {
	case "", "memory":
		return meminfra.NewStateRepository(meminfra.NewCache(), ns), nil
	case "redis":
		rdb := c.Redis
		if rdb == nil {
			return nil, errors.New("redis storage needs a reachable REDIS_ADDR")
		}
		return redisinfra.NewStateRepository(rdb, ns), nil
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		c.OnClose(pool.Close)
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), logger); err != nil {
			return nil, fmt.Errorf("migrate postgres: %w", err)
		}
		return pginfra.NewStateRepository(pool, ns), nil
	case "sqlite":
		db, err := sqliteinfra.Open(cfg.SQLitePath)
		if err != nil {
			return nil, err
		}
		c.OnClose(func() { _ = sqliteinfra.Close(db) })
		return sqliteinfra.NewStateRepository(db, ns), nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}
}
