package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"

	authapp "github.com/wyfcoding/ssrequity/internal/auth/application"
	authmysql "github.com/wyfcoding/ssrequity/internal/auth/infrastructure/persistence/mysql"
	authhttp "github.com/wyfcoding/ssrequity/internal/auth/interfaces/http"
	ingestapp "github.com/wyfcoding/ssrequity/internal/ingestion/application"
	"github.com/wyfcoding/ssrequity/internal/ingestion/domain"
	"github.com/wyfcoding/ssrequity/internal/ingestion/infrastructure/messaging"
	ingestmysql "github.com/wyfcoding/ssrequity/internal/ingestion/infrastructure/persistence/mysql"
	ingesthttp "github.com/wyfcoding/ssrequity/internal/ingestion/interfaces/http"
	"github.com/wyfcoding/ssrequity/pkg/config"
	"github.com/wyfcoding/ssrequity/pkg/db"
	"github.com/wyfcoding/ssrequity/pkg/logger"
	"github.com/wyfcoding/ssrequity/pkg/metrics"
	"github.com/wyfcoding/ssrequity/pkg/middleware"
	"github.com/wyfcoding/ssrequity/pkg/mq"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.toml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(logger.Config{
		Level:      cfg.Logger.Level,
		Format:     cfg.Logger.Format,
		Output:     cfg.Logger.Output,
		FilePath:   cfg.Logger.FilePath,
		MaxSize:    cfg.Logger.MaxSize,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAge:     cfg.Logger.MaxAge,
		Compress:   cfg.Logger.Compress,
		WithCaller: cfg.Logger.WithCaller,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	database, err := db.Init(db.Config{
		Driver:             cfg.Database.Driver,
		DSN:                cfg.Database.DSN,
		MaxOpenConns:       cfg.Database.MaxOpenConns,
		MaxIdleConns:       cfg.Database.MaxIdleConns,
		ConnMaxLifetime:    cfg.Database.ConnMaxLifetime,
		LogEnabled:         cfg.Database.LogEnabled,
		SlowQueryThreshold: cfg.Database.SlowQueryThreshold,
	})
	if err != nil {
		logger.Fatal(ctx, "failed to init database", "error", err)
	}
	defer database.Close()

	if err := database.AutoMigrate(
		&authmysql.APIKeyModel{},
		&ingestmysql.UploadBatchModel{},
		&ingestmysql.PositionRowModel{},
	); err != nil {
		logger.Fatal(ctx, "failed to migrate database", "error", err)
	}

	var publisher domain.EventPublisher
	var producer *mq.KafkaProducer
	if cfg.Kafka.Enabled {
		producer, err = mq.NewProducer(mq.KafkaConfig{
			Brokers:      cfg.Kafka.Brokers,
			MaxRetries:   cfg.Kafka.MaxRetries,
			RetryBackoff: cfg.Kafka.RetryBackoff,
		})
		if err != nil {
			logger.Fatal(ctx, "failed to init kafka producer", "error", err)
		}
		defer producer.Close()
		publisher = messaging.NewKafkaEventPublisher(producer, cfg.Kafka.Topic)
	}

	// Repositories
	apiKeyRepo := authmysql.NewAPIKeyRepository(database)
	ingestionRepo := ingestmysql.NewIngestionRepository(database)

	// Application services
	keyService := authapp.NewKeyService(apiKeyRepo)
	importService := ingestapp.NewImportService(cfg.Upload.MaxBytes, keyService, ingestionRepo, publisher)

	// HTTP
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(middleware.GinRecovery(), middleware.GinLogging())

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New("equity")
		r.Use(m.GinMiddleware())
		r.GET(cfg.Metrics.Path, m.Handler())
	}

	r.GET("/healthz", func(c *gin.Context) {
		if err := database.Ping(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "up"})
	})

	root := r.Group("")
	authhttp.NewAdminHandler(keyService).RegisterRoutes(root, cfg.Admin.Token)
	ingesthttp.NewImportHandler(importService, m).RegisterRoutes(root)

	addr := fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeout) * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info(gctx, "HTTP server starting", "addr", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
			logger.Info(gctx, "shutting down server...")
		case <-gctx.Done():
			logger.Info(gctx, "context cancelled, shutting down...")
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error(ctx, "server exited with error", "error", err)
	}
}
