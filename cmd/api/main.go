package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"

	"vales/internal/config"
	"vales/internal/database"
	"vales/internal/pkg/events"
	"vales/internal/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logg := logger.New(cfg.IsDevelopment())
	defer func() { _ = logg.Sync() }()

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Environment: cfg.AppEnv,
		}); err != nil {
			logg.Fatalw("sentry init failed", "error", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, logg)
	if err != nil {
		logg.Fatalw("database connect failed", "error", err)
	}
	if err := database.Migrate(db); err != nil {
		logg.Fatalw("database migrate failed", "error", err)
	}

	var kafkaPublisher *events.KafkaPublisher
	if cfg.KafkaBrokers != "" {
		kafkaPublisher, err = events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, logg)
		if err != nil {
			logg.Fatalw("kafka producer failed", "error", err)
		}
		defer kafkaPublisher.Close()
	}

	app := newApp(cfg, db, logg, kafkaPublisher)
	defer app.Close()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           app.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logg.Infow("http server listening", "addr", cfg.HTTPAddr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatalw("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logg.Errorw("graceful shutdown failed", "error", err)
	}
}
