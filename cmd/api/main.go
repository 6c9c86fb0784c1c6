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

	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"usersvc/internal/app/user"
	"usersvc/internal/config"
	"usersvc/internal/db"
	"usersvc/internal/db/repository"
	calchandler "usersvc/internal/http/handlers/calc"
	"usersvc/internal/http/handlers/health"
	userhandler "usersvc/internal/http/handlers/user"
	"usersvc/internal/http/router"
	"usersvc/internal/kafka"
	"usersvc/internal/logging"
	"usersvc/internal/telemetry"
)

func main() {
	// Top-level context with graceful shutdown on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// .env is optional; real environments set variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(
		cfg.Observability.ServiceName,
		cfg.Observability.ServiceEnv,
	)

	logger.Info("starting service", "env", cfg.Environment)

	otelShutdown, err := telemetry.Setup(ctx, cfg.Observability, logger)
	if err != nil {
		logger.Error("failed to setup telemetry", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := otelShutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown telemetry", "error", err)
		}
	}()

	dbClient, err := db.NewClient(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Error("failed to init database", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = dbClient.Close()
	}()

	bus, closeBus, err := kafka.NewBus(cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka bus", "error", err)
		os.Exit(1)
	}
	defer func() {
		_ = closeBus(context.Background())
	}()

	kafkaRouter, err := kafka.NewRouter(ctx, cfg.Kafka, logger)
	if err != nil {
		logger.Error("failed to init kafka router", "error", err)
		os.Exit(1)
	}

	// Repositories & services
	userRepo := repository.NewUserRepository(dbClient.DB(), logger)
	userEvents := kafka.NewUserEvents(bus, cfg.Kafka, logger)
	userService := user.NewService(userRepo, dbClient, userEvents, logger)

	// HTTP handlers & router
	healthHandler := health.NewHandler(dbClient)
	calcHandler := calchandler.NewHandler()
	userHandler := userhandler.NewHandler(userService, logger)

	httpRouter := router.NewRouter(logger, healthHandler, calcHandler, userHandler)

	srv := &http.Server{
		Addr: fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: otelhttp.NewHandler(
			httpRouter,
			cfg.Observability.ServiceName, // span name prefix
		),
	}

	errCh := make(chan error, 2)

	go func() {
		logger.Info("http server starting",
			"host", cfg.HTTP.Host,
			"port", cfg.HTTP.Port,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	go func() {
		logger.Info("kafka router starting")
		if err := kafkaRouter.Run(ctx); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal")
	case err := <-errCh:
		logger.Error("fatal error from subsystem", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shutdown http server", "error", err)
	}

	logger.Info("service stopped")
}
