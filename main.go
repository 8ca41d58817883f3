package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/umalmyha/lunchly/internal/config"
	"github.com/umalmyha/lunchly/internal/infra"
)

const defaultConnectTimeout = 5 * time.Second

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logger.Infof("no .env file loaded - %v", err)
	}

	cfg, err := config.Build()
	if err != nil {
		logger.Fatalf("failed to build config - %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultConnectTimeout)
	defer cancel()

	pool, err := infra.Postgresql(ctx, cfg.PostgresCfg)
	if err != nil {
		logger.Fatalf(err.Error())
	}
	defer pool.Close()

	redisClient, err := infra.Redis(ctx, cfg.RedisCfg)
	if err != nil {
		logger.Fatalf(err.Error())
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Errorf("failed to close connection to redis - %v", err)
		}
	}()

	app, err := infra.Router(pool, redisClient, logger)
	if err != nil {
		logger.Fatalf(err.Error())
	}

	start(app, cfg.ServerCfg, logger)
}

func start(app *echo.Echo, cfg config.ServerCfg, logger *logrus.Logger) {
	shutdownCh := make(chan os.Signal, 1)
	errorCh := make(chan error, 1)
	signal.Notify(shutdownCh, os.Interrupt)

	go func() {
		errorCh <- app.Start(fmt.Sprintf(":%d", cfg.Port))
	}()

	select {
	case <-shutdownCh:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		logger.Info("shutdown signal has been sent, stopping the server...")
		if err := app.Shutdown(ctx); err != nil {
			logger.Fatalf("failed to stop server gracefully - %v", err)
		}
	case err := <-errorCh:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("shutting down the server, unexpected error occurred - %v", err)
		}
	}
}
