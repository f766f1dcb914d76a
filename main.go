package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/jorgechato/website/internal/pkg/config"
	"github.com/jorgechato/website/internal/server"
	"github.com/jorgechato/website/pkg/logger"
)

var version = "dev"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if err := logger.Init(logger.ParseLevel(cfg.LogLevel), zap.String("service", "jrg-website"), zap.String("version", version)); err != nil {
		return err
	}
	defer func() { _ = logger.Log.Sync() }()
	lg := logger.Log

	otelShutdown, err := server.InitObservability("jrg-website", version, cfg.Observability, lg)
	if err != nil {
		return err
	}
	defer func() {
		if err := otelShutdown(context.Background()); err != nil {
			lg.Error("Failed to shutdown OpenTelemetry", zap.Error(err))
		}
	}()

	srv := server.New(cfg, lg)

	router := server.SetupRouter(cfg, lg)
	if err := server.SetupAssets(router); err != nil {
		lg.Error("Failed to setup assets", zap.Error(err))
		return err
	}
	srv.SetRouter(router)

	// Not exposed publicly
	server.StartPprofServer(cfg.Observability.PprofAddr, lg)

	httpServer := srv.HTTPServer()

	done := make(chan bool, 1)
	go server.GracefulShutdown(httpServer, lg, done)

	lg.Info("Server starting",
		zap.String("port", cfg.ServerPort),
		zap.String("nomads_user", cfg.Nomads.Username))
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Error("Server error", zap.Error(err))
		return err
	}

	<-done
	lg.Info("Graceful shutdown complete")

	return nil
}
