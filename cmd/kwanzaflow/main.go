package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"kwanzaflow/internal/backend"
	"kwanzaflow/internal/cli"
	apphttp "kwanzaflow/internal/http"
	applog "kwanzaflow/internal/log"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	cfg := cli.LoadAndValidateConfig(logger)

	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		logger.Error("Invalid backend configuration", "error", err)
		os.Exit(1)
	}

	factory := backend.NewFactory(logger)
	result, err := factory.CreateBackend(context.Background(), backendCfg)
	if err != nil {
		logger.Error("Failed to create backend", "error", err, "backend", backendCfg.Type.String())
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, result.Backend, applog.New(applog.DefaultConfig()))
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 30 * time.Second // XLSX and PNG responses take a moment
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, done := cli.GracefulShutdown(logger, 30*time.Second, func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		if result.Cleanup != nil {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup error", "error", err)
			}
		}
	})

	logger.Info("Starting kwanzaflow server", "port", cfg.Port, "backend", backendCfg.Type.String())
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Server stopped gracefully")
}
