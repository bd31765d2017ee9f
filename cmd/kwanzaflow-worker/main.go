package main

import (
	"context"
	"os"
	"time"

	"kwanzaflow/internal/amqp"
	"kwanzaflow/internal/cli"
	gsheet "kwanzaflow/internal/sheets/google"
	"kwanzaflow/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting kwanzaflow-worker")

	cfg := cli.LoadAndValidateConfig(logger)

	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required, the worker only exists to mirror the ledger")
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	sheetsClient, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, sheetsClient, cfg.SyncBatchSize, cfg.SyncInterval)

	runCtx, cancel := context.WithCancel(context.Background())
	ctx, done := cli.GracefulShutdown(logger, 10*time.Second, cancel)

	if err := syncWorker.Run(runCtx, amqpClient); err != nil && err != context.Canceled {
		logger.Error("Sync worker stopped", "error", err)
		os.Exit(1)
	}

	cli.WaitForShutdown(ctx, done)
	logger.Info("Worker stopped gracefully")
}
