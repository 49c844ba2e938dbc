package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"keur/internal/amqp"
	"keur/internal/backend"
	"keur/internal/config"
	"keur/internal/currency"
	"keur/internal/export"
	applog "keur/internal/log"
	"keur/internal/sheets"
	"keur/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := applog.DefaultConfig()
	cfg.Component = applog.ComponentWorker
	logger := applog.New(cfg)
	applog.SetDefault(logger)

	logger.Info("Starting keur-worker")

	appCfg := config.Load()
	if err := appCfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	conv, err := currency.New(currency.Config{
		Rate:            appCfg.ExchangeRate,
		BaseSymbol:      appCfg.BaseSymbol,
		SecondarySuffix: appCfg.SecondarySuffix,
	})
	if err != nil {
		logger.Error("Invalid currency configuration", "error", err, "rate", appCfg.ExchangeRate)
		os.Exit(1)
	}

	result, err := backend.Open(*appCfg, logger.Logger)
	if err != nil {
		logger.Error("Failed to open data backend", "error", err, "backend", appCfg.DataBackend)
		os.Exit(1)
	}
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Error("Backend cleanup failed", "error", err)
			}
		}()
	}

	// Google Sheets publishing is optional.
	var publisher worker.SummaryPublisher
	if appCfg.GoogleSpreadsheetID != "" {
		sheetsPublisher, err := sheets.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets publisher", "error", err)
			os.Exit(1)
		}
		publisher = sheetsPublisher
		logger.Info("Google Sheets publisher initialized", "spreadsheet_id", appCfg.GoogleSpreadsheetID)
	} else {
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(appCfg.AMQPURL, appCfg.AMQPExchange, appCfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	writer := export.NewExcelWriter(conv, appCfg.ExportDir)
	reportWorker := worker.NewReportWorker(result.Store, writer, publisher, conv)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := amqpClient.ConsumeReportJobs(ctx, reportWorker.HandleJob); err != nil {
			if err != context.Canceled {
				logger.Error("Job consumption failed", "error", err)
			}
			cancel()
		}
	}()

	// Periodic refresh of the current month keeps the hosted summary
	// honest even when a refresh message was lost.
	if publisher != nil {
		ticker := time.NewTicker(appCfg.SyncInterval)
		defer ticker.Stop()

		go func() {
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					now := time.Now().UTC()
					job := amqp.NewReportJob(amqp.JobSummaryRefresh, now.Year(), int(now.Month()))
					if err := reportWorker.HandleJob(job); err != nil {
						logger.Error("Periodic refresh failed", "error", err)
					}
				}
			}
		}()
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	cancel()
	logger.Info("Worker shutdown complete")
}
