package main

import (
	"context"
	"errors"
	"time"

	"golang.org/x/sync/errgroup"

	"finman/internal/amqp"
	"finman/internal/cli"
	"finman/internal/export"
	gsheet "finman/internal/export/google"
	"finman/internal/export/memory"
	"finman/internal/log"
	"finman/internal/services"
	"finman/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger().WithComponent(log.ComponentNotifier)

	logger.Info("Starting finman-notifier")

	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	storeWorker := worker.NewStoreWorker()
	defer storeWorker.Stop()

	// Report destination: Google Sheets when configured, in-memory otherwise
	// (alerts still show up in the logs).
	var writer export.AlertWriter
	if cfg.SheetsEnabled() {
		sheetsClient, err := gsheet.NewFromEnv(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", log.FieldError, err)
			return
		}
		logger.Info("Google Sheets report export enabled", log.FieldSpreadsheet, cfg.GoogleSpreadsheetID)
		writer = sheetsClient
	} else {
		logger.Info("Google Sheets disabled - recording alerts in memory only")
		writer = memory.New()
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", log.FieldError, err)
		return
	}
	defer amqpClient.Close()

	budgets := services.NewBudgetService(repo, storeWorker)
	notifier := services.NewNotifierService(repo, budgets, writer)

	ctx := cli.SignalContext(logger)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return amqpClient.ConsumeBudgetAlerts(ctx, func(msg *amqp.BudgetAlertMessage) error {
			return notifier.HandleAlert(ctx, msg)
		})
	})

	g.Go(func() error {
		ticker := time.NewTicker(cfg.RecheckInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := notifier.RecheckBudgets(ctx, time.Now()); err != nil {
					logger.Error("Periodic budget re-check failed", log.FieldError, err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Notifier stopped", log.FieldError, err)
		return
	}
	logger.Info("Notifier shutdown complete")
}
