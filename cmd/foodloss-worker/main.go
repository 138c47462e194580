package main

import (
	"context"
	"errors"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"foodloss/internal/amqp"
	"foodloss/internal/cli"
	applog "foodloss/internal/log"
	"foodloss/internal/services"
	"foodloss/internal/worker"
)

func main() {
	cfg, logger, loc := cli.Bootstrap(applog.ComponentWorker)
	logger.Info("Starting foodloss-worker")

	if cfg.DataBackend != "sqlite" {
		logger.Error("The worker reads the shared SQLite database; set DATA_BACKEND=sqlite", "backend", cfg.DataBackend)
		os.Exit(1)
	}

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	svc := services.NewInventoryService(repo, nil, services.NewClassifier(time.Now, loc))
	alerts := worker.NewAlertWorker(svc, logger)

	ctx, stop := cli.SignalContext()
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return alerts.RunSweeps(gctx, cfg.SweepInterval)
	})

	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			return
		}
		defer client.Close()

		g.Go(func() error {
			err := client.ConsumeIngredientRegistered(gctx, alerts.HandleIngredientRegistered)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		})
	} else {
		logger.Info("AMQP_URL not set, running periodic sweeps only")
	}

	if err := g.Wait(); err != nil {
		logger.Error("Worker stopped with error", applog.FieldError, err)
		return
	}
	logger.Info("Worker shutdown complete", applog.FieldOperation, applog.OpShutdown)
}
