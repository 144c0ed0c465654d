package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fplwatch/internal/adapters/telegram"
	"fplwatch/internal/bootstrap"
	"fplwatch/internal/workers"
	"fplwatch/pkg/logger"
)

func main() {
	c, err := bootstrap.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup failed: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.Get()
	cfg := c.Config
	log.Infof("Starting %s in %s mode", cfg.App.Name, cfg.App.Env)

	c.ServeMetrics()

	handler := telegram.NewHandler(c.Bot, c.Digest, log)
	handler.Register()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sched := workers.NewScheduler(time.Local)
	jobs := []workers.Job{
		{Name: "price_changes", At: cfg.Schedule.PriceChangesAt, Run: c.Push("FPL Price Update Error", c.Digest.PriceChanges)},
		{Name: "predictions", At: cfg.Schedule.PredictionsAt, Run: c.Push("Price Prediction Error", c.Digest.Predictions)},
		{Name: "trends", At: cfg.Schedule.TrendsAt, Run: c.Push("Transfer Trends Error", c.Digest.Trends)},
	}
	for _, job := range jobs {
		if err := sched.Register(job); err != nil {
			log.Fatalf("Failed to register job %s: %v", job.Name, err)
		}
	}
	sched.Start(ctx)

	go func() {
		if err := c.Bot.Start(ctx); err != nil {
			log.Errorf("Telegram bot error: %v", err)
		}
	}()

	log.Info("System initialized successfully")

	waitForShutdown(ctx, cancel, sched, c, log)
}

// waitForShutdown waits for shutdown signal and performs graceful shutdown
func waitForShutdown(ctx context.Context, cancel context.CancelFunc, sched *workers.Scheduler, c *bootstrap.Container, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Shutting down...")

	cancel()
	sched.Stop()
	c.Flush(ctx)

	log.Info("Shutdown complete")
}
