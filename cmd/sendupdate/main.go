// One-shot entry point for the daily price-change push, designed to be
// run by an external cron (e.g. GitHub Actions).
package main

import (
	"context"
	"fmt"
	"os"

	"fplwatch/internal/bootstrap"
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

	ctx, cancel := context.WithTimeout(context.Background(), bootstrap.OneShotTimeout)
	defer cancel()

	if err := c.Push("FPL Price Update Error", c.Digest.PriceChanges)(ctx); err != nil {
		log.Errorf("Price update failed: %v", err)
		c.Flush(ctx)
		logger.Sync()
		os.Exit(1)
	}

	log.Info("Price update sent")
	c.Flush(ctx)
}
