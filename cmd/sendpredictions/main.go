// One-shot entry point for the evening price predictions, run before the
// nightly price recalculation window.
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

	if err := c.Push("Price Prediction Error", c.Digest.Predictions)(ctx); err != nil {
		log.Errorf("Predictions push failed: %v", err)
		c.Flush(ctx)
		logger.Sync()
		os.Exit(1)
	}

	log.Info("Predictions sent")
	c.Flush(ctx)
}
