// One-shot entry point for the daily transfer-trends push.
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

	if err := c.Push("Transfer Trends Error", c.Digest.Trends)(ctx); err != nil {
		log.Errorf("Trends push failed: %v", err)
		c.Flush(ctx)
		logger.Sync()
		os.Exit(1)
	}

	log.Info("Transfer trends sent")
	c.Flush(ctx)
}
