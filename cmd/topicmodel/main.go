package main

import (
	"context"
	"os"

	"github.com/Nerikoutchala/glassdoor-analysis/internal/app"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/config"
	"github.com/Nerikoutchala/glassdoor-analysis/internal/logging"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx); err != nil {
		logger.Error("analysis run failed", "error", err)
		os.Exit(1)
	}
}
