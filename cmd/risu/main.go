package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/laiosys/risu/internal/client"
	"github.com/laiosys/risu/internal/config"
	"github.com/laiosys/risu/internal/logger"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetClientConfig(os.Args[1:])
	if err != nil {
		logger.NewLogger("risu").Fatal().Err(err).Msg("error getting configs")
	}

	log := newLogger(cfg)

	app, err := client.NewApp(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("run error")
	}
}

// newLogger picks the log sink: stdout for interactive runs, a file next to
// the executable when the daemon is detached from a terminal.
func newLogger(cfg *config.ClientConfig) *logger.Logger {
	if cfg.App.LogToFile {
		return logger.NewFileLogger("risu")
	}
	return logger.NewLogger("risu")
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
