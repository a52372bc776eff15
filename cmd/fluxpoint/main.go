package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/koios/fluxpoint/internal/config"
	"github.com/koios/fluxpoint/pkg/fluxpoint"
	"go.uber.org/zap"
)

const usage = `usage: fluxpoint <command> [flags]

commands:
  welcome  render a welcome card from a YAML manifest
  custom   render a sample layered image
  player   look up a Minecraft player's UUID
  skin     fetch skin render URLs for a player
  ping     ping a Minecraft server

Configuration is read from FLUXPOINT_* environment variables or a .env file.`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cmd, ok := commands[os.Args[1]]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s\n", os.Args[1], usage)
		os.Exit(2)
	}

	client, err := fluxpoint.NewClientFromEnv(fluxpoint.WithLogger(logger))
	if err != nil {
		logger.Fatal("Failed to create client", zap.Error(err))
	}
	defer client.Close()

	// Cancel in-flight requests on interrupt
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd(ctx, client, os.Args[2:]); err != nil {
		logger.Error("Command failed", zap.String("command", os.Args[1]), zap.Error(err))
		client.Close()
		os.Exit(1)
	}
}

// newLogger builds a production logger at the given level
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = lvl
	return zcfg.Build()
}
