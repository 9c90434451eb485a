package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/zkcargopass/cargopass/pkg/config"
	"github.com/zkcargopass/cargopass/pkg/httpserver"
	"github.com/zkcargopass/cargopass/pkg/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "cargopass: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	if err := config.Load(&cfg); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg)
	if err != nil {
		return fmt.Errorf("create app: %w", err)
	}
	defer a.Close()

	logger.SetAsDefault(a.log)

	srv := httpserver.NewFromConfig(cfg.HTTP, httpserver.WithLogger(a.log))
	return srv.Run(ctx, a.handler)
}
