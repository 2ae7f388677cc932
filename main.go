package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/app"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/config"
	"github.com/adiljzcoe/sadaqah-rewards-hub-sub001/internal/observability"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	configFile := os.Getenv("CONFIG_FILE")
	if configFile == "" {
		configFile = "config.yaml"
	}

	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:    "rewards-engine",
		Environment:    cfg.Observability.Environment,
		LogLevel:       cfg.Observability.LogLevel,
		LogFormat:      cfg.Observability.LogFormat,
		MetricsAddress: cfg.Observability.MetricsAddress,
		OTLPEndpoint:   cfg.Observability.OTLPEndpoint,
		OTLPInsecure:   cfg.Observability.OTLPInsecure,
	})
	if err != nil {
		log.Fatalf("Failed to initialize observability: %v", err)
	}

	application, err := app.NewApp(ctx, cfg, obs)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
		<-interrupt
		obs.Logger.Info("Shutdown signal received")
		cancel()
	}()

	if err := application.Run(ctx); err != nil && err != context.Canceled {
		obs.Logger.Error("Application run failed", "error", err)
	}

	if err := application.Close(); err != nil {
		obs.Logger.Error("Shutdown finished with errors", "error", err)
	}
	if err := obs.Shutdown(context.Background()); err != nil {
		log.Printf("Observability shutdown: %v", err)
	}
}
