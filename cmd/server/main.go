package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/rahulkamble366/iso/config"
	"github.com/rahulkamble366/iso/pkg/otel"
	"github.com/rahulkamble366/iso/server"
)

var version = "dev"

func main() {
	configFlag := flag.String("config", "iso.yaml", "config file")
	addressFlag := flag.String("address", "", "listen address")

	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if otel.EnableDebug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	shutdown, err := otel.Setup(ctx, "iso-server", version)

	if err != nil {
		slog.Warn("telemetry setup failed", "error", err)
	}

	defer shutdown(context.Background())

	cfg, err := config.Parse(*configFlag)

	if err != nil {
		slog.Error("invalid config", "error", err)
		os.Exit(1)
	}

	defer cfg.Close()

	if *addressFlag != "" {
		cfg.Address = *addressFlag
	}

	s, err := server.New(cfg)

	if err != nil {
		slog.Error("server setup failed", "error", err)
		os.Exit(1)
	}

	if err := s.ListenAndServe(ctx); err != nil {
		slog.Error("server failed", "error", err)
	}
}
