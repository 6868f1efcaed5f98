package main

import (
	"log/slog"
	"os"

	"complaint-desk/internal/app"
	"complaint-desk/internal/config"
	"complaint-desk/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.New(logger.NewPrettyHandler(os.Stderr, nil)).Error("failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(logger.New(os.Stdout, cfg.LogFormat, cfg.LogLevel)))

	application, err := app.New(cfg)
	if err != nil {
		slog.Error("failed to initialize application", "error", err)
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		slog.Error("application run failed", "error", err)
		os.Exit(1)
	}
}
