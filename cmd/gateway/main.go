package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/app"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/internal/gateway/config"
	pkgconfig "github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/config"
	"github.com/Shaikhsanakausar/Rev-Orbit-sub001/pkg/logger"
)

func main() {
	// Local development reads .env; real environment variables take precedence.
	if err := pkgconfig.LoadDotEnv(".env"); err != nil {
		slog.Error("failed to read .env", slog.String("error", err.Error()))
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("gateway", cfg.LogLevel)
	log.Info("starting API gateway",
		slog.String("environment", cfg.Environment),
		slog.Int("http_port", cfg.HTTPPort),
		slog.String("storefront", cfg.StorefrontServiceURL),
	)

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := application.Run(ctx); err != nil {
		log.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("API gateway stopped")
}
