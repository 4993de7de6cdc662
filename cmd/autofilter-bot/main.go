package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/logger"
	"github.com/emovies604-ux/telegram-movie-autofilterbot/internal/server"
)

func main() {
	_ = godotenv.Load()

	cfg := server.Config{}
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	lg, err := logger.Init(logger.Config{Dir: cfg.LogDir, Level: cfg.LogLevel, JSON: cfg.LogJSON})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lg.Info("starting autofilter bot", "source_channel", cfg.FilesChannelID)
	if err := server.Run(ctx, &cfg, lg); err != nil {
		lg.Error("bot stopped with error", "error", err)
		os.Exit(1)
	}
}
