package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/avezina/givehub/internal/cli"
	"github.com/avezina/givehub/internal/config"
	"github.com/avezina/givehub/internal/logging"
)

func main() {
	// Optional .env next to the binary; absence is fine.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx := context.Background()

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	app.Run(ctx)
}
