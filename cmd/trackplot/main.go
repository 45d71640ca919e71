package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/roman-kulish/drone-state-publisher/cmd/trackplot/app"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil)).With(slog.String("tool", "trackplot"))

	config, err := app.NewConfigFromCLI()
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		logger.Error("invalid arguments", slog.String("error", err.Error()))
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = app.Run(ctx, config, logger); err != nil {
		logger.Error("rendering track failed",
			slog.String("db", config.DBPath),
			slog.Int64("session", config.SessionID),
			slog.String("error", err.Error()))

		stop()
		os.Exit(1)
	}

	logger.Info("track written", slog.String("file", config.OutputFile))
}
