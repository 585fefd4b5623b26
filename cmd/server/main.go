package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"subpix/internal/app"
)

func main() {
	configPath := flag.String("config", "subpix.yaml", "path to the configuration file")
	flag.Parse()

	application, err := app.New(*configPath)
	if err != nil {
		slog.Error("failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := application.Run(context.Background()); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
