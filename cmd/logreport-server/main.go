package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/sasi433/log-report-automation/internal/app"
)

func main() {
	configFile := flag.String("config", "", "config file path (defaults to config.yaml next to the executable)")
	flag.Parse()

	// Create application instance
	application, err := app.NewApplication(*configFile)
	if err != nil {
		slog.Error("Failed to initialize application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Start application
	if err := application.Run(); err != nil {
		slog.Error("Application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
