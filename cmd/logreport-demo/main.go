package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sasi433/log-report-automation/internal/config"
	"github.com/sasi433/log-report-automation/internal/generator"
	"github.com/sasi433/log-report-automation/internal/infrastructure"
	"github.com/sasi433/log-report-automation/internal/validation"
)

func main() {
	rows := flag.Int("rows", 400, "number of log lines to generate")
	days := flag.Int("days", 14, "length of the covered time window in days")
	seed := flag.Int64("seed", 42, "random seed; equal seeds reproduce equal files")
	output := flag.String("output", "sample_data/demo_production_logs.csv", "destination csv path")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", slog.String("error", err.Error()))
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}

	logger.Info("Starting demo data generation",
		slog.Int("rows", *rows),
		slog.Int("days", *days),
		slog.Int64("seed", *seed),
		slog.String("output", *output))

	if err := validation.NewFileValidator(logger).ValidateOutputDirectory(filepath.Dir(*output)); err != nil {
		logger.Error("Output directory not writable",
			slog.String("path", filepath.Dir(*output)),
			slog.String("error", err.Error()))
		os.Exit(1)
	}

	gen := generator.NewGenerator(logger)
	batch, err := gen.Generate(generator.Options{Rows: *rows, Days: *days, Seed: *seed})
	if err != nil {
		logger.Error("Generation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := gen.WriteCSV(*output, batch); err != nil {
		logger.Error("Failed to write demo export", slog.String("error", err.Error()))
		os.Exit(1)
	}

	fmt.Printf("wrote %d demo log lines to %s\n", len(batch), *output)
}
