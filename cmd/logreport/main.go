package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sasi433/log-report-automation/internal/config"
	apperrors "github.com/sasi433/log-report-automation/internal/errors"
	"github.com/sasi433/log-report-automation/internal/infrastructure"
	"github.com/sasi433/log-report-automation/internal/service"
	"github.com/sasi433/log-report-automation/internal/validation"
	"github.com/sasi433/log-report-automation/pkg/contracts"
)

// Process exit codes. Zero rows after filtering is a success.
const (
	exitOK            = 0
	exitError         = 1
	exitInputNotFound = 2
	exitOutputError   = 3
)

func main() {
	input := flag.String("input", "", "log export to read, csv or jsonl, optionally gzipped (defaults to "+config.DefaultInputPath+")")
	output := flag.String("output", "", "xlsx destination (defaults to "+config.DefaultOutputPath+")")
	serviceFilter := flag.String("service", "", "keep only rows of this service")
	levelFilter := flag.String("level", "", "keep only rows of this level (case-insensitive)")
	configFile := flag.String("config", "", "config file path (defaults to config.yaml next to the executable)")
	logLevel := flag.String("log-level", "", "log level override: debug, info, warn or error")
	showVersion := flag.Bool("version", false, "print version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(contracts.GetFullVersionString())
		os.Exit(exitOK)
	}

	var cfg *config.Config
	var err error
	if *configFile != "" {
		if err := validation.NewFileValidator(nil).ValidateFile(*configFile); err != nil {
			slog.Error("Config file not usable", slog.String("path", *configFile), slog.String("error", err.Error()))
			os.Exit(exitError)
		}
		cfg, err = config.LoadFromFile(*configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		slog.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(exitError)
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", slog.String("error", err.Error()))
		logger = slog.Default()
	}

	if *input == "" {
		*input = cfg.Report.DefaultInput
	}
	if *output == "" {
		*output = cfg.Report.DefaultOutput
	}

	logger.Info("Starting report generation",
		slog.String("input", *input),
		slog.String("output", *output),
		slog.String("service_filter", *serviceFilter),
		slog.String("level_filter", *levelFilter))

	ctx, cancel := context.WithTimeout(context.Background(), config.ReportGenerationTimeout)
	defer cancel()

	svc := service.NewReportService(logger, nil)
	result, err := svc.Generate(ctx, service.Request{
		InputPath:  *input,
		OutputPath: *output,
		Service:    *serviceFilter,
		Level:      *levelFilter,
		Source:     "cli",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(exitCode(err))
	}

	printStatus(os.Stdout, *input, result)
}

// exitCode maps a pipeline failure onto the documented exit codes: 2 when the
// input file does not exist, 3 when the report destination cannot be written,
// 1 for everything else.
func exitCode(err error) int {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		switch appErr.Type {
		case apperrors.ErrTypeInputNotFound:
			return exitInputNotFound
		case apperrors.ErrTypeOutput:
			return exitOutputError
		}
	}
	return exitError
}

// printStatus writes the human-readable run summary.
func printStatus(w io.Writer, input string, result *service.Result) {
	fmt.Fprintf(w, "input:              %s\n", input)
	fmt.Fprintf(w, "rows loaded:        %d\n", result.RowsLoaded)
	fmt.Fprintf(w, "invalid timestamps: %d\n", result.InvalidTimestamps)
	fmt.Fprintf(w, "invalid latencies:  %d\n", result.InvalidLatencies)
	if !result.Written {
		fmt.Fprintln(w, "no rows matched the filters; report not written")
		return
	}
	fmt.Fprintf(w, "rows written:       %d\n", result.RowsWritten)
	fmt.Fprintf(w, "output:             %s\n", result.OutputPath)
}
