// Package service orchestrates the report pipeline: one Generate call takes
// a log export from path to rendered workbook, owning the zero-rows policy,
// logging, and metrics along the way.
package service

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sasi433/log-report-automation/internal/infrastructure"
	"github.com/sasi433/log-report-automation/internal/ingest"
	"github.com/sasi433/log-report-automation/internal/report"
)

// Request describes one report generation run.
type Request struct {
	// InputPath is the log export to read (csv, jsonl, optionally gzipped).
	InputPath string

	// OutputPath is where the xlsx workbook goes.
	OutputPath string

	// Service keeps only rows of this service when non-empty (exact match).
	Service string

	// Level keeps only rows of this level when non-empty, compared
	// case-insensitively.
	Level string

	// Source labels the run on metrics, e.g. "cli" or "http".
	Source string
}

// Result is the outcome of one run.
type Result struct {
	RowsLoaded        int
	RowsWritten       int
	InvalidTimestamps int
	InvalidLatencies  int
	OutputPath        string

	// Written is false when zero rows survived filtering: the workbook is
	// skipped and the run still counts as success.
	Written bool

	Duration time.Duration
}

// ReportService runs the full pipeline for single report runs: load,
// filter, build views, plan layout, render. An instance is safe for
// concurrent use; every run operates on its own values.
type ReportService struct {
	loader   *ingest.Loader
	renderer *report.Renderer
	logger   *slog.Logger
	metrics  *infrastructure.ReportMetrics
	tracer   trace.Tracer
}

// NewReportService creates a report service. A nil logger falls back to
// slog.Default; metrics may be nil when the process runs without an OTel
// meter (the CLI does).
func NewReportService(logger *slog.Logger, metrics *infrastructure.ReportMetrics) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReportService{
		loader:   ingest.NewLoader(logger),
		renderer: report.NewRenderer(logger),
		logger:   logger,
		metrics:  metrics,
		tracer:   otel.Tracer(infrastructure.MeterName),
	}
}

// Generate runs one report. Errors keep their AppError type across layers so
// front-ends can map them to exit codes and HTTP problems.
func (s *ReportService) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	source := req.Source
	if source == "" {
		source = "direct"
	}

	ctx, span := s.tracer.Start(ctx, "report.generate",
		trace.WithAttributes(
			attribute.String("input.path", req.InputPath),
			attribute.String("output.path", req.OutputPath),
			attribute.String("filter.service", req.Service),
			attribute.String("filter.level", req.Level),
			attribute.String("source", source),
		))
	defer span.End()

	infrastructure.RecordActiveGenerationChange(ctx, s.metrics, 1)
	defer infrastructure.RecordActiveGenerationChange(ctx, s.metrics, -1)

	s.logger.InfoContext(ctx, "report generation started",
		slog.String("input", req.InputPath),
		slog.String("output", req.OutputPath),
		slog.String("service_filter", req.Service),
		slog.String("level_filter", req.Level))

	dataset, err := s.loader.Load(ctx, req.InputPath)
	if err != nil {
		return nil, s.fail(ctx, span, source, start, err)
	}
	infrastructure.RecordIngestWarnings(ctx, s.metrics, source,
		int64(dataset.InvalidTimestamps), int64(dataset.InvalidLatencies))

	filter := ingest.Filter{Service: req.Service, Level: req.Level}
	filtered := filter.Apply(dataset)

	result := &Result{
		RowsLoaded:        dataset.Len(),
		RowsWritten:       filtered.Len(),
		InvalidTimestamps: dataset.InvalidTimestamps,
		InvalidLatencies:  dataset.InvalidLatencies,
		OutputPath:        req.OutputPath,
	}

	if filtered.Len() == 0 {
		result.Duration = time.Since(start)
		s.logger.InfoContext(ctx, "no rows matched the filters, skipping workbook",
			slog.Int("rows_loaded", result.RowsLoaded),
			slog.String("service_filter", req.Service),
			slog.String("level_filter", req.Level))
		span.SetAttributes(attribute.Bool("report.written", false))
		infrastructure.RecordGenerationMetrics(ctx, s.metrics, source,
			result.Duration, int64(result.RowsLoaded), 0, true, nil)
		return result, nil
	}

	views := report.BuildViews(filtered)
	plan, err := report.PlanLayout(report.SheetSummary, views.Summary.TableSpecs())
	if err != nil {
		return nil, s.fail(ctx, span, source, start, err)
	}

	if err := s.renderer.Render(ctx, views, plan, req.OutputPath); err != nil {
		return nil, s.fail(ctx, span, source, start, err)
	}

	result.Written = true
	result.Duration = time.Since(start)

	s.logger.InfoContext(ctx, "report generation finished",
		slog.String("output", req.OutputPath),
		slog.Int("rows_loaded", result.RowsLoaded),
		slog.Int("rows_written", result.RowsWritten),
		slog.Int("invalid_timestamps", result.InvalidTimestamps),
		slog.Int("invalid_latencies", result.InvalidLatencies),
		slog.Duration("duration", result.Duration))

	span.SetAttributes(
		attribute.Bool("report.written", true),
		attribute.Int("report.rows_loaded", result.RowsLoaded),
		attribute.Int("report.rows_written", result.RowsWritten),
	)
	infrastructure.RecordGenerationMetrics(ctx, s.metrics, source,
		result.Duration, int64(result.RowsLoaded), int64(result.RowsWritten), true, nil)

	return result, nil
}

// fail records the failure on the span, metrics and log, then returns the
// error unchanged so its type survives to the caller.
func (s *ReportService) fail(ctx context.Context, span trace.Span, source string, start time.Time, err error) error {
	duration := time.Since(start)

	s.logger.ErrorContext(ctx, "report generation failed",
		slog.String("error", err.Error()),
		slog.Duration("duration", duration))

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	infrastructure.RecordGenerationMetrics(ctx, s.metrics, source, duration, 0, 0, false, err)

	return err
}
