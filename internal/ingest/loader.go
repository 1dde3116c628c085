package ingest

import (
	"context"
	"log/slog"
)

// Loader runs the full input pipeline for one file: read, validate schema,
// normalize.
type Loader struct {
	reader     *Reader
	normalizer *Normalizer
	logger     *slog.Logger
}

// NewLoader creates a loader with the given logger.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		reader:     NewReader(logger),
		normalizer: NewNormalizer(logger),
		logger:     logger,
	}
}

// Load reads the log export at path and returns its normalized dataset.
//
// Failure modes: input-not-found for a missing path, a schema error when
// required columns are absent, a parse error for undecodable input. Row-level
// data problems surface only as warning counts on the returned dataset.
func (l *Loader) Load(ctx context.Context, path string) (*Dataset, error) {
	table, err := l.reader.ReadFile(ctx, path)
	if err != nil {
		return nil, err
	}

	if err := ValidateSchema(table.Header); err != nil {
		return nil, err
	}

	return l.normalizer.Normalize(ctx, table), nil
}
