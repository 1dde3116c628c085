package generator

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	apperrors "github.com/sasi433/log-report-automation/internal/errors"
	"github.com/sasi433/log-report-automation/internal/ingest"
)

// WriteCSV writes rows as a schema-conforming log export at path, creating
// parent directories as needed. Timestamps are RFC 3339 UTC with a Z suffix,
// so a generated file feeds straight back into the report pipeline.
func (g *Generator) WriteCSV(path string, rows []Row) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return apperrors.NewOutputError(path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewOutputError(path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(ingest.RequiredColumns); err != nil {
		return apperrors.NewOutputError(path, err)
	}

	for _, row := range rows {
		record := []string{
			row.Timestamp.UTC().Format(time.RFC3339),
			row.Service,
			row.Level,
			row.Message,
			strconv.Itoa(row.ResponseMS),
		}
		if err := writer.Write(record); err != nil {
			return apperrors.NewOutputError(path, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewOutputError(path, err)
	}

	g.logger.Info("demo log export written",
		slog.String("path", path),
		slog.Int("rows", len(rows)))
	return nil
}
