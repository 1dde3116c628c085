package ingest

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"
)

// timestampLayouts are the accepted timestamp formats, tried in order.
// First match wins.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Normalizer converts validated raw tables into typed, ordered datasets.
type Normalizer struct {
	logger *slog.Logger
}

// NewNormalizer creates a normalizer with the given logger.
func NewNormalizer(logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{logger: logger}
}

// Normalize builds a Dataset from a validated raw table.
//
// Every row passes timestamp and latency coercion exactly once; unparseable
// values become missing markers and bump the dataset's warning counters, the
// call itself never fails. Levels are upper-cased, services and messages are
// carried literally. The result is sorted ascending by timestamp with a
// stable tie-break; rows with missing timestamps go last, keeping their
// relative input order.
func (n *Normalizer) Normalize(ctx context.Context, table *RawTable) *Dataset {
	columns := columnIndexes(table.Header)

	dataset := &Dataset{
		Records: make([]Record, 0, len(table.Rows)),
	}

	for _, row := range table.Rows {
		record := Record{
			Service: cellAt(row, columns["service"]),
			Level:   strings.ToUpper(cellAt(row, columns["level"])),
			Message: cellAt(row, columns["message"]),
		}

		if ts, ok := parseTimestamp(cellAt(row, columns["timestamp"])); ok {
			record.Timestamp = ts
			record.TimestampValid = true
		} else {
			dataset.InvalidTimestamps++
		}

		if ms, ok := parseLatency(cellAt(row, columns["response_ms"])); ok {
			record.ResponseMS = ms
			record.ResponseMSValid = true
		} else {
			dataset.InvalidLatencies++
		}

		dataset.Records = append(dataset.Records, record)
	}

	sortRecords(dataset.Records)

	if dataset.InvalidTimestamps > 0 || dataset.InvalidLatencies > 0 {
		n.logger.WarnContext(ctx, "input rows had unparseable fields",
			slog.Int("invalid_timestamps", dataset.InvalidTimestamps),
			slog.Int("invalid_latencies", dataset.InvalidLatencies))
	}

	n.logger.DebugContext(ctx, "rows normalized",
		slog.Int("record_count", len(dataset.Records)))

	return dataset
}

// columnIndexes maps each required column name to its position in the header.
// Absent columns map to -1; duplicated headers resolve to the first occurrence.
func columnIndexes(header []string) map[string]int {
	indexes := make(map[string]int, len(RequiredColumns))
	for _, column := range RequiredColumns {
		indexes[column] = -1
	}
	for i, column := range header {
		if idx, ok := indexes[column]; ok && idx == -1 {
			indexes[column] = i
		}
	}
	return indexes
}

// cellAt returns the cell at index, or an empty string when the row is
// shorter than the header or the column is absent.
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// parseTimestamp parses a timestamp string against the accepted layouts.
func parseTimestamp(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// parseLatency coerces a latency cell to a float. NaN and infinities count as
// missing, matching the treatment of unparseable text.
func parseLatency(value string) (float64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	ms, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(ms) || math.IsInf(ms, 0) {
		return 0, false
	}
	return ms, true
}

// sortRecords orders records ascending by timestamp, stable for ties, with
// missing timestamps after all valid ones.
func sortRecords(records []Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case a.TimestampValid && b.TimestampValid:
			return a.Timestamp.Before(b.Timestamp)
		case a.TimestampValid:
			return true
		default:
			return false
		}
	})
}
