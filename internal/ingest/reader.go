package ingest

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/valyala/fastjson"

	apperrors "github.com/sasi433/log-report-automation/internal/errors"
)

// maxLineBytes bounds a single JSONL line
const maxLineBytes = 1 << 20

// Reader decodes log export files into raw tables.
//
// Supported formats, selected by file extension after stripping a trailing
// ".gz": CSV with a header row (the default for unknown extensions) and JSONL
// (".jsonl"/".ndjson", one object per line, keys as column names). Gzip
// compression is handled transparently.
type Reader struct {
	logger *slog.Logger
}

// NewReader creates a reader with the given logger.
func NewReader(logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{logger: logger}
}

// ReadFile reads and decodes the log export at path.
//
// A nonexistent path yields an input-not-found error before any read. Other
// open or decode failures yield a parse error naming the path.
func (r *Reader) ReadFile(ctx context.Context, path string) (*RawTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, apperrors.NewInputNotFoundError(path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("cannot open input file %s", path), err)
	}
	defer file.Close()

	var src io.Reader = file
	name := path
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		gz, err := gzip.NewReader(file)
		if err != nil {
			return nil, apperrors.NewParseError(fmt.Sprintf("cannot decompress input file %s", path), err)
		}
		defer gz.Close()
		src = gz
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}

	var table *RawTable
	switch strings.ToLower(filepath.Ext(name)) {
	case ".jsonl", ".ndjson":
		table, err = decodeJSONL(src)
	default:
		table, err = decodeCSV(src)
	}
	if err != nil {
		return nil, apperrors.NewParseError(fmt.Sprintf("cannot decode input file %s", path), err)
	}

	r.logger.InfoContext(ctx, "input file read",
		slog.String("path", path),
		slog.Int("rows", len(table.Rows)),
		slog.Int("columns", len(table.Header)))

	return table, nil
}

// decodeCSV reads a comma-separated table with a header row. Rows may have
// fewer or more fields than the header; alignment is resolved downstream.
func decodeCSV(src io.Reader) (*RawTable, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &RawTable{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	rows := make([][]string, 0, 128)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, record)
	}

	return &RawTable{Header: header, Rows: rows}, nil
}

// decodeJSONL reads one JSON object per line. The header is the union of all
// keys seen, in first-seen order; rows missing a key get an empty cell.
func decodeJSONL(src io.Reader) (*RawTable, error) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var parser fastjson.Parser
	header := make([]string, 0, len(RequiredColumns))
	columnIndex := make(map[string]int)
	rowMaps := make([]map[string]string, 0, 128)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		value, err := parser.Parse(line)
		if err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNo, err)
		}

		obj, err := value.Object()
		if err != nil {
			return nil, fmt.Errorf("line %d is not a JSON object: %w", lineNo, err)
		}

		cells := make(map[string]string, obj.Len())
		obj.Visit(func(key []byte, v *fastjson.Value) {
			k := string(key)
			if _, ok := columnIndex[k]; !ok {
				columnIndex[k] = len(header)
				header = append(header, k)
			}
			cells[k] = jsonCellString(v)
		})
		rowMaps = append(rowMaps, cells)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan input: %w", err)
	}

	rows := make([][]string, len(rowMaps))
	for i, cells := range rowMaps {
		row := make([]string, len(header))
		for k, v := range cells {
			row[columnIndex[k]] = v
		}
		rows[i] = row
	}

	return &RawTable{Header: header, Rows: rows}, nil
}

// jsonCellString renders a JSON value the way it would appear in a CSV cell.
// Strings are unquoted, null becomes empty, everything else keeps its JSON
// text form so numbers survive latency coercion.
func jsonCellString(v *fastjson.Value) string {
	switch v.Type() {
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNull:
		return ""
	default:
		return v.String()
	}
}
