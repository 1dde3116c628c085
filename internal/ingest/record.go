package ingest

import "time"

// RequiredColumns is the column contract every log export must satisfy, in
// canonical order. Extra columns are tolerated and ignored.
var RequiredColumns = []string{"timestamp", "service", "level", "message", "response_ms"}

// Record is one normalized log row.
//
// Timestamp and ResponseMS carry explicit validity flags: an unparseable
// value in the input marks the field missing instead of failing the load or
// defaulting to a misleading zero.
type Record struct {
	Timestamp      time.Time
	TimestampValid bool

	// Service is carried literally, case preserved.
	Service string

	// Level is upper-cased during normalization.
	Level string

	Message string

	ResponseMS      float64
	ResponseMSValid bool
}

// Dataset is an ordered collection of normalized records plus the warning
// counts accumulated while normalizing them.
//
// Records are ordered ascending by timestamp with a stable tie-break that
// preserves original input order; records with missing timestamps sort after
// all valid ones, stable among themselves. Datasets are treated as read-only
// once built; transformations return new values.
type Dataset struct {
	Records []Record

	// InvalidTimestamps counts rows whose timestamp could not be parsed.
	InvalidTimestamps int
	// InvalidLatencies counts rows whose response_ms could not be coerced.
	InvalidLatencies int
}

// Len returns the number of records in the dataset.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Records)
}

// RawTable is a decoded input file before validation and normalization:
// a header row plus string cell rows aligned to it. Rows shorter than the
// header are padded with empty cells at access time, not here.
type RawTable struct {
	Header []string
	Rows   [][]string
}
