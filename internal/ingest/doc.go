// Package ingest provides the input half of the report pipeline: reading log
// exports, validating their schema, normalizing rows into typed records, and
// applying optional filters.
//
// # Architecture
//
// The package is organized into four stages applied strictly in order:
//
// 1. Reader: decodes CSV or JSONL files, transparently decompressing gzip
// 2. Validator: checks the header against the required column contract
// 3. Normalizer: parses timestamps and latencies, upper-cases levels, sorts
// 4. Filter: narrows the dataset by optional service/level predicates
//
// # Usage
//
// Loading a file end to end:
//
//	loader := ingest.NewLoader(logger)
//	dataset, err := loader.Load(ctx, "exports/production.csv")
//	if err != nil {
//	    return err
//	}
//
// Applying filters:
//
//	filtered := ingest.Filter{Service: "api", Level: "error"}.Apply(dataset)
//
// # Error Handling
//
// Structural problems (missing file, missing columns, undecodable input) are
// returned as typed errors. Row-level data problems (unparseable timestamp or
// latency) never fail a load: the affected field is marked missing on the
// record and counted in the dataset's warning counters.
package ingest
