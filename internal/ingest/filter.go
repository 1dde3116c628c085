package ingest

import "strings"

// Filter narrows a dataset by optional service and level predicates.
//
// Both predicates are exact matches combined with AND. Service compares
// case-sensitively against the literal service value; level compares
// case-insensitively by upper-casing the argument before matching the
// already-normalized level. An empty predicate passes all rows.
type Filter struct {
	Service string
	Level   string
}

// IsZero reports whether the filter passes everything.
func (f Filter) IsZero() bool {
	return f.Service == "" && f.Level == ""
}

// Apply returns a new dataset holding the records that match the filter,
// preserving input order. Warning counts carry through unchanged since they
// describe the load, not the selection. An empty result is a valid dataset.
func (f Filter) Apply(dataset *Dataset) *Dataset {
	if f.IsZero() {
		return dataset
	}

	level := strings.ToUpper(f.Level)

	filtered := &Dataset{
		Records:           make([]Record, 0, len(dataset.Records)),
		InvalidTimestamps: dataset.InvalidTimestamps,
		InvalidLatencies:  dataset.InvalidLatencies,
	}

	for _, record := range dataset.Records {
		if f.Service != "" && record.Service != f.Service {
			continue
		}
		if level != "" && record.Level != level {
			continue
		}
		filtered.Records = append(filtered.Records, record)
	}

	return filtered
}
