package ingest

import (
	apperrors "github.com/sasi433/log-report-automation/internal/errors"
)

// ValidateSchema checks that header carries every required column.
//
// On failure it returns a schema error naming each absent column in canonical
// order, alongside the full expected set. Columns beyond the required set are
// permitted and ignored. The check is pure; it never touches row data.
func ValidateSchema(header []string) error {
	present := make(map[string]bool, len(header))
	for _, column := range header {
		present[column] = true
	}

	var missing []string
	for _, column := range RequiredColumns {
		if !present[column] {
			missing = append(missing, column)
		}
	}

	if len(missing) > 0 {
		return apperrors.NewSchemaError(missing, RequiredColumns)
	}
	return nil
}
