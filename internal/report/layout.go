package report

import (
	"fmt"

	apperrors "github.com/sasi433/log-report-automation/internal/errors"
)

// layoutGapRows is the number of blank rows between a table's last data row
// and the next table's title row.
const layoutGapRows = 3

// TableSpec declares one table to be placed on a sheet: its name (also the
// rendered title) and how many data rows it carries.
type TableSpec struct {
	Name     string
	RowCount int
}

// TablePlacement is the computed 1-based row layout of one table.
type TablePlacement struct {
	Name string

	// TitleRow holds the table title, HeaderRow the column headers, and
	// data occupies DataStartRow..DataEndRow. A table with zero rows has
	// DataEndRow < DataStartRow.
	TitleRow     int
	HeaderRow    int
	DataStartRow int
	DataEndRow   int
}

// LayoutPlan maps the tables of one sheet to their row placements.
type LayoutPlan struct {
	Sheet  string
	Tables []TablePlacement

	byName map[string]int
}

// Table returns the placement for a named table.
func (p *LayoutPlan) Table(name string) (TablePlacement, error) {
	idx, ok := p.byName[name]
	if !ok {
		return TablePlacement{}, apperrors.NewInternalError(
			fmt.Sprintf("layout for sheet %q has no table %q", p.Sheet, name), nil)
	}
	return p.Tables[idx], nil
}

// PlanLayout computes row placements for tables stacked top to bottom on one
// sheet. Every placement comes from the same formula: a title row, a header
// row, the table's data rows, then layoutGapRows blank rows before the next
// title.
//
// Impossible layouts (negative row counts, duplicate names, non-increasing
// offsets) are programming errors and surface here rather than as a corrupt
// sheet.
func PlanLayout(sheet string, tables []TableSpec) (*LayoutPlan, error) {
	plan := &LayoutPlan{
		Sheet:  sheet,
		Tables: make([]TablePlacement, 0, len(tables)),
		byName: make(map[string]int, len(tables)),
	}

	titleRow := 1
	lastUsedRow := 0
	for _, spec := range tables {
		if spec.RowCount < 0 {
			return nil, apperrors.NewInternalError(
				fmt.Sprintf("layout for sheet %q: table %q has negative row count %d", sheet, spec.Name, spec.RowCount), nil)
		}
		if _, dup := plan.byName[spec.Name]; dup {
			return nil, apperrors.NewInternalError(
				fmt.Sprintf("layout for sheet %q: duplicate table %q", sheet, spec.Name), nil)
		}

		placement := TablePlacement{
			Name:         spec.Name,
			TitleRow:     titleRow,
			HeaderRow:    titleRow + 1,
			DataStartRow: titleRow + 2,
			DataEndRow:   titleRow + 1 + spec.RowCount,
		}
		if placement.TitleRow <= lastUsedRow {
			return nil, apperrors.NewInternalError(
				fmt.Sprintf("layout for sheet %q: table %q at row %d overlaps row %d", sheet, spec.Name, placement.TitleRow, lastUsedRow), nil)
		}

		plan.byName[spec.Name] = len(plan.Tables)
		plan.Tables = append(plan.Tables, placement)

		lastUsedRow = placement.DataEndRow
		titleRow = lastUsedRow + layoutGapRows + 1
	}

	return plan, nil
}
