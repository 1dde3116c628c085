package report

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	apperrors "github.com/sasi433/log-report-automation/internal/errors"
)

// Auto-sized column widths stay within these bounds so one oversized message
// cannot stretch a column across the screen.
const (
	minColWidth  = 10.0
	maxColWidth  = 60.0
	colWidthPad  = 2.0
	titleFontPts = 12.0
)

// Column header rows for the summary tables.
var (
	keyMetricsHeader   = []string{"metric", "value"}
	levelCountsHeader  = []string{"level", "count"}
	serviceCountHeader = []string{"service", "count"}
)

// Renderer writes report views into a styled xlsx workbook. Values and
// presentation are applied in a single pass over each sheet.
type Renderer struct {
	logger *slog.Logger
}

// NewRenderer creates a workbook renderer.
func NewRenderer(logger *slog.Logger) *Renderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Renderer{logger: logger}
}

// sheetStyles holds the style IDs registered on one workbook.
type sheetStyles struct {
	title    int
	header   int
	errorRow int
}

// Render writes the three sheet views to outputPath, creating the parent
// directory if needed. The workbook contains exactly the logs, summary and
// daily_summary sheets in that order.
//
// Failures to create the directory or write the file return ErrTypeOutput
// naming the path; a partially written file is removed rather than left
// behind as an apparent success.
func (r *Renderer) Render(ctx context.Context, views *Views, plan *LayoutPlan, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return apperrors.NewOutputError(outputPath, err)
	}

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			r.logger.WarnContext(ctx, "failed to close workbook",
				slog.String("error", err.Error()))
		}
	}()

	if err := r.writeWorkbook(f, views, plan); err != nil {
		return apperrors.NewInternalError("workbook assembly failed", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		if removeErr := os.Remove(outputPath); removeErr != nil && !os.IsNotExist(removeErr) {
			r.logger.WarnContext(ctx, "failed to remove partial workbook",
				slog.String("path", outputPath),
				slog.String("error", removeErr.Error()))
		}
		return apperrors.NewOutputError(outputPath, err)
	}

	r.logger.InfoContext(ctx, "workbook written",
		slog.String("path", outputPath),
		slog.Int("log_rows", len(views.Logs.Rows)),
		slog.Int("daily_rows", len(views.Daily.Rows)))
	return nil
}

func (r *Renderer) writeWorkbook(f *excelize.File, views *Views, plan *LayoutPlan) error {
	styles, err := registerStyles(f)
	if err != nil {
		return err
	}

	// The workbook starts with one default sheet; rename it so the sheet
	// order comes out logs, summary, daily_summary.
	if err := f.SetSheetName(f.GetSheetName(0), SheetLogs); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetSummary); err != nil {
		return err
	}
	if _, err := f.NewSheet(SheetDailySummary); err != nil {
		return err
	}

	if err := r.writeLogsSheet(f, views.Logs, styles); err != nil {
		return fmt.Errorf("sheet %s: %w", SheetLogs, err)
	}
	if err := r.writeSummarySheet(f, views.Summary, plan, styles); err != nil {
		return fmt.Errorf("sheet %s: %w", SheetSummary, err)
	}
	if err := r.writeDailySheet(f, views.Daily, styles); err != nil {
		return fmt.Errorf("sheet %s: %w", SheetDailySummary, err)
	}

	index, err := f.GetSheetIndex(SheetLogs)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)
	return nil
}

// writeLogsSheet writes the flat export: header row, one row per record,
// frozen header, autofilter, and a formula-driven highlight on rows whose
// level cell is ERROR.
func (r *Renderer) writeLogsSheet(f *excelize.File, view *ExportLogsView, styles sheetStyles) error {
	widths := newColumnSizer(len(ExportLogsHeader))

	header := stringCells(ExportLogsHeader)
	if err := setRow(f, SheetLogs, 1, header); err != nil {
		return err
	}
	widths.Observe(header)

	for i, row := range view.Rows {
		cells := row.Cells()
		if err := setRow(f, SheetLogs, i+2, cells); err != nil {
			return err
		}
		widths.Observe(cells)
	}

	lastRow := len(view.Rows) + 1
	lastCol := len(ExportLogsHeader)

	if err := styleRow(f, SheetLogs, 1, lastCol, styles.header); err != nil {
		return err
	}
	if err := freezeTopRows(f, SheetLogs, 1); err != nil {
		return err
	}
	if err := autoFilterRange(f, SheetLogs, lastRow, lastCol); err != nil {
		return err
	}
	if len(view.Rows) > 0 {
		if err := highlightErrorRows(f, styles.errorRow, lastRow, lastCol); err != nil {
			return err
		}
	}
	return widths.Apply(f, SheetLogs)
}

// writeSummarySheet writes the three stacked tables at their planned offsets:
// a bold title row, a styled header row, then the data rows.
func (r *Renderer) writeSummarySheet(f *excelize.File, view *SummaryView, plan *LayoutPlan, styles sheetStyles) error {
	widths := newColumnSizer(2)

	writeTable := func(name string, header []string, rows [][]interface{}) error {
		placement, err := plan.Table(name)
		if err != nil {
			return err
		}

		titleCell, err := excelize.CoordinatesToCellName(1, placement.TitleRow)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(plan.Sheet, titleCell, name); err != nil {
			return err
		}
		if err := f.SetCellStyle(plan.Sheet, titleCell, titleCell, styles.title); err != nil {
			return err
		}

		headerCells := stringCells(header)
		if err := setRow(f, plan.Sheet, placement.HeaderRow, headerCells); err != nil {
			return err
		}
		if err := styleRow(f, plan.Sheet, placement.HeaderRow, len(header), styles.header); err != nil {
			return err
		}
		widths.Observe(headerCells)

		for i, row := range rows {
			if err := setRow(f, plan.Sheet, placement.DataStartRow+i, row); err != nil {
				return err
			}
			widths.Observe(row)
		}
		return nil
	}

	metricRows := make([][]interface{}, 0, len(view.KeyMetrics))
	for _, metric := range view.KeyMetrics {
		metricRows = append(metricRows, []interface{}{metric.Name, metric.Value})
	}
	if err := writeTable(TableKeyMetrics, keyMetricsHeader, metricRows); err != nil {
		return err
	}

	if err := writeTable(TableCountsByLevel, levelCountsHeader, countRows(view.CountsByLevel)); err != nil {
		return err
	}
	if err := writeTable(TableCountsByService, serviceCountHeader, countRows(view.CountsByService)); err != nil {
		return err
	}

	if err := freezeTopRows(f, SheetSummary, 2); err != nil {
		return err
	}
	return widths.Apply(f, SheetSummary)
}

// writeDailySheet writes the per-date pivot: header row, one row per date,
// frozen header, autofilter.
func (r *Renderer) writeDailySheet(f *excelize.File, view *DailyPivotView, styles sheetStyles) error {
	headerNames := view.Header()
	widths := newColumnSizer(len(headerNames))

	header := stringCells(headerNames)
	if err := setRow(f, SheetDailySummary, 1, header); err != nil {
		return err
	}
	widths.Observe(header)

	for i, row := range view.Rows {
		cells := make([]interface{}, 0, len(headerNames))
		cells = append(cells, row.Date, row.TotalRows, row.ErrorCount)
		for _, count := range row.LevelCounts {
			cells = append(cells, count)
		}
		if err := setRow(f, SheetDailySummary, i+2, cells); err != nil {
			return err
		}
		widths.Observe(cells)
	}

	lastRow := len(view.Rows) + 1
	lastCol := len(headerNames)

	if err := styleRow(f, SheetDailySummary, 1, lastCol, styles.header); err != nil {
		return err
	}
	if err := freezeTopRows(f, SheetDailySummary, 1); err != nil {
		return err
	}
	if err := autoFilterRange(f, SheetDailySummary, lastRow, lastCol); err != nil {
		return err
	}
	return widths.Apply(f, SheetDailySummary)
}

func registerStyles(f *excelize.File) (sheetStyles, error) {
	title, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: titleFontPts},
	})
	if err != nil {
		return sheetStyles{}, err
	}

	header, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"4472C4"}},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
			WrapText:   true,
		},
	})
	if err != nil {
		return sheetStyles{}, err
	}

	errorRow, err := f.NewConditionalStyle(&excelize.Style{
		Font: &excelize.Font{Color: "9C0006"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"FFC7CE"}},
	})
	if err != nil {
		return sheetStyles{}, err
	}

	return sheetStyles{title: title, header: header, errorRow: errorRow}, nil
}

// highlightErrorRows attaches a formula-type conditional format over the data
// range so any row whose level cell reads ERROR is re-evaluated and colored
// by the spreadsheet engine, including after manual edits.
func highlightErrorRows(f *excelize.File, styleID, lastRow, lastCol int) error {
	rangeRef, err := rangeName(1, 2, lastCol, lastRow)
	if err != nil {
		return err
	}
	levelCol, err := excelize.ColumnNumberToName(levelColumn())
	if err != nil {
		return err
	}
	return f.SetConditionalFormat(SheetLogs, rangeRef, []excelize.ConditionalFormatOptions{
		{
			Type:     "formula",
			Criteria: fmt.Sprintf(`$%s2="ERROR"`, levelCol),
			Format:   &styleID,
		},
	})
}

// levelColumn is the 1-based position of the level column on the logs sheet.
func levelColumn() int {
	for i, name := range ExportLogsHeader {
		if name == "level" {
			return i + 1
		}
	}
	return 0
}

func setRow(f *excelize.File, sheet string, row int, cells []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &cells)
}

func styleRow(f *excelize.File, sheet string, row, cols, styleID int) error {
	start, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	end, err := excelize.CoordinatesToCellName(cols, row)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, start, end, styleID)
}

func freezeTopRows(f *excelize.File, sheet string, rows int) error {
	topLeft, err := excelize.CoordinatesToCellName(1, rows+1)
	if err != nil {
		return err
	}
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      rows,
		TopLeftCell: topLeft,
		ActivePane:  "bottomLeft",
	})
}

func autoFilterRange(f *excelize.File, sheet string, lastRow, lastCol int) error {
	rangeRef, err := rangeName(1, 1, lastCol, lastRow)
	if err != nil {
		return err
	}
	return f.AutoFilter(sheet, rangeRef, nil)
}

func rangeName(startCol, startRow, endCol, endRow int) (string, error) {
	start, err := excelize.CoordinatesToCellName(startCol, startRow)
	if err != nil {
		return "", err
	}
	end, err := excelize.CoordinatesToCellName(endCol, endRow)
	if err != nil {
		return "", err
	}
	return start + ":" + end, nil
}

func countRows(counts []ValueCount) [][]interface{} {
	rows := make([][]interface{}, 0, len(counts))
	for _, count := range counts {
		rows = append(rows, []interface{}{count.Value, count.Count})
	}
	return rows
}

func stringCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, value := range values {
		cells[i] = value
	}
	return cells
}

// columnSizer tracks the widest cell text seen per column and applies the
// padded, capped widths to a sheet.
type columnSizer struct {
	widths []float64
}

func newColumnSizer(cols int) *columnSizer {
	return &columnSizer{widths: make([]float64, cols)}
}

func (s *columnSizer) Observe(cells []interface{}) {
	for i, cell := range cells {
		if i >= len(s.widths) {
			break
		}
		if w := float64(len(cellText(cell))); w > s.widths[i] {
			s.widths[i] = w
		}
	}
}

func (s *columnSizer) Apply(f *excelize.File, sheet string) error {
	for i, observed := range s.widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		width := observed + colWidthPad
		if width < minColWidth {
			width = minColWidth
		}
		if width > maxColWidth {
			width = maxColWidth
		}
		if err := f.SetColWidth(sheet, col, col, width); err != nil {
			return err
		}
	}
	return nil
}

func cellText(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
