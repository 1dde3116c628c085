package report

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "github.com/sasi433/log-report-automation/internal/errors"
	"github.com/sasi433/log-report-automation/internal/ingest"
)

func renderTestViews(t *testing.T) (*Views, *LayoutPlan) {
	t.Helper()
	dataset := &ingest.Dataset{Records: []ingest.Record{
		withLatency(logRecord(t, "2025-01-01 10:00:00", "api", "INFO", "ok"), 12),
		withLatency(logRecord(t, "2025-01-01 11:30:00", "db", "ERROR", "connection lost"), 940.5),
		logRecord(t, "2025-01-02 09:15:00", "api", "WARN", "slow response"),
	}}
	views := BuildViews(dataset)
	plan, err := PlanLayout(SheetSummary, views.Summary.TableSpecs())
	require.NoError(t, err)
	return views, plan
}

func renderWorkbook(t *testing.T) (string, *excelize.File) {
	t.Helper()
	views, plan := renderTestViews(t)
	path := filepath.Join(t.TempDir(), "report.xlsx")

	renderer := NewRenderer(nil)
	require.NoError(t, renderer.Render(context.Background(), views, plan, path))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return path, f
}

func TestRenderer_Render(t *testing.T) {
	t.Run("workbook has the three sheets in order", func(t *testing.T) {
		_, f := renderWorkbook(t)
		assert.Equal(t, []string{SheetLogs, SheetSummary, SheetDailySummary}, f.GetSheetList())
	})

	t.Run("logs sheet carries header and rows", func(t *testing.T) {
		_, f := renderWorkbook(t)

		rows, err := f.GetRows(SheetLogs)
		require.NoError(t, err)
		require.Len(t, rows, 4)
		assert.Equal(t, ExportLogsHeader, rows[0])
		assert.Equal(t, []string{"2025-01-01", "10:00:00", "api", "INFO", "ok", "12"}, rows[1])
		assert.Equal(t, []string{"2025-01-01", "11:30:00", "db", "ERROR", "connection lost", "940.5"}, rows[2])

		// Missing latency stays an empty trailing cell.
		value, err := f.GetCellValue(SheetLogs, "F4")
		require.NoError(t, err)
		assert.Empty(t, value)
	})

	t.Run("logs header row is styled", func(t *testing.T) {
		_, f := renderWorkbook(t)

		styleID, err := f.GetCellStyle(SheetLogs, "A1")
		require.NoError(t, err)
		require.NotZero(t, styleID)

		style, err := f.GetStyle(styleID)
		require.NoError(t, err)
		require.NotNil(t, style.Font)
		assert.True(t, style.Font.Bold)
		require.NotNil(t, style.Alignment)
		assert.Equal(t, "center", style.Alignment.Horizontal)
		assert.True(t, style.Alignment.WrapText)
	})

	t.Run("logs and daily sheets freeze the header row", func(t *testing.T) {
		_, f := renderWorkbook(t)

		for _, sheet := range []string{SheetLogs, SheetDailySummary} {
			panes, err := f.GetPanes(sheet)
			require.NoError(t, err)
			assert.True(t, panes.Freeze, sheet)
			assert.Equal(t, 1, panes.YSplit, sheet)
		}
	})

	t.Run("summary sheet freezes the top two rows", func(t *testing.T) {
		_, f := renderWorkbook(t)

		panes, err := f.GetPanes(SheetSummary)
		require.NoError(t, err)
		assert.True(t, panes.Freeze)
		assert.Equal(t, 2, panes.YSplit)
	})

	t.Run("logs sheet highlights error rows by formula", func(t *testing.T) {
		_, f := renderWorkbook(t)

		formats, err := f.GetConditionalFormats(SheetLogs)
		require.NoError(t, err)
		require.Len(t, formats, 1)

		for rangeRef, opts := range formats {
			assert.Equal(t, "A2:F4", rangeRef)
			require.Len(t, opts, 1)
			assert.Equal(t, "formula", opts[0].Type)
			assert.Equal(t, `$D2="ERROR"`, opts[0].Criteria)
			require.NotNil(t, opts[0].Format)
		}
	})

	t.Run("summary tables land at planned offsets", func(t *testing.T) {
		_, f := renderWorkbook(t)

		// Key Metrics: title row 1, header row 2, two data rows.
		title, err := f.GetCellValue(SheetSummary, "A1")
		require.NoError(t, err)
		assert.Equal(t, TableKeyMetrics, title)

		metricHeader, err := f.GetCellValue(SheetSummary, "A2")
		require.NoError(t, err)
		assert.Equal(t, "metric", metricHeader)

		totalName, err := f.GetCellValue(SheetSummary, "A3")
		require.NoError(t, err)
		totalValue, err := f.GetCellValue(SheetSummary, "B3")
		require.NoError(t, err)
		assert.Equal(t, "total_rows", totalName)
		assert.Equal(t, "3", totalValue)

		errorName, err := f.GetCellValue(SheetSummary, "A4")
		require.NoError(t, err)
		errorValue, err := f.GetCellValue(SheetSummary, "B4")
		require.NoError(t, err)
		assert.Equal(t, "error_count", errorName)
		assert.Equal(t, "1", errorValue)

		// Counts by Level follows after the three row gap.
		levelTitle, err := f.GetCellValue(SheetSummary, "A8")
		require.NoError(t, err)
		assert.Equal(t, TableCountsByLevel, levelTitle)

		levelHeader, err := f.GetCellValue(SheetSummary, "A9")
		require.NoError(t, err)
		assert.Equal(t, "level", levelHeader)

		topLevel, err := f.GetCellValue(SheetSummary, "A10")
		require.NoError(t, err)
		assert.Equal(t, "INFO", topLevel)

		// Counts by Service is the third stacked table; the level table
		// has three data rows, so it starts on row 16.
		serviceTitle, err := f.GetCellValue(SheetSummary, "A16")
		require.NoError(t, err)
		assert.Equal(t, TableCountsByService, serviceTitle)

		topService, err := f.GetCellValue(SheetSummary, "A18")
		require.NoError(t, err)
		topServiceCount, err := f.GetCellValue(SheetSummary, "B18")
		require.NoError(t, err)
		assert.Equal(t, "api", topService)
		assert.Equal(t, "2", topServiceCount)
	})

	t.Run("daily sheet carries the pivot", func(t *testing.T) {
		_, f := renderWorkbook(t)

		rows, err := f.GetRows(SheetDailySummary)
		require.NoError(t, err)
		require.Len(t, rows, 3)
		assert.Equal(t, []string{"date", "total_rows", "error_count", "ERROR", "INFO", "WARN"}, rows[0])
		assert.Equal(t, []string{"2025-01-01", "2", "1", "1", "1", "0"}, rows[1])
		assert.Equal(t, []string{"2025-01-02", "1", "0", "0", "0", "1"}, rows[2])
	})

	t.Run("column widths stay within bounds", func(t *testing.T) {
		_, f := renderWorkbook(t)

		for col := 1; col <= len(ExportLogsHeader); col++ {
			name, err := excelize.ColumnNumberToName(col)
			require.NoError(t, err)
			width, err := f.GetColWidth(SheetLogs, name)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, width, minColWidth)
			assert.LessOrEqual(t, width, maxColWidth)
		}
	})

	t.Run("creates the parent directory", func(t *testing.T) {
		views, plan := renderTestViews(t)
		path := filepath.Join(t.TempDir(), "nested", "deeper", "report.xlsx")

		renderer := NewRenderer(nil)
		require.NoError(t, renderer.Render(context.Background(), views, plan, path))

		_, err := os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("unwritable destination yields an output error", func(t *testing.T) {
		views, plan := renderTestViews(t)
		dir := t.TempDir()
		blocker := filepath.Join(dir, "blocker")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		renderer := NewRenderer(nil)
		err := renderer.Render(context.Background(), views, plan, filepath.Join(blocker, "report.xlsx"))
		require.Error(t, err)

		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperrors.ErrTypeOutput, appErr.Type)
		assert.Contains(t, appErr.Message, "report.xlsx")
	})

	t.Run("empty views still produce a complete workbook", func(t *testing.T) {
		views := BuildViews(&ingest.Dataset{})
		plan, err := PlanLayout(SheetSummary, views.Summary.TableSpecs())
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "empty.xlsx")
		renderer := NewRenderer(nil)
		require.NoError(t, renderer.Render(context.Background(), views, plan, path))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		defer f.Close()

		assert.Equal(t, []string{SheetLogs, SheetSummary, SheetDailySummary}, f.GetSheetList())

		rows, err := f.GetRows(SheetLogs)
		require.NoError(t, err)
		require.Len(t, rows, 1)
		assert.Equal(t, ExportLogsHeader, rows[0])

		total, err := f.GetCellValue(SheetSummary, "B3")
		require.NoError(t, err)
		assert.Equal(t, "0", total)
	})
}
