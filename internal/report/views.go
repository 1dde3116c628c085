package report

import (
	"sort"

	"github.com/sasi433/log-report-automation/internal/ingest"
)

// Sheet names in workbook order.
const (
	SheetLogs         = "logs"
	SheetSummary      = "summary"
	SheetDailySummary = "daily_summary"
)

// Table names on the summary sheet, stacked in this order. The names double
// as the rendered title cells.
const (
	TableKeyMetrics      = "Key Metrics"
	TableCountsByLevel   = "Counts by Level"
	TableCountsByService = "Counts by Service"
)

// missingLabel stands in for blank level/service values in aggregate tables
// so no rendered label is ever an empty cell.
const missingLabel = "(missing)"

// ExportLogsHeader is the column order of the logs sheet.
var ExportLogsHeader = []string{"date", "time", "service", "level", "message", "response_ms"}

// ExportRow is one line of the logs sheet. Date and Time are pre-split
// timestamp halves; both are empty when the record's timestamp is missing.
type ExportRow struct {
	Date       string
	Time       string
	Service    string
	Level      string
	Message    string
	ResponseMS float64
	HasLatency bool
}

// Cells returns the row as workbook cell values in ExportLogsHeader order.
// A missing latency renders as an empty cell, never as zero.
func (r ExportRow) Cells() []interface{} {
	latency := interface{}("")
	if r.HasLatency {
		latency = r.ResponseMS
	}
	return []interface{}{r.Date, r.Time, r.Service, r.Level, r.Message, latency}
}

// ExportLogsView is the flat projection of a dataset for the logs sheet,
// row order inherited from the dataset.
type ExportLogsView struct {
	Rows []ExportRow
}

// Metric is one metric/value pair on the key metrics table.
type Metric struct {
	Name  string
	Value int
}

// ValueCount is one label/count pair on a frequency table.
type ValueCount struct {
	Value string
	Count int
}

// SummaryView holds the three tables of the summary sheet.
type SummaryView struct {
	KeyMetrics      []Metric
	CountsByLevel   []ValueCount
	CountsByService []ValueCount
}

// TableSpecs returns the summary tables as layout input, in sheet order.
func (v *SummaryView) TableSpecs() []TableSpec {
	return []TableSpec{
		{Name: TableKeyMetrics, RowCount: len(v.KeyMetrics)},
		{Name: TableCountsByLevel, RowCount: len(v.CountsByLevel)},
		{Name: TableCountsByService, RowCount: len(v.CountsByService)},
	}
}

// DailyRow is one calendar date of the daily pivot. LevelCounts aligns with
// the view's Levels slice.
type DailyRow struct {
	Date        string
	TotalRows   int
	ErrorCount  int
	LevelCounts []int
}

// DailyPivotView is the per-date level breakdown for the daily_summary sheet.
// Levels holds the distinct level labels present in the dataset, sorted
// lexically so the column layout is deterministic for any label set.
type DailyPivotView struct {
	Levels []string
	Rows   []DailyRow
}

// Header returns the daily_summary column headers: the three fixed columns
// followed by one column per level.
func (v *DailyPivotView) Header() []string {
	header := make([]string, 0, 3+len(v.Levels))
	header = append(header, "date", "total_rows", "error_count")
	header = append(header, v.Levels...)
	return header
}

// Views bundles the three sheet views for one report run.
type Views struct {
	Logs    *ExportLogsView
	Summary *SummaryView
	Daily   *DailyPivotView
}

// BuildViews derives all three sheet views from one dataset.
func BuildViews(dataset *ingest.Dataset) *Views {
	return &Views{
		Logs:    BuildExportLogs(dataset),
		Summary: BuildSummary(dataset),
		Daily:   BuildDailyPivot(dataset),
	}
}

// BuildExportLogs projects the dataset onto the logs sheet columns, splitting
// each valid timestamp into date and time strings. Records keep their dataset
// order.
func BuildExportLogs(dataset *ingest.Dataset) *ExportLogsView {
	rows := make([]ExportRow, 0, dataset.Len())
	for _, record := range dataset.Records {
		row := ExportRow{
			Service:    record.Service,
			Level:      record.Level,
			Message:    record.Message,
			ResponseMS: record.ResponseMS,
			HasLatency: record.ResponseMSValid,
		}
		if record.TimestampValid {
			row.Date = record.Timestamp.Format("2006-01-02")
			row.Time = record.Timestamp.Format("15:04:05")
		}
		rows = append(rows, row)
	}
	return &ExportLogsView{Rows: rows}
}

// BuildSummary computes the key metrics and the level/service frequency
// tables. Frequency tables are ordered by descending count; equal counts keep
// the order the values first appeared in the dataset.
func BuildSummary(dataset *ingest.Dataset) *SummaryView {
	errorCount := 0
	levels := newValueCounter()
	services := newValueCounter()

	for _, record := range dataset.Records {
		if record.Level == "ERROR" {
			errorCount++
		}
		levels.Add(record.Level)
		services.Add(record.Service)
	}

	return &SummaryView{
		KeyMetrics: []Metric{
			{Name: "total_rows", Value: dataset.Len()},
			{Name: "error_count", Value: errorCount},
		},
		CountsByLevel:   levels.Table(),
		CountsByService: services.Table(),
	}
}

// BuildDailyPivot accumulates (date, level) counts over records with valid
// timestamps and materializes them as one row per date, ascending, with a
// column per distinct level and zero fill for absent combinations.
func BuildDailyPivot(dataset *ingest.Dataset) *DailyPivotView {
	counts := make(map[string]map[string]int)
	levelSet := make(map[string]struct{})

	for _, record := range dataset.Records {
		if !record.TimestampValid {
			continue
		}
		date := record.Timestamp.Format("2006-01-02")
		level := record.Level
		if level == "" {
			level = missingLabel
		}
		byLevel, ok := counts[date]
		if !ok {
			byLevel = make(map[string]int)
			counts[date] = byLevel
		}
		byLevel[level]++
		levelSet[level] = struct{}{}
	}

	levels := make([]string, 0, len(levelSet))
	for level := range levelSet {
		levels = append(levels, level)
	}
	sort.Strings(levels)

	dates := make([]string, 0, len(counts))
	for date := range counts {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	rows := make([]DailyRow, 0, len(dates))
	for _, date := range dates {
		byLevel := counts[date]
		row := DailyRow{
			Date:        date,
			ErrorCount:  byLevel["ERROR"],
			LevelCounts: make([]int, len(levels)),
		}
		for i, level := range levels {
			row.LevelCounts[i] = byLevel[level]
			row.TotalRows += byLevel[level]
		}
		rows = append(rows, row)
	}

	return &DailyPivotView{Levels: levels, Rows: rows}
}

// valueCounter tallies string values while remembering first-seen order,
// which breaks frequency ties deterministically.
type valueCounter struct {
	counts map[string]int
	order  []string
}

func newValueCounter() *valueCounter {
	return &valueCounter{counts: make(map[string]int)}
}

func (c *valueCounter) Add(value string) {
	if value == "" {
		value = missingLabel
	}
	if _, seen := c.counts[value]; !seen {
		c.order = append(c.order, value)
	}
	c.counts[value]++
}

// Table returns the tally ordered by descending count, first-seen order on
// ties.
func (c *valueCounter) Table() []ValueCount {
	table := make([]ValueCount, 0, len(c.order))
	for _, value := range c.order {
		table = append(table, ValueCount{Value: value, Count: c.counts[value]})
	}
	sort.SliceStable(table, func(i, j int) bool {
		return table[i].Count > table[j].Count
	})
	return table
}
