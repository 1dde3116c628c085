// Package report derives presentation views from a normalized log dataset and
// renders them into a styled xlsx workbook.
//
// The package splits the work into three stages that mirror the report
// pipeline:
//
//  1. View builders (BuildExportLogs, BuildSummary, BuildDailyPivot) project
//     and aggregate an ingest.Dataset into flat, render-ready tables. Builders
//     are pure: they never touch the filesystem and always produce well-formed
//     views, including for empty datasets.
//  2. The layout planner (PlanLayout) computes 1-based row offsets for tables
//     stacked on a single sheet. All placements come from one formula so
//     spacing stays consistent no matter how many rows each table has.
//  3. The renderer (Renderer.Render) writes the views into the workbook at the
//     planned offsets and applies presentation in the same pass: header
//     styles, frozen panes, autofilters, conditional formatting, and column
//     widths.
//
// Sheet and table names are exported as constants so front-ends and tests can
// reference them without string duplication.
package report
