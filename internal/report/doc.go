// Package report renders evaluation runs.
//
// Every tabular writer draws its header and cells from one Columns value,
// so a CSV export and an XLS export of the same run describe the same
// table. Output is deterministic: writing a run twice produces identical
// bytes.
//
// Writers:
//   - CSVWriter: every field quoted, rows joined by "\n"
//   - XLSWriter: an HTML table that spreadsheet applications open as .xls
//   - JSONWriter: records with summary counts
//   - MarkdownWriter: summary, outcome chart, result table, failures
//   - TableWriter: terminal table
package report
