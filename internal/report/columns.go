package report

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/nao1215/pagescore/internal/model"
)

// Column is one field of the exported table.
type Column struct {
	// Label is the human-readable header.
	Label string

	value func(model.Record) string
}

// Value returns the cell of rec in this column.
func (c Column) Value(rec model.Record) string {
	return c.value(rec)
}

// Columns is an ordered field enumeration shared by every encoding, so
// that CSV and XLS exports describe the same logical table.
type Columns []Column

// StandardColumns returns URL, the five standard metrics for each profile,
// and Status.
func StandardColumns() Columns {
	return buildColumns(model.StandardMetrics())
}

// ExtendedColumns is StandardColumns with SI, TBT and TTI per profile.
func ExtendedColumns() Columns {
	return buildColumns(model.ExtendedMetrics())
}

func buildColumns(metrics []model.Metric) Columns {
	title := cases.Title(language.English)

	cols := Columns{{
		Label: "URL",
		value: func(r model.Record) string { return r.URL },
	}}
	for _, profile := range model.Profiles() {
		profileLabel := title.String(profile.String())
		for _, metric := range metrics {
			cols = append(cols, Column{
				Label: metric.Label() + " (" + profileLabel + ")",
				value: func(r model.Record) string { return r.Metrics(profile).Value(metric) },
			})
		}
	}
	cols = append(cols, Column{
		Label: "Status",
		value: func(r model.Record) string { return r.Status.String() },
	})
	return cols
}

// Labels returns the header labels in column order.
func (c Columns) Labels() []string {
	labels := make([]string, len(c))
	for i, col := range c {
		labels[i] = col.Label
	}
	return labels
}

// Row returns the cells of rec in column order.
func (c Columns) Row(rec model.Record) []string {
	row := make([]string, len(c))
	for i, col := range c {
		row[i] = col.Value(rec)
	}
	return row
}

// Rows returns one row per record of run.
func (c Columns) Rows(run *model.BatchRun) [][]string {
	rows := make([][]string, len(run.Records))
	for i, rec := range run.Records {
		rows[i] = c.Row(rec)
	}
	return rows
}
