package report

import (
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nao1215/pagescore/internal/model"
)

// TableWriter renders a run as a terminal table.
type TableWriter struct {
	baseWriter

	// style is the go-pretty table style.
	style table.Style
}

// TableWriterOption configures a TableWriter.
type TableWriterOption func(*TableWriter)

// WithStyle sets the table style.
func WithStyle(style table.Style) TableWriterOption {
	return func(w *TableWriter) {
		w.style = style
	}
}

// WithTableColumns applies column options to a TableWriter.
func WithTableColumns(opts ...Option) TableWriterOption {
	return func(w *TableWriter) {
		for _, opt := range opts {
			opt(&w.baseWriter)
		}
	}
}

// NewTableWriter creates a TableWriter that outputs to the given writer.
func NewTableWriter(output io.Writer, opts ...TableWriterOption) *TableWriter {
	w := &TableWriter{
		baseWriter: newBaseWriter(output),
		style:      table.StyleRounded,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the table followed by a line break.
func (w *TableWriter) Write(run *model.BatchRun) (int, error) {
	if run == nil {
		run = model.NewBatchRun(0)
	}

	t := table.NewWriter()
	t.SetStyle(w.style)
	t.AppendHeader(toRow(w.columns.Labels()))
	for _, row := range w.columns.Rows(run) {
		t.AppendRow(toRow(row))
	}

	footer := make(table.Row, len(w.columns))
	footer[0] = "Total " + strconv.Itoa(run.Processed())
	if len(footer) > 1 {
		footer[len(footer)-1] = strconv.Itoa(run.Succeeded()) + " ok / " + strconv.Itoa(run.Failed()) + " failed"
	}
	t.AppendFooter(footer)

	return w.write([]byte(t.Render() + "\n"))
}

func toRow(values []string) table.Row {
	row := make(table.Row, len(values))
	for i, v := range values {
		row[i] = v
	}
	return row
}
