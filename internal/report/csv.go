package report

import (
	"io"
	"strings"

	"github.com/nao1215/pagescore/internal/model"
)

// CSVWriter exports a run as comma-separated text. Every field is quoted,
// rows are separated by "\n" and there is no trailing newline.
type CSVWriter struct {
	baseWriter
}

// NewCSVWriter creates a CSVWriter that outputs to the given writer.
func NewCSVWriter(output io.Writer, opts ...Option) *CSVWriter {
	return &CSVWriter{baseWriter: newBaseWriter(output, opts...)}
}

// Write outputs the header and one row per record.
func (w *CSVWriter) Write(run *model.BatchRun) (int, error) {
	if run == nil || len(run.Records) == 0 {
		return 0, ErrNoRecords
	}

	lines := make([]string, 0, len(run.Records)+1)
	lines = append(lines, csvLine(w.columns.Labels()))
	for _, row := range w.columns.Rows(run) {
		lines = append(lines, csvLine(row))
	}
	return w.write([]byte(strings.Join(lines, "\n")))
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
