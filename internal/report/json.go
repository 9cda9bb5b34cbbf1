package report

import (
	"encoding/json"
	"io"

	"github.com/cockroachdb/errors"

	"github.com/nao1215/pagescore/internal/model"
)

// JSONWriter outputs runs in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string

	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonReport is the document written by JSONWriter.
type jsonReport struct {
	ID        string         `json:"id"`
	Total     int            `json:"total"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Records   []model.Record `json:"records"`
}

// Write outputs the run with its summary counts. An empty run is written
// with an empty records array.
func (w *JSONWriter) Write(run *model.BatchRun) (int, error) {
	if run == nil {
		run = model.NewBatchRun(0)
	}
	doc := jsonReport{
		ID:        run.ID,
		Total:     run.Total,
		Succeeded: run.Succeeded(),
		Failed:    run.Failed(),
		Records:   run.Records,
	}
	if doc.Records == nil {
		doc.Records = []model.Record{}
	}

	var (
		data []byte
		err  error
	)
	if w.indent {
		data, err = json.MarshalIndent(doc, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, errors.Wrap(err, "failed to encode report")
	}
	return w.write(append(data, '\n'))
}
