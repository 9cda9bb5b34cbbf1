package report

import (
	"io"

	"github.com/nao1215/pagescore/internal/model"
)

// Writer defines the interface for report output.
// Implementations write the records of a run in one format.
type Writer interface {
	// Write outputs the run to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(run *model.BatchRun) (int, error)
}

// MultiWriter writes to multiple Writers in turn.
// This is useful for outputting to both terminal and file.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the run to all configured Writers.
// Returns the total bytes written across all writers.
// Stops on first error encountered.
func (m *MultiWriter) Write(run *model.BatchRun) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(run)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Option configures the column set of a writer.
type Option func(*baseWriter)

// WithExtendedMetrics adds the SI, TBT and TTI columns.
func WithExtendedMetrics(extended bool) Option {
	return func(b *baseWriter) {
		if extended {
			b.columns = ExtendedColumns()
		}
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output  io.Writer
	columns Columns
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer, opts ...Option) baseWriter {
	b := baseWriter{output: output, columns: StandardColumns()}
	for _, opt := range opts {
		opt(&b)
	}
	return b
}

// write sends data to the output in one call.
func (b baseWriter) write(data []byte) (int, error) {
	return b.output.Write(data)
}
