package report

import (
	"bytes"
	"io"

	"github.com/cockroachdb/errors"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/nao1215/pagescore/internal/model"
)

// XLSWriter exports a run as an HTML table, which spreadsheet
// applications open as an .xls workbook.
type XLSWriter struct {
	baseWriter
}

// NewXLSWriter creates an XLSWriter that outputs to the given writer.
func NewXLSWriter(output io.Writer, opts ...Option) *XLSWriter {
	return &XLSWriter{baseWriter: newBaseWriter(output, opts...)}
}

// Write outputs one header row and one row per record.
func (w *XLSWriter) Write(run *model.BatchRun) (int, error) {
	if run == nil || len(run.Records) == 0 {
		return 0, ErrNoRecords
	}

	table := element(atom.Table)

	thead := element(atom.Thead)
	thead.AppendChild(tableRow(atom.Th, w.columns.Labels()))
	table.AppendChild(thead)

	tbody := element(atom.Tbody)
	for _, row := range w.columns.Rows(run) {
		tbody.AppendChild(tableRow(atom.Td, row))
	}
	table.AppendChild(tbody)

	var buf bytes.Buffer
	if err := html.Render(&buf, table); err != nil {
		return 0, errors.Wrap(err, "failed to render table")
	}
	return w.write(buf.Bytes())
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func tableRow(cell atom.Atom, values []string) *html.Node {
	tr := element(atom.Tr)
	for _, v := range values {
		c := element(cell)
		c.AppendChild(&html.Node{Type: html.TextNode, Data: v})
		tr.AppendChild(c)
	}
	return tr
}
