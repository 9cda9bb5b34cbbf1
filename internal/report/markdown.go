package report

import (
	"io"
	"strconv"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"

	"github.com/nao1215/pagescore/internal/model"
)

// MarkdownWriter outputs runs in Markdown format.
// This format is designed for documentation and sharing.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...Option) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output, opts...)}
}

// Write outputs the summary, the result table and failure details.
func (w *MarkdownWriter) Write(run *model.BatchRun) (int, error) {
	if run == nil {
		run = model.NewBatchRun(0)
	}
	md := markdown.NewMarkdown(w.output)

	md.H1("Website Performance Report")
	md.PlainText("")

	w.writeSummary(md, run)
	w.writeResults(md, run)
	w.writeFailures(md, run)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeSummary writes the outcome counts, a chart and an alert.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, run *model.BatchRun) {
	md.H2("Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"URLs", strconv.Itoa(run.Total)},
			{"✅ Succeeded", strconv.Itoa(run.Succeeded())},
			{"❌ Failed", strconv.Itoa(run.Failed())},
			{"Progress", strconv.Itoa(run.Progress()) + "%"},
		},
	})
	md.PlainText("")

	if run.Processed() > 0 {
		w.writePieChart(md, run)
	}
	w.writeAlert(md, run)
}

// writePieChart writes a mermaid pie chart of the outcome distribution.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, run *model.BatchRun) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Evaluation Outcomes"),
		piechart.WithShowData(true),
	)

	if n := run.Succeeded(); n > 0 {
		chart.LabelAndIntValue("Succeeded", uint64(n))
	}
	if n := run.Failed(); n > 0 {
		chart.LabelAndIntValue("Failed", uint64(n))
	}

	md.PlainText("")
	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeAlert writes an alert matching the outcome.
func (w *MarkdownWriter) writeAlert(md *markdown.Markdown, run *model.BatchRun) {
	switch {
	case run.Processed() == 0:
		md.Note("No URLs were evaluated.")
	case run.Failed() == run.Processed():
		md.Cautionf("Every URL failed (%d). Check the API key and the URLs.", run.Failed())
	case run.Failed() > 0:
		md.Warningf("%d of %d URL(s) could not be evaluated.", run.Failed(), run.Processed())
	default:
		md.Tip("Every URL was evaluated.")
	}
	md.PlainText("")
}

// writeResults writes the result table with the shared columns.
func (w *MarkdownWriter) writeResults(md *markdown.Markdown, run *model.BatchRun) {
	md.H2("Results")
	md.PlainText("")

	if len(run.Records) == 0 {
		md.PlainText("No results.")
		md.PlainText("")
		return
	}

	md.Table(markdown.TableSet{
		Header: w.columns.Labels(),
		Rows:   w.columns.Rows(run),
	})
	md.PlainText("")
}

// writeFailures lists the error of every failed record.
func (w *MarkdownWriter) writeFailures(md *markdown.Markdown, run *model.BatchRun) {
	if run.Failed() == 0 {
		return
	}

	md.H2("Failures")
	md.PlainText("")
	for _, rec := range run.Records {
		if rec.Succeeded() {
			continue
		}
		reason := rec.Error
		if reason == "" {
			reason = "unknown error"
		}
		md.Details(rec.URL, reason)
	}
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("*Report generated by [pagescore](https://github.com/nao1215/pagescore)*")
}
