package report

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format is a report encoding.
type Format string

const (
	// FormatCSV is comma-separated text with every field quoted.
	FormatCSV Format = "csv"
	// FormatXLS is an HTML table saved with the .xls extension.
	FormatXLS Format = "xls"
	// FormatJSON is the JSON document of JSONWriter.
	FormatJSON Format = "json"
	// FormatMarkdown is the Markdown report.
	FormatMarkdown Format = "markdown"
	// FormatTable is the terminal table.
	FormatTable Format = "table"
)

// Default export base names.
const (
	DefaultBatchFileName  = "WebsitePerformance"
	DefaultSingleFileName = "WebsiteScores"
)

// ParseFormat converts a flag value into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "xls", "excel":
		return FormatXLS, nil
	case "json":
		return FormatJSON, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "table", "text":
		return FormatTable, nil
	default:
		return "", errors.WithDetailf(ErrUnknownFormat, "format %q", s)
	}
}

// FormatFromPath infers the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return "", errors.WithDetailf(ErrUnknownFormat, "no extension in %q", path)
	}
	return ParseFormat(ext)
}

// Extension returns the file extension of f, including the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatTable:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// DefaultFileName returns the export file name used when none is given.
func DefaultFileName(batch bool, f Format) string {
	base := DefaultSingleFileName
	if batch {
		base = DefaultBatchFileName
	}
	return base + f.Extension()
}

// NewWriter returns the writer for f.
func NewWriter(f Format, output io.Writer, opts ...Option) (Writer, error) {
	switch f {
	case FormatCSV:
		return NewCSVWriter(output, opts...), nil
	case FormatXLS:
		return NewXLSWriter(output, opts...), nil
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint()), nil
	case FormatMarkdown:
		return NewMarkdownWriter(output, opts...), nil
	case FormatTable:
		return NewTableWriter(output, WithTableColumns(opts...)), nil
	default:
		return nil, errors.WithDetailf(ErrUnknownFormat, "format %q", string(f))
	}
}
