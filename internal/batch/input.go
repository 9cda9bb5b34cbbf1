package batch

import (
	"bufio"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineBytes bounds a single input line.
const maxLineBytes = 1 << 20

// ParseURLs reads a delimited text input and returns the first
// comma-separated field of every line. Fields are trimmed, blank results
// are dropped, and a leading byte order mark is ignored.
func ParseURLs(r io.Reader) ([]string, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	scanner := bufio.NewScanner(decoded)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var urls []string
	for scanner.Scan() {
		if u := firstField(scanner.Text()); u != "" {
			urls = append(urls, u)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to read URL list")
	}
	return urls, nil
}

// firstField returns everything before the first comma of line, trimmed.
// Quotes carry no meaning.
func firstField(line string) string {
	field, _, _ := strings.Cut(line, ",")
	return strings.TrimSpace(field)
}

// NormalizeURLs trims every entry and drops blank ones, keeping order.
func NormalizeURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if u = strings.TrimSpace(u); u != "" {
			out = append(out, u)
		}
	}
	return out
}
