package model

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Document is an upstream scoring payload decoded without a fixed schema.
// Only a handful of fields are read from it; everything else is ignored.
type Document map[string]any

// ParseDocument decodes raw into a Document. Anything other than a JSON
// object is reported as ErrMissingPayload.
func ParseDocument(raw json.RawMessage) (Document, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, ErrMissingPayload
	}

	var doc Document
	if err := json.Unmarshal(trimmed, &doc); err != nil {
		return nil, errors.Wrap(err, "failed to decode profile payload")
	}
	if doc == nil {
		return nil, ErrMissingPayload
	}
	return doc, nil
}

// Lookup walks nested objects along path and returns the value found.
func (d Document) Lookup(path ...string) (any, bool) {
	var current any = map[string]any(d)
	for _, key := range path {
		obj, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		current, ok = obj[key]
		if !ok || current == nil {
			return nil, false
		}
	}
	return current, true
}

func (d Document) number(path ...string) (float64, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return 0, false
	}
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// PerformanceScore returns the performance category score scaled to 0-100
// and rounded to the nearest integer.
func PerformanceScore(d Document) string {
	score, ok := d.number("lighthouseResult", "categories", "performance", "score")
	if !ok {
		return NotAvailable
	}
	return formatNumber(math.Round(score * 100))
}

// TotalTiming returns the total analysis time in milliseconds.
func TotalTiming(d Document) string {
	total, ok := d.number("lighthouseResult", "timing", "total")
	if !ok {
		return NotAvailable
	}
	return formatNumber(total)
}

// AuditDisplayValue returns the display value of the named Lighthouse audit.
func AuditDisplayValue(d Document, auditID string) string {
	v, ok := d.Lookup("lighthouseResult", "audits", auditID, "displayValue")
	if !ok {
		return NotAvailable
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return NotAvailable
	}
	return s
}

// ExtractMetrics reads every known metric from d. Missing fields become
// NotAvailable; the function never fails.
func ExtractMetrics(d Document) Metrics {
	metrics := Metrics{
		MetricScore:  PerformanceScore(d),
		MetricTiming: TotalTiming(d),
	}
	for _, metric := range ExtendedMetrics() {
		if auditID, ok := metric.AuditID(); ok {
			metrics[metric] = AuditDisplayValue(d, auditID)
		}
	}
	return metrics
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
