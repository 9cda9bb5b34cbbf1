package model

import (
	"encoding/json"
	"errors"
	"testing"
)

const samplePayload = `{
  "lighthouseResult": {
    "categories": {"performance": {"score": 0.93}},
    "timing": {"total": 12345.6},
    "audits": {
      "first-contentful-paint": {"displayValue": "1.2 s"},
      "largest-contentful-paint": {"displayValue": "2.5 s"},
      "cumulative-layout-shift": {"displayValue": "0.01"},
      "speed-index": {"displayValue": "3.1 s"},
      "total-blocking-time": {"displayValue": "120 ms"},
      "interactive": {"displayValue": "4.0 s"}
    }
  }
}`

func mustParse(t *testing.T, raw string) Document {
	t.Helper()
	doc, err := ParseDocument(json.RawMessage(raw))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return doc
}

func TestParseDocument(t *testing.T) {
	t.Parallel()

	t.Run("object payload is decoded", func(t *testing.T) {
		t.Parallel()
		doc := mustParse(t, samplePayload)
		if _, ok := doc["lighthouseResult"]; !ok {
			t.Error("expected lighthouseResult key")
		}
	})

	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty payload", raw: ""},
		{name: "null payload", raw: "null"},
		{name: "array payload", raw: "[1,2]"},
		{name: "string payload", raw: `"text"`},
	}
	for _, tt := range tests {
		t.Run(tt.name+" is missing", func(t *testing.T) {
			t.Parallel()
			_, err := ParseDocument(json.RawMessage(tt.raw))
			if !errors.Is(err, ErrMissingPayload) {
				t.Errorf("expected ErrMissingPayload, got %v", err)
			}
		})
	}

	t.Run("broken object is an error", func(t *testing.T) {
		t.Parallel()
		if _, err := ParseDocument(json.RawMessage(`{"a":`)); err == nil {
			t.Error("expected error for truncated object")
		}
	})
}

func TestPerformanceScore(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "0.93 becomes 93", raw: samplePayload, want: "93"},
		{name: "rounds to nearest", raw: `{"lighthouseResult":{"categories":{"performance":{"score":0.876}}}}`, want: "88"},
		{name: "zero is kept", raw: `{"lighthouseResult":{"categories":{"performance":{"score":0}}}}`, want: "0"},
		{name: "perfect score", raw: `{"lighthouseResult":{"categories":{"performance":{"score":1}}}}`, want: "100"},
		{name: "null score", raw: `{"lighthouseResult":{"categories":{"performance":{"score":null}}}}`, want: NotAvailable},
		{name: "string score", raw: `{"lighthouseResult":{"categories":{"performance":{"score":"0.5"}}}}`, want: NotAvailable},
		{name: "no lighthouse result", raw: `{}`, want: NotAvailable},
		{name: "categories is not an object", raw: `{"lighthouseResult":{"categories":[]}}`, want: NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := PerformanceScore(mustParse(t, tt.raw)); got != tt.want {
				t.Errorf("PerformanceScore() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTotalTiming(t *testing.T) {
	t.Parallel()

	t.Run("fractional timing is kept", func(t *testing.T) {
		t.Parallel()
		if got := TotalTiming(mustParse(t, samplePayload)); got != "12345.6" {
			t.Errorf("TotalTiming() = %q, want %q", got, "12345.6")
		}
	})

	t.Run("missing timing is not available", func(t *testing.T) {
		t.Parallel()
		if got := TotalTiming(mustParse(t, `{"lighthouseResult":{}}`)); got != NotAvailable {
			t.Errorf("TotalTiming() = %q, want %q", got, NotAvailable)
		}
	})
}

func TestAuditDisplayValue(t *testing.T) {
	t.Parallel()

	doc := mustParse(t, `{"lighthouseResult":{"audits":{
		"first-contentful-paint":{"displayValue":"0.8 s"},
		"largest-contentful-paint":{"displayValue":""},
		"cumulative-layout-shift":{"score":1}
	}}}`)

	tests := []struct {
		auditID string
		want    string
	}{
		{auditID: "first-contentful-paint", want: "0.8 s"},
		{auditID: "largest-contentful-paint", want: NotAvailable},
		{auditID: "cumulative-layout-shift", want: NotAvailable},
		{auditID: "speed-index", want: NotAvailable},
	}
	for _, tt := range tests {
		t.Run(tt.auditID, func(t *testing.T) {
			t.Parallel()
			if got := AuditDisplayValue(doc, tt.auditID); got != tt.want {
				t.Errorf("AuditDisplayValue(%q) = %q, want %q", tt.auditID, got, tt.want)
			}
		})
	}
}

func TestExtractMetrics(t *testing.T) {
	t.Parallel()

	t.Run("full payload", func(t *testing.T) {
		t.Parallel()
		got := ExtractMetrics(mustParse(t, samplePayload))
		want := Metrics{
			MetricScore:      "93",
			MetricTiming:     "12345.6",
			MetricFCP:        "1.2 s",
			MetricLCP:        "2.5 s",
			MetricCLS:        "0.01",
			MetricSpeedIndex: "3.1 s",
			MetricTBT:        "120 ms",
			MetricTTI:        "4.0 s",
		}
		for _, metric := range ExtendedMetrics() {
			if got.Value(metric) != want[metric] {
				t.Errorf("%s = %q, want %q", metric, got.Value(metric), want[metric])
			}
		}
	})

	t.Run("empty payload yields not available everywhere", func(t *testing.T) {
		t.Parallel()
		got := ExtractMetrics(mustParse(t, `{}`))
		for _, metric := range ExtendedMetrics() {
			if got.Value(metric) != NotAvailable {
				t.Errorf("%s = %q, want %q", metric, got.Value(metric), NotAvailable)
			}
		}
	})
}
