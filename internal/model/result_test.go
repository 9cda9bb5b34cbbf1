package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestNewSuccessRecord(t *testing.T) {
	t.Parallel()

	t.Run("both payloads present", func(t *testing.T) {
		t.Parallel()
		result := &ScoreResult{
			URL:     "https://example.com",
			Mobile:  json.RawMessage(samplePayload),
			Desktop: json.RawMessage(`{"lighthouseResult":{"categories":{"performance":{"score":0.5}}}}`),
		}
		rec := NewSuccessRecord(result.URL, result)
		if rec.Status != StatusSuccess {
			t.Fatalf("expected success, got %s (%s)", rec.Status, rec.Error)
		}
		if got := rec.Mobile.Value(MetricScore); got != "93" {
			t.Errorf("mobile score = %q, want 93", got)
		}
		if got := rec.Desktop.Value(MetricScore); got != "50" {
			t.Errorf("desktop score = %q, want 50", got)
		}
		if got := rec.Desktop.Value(MetricFCP); got != NotAvailable {
			t.Errorf("desktop fcp = %q, want %q", got, NotAvailable)
		}
	})

	t.Run("missing desktop payload fails the record", func(t *testing.T) {
		t.Parallel()
		result := &ScoreResult{Mobile: json.RawMessage(samplePayload)}
		rec := NewSuccessRecord("https://example.com", result)
		if rec.Status != StatusFailed {
			t.Fatalf("expected failed, got %s", rec.Status)
		}
		if rec.Mobile.Value(MetricScore) != ErrorValue {
			t.Errorf("expected error sentinel, got %q", rec.Mobile.Value(MetricScore))
		}
	})

	t.Run("nil result fails the record", func(t *testing.T) {
		t.Parallel()
		rec := NewSuccessRecord("https://example.com", nil)
		if rec.Succeeded() {
			t.Error("expected failed record")
		}
	})
}

func TestScoreResultDocuments(t *testing.T) {
	t.Parallel()

	result := &ScoreResult{Mobile: json.RawMessage(`{}`), Desktop: json.RawMessage(`null`)}
	if _, err := result.Documents(); !errors.Is(err, ErrMissingPayload) {
		t.Errorf("expected ErrMissingPayload, got %v", err)
	}
}

func TestScoreResultMarshal(t *testing.T) {
	t.Parallel()

	result := &ScoreResult{
		URL:     "https://example.com",
		Mobile:  json.RawMessage(`{"id":"m"}`),
		Desktop: json.RawMessage(`{"id":"d"}`),
	}
	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := `{"mobile":{"id":"m"},"desktop":{"id":"d"}}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}

func TestNewFailedRecord(t *testing.T) {
	t.Parallel()

	rec := NewFailedRecord("not-a-real-url", errors.New("upstream returned 400"))
	if rec.Status != StatusFailed {
		t.Errorf("expected failed status, got %s", rec.Status)
	}
	if rec.Error != "upstream returned 400" {
		t.Errorf("unexpected error text %q", rec.Error)
	}
	for _, p := range Profiles() {
		for _, metric := range ExtendedMetrics() {
			if got := rec.Metrics(p).Value(metric); got != ErrorValue {
				t.Errorf("%s %s = %q, want %q", p, metric, got, ErrorValue)
			}
		}
	}
}
