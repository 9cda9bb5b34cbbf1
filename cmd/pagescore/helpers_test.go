package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// fakeService mimics the aggregator service. URLs listed in scores
// succeed; every other URL is rejected the way the real service does.
type fakeService struct {
	*httptest.Server

	mu       sync.Mutex
	received []string
}

func newFakeService(t *testing.T, scores map[string]float64) *fakeService {
	t.Helper()

	fs := &fakeService{}
	mux := http.NewServeMux()
	mux.HandleFunc("GET /", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"message":"Website Performance Checker API is running"}`))
	})
	mux.HandleFunc("POST /sendUrl", func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL string `json:"url"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)

		fs.mu.Lock()
		fs.received = append(fs.received, req.URL)
		fs.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		score, ok := scores[req.URL]
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"Failed to fetch PageSpeed data. Please check if the URL is valid."}`))
			return
		}
		payload := map[string]any{
			"lighthouseResult": map[string]any{
				"categories": map[string]any{"performance": map[string]any{"score": score}},
				"timing":     map[string]any{"total": 1500},
				"audits": map[string]any{
					"first-contentful-paint": map[string]any{"displayValue": "1.1 s"},
				},
			},
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"mobile": payload, "desktop": payload})
	})

	fs.Server = httptest.NewServer(mux)
	t.Cleanup(fs.Close)
	return fs
}

// Received returns the URLs posted to the service, in order.
func (fs *fakeService) Received() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.received...)
}

// emptyConfig writes an empty configuration file so tests do not pick up
// a .pagescore from the working or home directory.
func emptyConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  format: text\n"), 0600); err != nil {
		t.Fatal(err)
	}
	return path
}

// runRoot executes the root command with args and returns stdout and stderr.
func runRoot(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
