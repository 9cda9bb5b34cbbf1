package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResponse struct {
	status int
	body   string
}

func newMockService(t *testing.T, responses map[string]mockResponse) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			URL string `json:"url"`
		}
		if r.Method == http.MethodPost {
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "/sendUrl", r.URL.Path)
		}
		resp, ok := responses[req.URL]
		if !ok {
			resp = mockResponse{status: http.StatusOK, body: `{"message":"Website Performance Checker API is running"}`}
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		_, _ = w.Write([]byte(resp.body))
	}))
	t.Cleanup(srv.Close)

	c, err := New(srv.URL + "/")
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := New("localhost:8000")
	assert.True(t, errors.Is(err, ErrInvalidBaseURL))

	c, err := New("http://localhost:8000/")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8000", c.BaseURL())
}

func TestClient_Evaluate(t *testing.T) {
	t.Parallel()

	c := newMockService(t, map[string]mockResponse{
		"https://example.com":  {status: http.StatusOK, body: `{"mobile":{"m":1},"desktop":{"d":2}}`},
		"not-a-real-url":       {status: http.StatusBadRequest, body: `{"error":"Failed to fetch PageSpeed data. Please check if the URL is valid."}`},
		"https://nokey.test":   {status: http.StatusInternalServerError, body: `{"error":"API key not configured"}`},
		"https://garbage.test": {status: http.StatusOK, body: `not json`},
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		result, err := c.Evaluate(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", result.URL)
		assert.JSONEq(t, `{"m":1}`, string(result.Mobile))
		assert.JSONEq(t, `{"d":2}`, string(result.Desktop))
	})

	t.Run("upstream rejection", func(t *testing.T) {
		t.Parallel()
		_, err := c.Evaluate(context.Background(), "not-a-real-url")
		require.True(t, errors.Is(err, ErrServiceRejected))

		var svcErr *ServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
		assert.Contains(t, svcErr.Message, "Failed to fetch PageSpeed data")
	})

	t.Run("configuration error", func(t *testing.T) {
		t.Parallel()
		_, err := c.Evaluate(context.Background(), "https://nokey.test")
		var svcErr *ServiceError
		require.True(t, errors.As(err, &svcErr))
		assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
		assert.Equal(t, "API key not configured", svcErr.Message)
	})

	t.Run("undecodable body", func(t *testing.T) {
		t.Parallel()
		_, err := c.Evaluate(context.Background(), "https://garbage.test")
		assert.True(t, errors.Is(err, ErrServiceUnavailable))
	})

	t.Run("health", func(t *testing.T) {
		t.Parallel()
		msg, err := c.Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Website Performance Checker API is running", msg)
	})
}

func TestClient_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	c, err := New(base)
	require.NoError(t, err)
	_, err = c.Evaluate(context.Background(), "https://example.com")
	assert.True(t, errors.Is(err, ErrServiceUnavailable))
}

func TestClient_ResponseTooLarge(t *testing.T) {
	t.Parallel()

	body := `{"mobile":{"m":1},"desktop":{"d":2}}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	t.Run("over the limit", func(t *testing.T) {
		t.Parallel()
		c, err := New(srv.URL, WithMaxResponseSize(int64(len(body)-1)))
		require.NoError(t, err)
		_, err = c.Evaluate(context.Background(), "https://example.com")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrResponseTooLarge))
		assert.False(t, errors.Is(err, ErrServiceUnavailable))
	})

	t.Run("exactly the limit", func(t *testing.T) {
		t.Parallel()
		c, err := New(srv.URL, WithMaxResponseSize(int64(len(body))))
		require.NoError(t, err)
		result, err := c.Evaluate(context.Background(), "https://example.com")
		require.NoError(t, err)
		assert.JSONEq(t, `{"m":1}`, string(result.Mobile))
	})
}
