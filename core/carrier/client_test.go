package carrier

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/circuits", r.URL.Path)
		assert.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"circuits":[{"circuit_id":"CID-1"}]}`))
	}))
	defer server.Close()

	client := New(Options{Endpoint: server.URL, Name: "test"})
	client.SetToken("tok-123")

	var payload struct {
		Circuits []struct {
			CircuitID string `json:"circuit_id"`
		} `json:"circuits"`
	}
	err := client.GetJSON(context.Background(), "/circuits", &payload)
	assert.NoError(t, err)
	assert.Len(t, payload.Circuits, 1)
	assert.Equal(t, "CID-1", payload.Circuits[0].CircuitID)
}

func TestPostJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		// No token set yet: anonymous request.
		assert.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"access_token":"tok-456"}`))
	}))
	defer server.Close()

	client := New(Options{Endpoint: server.URL, Name: "test"})

	var out struct {
		AccessToken string `json:"access_token"`
	}
	err := client.PostJSON(context.Background(), "/auth/token", map[string]string{"api_key": "k"}, &out)
	assert.NoError(t, err)
	assert.Equal(t, "tok-456", out.AccessToken)
}

// TestStatusError tests that non-2xx responses surface the code and body so
// adapters can classify the failure.
func TestStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	}))
	defer server.Close()

	client := New(Options{Endpoint: server.URL, Name: "test"})

	err := client.GetJSON(context.Background(), "/circuits", &struct{}{})
	assert.Error(t, err)

	var statusErr *StatusError
	assert.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusUnauthorized, statusErr.Code)
	assert.Contains(t, statusErr.Body, "invalid credentials")
}

// TestBreakerOpens tests that a sustained failure rate trips the breaker and
// later requests fail fast without reaching the endpoint.
func TestBreakerOpens(t *testing.T) {
	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	// High rate so the limiter does not slow the loop down.
	client := New(Options{Endpoint: server.URL, Name: "test", RequestsPerSecond: 1000, Burst: 1000})

	for i := 0; i < 20; i++ {
		_ = client.GetJSON(context.Background(), "/circuits", &struct{}{})
	}

	// The breaker opened somewhere past the 10-request minimum, so not all
	// 20 attempts reached the server.
	assert.Less(t, hits, 20)
	assert.GreaterOrEqual(t, hits, 10)
}

func TestGetBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("opaque-kmz-payload"))
	}))
	defer server.Close()

	client := New(Options{Endpoint: server.URL, Name: "test"})

	body, err := client.GetBytes(context.Background(), "/circuits/CID-1/path")
	assert.NoError(t, err)
	assert.Equal(t, []byte("opaque-kmz-payload"), body)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate([]byte("short"), 256))
	long := make([]byte, 300)
	for i := range long {
		long[i] = 'x'
	}
	assert.Len(t, truncate(long, 256), 259)
}
