package httpclient

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/ChukaCSTD/Macys-Clone/pkg/errors"
)

func fastConfig(retries int) Config {
	return Config{
		Timeout:      5 * time.Second,
		MaxRetries:   retries,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}
}

func TestDoJSON_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		var in map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, "world", in["hello"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	client := New(fastConfig(0))
	var out struct {
		OK bool `json:"ok"`
	}
	err := client.DoJSON(context.Background(), JSONRequest{
		Method: http.MethodPost,
		URL:    srv.URL,
		Bearer: "tok",
		Body:   map[string]string{"hello": "world"},
		Out:    &out,
	})
	require.NoError(t, err)
	assert.True(t, out.OK)
}

func TestDoJSON_NoOutIgnoresBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"ignored":true}`))
	}))
	defer srv.Close()

	client := New(fastConfig(0))
	err := client.DoJSON(context.Background(), JSONRequest{
		Method: http.MethodDelete,
		URL:    srv.URL,
	})
	require.NoError(t, err)
}

func TestDo_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(fastConfig(3))
	err := client.DoJSON(context.Background(), JSONRequest{Method: http.MethodGet, URL: srv.URL})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
}

func TestDo_RetriesRewindRequestBody(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in map[string]int
		require.NoError(t, json.NewDecoder(r.Body).Decode(&in))
		assert.Equal(t, 5, in["quantity"], "each attempt must carry the full body")

		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := New(fastConfig(2))
	err := client.DoJSON(context.Background(), JSONRequest{
		Method: http.MethodPut,
		URL:    srv.URL,
		Body:   map[string]int{"quantity": 5},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestDo_DoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := New(fastConfig(3))
	err := client.DoJSON(context.Background(), JSONRequest{Method: http.MethodGet, URL: srv.URL})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_RetriesExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := New(fastConfig(2))
	err := client.DoJSON(context.Background(), JSONRequest{Method: http.MethodGet, URL: srv.URL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrRemoteUnavail))
	assert.Equal(t, int32(3), calls.Load(), "initial attempt plus two retries")
}

func TestParseResponseError_EnvelopedMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"code":"NOT_FOUND","message":"no such cart"}}`))
	}))
	defer srv.Close()

	client := New(fastConfig(0))
	err := client.DoJSON(context.Background(), JSONRequest{Method: http.MethodGet, URL: srv.URL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	assert.Contains(t, err.Error(), "no such cart")
}

func TestParseResponseError_FlatMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"already exists"}`))
	}))
	defer srv.Close()

	client := New(fastConfig(0))
	err := client.DoJSON(context.Background(), JSONRequest{Method: http.MethodPost, URL: srv.URL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrConflict))
	assert.Contains(t, err.Error(), "already exists")
}

func TestParseResponseError_NonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("plain denial"))
	}))
	defer srv.Close()

	client := New(fastConfig(0))
	err := client.DoJSON(context.Background(), JSONRequest{Method: http.MethodGet, URL: srv.URL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrForbidden))
	assert.Contains(t, err.Error(), "plain denial")
}

func TestDo_ContextCancellationStopsRetries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := fastConfig(5)
	cfg.RetryWaitMin = 200 * time.Millisecond
	cfg.RetryWaitMax = time.Second
	client := New(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := client.DoJSON(ctx, JSONRequest{Method: http.MethodGet, URL: srv.URL})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
