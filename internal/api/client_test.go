package api

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jask/appshell/internal/apperr"
)

func serve(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/number", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewClient(Options{BaseURL: srv.URL + "/", Timeout: 2 * time.Second})
}

func TestFetchNumber(t *testing.T) {
	c := serve(t, http.StatusOK, `{"value": 13}`)
	n, err := c.FetchNumber(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 13, n.Value)
}

func TestFetchNumberDecodingFailures(t *testing.T) {
	for _, body := range []string{`{"value": "13"}`, `{"other": 1}`, `{"value": 1.5}`, `not json`} {
		t.Run(body, func(t *testing.T) {
			c := serve(t, http.StatusOK, body)
			_, err := c.FetchNumber(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, apperr.ErrDecoding)
			assert.Equal(t, apperr.Network(apperr.DecodingFailed), apperr.Classify(err))
		})
	}
}

func TestFetchNumberServerError(t *testing.T) {
	c := serve(t, http.StatusServiceUnavailable, `{"error": "down"}`)
	_, err := c.FetchNumber(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)

	got := apperr.Classify(err)
	assert.Equal(t, apperr.Server(http.StatusServiceUnavailable), got)
	assert.True(t, apperr.IsRecoverable(got))
}

func TestFetchNumberNoConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	c := NewClient(Options{BaseURL: "http://" + addr, Timeout: time.Second})
	_, err = c.FetchNumber(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.Network(apperr.NoConnection), apperr.Classify(err))
}

func TestFetchNumberTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	c := NewClient(Options{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.FetchNumber(context.Background())
	require.Error(t, err)
	assert.Equal(t, apperr.Network(apperr.Timeout), apperr.Classify(err))
}

func TestThrottleHonoursContext(t *testing.T) {
	c := serve(t, http.StatusOK, `{"value": 1}`)
	c2 := NewClient(Options{BaseURL: c.baseURL, RequestsPerSecond: 0.001, Burst: 1})

	_, err := c2.FetchNumber(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c2.FetchNumber(ctx)
	require.Error(t, err)
}

func TestThrottleDeadlineIsTimeout(t *testing.T) {
	c := serve(t, http.StatusOK, `{"value": 1}`)
	c2 := NewClient(Options{BaseURL: c.baseURL, RequestsPerSecond: 0.001, Burst: 1})

	_, err := c2.FetchNumber(context.Background())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()
	_, err = c2.FetchNumber(ctx)
	require.Error(t, err)
	assert.Equal(t, apperr.Network(apperr.Timeout), apperr.Classify(err))
}
