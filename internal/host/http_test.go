package host

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBatchHTTPRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/echo":
			body, _ := io.ReadAll(r.Body)
			w.Header().Set("X-Agent", r.Header.Get("User-Agent"))
			w.Write(body)
		case "/binary":
			w.Write([]byte{0xff, 0xfe, 0x00})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	h := NewHTTP(zap.NewNop())
	results, err := h.BatchHTTPRequest(context.Background(), []Request{
		{
			URL:            srv.URL + "/echo",
			Method:         "post",
			Headers:        map[string]string{"User-Agent": "phat-contract"},
			Body:           hexutil.Encode([]byte(`{"query":"x"}`)),
			ReturnTextBody: true,
		},
		{URL: srv.URL + "/binary", ReturnTextBody: true},
		{URL: srv.URL + "/missing"},
		{URL: srv.URL + "/echo", Method: http.MethodPost, Body: "zz"},
	}, 5*time.Second)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, http.StatusOK, results[0].StatusCode)
	assert.True(t, results[0].Text)
	assert.Equal(t, `{"query":"x"}`, string(results[0].Body))
	assert.Equal(t, "phat-contract", results[0].Headers["X-Agent"])

	assert.Equal(t, http.StatusOK, results[1].StatusCode)
	assert.False(t, results[1].Text)

	assert.Equal(t, http.StatusNotFound, results[2].StatusCode)

	assert.Zero(t, results[3].StatusCode)
	assert.Contains(t, results[3].Error, "invalid hex body")
}

func TestBatchHTTPRequestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	h := NewHTTP(zap.NewNop())
	results, err := h.BatchHTTPRequest(context.Background(), []Request{{URL: srv.URL}}, 50*time.Millisecond)
	require.NoError(t, err)
	assert.Zero(t, results[0].StatusCode)
	assert.NotEmpty(t, results[0].Error)
}

func TestBatchHTTPRequestEmpty(t *testing.T) {
	_, err := NewHTTP(zap.NewNop()).BatchHTTPRequest(context.Background(), nil, time.Second)
	assert.ErrorIs(t, err, ErrEmptyBatch)
}
