package host

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrEmptyBatch is returned when BatchHTTPRequest receives no requests.
var ErrEmptyBatch = errors.New("host: empty batch")

const maxBodySize = 4 << 20

// HTTP implements Requester on top of net/http.
type HTTP struct {
	client *http.Client
	logger *zap.Logger
}

func NewHTTP(logger *zap.Logger) *HTTP {
	return &HTTP{
		client: &http.Client{},
		logger: logger,
	}
}

func (h *HTTP) BatchHTTPRequest(ctx context.Context, reqs []Request, timeout time.Duration) ([]Response, error) {
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	results := make([]Response, len(reqs))
	var g errgroup.Group
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = h.do(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	return results, nil
}

func (h *HTTP) do(ctx context.Context, r Request) Response {
	var body io.Reader
	if r.Body != "" {
		raw, err := hexutil.Decode(r.Body)
		if err != nil {
			return Response{Error: fmt.Sprintf("invalid hex body: %v", err)}
		}
		body = bytes.NewReader(raw)
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(method), r.URL, body)
	if err != nil {
		return Response{Error: err.Error()}
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.Debug("request failed", zap.String("url", r.URL), zap.Error(err))
		return Response{Error: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return Response{StatusCode: resp.StatusCode, Error: fmt.Sprintf("read body: %v", err)}
	}

	h.logger.Debug("request done",
		zap.String("url", r.URL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(data)),
		zap.Duration("elapsed", time.Since(start)))

	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	return Response{
		StatusCode: resp.StatusCode,
		Headers:    headers,
		Body:       data,
		Text:       r.ReturnTextBody && utf8.Valid(data),
	}
}
