// Package host provides the execution host's batched HTTP primitive.
package host

import (
	"context"
	"time"
)

// Request describes one outbound call. Body is 0x-prefixed hex text; the host
// decodes it before sending.
type Request struct {
	URL            string
	Method         string
	Headers        map[string]string
	Body           string
	ReturnTextBody bool
}

// Response is the outcome of one Request. Transport failures leave
// StatusCode at 0 and describe the failure in Error. Text is set when the
// caller asked for a text body and the payload is valid UTF-8.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Text       bool
	Error      string
}

// Requester executes a batch of requests under one shared timeout and
// returns results in request order. It blocks until every request finished
// or the timeout elapsed.
type Requester interface {
	BatchHTTPRequest(ctx context.Context, reqs []Request, timeout time.Duration) ([]Response, error)
}
