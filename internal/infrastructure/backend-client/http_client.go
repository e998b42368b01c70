package backendclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/ratelimit"

	"github.com/otcdex/otc-daemon/pkg/circuitbreaker"
	"github.com/otcdex/otc-daemon/pkg/stats"
)

var (
	// ErrEmptyResult is returned when the backend envelope carries an
	// absent or falsy result, which the platform uses to signal failure.
	ErrEmptyResult = errors.New("backend returned an empty result")
)

// envelope is the `{ "result": ... }` wrapper every backend response uses.
type envelope struct {
	Result json.RawMessage `json:"result"`
	Error  string          `json:"error,omitempty"`
}

type httpClient struct {
	*http.Client
	baseURL     string
	cb          *gobreaker.CircuitBreaker
	rateLimiter ratelimit.Limiter
}

func newHTTPClient(
	baseURL string, requestTimeout time.Duration, requestsPerSecond int,
) *httpClient {
	if requestsPerSecond <= 0 {
		requestsPerSecond = 20
	}
	return &httpClient{
		Client:      &http.Client{Timeout: requestTimeout},
		baseURL:     baseURL,
		cb:          circuitbreaker.NewCircuitBreaker("backend"),
		rateLimiter: ratelimit.New(requestsPerSecond),
	}
}

// post sends a JSON POST to the given endpoint and returns the decoded
// result. A non-empty idempotency key rides along as X-Request-Id so the
// backend can dedupe retried mutations.
func (c *httpClient) post(
	ctx context.Context, endpoint string, payload interface{},
	idempotencyKey string,
) (json.RawMessage, error) {
	result, err := c.doPost(ctx, endpoint, payload, idempotencyKey)

	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	stats.BackendCalls.WithLabelValues(endpoint, outcome).Inc()

	return result, err
}

func (c *httpClient) doPost(
	ctx context.Context, endpoint string, payload interface{},
	idempotencyKey string,
) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	c.rateLimiter.Take()

	iResp, err := c.cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(
			ctx, http.MethodPost, c.baseURL+endpoint, bytes.NewReader(body),
		)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if idempotencyKey != "" {
			req.Header.Set("X-Request-Id", idempotencyKey)
		}

		resp, err := c.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf(
				"%s: status %d: %s", endpoint, resp.StatusCode, string(respBody),
			)
		}
		return respBody, nil
	})
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(iResp.([]byte), &env); err != nil {
		return nil, fmt.Errorf("%s: malformed response: %w", endpoint, err)
	}
	if env.Error != "" {
		return nil, fmt.Errorf("%s: %s", endpoint, env.Error)
	}
	if isFalsyResult(env.Result) {
		return nil, fmt.Errorf("%s: %w", endpoint, ErrEmptyResult)
	}
	return env.Result, nil
}

func isFalsyResult(result json.RawMessage) bool {
	trimmed := string(bytes.TrimSpace(result))
	switch trimmed {
	case "", "null", "false", `""`, "0":
		return true
	}
	return false
}
