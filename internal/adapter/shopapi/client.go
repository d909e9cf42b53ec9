package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/techcart/storefront/pkg/retry"
)

const (
	getMaxAttempts = 3
	getRetryDelay  = 100 * time.Millisecond
)

// StatusError reports a non-2xx response from the backend.
type StatusError struct {
	Code int
}

func (e StatusError) Error() string {
	return fmt.Sprintf("unexpected response status: %d", e.Code)
}

// Client consumes the storefront backend HTTP API. The backend is a
// black box: every call goes over the wire, nothing is cached here.
type Client struct {
	baseURL  string
	httpCl   *http.Client
	retryCfg retry.RetryConfig
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpCl:  &http.Client{Timeout: timeout},
		retryCfg: retry.RetryConfig{
			MaxAttempts: getMaxAttempts,
			Backoff:     retry.ExponentialBackoff(getRetryDelay),
			ShouldRetry: shouldRetryGet,
		},
	}
}

// Only idempotent GETs are retried, and only on transport failures or
// server-side statuses.
func shouldRetryGet(err error) bool {
	var se StatusError
	if errors.As(err, &se) {
		return se.Code >= http.StatusInternalServerError
	}
	return true
}

func (c *Client) getJSON(
	ctx context.Context, path string, query url.Values, v any,
) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.httpCl.Do(req)
	if err != nil {
		return err
	}
	defer drainClose(resp.Body)

	if !is2xx(resp.StatusCode) {
		return StatusError{resp.StatusCode}
	}

	return json.NewDecoder(resp.Body).Decode(v)
}

func (c *Client) postJSON(
	ctx context.Context, path string, body any, token string,
) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return c.httpCl.Do(req)
}

func is2xx(code int) bool {
	return code >= 200 && code < 300
}

func drainClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, body)
	_ = body.Close()
}
