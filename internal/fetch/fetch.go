// Package fetch performs bounded outbound HTTP GETs. Every call carries its
// own deadline, independent of the underlying client's configuration, and
// classifies failures into the taxonomy the sync layer reacts to: timeout,
// transport failure, or non-success upstream status.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// userAgent identifies this client to upstream sources.
const userAgent = "Congress Trading Tracker App"

// ErrTimeout reports that no response arrived within the caller's deadline.
var ErrTimeout = errors.New("fetch: timeout")

// NetworkError reports a transport-level failure reaching the source.
type NetworkError struct {
	URL string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("fetch: network error for %s: %v", e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a non-success HTTP status from the source.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch: %s returned status %d", e.URL, e.Code)
}

// Client issues bounded GET requests.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a fetch client. The underlying http.Client carries no
// timeout of its own; per-request deadlines are enforced via context so a
// completed call never leaves a dangling timer.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{},
	}
}

// Get performs a GET against url and returns the response body. It fails with
// ErrTimeout if no response arrives within timeout (the in-flight request is
// cancelled), with *NetworkError on transport failure, and with *StatusError
// on a non-2xx response.
func (c *Client) Get(ctx context.Context, url string, timeout time.Duration) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &NetworkError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, ErrTimeout
		}
		return nil, &NetworkError{URL: url, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: url, Code: resp.StatusCode}
	}

	return body, nil
}
