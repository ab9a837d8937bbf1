package httputil

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/placard/pkg/cache"
	"github.com/matzehuels/placard/pkg/errors"
)

// Defaults for NewClient.
const (
	DefaultTimeout  = 10 * time.Second
	DefaultMaxBytes = 1 << 20
)

// Response is a fetched body and its media type.
type Response struct {
	Data        []byte
	ContentType string
}

// Client performs GET requests with retries and a response size cap.
type Client struct {
	http     *http.Client
	headers  map[string]string
	maxBytes int64
}

// NewClient creates a Client with the given default headers. Pass nil for
// no headers.
func NewClient(headers map[string]string) *Client {
	return &Client{
		http:     NewHTTPClient(),
		headers:  headers,
		maxBytes: DefaultMaxBytes,
	}
}

// NewHTTPClient returns the http.Client used by NewClient.
func NewHTTPClient() *http.Client {
	return &http.Client{Timeout: DefaultTimeout}
}

// WithHTTPClient swaps the underlying client, mainly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

// Fetch GETs url, retrying transient failures.
func (c *Client) Fetch(ctx context.Context, url string) (Response, error) {
	var resp Response
	err := cache.RetryWithBackoff(ctx, func() error {
		r, err := c.do(ctx, url)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	return resp, err
}

func (c *Client) do(ctx context.Context, url string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Response{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request for %s", url)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return Response{}, ctx.Err()
		}
		return Response{}, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "GET %s", url))
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode, url); err != nil {
		return Response{}, err
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBytes+1))
	if err != nil {
		return Response{}, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read %s", url))
	}
	if int64(len(data)) > c.maxBytes {
		return Response{}, errors.New(errors.ErrCodeInvalidInput, "%s exceeds %d bytes", url, c.maxBytes)
	}
	return Response{Data: data, ContentType: resp.Header.Get("Content-Type")}, nil
}

func checkStatus(code int, url string) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound:
		return errors.New(errors.ErrCodeNotFound, "%s not found", url)
	case code >= 500:
		return cache.Retryable(errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, code))
	default:
		return errors.New(errors.ErrCodeNetwork, "GET %s: status %d", url, code)
	}
}
