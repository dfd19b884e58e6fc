package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"
)

var _ HTTPClient = (*Client)(nil)

type HTTPClient interface {
	Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error)
	Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error)
	Do(req *http.Request) (*http.Response, error)
}

// Client is a thin net/http wrapper that stamps default headers on every request.
// Headers passed per call win over the defaults.
type Client struct {
	client   *http.Client
	defaults map[string]string
}

func NewHTTPClient(timeout time.Duration, defaults map[string]string) *Client {
	return &Client{
		client:   &http.Client{Timeout: timeout},
		defaults: defaults,
	}
}

func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req, headers)
	return c.client.Do(req)
}

func (c *Client) Post(ctx context.Context, url string, body io.Reader, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req, headers)
	return c.client.Do(req)
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	for key, value := range c.defaults {
		if req.Header.Get(key) == "" {
			req.Header.Set(key, value)
		}
	}

	return c.client.Do(req)
}

func (c *Client) setHeaders(req *http.Request, headers map[string]string) {
	for key, value := range c.defaults {
		req.Header.Set(key, value)
	}

	for key, value := range headers {
		req.Header.Set(key, value)
	}
}
