package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/shomrim/patrol-cad-client/models"
)

// Client talks JSON-over-HTTP to the patrol backend. It is the only place
// that knows about the wire format; everything above it works with models.
type Client struct {
	baseURL     string
	countryCode string
	http        *http.Client
}

// New creates a backend client for the given base URL.
func New(baseURL, countryCode string, timeout time.Duration) *Client {
	return &Client{
		baseURL:     baseURL,
		countryCode: countryCode,
		http:        &http.Client{Timeout: timeout},
	}
}

func (c *Client) get(ctx context.Context, op, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &models.TransportError{Op: op, Err: err}
	}
	return c.do(op, req, out)
}

func (c *Client) send(ctx context.Context, op, method, path string, body, out interface{}) error {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &models.TransportError{Op: op, Err: err}
		}
		buf = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, buf)
	if err != nil {
		return &models.TransportError{Op: op, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(op, req, out)
}

func (c *Client) do(op string, req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return &models.TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &models.NotFoundError{Kind: op, ID: req.URL.Path}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &models.TransportError{Op: op, StatusCode: resp.StatusCode}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &models.TransportError{Op: op, Err: err}
	}
	return nil
}
