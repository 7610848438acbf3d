// Package upstream holds the JSON-over-HTTP plumbing shared by the bibliographic
// and translation clients. Calls are made once; there is no retry or throttling.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of an upstream response is decoded.
const maxBodyBytes = 4 << 20

// StatusError reports a non-200 upstream response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.StatusCode)
}

type Client struct {
	httpClient *http.Client
	userAgent  string
}

// New returns a client whose every request is bounded by timeout.
func New(timeout time.Duration, userAgent string) *Client {
	return NewWithHTTPClient(&http.Client{Timeout: timeout}, userAgent)
}

func NewWithHTTPClient(httpClient *http.Client, userAgent string) *Client {
	return &Client{httpClient: httpClient, userAgent: userAgent}
}

// GetJSON issues a GET to url and decodes a 200 response into target.
func (c *Client) GetJSON(ctx context.Context, url string, target any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	return c.do(req, target)
}

// PostJSON encodes body as JSON, POSTs it to url and decodes a 200 response into target.
func (c *Client) PostJSON(ctx context.Context, url string, body, target any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, target)
}

func (c *Client) do(req *http.Request, target any) error {
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return &StatusError{StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
