// Package openai implements the filechat remote services against the OpenAI
// Assistants v2 REST API: vector stores back indexes, and assistants,
// threads, runs and files map one to one.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fwojciec/filechat"
)

// DefaultBaseURL is the public OpenAI API endpoint.
const DefaultBaseURL = "https://api.openai.com/v1"

// DefaultRequestTimeout bounds every non-streaming request.
const DefaultRequestTimeout = 2 * time.Minute

// DefaultPollInterval is the pause between ingestion status checks.
const DefaultPollInterval = time.Second

// DefaultUploadConcurrency is the number of files uploaded in parallel.
const DefaultUploadConcurrency = 5

// Client holds connection settings shared by every service.
type Client struct {
	baseURL           string
	apiKey            string
	http              *http.Client
	timeout           time.Duration
	pollInterval      time.Duration
	uploadConcurrency int
	retryDelays       []time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTimeout sets the timeout applied to each non-streaming request.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithPollInterval sets the pause between ingestion status checks.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithUploadConcurrency sets how many files are uploaded at once.
func WithUploadConcurrency(n int) Option {
	return func(c *Client) {
		c.uploadConcurrency = n
	}
}

// NewClient creates a new Client authenticating with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:           DefaultBaseURL,
		apiKey:            apiKey,
		timeout:           DefaultRequestTimeout,
		pollInterval:      DefaultPollInterval,
		uploadConcurrency: DefaultUploadConcurrency,
		retryDelays:       DefaultRetryDelays(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		// Streams can outlive any fixed timeout, so deadlines are per request.
		c.http = &http.Client{}
	}
	if c.uploadConcurrency <= 0 {
		c.uploadConcurrency = DefaultUploadConcurrency
	}
	return c
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	return req, nil
}

// do sends a JSON request and decodes a JSON response into out. Either of
// in and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.send(req, out)
}

func (c *Client) send(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errorFromResponse(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", req.Method, req.URL.Path, err)
	}
	return nil
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// errorFromResponse maps a non-2xx response to an application error.
func errorFromResponse(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))

	msg := strings.TrimSpace(string(raw))
	var ae apiError
	if err := json.Unmarshal(raw, &ae); err == nil && ae.Error.Message != "" {
		msg = ae.Error.Message
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}

	var code string
	switch resp.StatusCode {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		code = filechat.EINVALID
	case http.StatusUnauthorized, http.StatusForbidden:
		code = filechat.EUNAUTHORIZED
	case http.StatusNotFound:
		code = filechat.ENOTFOUND
	case http.StatusConflict:
		code = filechat.ECONFLICT
	default:
		code = filechat.EINTERNAL
	}
	return filechat.Errorf(code, "HTTP %d: %s", resp.StatusCode, msg)
}

type page[T any] struct {
	Data    []T    `json:"data"`
	HasMore bool   `json:"has_more"`
	LastID  string `json:"last_id"`
}

// listAll follows cursor pagination until the API reports no more pages.
func listAll[T any](ctx context.Context, c *Client, path string, id func(T) string) ([]T, error) {
	var all []T
	after := ""
	for {
		q := url.Values{"limit": {"100"}}
		if after != "" {
			q.Set("after", after)
		}

		var p page[T]
		if err := c.do(ctx, http.MethodGet, path+"?"+q.Encode(), nil, &p); err != nil {
			return nil, err
		}
		all = append(all, p.Data...)

		if !p.HasMore || len(p.Data) == 0 {
			return all, nil
		}
		after = p.LastID
		if after == "" {
			after = id(p.Data[len(p.Data)-1])
		}
	}
}

// escape makes an identifier safe to embed in a URL path.
func escape(id string) string {
	return url.PathEscape(id)
}
