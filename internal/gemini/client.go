// Package gemini is a small REST client for the Gemini text and Imagen
// image generation endpoints.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"
)

const defaultAPIBase = "https://generativelanguage.googleapis.com"

// maxBody bounds response reads; four base64 JPEGs fit comfortably.
const maxBody = 64 << 20

// Options configures a Client.
type Options struct {
	APIKey            string
	APIBase           string
	RequestsPerMinute int   // 0 disables throttling
	MaxResponseBytes  int64 // 0 means maxBody
	HTTPClient        *http.Client
	Logger            *log.Logger
}

// Client is an authenticated Gemini API client.
type Client struct {
	apiKey  string
	apiBase string
	http    *http.Client
	limiter *rate.Limiter
	maxBody int64
	logger  *log.Logger
}

// New creates a Client. If APIBase is empty, the public endpoint is used.
func New(opts Options) *Client {
	apiBase := opts.APIBase
	if apiBase == "" {
		apiBase = defaultAPIBase
	}
	apiBase = strings.TrimRight(apiBase, "/")

	hc := opts.HTTPClient
	if hc == nil {
		// Per-call deadlines come from the caller's context.
		hc = &http.Client{}
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if opts.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RequestsPerMinute)), 1)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	limit := opts.MaxResponseBytes
	if limit <= 0 {
		limit = maxBody
	}

	return &Client{
		apiKey:  opts.APIKey,
		maxBody: limit,
		apiBase: apiBase,
		http:    hc,
		limiter: limiter,
		logger:  logger.WithPrefix("gemini"),
	}
}

// Available reports whether a credential is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// url builds an API URL for a model method, e.g. "generateContent".
func (c *Client) url(model, method string) string {
	return c.apiBase + "/v1beta/models/" + model + ":" + method
}

// post sends body as JSON and returns the raw 2xx response body.
func (c *Client) post(ctx context.Context, url string, body interface{}) ([]byte, error) {
	if !c.Available() {
		return nil, ErrNoAPIKey
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	b, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if int64(len(respBody)) > c.maxBody {
		return nil, fmt.Errorf("%w: more than %d bytes (status %d)", ErrResponseTooLarge, c.maxBody, resp.StatusCode)
	}
	c.logger.Debug("response", "url", url, "status", resp.StatusCode, "bytes", len(respBody), "elapsed", time.Since(start))

	if err := checkStatus(resp.StatusCode, respBody); err != nil {
		return nil, err
	}
	return respBody, nil
}

// checkStatus returns an *APIError for non-2xx responses.
func checkStatus(status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return &APIError{
		Status:  status,
		Code:    gjson.GetBytes(body, "error.status").String(),
		Message: gjson.GetBytes(body, "error.message").String(),
		Body:    strings.TrimSpace(string(body)),
	}
}
