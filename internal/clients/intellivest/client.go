// Package intellivest provides a client for the Intellivest backend API
package intellivest

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

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/intellivest/assist/internal/common"
	"github.com/intellivest/assist/internal/interfaces"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultTimeout   = 30 * time.Second
	DefaultRateLimit = 5 // requests per second
)

// Sentinel errors for the two non-status failure classes. APIError
// covers calls that completed with a non-2xx status.
var (
	// ErrTransport marks calls that never completed (offline, DNS, timeout).
	ErrTransport = errors.New("backend unreachable")

	// ErrMalformedResponse marks 2xx responses whose body is not JSON or
	// is missing the expected result field.
	ErrMalformedResponse = errors.New("malformed backend response")
)

// Client implements the BackendClient interface
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Intellivest backend client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError represents a backend error response
type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("Intellivest API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// detailBody is the FastAPI error shape the backend emits on failure.
type detailBody struct {
	Detail string `json:"detail"`
}

// call performs one request and extracts the named string field from the
// JSON response. body, when non-nil, is JSON-encoded. Each call is
// independent and at-most-once: no retries, no caching.
func (c *Client) call(ctx context.Context, method, path string, body any, field string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return "", fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String()[:8])
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug().Str("method", method).Str("path", path).Msg("Intellivest API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		message := strings.TrimSpace(string(raw))
		var detail detailBody
		if json.Unmarshal(raw, &detail) == nil && detail.Detail != "" {
			message = detail.Detail
		}
		return "", &APIError{
			StatusCode: resp.StatusCode,
			Message:    message,
			Endpoint:   path,
		}
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	value, ok := payload[field].(string)
	if !ok {
		return "", fmt.Errorf("%w: missing %q field", ErrMalformedResponse, field)
	}

	return value, nil
}

// GetSummary retrieves an AI-generated stock summary for a ticker
func (c *Client) GetSummary(ctx context.Context, ticker string) (string, error) {
	path := "/summary/" + url.PathEscape(ticker)
	return c.call(ctx, http.MethodGet, path, nil, "summary")
}

// AskQuestion answers a free-text financial question
func (c *Client) AskQuestion(ctx context.Context, question string) (string, error) {
	body := map[string]string{"question": question}
	return c.call(ctx, http.MethodPost, "/question", body, "answer")
}

// AnalyzePortfolio analyzes portfolio CSV text
func (c *Client) AnalyzePortfolio(ctx context.Context, csvData string) (string, error) {
	body := map[string]string{"csvData": csvData}
	return c.call(ctx, http.MethodPost, "/portfolio/analyze", body, "analysis")
}

// GetNews retrieves summarized news and filings for a ticker
func (c *Client) GetNews(ctx context.Context, ticker string) (string, error) {
	path := "/news/" + url.PathEscape(ticker)
	return c.call(ctx, http.MethodGet, path, nil, "summary")
}

// Ensure Client implements BackendClient
var _ interfaces.BackendClient = (*Client)(nil)
