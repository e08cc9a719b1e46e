// Package backend is a lightweight client for the document-indexing
// backend's admin REST API.
//
// All admin workflows of the console go through this client: index-attempt
// history, knowledge-graph entity types, connector file listings, Discord
// bot configuration, embedding settings, and assistant editing. The client
// adds the bearer token, throttles outgoing requests, and converts non-2xx
// responses into *APIError values carrying the server's detail message.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/koopa0/scout/internal/log"
)

// Default client-side throttle: generous for interactive use, but keeps a
// misbehaving pagination loop from hammering the backend.
const (
	defaultRequestsPerSecond = 10
	defaultBurst             = 20
	defaultTimeout           = 30 * time.Second
)

// Config configures a Client.
type Config struct {
	// BaseURL is the backend root, e.g. "https://search.example.com".
	BaseURL string

	// APIToken is sent as a bearer token on every request.
	APIToken string

	// Timeout bounds each request. Default: 30s.
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the client-side throttle.
	// Zero values use the defaults.
	RequestsPerSecond float64
	Burst             int
}

// Client is the admin API client.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     log.Logger
}

// New creates a Client.
func New(cfg Config, logger log.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("backend base URL is required")
	}
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", parsed.Scheme)
	}
	if logger == nil {
		logger = log.NewNop()
	}

	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = defaultBurst
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		token:      cfg.APIToken,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		logger:     logger,
	}, nil
}

// pageQuery builds the standard pagination query parameters.
func pageQuery(pageNum, pageSize int) url.Values {
	q := url.Values{}
	q.Set("page_num", strconv.Itoa(pageNum))
	q.Set("page_size", strconv.Itoa(pageSize))
	return q
}

// makeRequest performs one JSON request against the backend.
//
// body is marshaled as the request body when non-nil; result, when non-nil,
// receives the decoded response body. Non-2xx responses are returned as
// *APIError with the server's detail message.
func (c *Client) makeRequest(ctx context.Context, method, path string, query url.Values, body, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("waiting for request slot: %w", err)
	}

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := newAPIError(resp.StatusCode, respBody)
		c.logger.Debug("backend request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"detail", apiErr.Detail)
		return apiErr
	}

	if result != nil && len(bytes.TrimSpace(respBody)) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshaling response: %w", err)
		}
	}
	return nil
}
