package odata

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

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// DefaultRequestsPerSecond is the request rate accepted by a standard
// 1C OData publication.
const DefaultRequestsPerSecond = 10

// Client is the low-level HTTP layer over a 1C:Enterprise OData publication.
// It only does raw queries; for typed interactions see pkg/onec.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
	limiter  *rate.Limiter
}

// NewClient creates a Client for the OData publication at baseURL,
// authenticating every request with HTTP basic auth.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{Timeout: 30 * time.Second},
		limiter:  rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
	}
}

// WithTimeout changes the total per-request timeout.
func (c *Client) WithTimeout(timeout time.Duration) *Client {
	c.http.Timeout = timeout
	return c
}

// WithRateLimit changes the outgoing request rate. Values <= 0 disable
// rate limiting.
func (c *Client) WithRateLimit(requestsPerSecond float64) *Client {
	if requestsPerSecond <= 0 {
		c.limiter = rate.NewLimiter(rate.Inf, 1)
		return c
	}
	c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	return c
}

// Get queries an entity set or a single entity. The path is relative to the
// publication root, like "Catalog_Организации". Query params ($filter, $top,
// ...) are optional.
func (c *Client) Get(ctx context.Context, path string, params url.Values) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, path, params, nil)
}

// Post creates a new entity from body.
func (c *Client) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, path, nil, body)
}

// Put replaces an entity with body.
func (c *Client) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPut, path, nil, body)
}

// Patch updates the entity fields present in body.
func (c *Client) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body any) (json.RawMessage, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	query := url.Values{}
	for key, values := range params {
		query[key] = values
	}
	// 1C answers with Atom XML unless json is requested explicitly
	query.Set("$format", "json")

	requestURL := c.baseURL + "/" + strings.TrimPrefix(path, "/") + "?" + query.Encode()

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	log.Debugf("1C request: %s %s", method, path)
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("1C connection error: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read 1C response: %w", err)
	}

	return parseResponse(resp.StatusCode, rawBody)
}
