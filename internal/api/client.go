// Package api implements the HTTP client for the liftlog training API.
// It prefixes the configured base URL, attaches the current access token,
// and funnels every failure through apperr so screens see one error shape.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/liftlog-dev/liftlog/internal/apperr"
)

// refreshPath is the token refresh endpoint. A 401 from this path must not
// trigger another refresh, or the client would loop.
const refreshPath = "/token/refresh"

// TokenSource supplies the current access token and knows how to exchange
// the refresh token for a new pair. The session manager implements it.
type TokenSource interface {
	// AccessToken returns the current access token, or "" when signed out.
	AccessToken() string

	// Refresh exchanges the stored refresh token for a new token pair.
	// A non-nil error means the session could not be refreshed.
	Refresh(ctx context.Context) error
}

// Client is an HTTP client for the liftlog API.
type Client struct {
	baseURL string
	httpc   *http.Client
	tokens  TokenSource

	// refreshGroup collapses concurrent 401-triggered refreshes into a
	// single call whose outcome all waiters share.
	refreshGroup singleflight.Group
}

// New creates a Client for the given base URL. timeout applies to every
// request; zero means no client-side timeout beyond the platform default.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// SetTokenSource wires the token source. The client works unauthenticated
// until one is set; sign-in and sign-up go out without an Authorization
// header either way.
func (c *Client) SetTokenSource(ts TokenSource) {
	c.tokens = ts
}

// Get performs a GET request and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put performs a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	status, respBody, err := c.send(ctx, method, path, body)
	if err != nil {
		return apperr.Normalize(err)
	}

	// A 401 on an unauthenticated request (sign-in with bad credentials)
	// is a domain failure, not a stale token; only retry when a token was
	// actually attached.
	if status == http.StatusUnauthorized && path != refreshPath && c.tokens != nil && c.tokens.AccessToken() != "" {
		if refreshErr := c.refreshOnce(ctx); refreshErr == nil {
			// Retry exactly once with the new token.
			status, respBody, err = c.send(ctx, method, path, body)
			if err != nil {
				return apperr.Normalize(err)
			}
		}
		// On refresh failure the original 401 falls through below.
	}

	if status >= http.StatusBadRequest {
		return apperr.FromResponse(status, respBody)
	}

	if out != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, out); err != nil {
			return apperr.Normalize(fmt.Errorf("decode response: %w", err))
		}
	}
	return nil
}

// refreshOnce runs the token refresh through the single-flight group so
// that concurrent 401ed requests issue one refresh call between them.
func (c *Client) refreshOnce(ctx context.Context) error {
	_, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return nil, c.tokens.Refresh(ctx)
	})
	return err
}

// send performs a single HTTP round trip and returns the status and body.
// Transport-level failures come back as the error; HTTP error statuses do
// not — classification happens in do.
func (c *Client) send(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, fmt.Errorf("read response: %w", err)
	}

	return resp.StatusCode, respBody, nil
}
