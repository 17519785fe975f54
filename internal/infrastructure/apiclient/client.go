// Package apiclient implements ports.UserAPI over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/reglet-dev/userprofiles/internal/application/dto"
	apperrors "github.com/reglet-dev/userprofiles/internal/application/errors"
	"github.com/reglet-dev/userprofiles/internal/application/ports"
	"github.com/reglet-dev/userprofiles/internal/domain/entities"
	"github.com/reglet-dev/userprofiles/internal/domain/values"
)

// APIVersionHeader carries the backend's semantic version.
const APIVersionHeader = "X-API-Version"

// maxErrorBody bounds how much of an error response is read.
const maxErrorBody = 1 << 20

// Config holds the settings for a Client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:3000/api
	BaseURL   string
	UserAgent string
	// Headers are added to every request.
	Headers http.Header
	Timeout time.Duration
}

// Client talks to the users API.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	headers    http.Header
	userAgent  string
	logger     *slog.Logger
}

var _ ports.UserAPI = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// New creates a client for cfg.BaseURL.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid API endpoint %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("invalid API endpoint %q: scheme must be http or https", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				ForceAttemptHTTP2:     true,
				MaxIdleConns:          10,
				IdleConnTimeout:       90 * time.Second,
				TLSHandshakeTimeout:   10 * time.Second,
				ExpectContinueTimeout: 1 * time.Second,
			},
		},
		headers:   cfg.Headers.Clone(),
		userAgent: cfg.UserAgent,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Hello calls GET /hello.
func (c *Client) Hello(ctx context.Context) (*dto.HelloResponse, error) {
	var resp dto.HelloResponse
	header, err := c.do(ctx, http.MethodGet, "/hello", nil, &resp)
	if err != nil {
		return nil, err
	}
	resp.APIVersion = header.Get(APIVersionHeader)
	return &resp, nil
}

// ListUsers calls GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]entities.User, error) {
	var users []entities.User
	if _, err := c.do(ctx, http.MethodGet, "/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser calls GET /users/{id}.
func (c *Client) GetUser(ctx context.Context, id values.UserID) (*entities.User, error) {
	var user entities.User
	if _, err := c.do(ctx, http.MethodGet, userPath(id), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser calls POST /users.
func (c *Client) CreateUser(ctx context.Context, req dto.CreateUserRequest) (*entities.User, error) {
	var user entities.User
	if _, err := c.do(ctx, http.MethodPost, "/users", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateUser calls PUT /users/{id}.
func (c *Client) UpdateUser(ctx context.Context, id values.UserID, req dto.UpdateUserRequest) (*entities.User, error) {
	var user entities.User
	if _, err := c.do(ctx, http.MethodPut, userPath(id), req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// DeleteUser calls DELETE /users/{id}.
func (c *Client) DeleteUser(ctx context.Context, id values.UserID) error {
	_, err := c.do(ctx, http.MethodDelete, userPath(id), nil, nil)
	return err
}

func userPath(id values.UserID) string {
	return "/users/" + id.String()
}

// do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded 2xx response body.
func (c *Client) do(ctx context.Context, method, path string, body, out any) (http.Header, error) {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL.JoinPath(path).String()
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	for key, vals := range c.headers {
		for _, v := range vals {
			req.Header.Add(key, v)
		}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "api request failed", "method", method, "url", endpoint, "error", err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.DebugContext(ctx, "api request",
		"method", method, "url", endpoint,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.Header, decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return resp.Header, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return resp.Header, fmt.Errorf("%s %s: empty response body", method, path)
		}
		return resp.Header, fmt.Errorf("%s %s: failed to decode response: %w", method, path, err)
	}
	return resp.Header, nil
}

// decodeError turns a non-2xx response into an *apperrors.APIError. JSON
// bodies of the form {message, code, details} are used as is; any other body
// becomes the message.
func decodeError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body dto.ErrorResponse
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return apperrors.NewAPIError(resp.StatusCode, body.Message, body.Code, body.Details...)
	}
	return apperrors.NewAPIError(resp.StatusCode, strings.TrimSpace(string(data)), "")
}
