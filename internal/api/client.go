// Package api provides the client for the leakpot REST backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/dookkeobi/leakpot/internal/common"
)

// TokenSource supplies the bearer token attached to every request and
// receives the replacement token after a reissue. The session object
// implements it; the client never owns credentials itself.
type TokenSource interface {
	AccessToken() string
	SetAccessToken(token string)
}

// Config holds API client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Validate ensures all required fields are present.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: api base URL is required", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("%w: api base URL must be http(s)", common.ErrInvalidConfig)
	}
	return nil
}

// Client talks to the backend REST API. All responses share the
// {data, success?, message?} envelope; all failures are normalized to
// *Error before they reach callers.
type Client struct {
	httpClient *http.Client
	tokens     TokenSource
	logger     *slog.Logger
	baseURL    string
	retryOpts  common.RetryOptions
}

// NewClient creates a new API client with the given configuration.
func NewClient(cfg Config, tokens TokenSource) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if tokens == nil {
		return nil, fmt.Errorf("%w: token source is required", common.ErrMissingConfig)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		tokens:     tokens,
		httpClient: &http.Client{Timeout: timeout},
		logger:     slog.Default().With("component", "api"),
		retryOpts: common.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 500 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}, nil
}

// Error is the normalized shape every failed request collapses to,
// regardless of whether the failure was a transport error or a non-2xx
// response.
type Error struct {
	Message string          `json:"message"`
	Details json.RawMessage `json:"details,omitempty"`
	Code    int             `json:"code,omitempty"`
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("api error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("api error: %s", e.Message)
}

// Unwrap maps HTTP status classes onto the shared sentinel errors.
func (e *Error) Unwrap() error {
	switch {
	case e.Code == http.StatusUnauthorized:
		return common.ErrUnauthorized
	case e.Code == http.StatusNotFound:
		return common.ErrNotFound
	case e.Code >= 500:
		return common.ErrServer
	default:
		return nil
	}
}

// envelope is the common response form: payload under data, with optional
// success flag and message.
type envelope struct {
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message,omitempty"`
	Success *bool           `json:"success,omitempty"`
}

// do issues one API request and decodes the envelope's data into out. A 401
// triggers exactly one token reissue followed by one retry of the original
// request; a second 401 fails through.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.doOnce(ctx, method, path, body, out)

	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusUnauthorized {
		c.logger.Debug("Request unauthorized, attempting token reissue", "path", path)
		if reissueErr := c.Reissue(ctx); reissueErr != nil {
			return fmt.Errorf("%w: %v", common.ErrSessionExpired, reissueErr)
		}
		return c.doOnce(ctx, method, path, body, out)
	}

	return err
}

// get issues an idempotent GET, retrying transient failures with the
// client's backoff options. Only transport errors and 5xx responses are
// retried; anything else fails on the first attempt.
func (c *Client) get(ctx context.Context, path string, out any) error {
	err := common.WithRetry(ctx, func() error {
		err := c.do(ctx, http.MethodGet, path, nil, out)
		if err != nil && !isTransient(err) {
			return &common.RetryableError{Err: err, Retryable: false}
		}
		return err
	}, c.retryOpts)

	var nonRetryable *common.RetryableError
	if errors.As(err, &nonRetryable) {
		return nonRetryable.Err
	}
	return err
}

// isTransient reports whether a failed request is worth repeating: a
// transport error never reached the server, and a 5xx response may clear
// on its own.
func isTransient(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Code == 0 {
		return true
	}
	return common.IsRetryable(err)
}

// doOnce issues the request exactly once with the current token.
func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &Error{Message: err.Error()}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: fmt.Sprintf("failed to read response: %v", err), Code: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeError(resp.StatusCode, raw)
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return &Error{Message: fmt.Sprintf("malformed response envelope: %v", err), Code: resp.StatusCode}
	}
	if env.Data == nil {
		// Some endpoints respond with the payload at the top level.
		env.Data = raw
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return &Error{Message: fmt.Sprintf("malformed response payload: %v", err), Code: resp.StatusCode}
	}

	return nil
}

// Reissue exchanges the current session for a fresh access token via
// POST /auth/reissue and installs it on the token source.
func (c *Client) Reissue(ctx context.Context) error {
	var payload struct {
		AccessToken string `json:"accessToken"`
	}
	if err := c.doOnce(ctx, http.MethodPost, "/auth/reissue", nil, &payload); err != nil {
		return fmt.Errorf("%w: %v", common.ErrReissueFailed, err)
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("%w: empty access token", common.ErrReissueFailed)
	}

	c.tokens.SetAccessToken(payload.AccessToken)
	c.logger.Info("Access token reissued")
	return nil
}

// normalizeError converts a non-2xx response into *Error, pulling message
// from the body when the server provided one.
func normalizeError(status int, raw []byte) *Error {
	apiErr := &Error{Code: status}

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &body); err == nil && body.Message != "" {
		apiErr.Message = body.Message
	} else {
		apiErr.Message = http.StatusText(status)
	}
	if len(raw) > 0 && json.Valid(raw) {
		apiErr.Details = json.RawMessage(raw)
	}

	return apiErr
}
