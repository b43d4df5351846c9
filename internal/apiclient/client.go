// Package apiclient performs authenticated JSON HTTP calls against the ERP
// backend. It owns bearer-token injection and the 401 refresh-and-retry
// protocol; everything above it sees plain typed results or a typed error.
package apiclient

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

	"rotierp/internal/notify"
	"rotierp/internal/tokenstore"
	"rotierp/pkg/response"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const defaultTimeout = 30 * time.Second

// Config carries the collaborators a Client needs
type Config struct {
	BaseURL       string // origin + /api prefix
	StatusBaseURL string // unversioned origin for /db-status
	Timeout       time.Duration
	Store         *tokenstore.Store
	Notifier      notify.Notifier
	Logger        *zap.Logger
}

// Client is the process-wide HTTP client. Safe for concurrent use; at most
// one token refresh is in flight at a time.
type Client struct {
	baseURL       string
	statusBaseURL string
	http          *http.Client
	store         *tokenstore.Store
	notifier      notify.Notifier
	log           *zap.Logger

	refresh singleflight.Group
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	notifier := cfg.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		statusBaseURL: strings.TrimRight(cfg.StatusBaseURL, "/"),
		http:          &http.Client{Timeout: timeout},
		store:         cfg.Store,
		notifier:      notifier,
		log:           log,
	}
}

// BaseURL returns the configured API base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.call(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.call(ctx, http.MethodPatch, path, nil, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.call(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Health hits the public /db-status check on the status origin. No auth, no
// refresh protocol.
func (c *Client) Health(ctx context.Context) (map[string]interface{}, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.statusBaseURL+"/db-status", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.transportError(ctx, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
	}
	var status map[string]interface{}
	if err := decodeBody(data, &status); err != nil {
		return nil, fmt.Errorf("decode db-status: %w", err)
	}
	return status, nil
}

func (c *Client) call(ctx context.Context, method, path string, query url.Values, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
	}
	return c.do(ctx, method, path, query, payload, out, false)
}

// do performs one request. The retried flag marks a request that already went
// through a refresh, so a second 401 terminates instead of looping.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, payload []byte, out interface{}, retried bool) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.store.AccessToken(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return c.transportError(ctx, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.transportError(ctx, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if retried {
			// The refreshed token was rejected too; nothing left to try.
			if err := c.store.Clear(); err != nil {
				c.log.Warn("clearing credentials failed", zap.Error(err))
			}
			return &AuthExpiredError{Reason: "request unauthorized after refresh"}
		}
		if _, err := c.refreshAccessToken(ctx); err != nil {
			return err
		}
		return c.do(ctx, method, path, query, payload, out, true)

	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		if out == nil {
			return nil
		}
		if err := decodeBody(data, out); err != nil {
			return fmt.Errorf("decode response for %s %s: %w", method, path, err)
		}
		return nil

	default:
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: errorMessage(data)}
		if apiErr.IsServer() {
			c.notifier.Error("the server hit an internal error, please try again later")
			c.log.Error("server error",
				zap.String("method", method),
				zap.String("path", path),
				zap.Int("status", resp.StatusCode))
		}
		return apiErr
	}
}

// refreshAccessToken runs the refresh protocol. Concurrent 401s collapse into
// a single refresh call; every waiter gets the same outcome. Any failure
// clears the stored session, so the caller's only recovery is a fresh login.
func (c *Client) refreshAccessToken(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (interface{}, error) {
		refreshToken, ok := c.store.Get(tokenstore.KeyRefreshToken)
		if !ok {
			if err := c.store.Clear(); err != nil {
				c.log.Warn("clearing credentials failed", zap.Error(err))
			}
			return nil, &AuthExpiredError{Reason: "no refresh token"}
		}

		payload, _ := json.Marshal(map[string]string{"refreshToken": refreshToken})
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		// The refresh token in the body authenticates this call; no bearer header.
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			c.clearSession()
			return nil, &AuthExpiredError{Reason: "refresh unreachable: " + err.Error()}
		}
		defer resp.Body.Close()
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			c.clearSession()
			return nil, &AuthExpiredError{Reason: "refresh failed: " + err.Error()}
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.clearSession()
			return nil, &AuthExpiredError{Reason: "refresh rejected"}
		}

		var result struct {
			AccessToken string `json:"accessToken"`
		}
		if err := decodeBody(data, &result); err != nil || result.AccessToken == "" {
			c.clearSession()
			return nil, &AuthExpiredError{Reason: "refresh returned no token"}
		}
		if err := c.store.Set(tokenstore.KeyAccessToken, result.AccessToken); err != nil {
			return nil, err
		}
		c.log.Debug("access token refreshed")
		return result.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func (c *Client) clearSession() {
	if err := c.store.Clear(); err != nil {
		c.log.Warn("clearing credentials failed", zap.Error(err))
	}
}

// transportError classifies a failure that produced no HTTP response. A
// caller-cancelled context is passed through untouched so navigation away
// from a command stays silent.
func (c *Client) transportError(ctx context.Context, err error) error {
	if errors.Is(err, context.Canceled) || ctx.Err() == context.Canceled {
		return ctx.Err()
	}
	timeout := errors.Is(err, context.DeadlineExceeded)
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		timeout = true
	}
	if timeout {
		c.notifier.Error("request timed out, check your connection and retry")
	} else {
		c.notifier.Error("cannot connect to the server")
	}
	return &NetworkError{Timeout: timeout, Err: err}
}

// decodeBody unwraps the standard envelope when present, otherwise treats the
// whole body as the payload
func decodeBody(data []byte, out interface{}) error {
	if out == nil || len(data) == 0 {
		return nil
	}
	var env response.Raw
	if err := json.Unmarshal(data, &env); err == nil && env.IsEnvelope() {
		if len(env.Data) == 0 {
			return nil
		}
		return json.Unmarshal(env.Data, out)
	}
	return json.Unmarshal(data, out)
}

// errorMessage pulls the server-provided message out of an error body,
// tolerating both the envelope and bare {error}/{message} payloads
func errorMessage(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	var env response.Raw
	if err := json.Unmarshal(data, &env); err == nil && env.Error != "" {
		return env.Error
	}
	var alt struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &alt); err == nil {
		if alt.Error != "" {
			return alt.Error
		}
		if alt.Message != "" {
			return alt.Message
		}
	}
	return ""
}
