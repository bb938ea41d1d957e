package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/codemaster/cli/core"
)

// Client is the single place outgoing requests are built: it attaches the
// bearer token, applies per-call timeouts and maps transport/HTTP failures
// onto the app error taxonomy. The token is read from the TokenStore on
// every request, so the client always carries whatever credential is
// currently persisted.
type Client struct {
	baseURL     string
	tokens      core.TokenStore
	httpClient  *http.Client
	apiTimeout  time.Duration
	authTimeout time.Duration
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeouts overrides the standard and auth-call timeouts.
func WithTimeouts(api, auth time.Duration) Option {
	return func(c *Client) {
		c.apiTimeout = api
		c.authTimeout = auth
	}
}

func NewClient(baseURL string, tokens core.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		tokens:      tokens,
		httpClient:  &http.Client{},
		apiTimeout:  core.Conf.GetDuration("apiTimeout"),
		authTimeout: core.Conf.GetDuration("authTimeout"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// isAuthPath: identity-provider calls get the generous timeout so a slow
// response does not look like a hard failure.
func isAuthPath(path string) bool {
	return strings.HasPrefix(path, "/auth/")
}

// isAuthExempt: the two endpoints that never carry a bearer token.
func isAuthExempt(path string) bool {
	return path == "/auth/login" || path == "/auth/register"
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string, out interface{}) error {
	timeout := c.apiTimeout
	if isAuthPath(path) {
		timeout = c.authTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return errors.Wrapf(err, "building %s %s request", method, path)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.New().String())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if !isAuthExempt(path) {
		if tok, terr := c.tokens.Read(); terr == nil && tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.TransientError{Err: err}
	}
	//goland:noinspection GoUnhandledErrorResult
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return core.TransientError{Err: err}
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return c.mapHTTPError(path, resp.StatusCode, data)
	}
	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return errors.Wrapf(err, "decoding %s %s response", method, path)
		}
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, query, nil, "", out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return errors.Wrapf(err, "encoding %s request", path)
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, http.MethodPost, path, nil, body, "application/json", out)
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values, out interface{}) error {
	body := strings.NewReader(form.Encode())
	return c.do(ctx, http.MethodPost, path, nil, body, "application/x-www-form-urlencoded", out)
}

func (c *Client) mapHTTPError(path string, status int, body []byte) error {
	detail := parseDetail(body)
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		if status == http.StatusUnauthorized && !isAuthExempt(path) {
			// confirmed-invalid credential: drop the persisted token; the
			// session store tears down the in-memory state
			_ = c.tokens.Clear()
		}
		return core.AuthorizationError{StatusCode: status, Detail: detail}
	case status == http.StatusNotFound:
		if detail != "" {
			return errors.Wrap(core.ErrNotFound, detail)
		}
		return core.ErrNotFound
	case status < http.StatusInternalServerError:
		if detail == "" {
			detail = http.StatusText(status)
		}
		return core.NewValidationError(errors.New(detail))
	default:
		return core.APIError{StatusCode: status, Detail: detail}
	}
}

// parseDetail extracts the FastAPI-style {"detail": "..."} message so it
// can be surfaced verbatim.
func parseDetail(body []byte) string {
	var payload struct {
		Detail interface{} `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	switch d := payload.Detail.(type) {
	case string:
		return d
	case nil:
		return ""
	default:
		data, err := json.Marshal(d)
		if err != nil {
			return ""
		}
		return string(data)
	}
}
