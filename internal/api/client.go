// Package api issues HTTP calls against the banking backend. It owns
// request construction (auth header, body encoding, correlation id) and
// failure classification; it never mutates the session or any store, and
// it never retries on its own.
package api

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

	"github.com/google/uuid"

	"netbank/internal/session"
)

const defaultTimeout = 10 * time.Second

// SessionSource supplies the current session to outgoing requests.
// *session.Store satisfies it.
type SessionSource interface {
	Current() session.Session
}

// Client talks to one backend origin.
type Client struct {
	base    string
	http    *http.Client
	session SessionSource
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// New builds a Client for the given origin, e.g. "http://localhost:8080".
func New(baseURL string, src SessionSource, opts ...Option) *Client {
	c := &Client{
		base:    strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		session: src,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call describes one request. Exactly one of body/form may be set.
type call struct {
	method string
	path   string
	query  url.Values
	body   any        // marshaled as JSON when non-nil
	form   url.Values // form-encoded when non-nil
	noAuth bool
}

// do runs the call and returns the raw response body. Failures come back
// as *Error. An auth-required call without a stored token fails before
// any network I/O.
func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	sess := c.session.Current()
	if !cl.noAuth && !sess.Authenticated() {
		return nil, unauthenticated()
	}

	target := c.base + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	var reader io.Reader
	contentType := "application/json"
	switch {
	case cl.form != nil:
		reader = strings.NewReader(cl.form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case cl.body != nil:
		payload, err := json.Marshal(cl.body)
		if err != nil {
			return nil, &Error{Kind: KindClient, Message: "encode request: " + err.Error()}
		}
		reader = bytes.NewReader(payload)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, cl.method, target, reader)
	if err != nil {
		return nil, &Error{Kind: KindClient, Message: "build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("X-Request-Id", uuid.NewString())
	if !cl.noAuth {
		req.Header.Set("Authorization", sess.AuthHeader())
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// covers transport failures and the per-call timeout
		return nil, network(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, network(err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, classify(resp.StatusCode, errorMessage(data))
	}
	return data, nil
}

// doJSON runs the call and decodes the response into out (skipped when
// out is nil or the body is empty).
func (c *Client) doJSON(ctx context.Context, cl call, out any) error {
	data, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindClient, Message: fmt.Sprintf("decode %s response: %v", cl.path, err)}
	}
	return nil
}

// errorMessage digs the human-readable message out of an error body:
// JSON {"error":...} or {"message":...} first, raw text as a fallback.
func errorMessage(body []byte) string {
	var parsed struct {
		Err     string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Err != "" {
			return parsed.Err
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(body))
}
