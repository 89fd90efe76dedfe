// Package backend is the typed client for the EventTune REST backend.
//
// A single Transport is shared by the whole process. Each browser session gets
// its own Client through Transport.For, whose request interceptor attaches the
// session's credential as a bearer header when one is stored.
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
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/eventtune/web/internal/core/ports"
)

const (
	defaultTimeout      = 15 * time.Second
	defaultMaxBodyBytes = 32 << 20
)

// Config captures the settings for reaching the REST backend.
type Config struct {
	BaseURL string
	// Timeout bounds every call made through the transport. Calls never
	// override it individually.
	Timeout time.Duration
	// MaxResponseBytes caps a response body. Larger bodies fail the call
	// instead of being cut short. Defaults to 32 MiB.
	MaxResponseBytes int64
}

// Transport is the shared HTTP plumbing behind every session's Client.
type Transport struct {
	base    *url.URL
	next    http.RoundTripper
	timeout time.Duration
	maxBody int64
	log     zerolog.Logger
}

// NewTransport validates cfg and returns a Transport using http.DefaultTransport.
func NewTransport(cfg Config, log zerolog.Logger) (*Transport, error) {
	return NewTransportWith(cfg, http.DefaultTransport, log)
}

// NewTransportWith is NewTransport with an explicit round tripper.
func NewTransportWith(cfg Config, next http.RoundTripper, log zerolog.Logger) (*Transport, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("backend base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend base url %q: scheme and host are required", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxResponseBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}
	if next == nil {
		next = http.DefaultTransport
	}
	return &Transport{base: base, next: next, timeout: timeout, maxBody: maxBody, log: log}, nil
}

// For binds the transport to one session's credentials.
func (t *Transport) For(creds ports.Credentials) ports.BackendAPI {
	return &Client{
		base: t.base,
		http: &http.Client{
			Transport: &bearerTransport{creds: creds, next: t.next},
			Timeout:   t.timeout,
		},
		maxBody: t.maxBody,
		log:     t.log,
	}
}

// bearerTransport is the request interceptor: it adds the stored credential
// to outgoing requests and leaves them untouched when the slot is empty.
type bearerTransport struct {
	creds ports.Credentials
	next  http.RoundTripper
}

func (b *bearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if b.creds != nil {
		if token, ok := b.creds.Token(req.Context()); ok {
			req = req.Clone(req.Context())
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return b.next.RoundTrip(req)
}

// Client issues backend calls on behalf of one session. Every method makes
// exactly one HTTP call: no retries, no deduplication.
type Client struct {
	base    *url.URL
	http    *http.Client
	maxBody int64
	log     zerolog.Logger
}

var _ ports.BackendAPI = (*Client)(nil)

// call describes one backend operation.
type call struct {
	op       string
	method   string
	path     string
	body     any
	out      any
	fallback string
}

func (c *Client) do(ctx context.Context, cl call) error {
	start := time.Now()
	outcome := outcomeOK
	defer func() {
		requestDuration.WithLabelValues(cl.op, outcome).Observe(time.Since(start).Seconds())
	}()

	var reqBody io.Reader
	if cl.body != nil {
		b, err := json.Marshal(cl.body)
		if err != nil {
			outcome = outcomeTransportError
			return &APIError{Op: cl.op, Message: cl.fallback, Err: fmt.Errorf("encode request: %w", err)}
		}
		reqBody = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, c.base.String()+cl.path, reqBody)
	if err != nil {
		outcome = outcomeTransportError
		return &APIError{Op: cl.op, Message: cl.fallback, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		outcome = outcomeTransportError
		c.log.Warn().Err(err).Str("op", cl.op).Msg("backend call failed")
		return &APIError{Op: cl.op, Message: cl.fallback, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		outcome = outcomeTransportError
		return &APIError{Op: cl.op, Status: resp.StatusCode, Message: cl.fallback, Err: fmt.Errorf("read response: %w", err)}
	}
	if int64(len(raw)) > c.maxBody {
		outcome = outcomeTooLarge
		c.log.Error().Str("op", cl.op).Int64("limit_bytes", c.maxBody).Msg("backend response exceeds size limit")
		return &APIError{Op: cl.op, Status: resp.StatusCode, Message: cl.fallback, Err: ErrResponseTooLarge}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome = outcomeHTTPError
		msg := serverMessage(raw)
		if msg == "" {
			msg = cl.fallback
		}
		c.log.Debug().Str("op", cl.op).Int("status", resp.StatusCode).Str("message", msg).Msg("backend returned error")
		return &APIError{Op: cl.op, Status: resp.StatusCode, Message: msg}
	}

	if cl.out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, cl.out); err != nil {
		outcome = outcomeTransportError
		return &APIError{Op: cl.op, Status: resp.StatusCode, Message: cl.fallback, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

// ErrResponseTooLarge is wrapped by an APIError when a body exceeds
// Config.MaxResponseBytes.
var ErrResponseTooLarge = errors.New("response body exceeds size limit")

// APIError is a failed backend call. Message is the server's own text when it
// sent one, otherwise the operation's generic message.
type APIError struct {
	Op      string
	Status  int // 0 when no response was received
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("backend %s: %s: %v", e.Op, e.Message, e.Err)
	case e.Status != 0:
		return fmt.Sprintf("backend %s: %d: %s", e.Op, e.Status, e.Message)
	default:
		return fmt.Sprintf("backend %s: %s", e.Op, e.Message)
	}
}

func (e *APIError) Unwrap() error { return e.Err }

// UserMessage is the text shown inline to the user.
func (e *APIError) UserMessage() string { return e.Message }

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, status int) bool {
	var ae *APIError
	return errors.As(err, &ae) && ae.Status == status
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Error   string          `json:"error"`
	Message string          `json:"message"`
}

// serverMessage extracts a human-readable message from an error body: a
// string detail, the first entry of a validation detail list, or an
// error/message field.
func serverMessage(raw []byte) string {
	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if len(body.Detail) > 0 {
		var s string
		if err := json.Unmarshal(body.Detail, &s); err == nil && strings.TrimSpace(s) != "" {
			return s
		}
		var items []struct {
			Msg string `json:"msg"`
		}
		if err := json.Unmarshal(body.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
			return items[0].Msg
		}
	}
	if body.Error != "" {
		return body.Error
	}
	return body.Message
}
