// Package upstream is the single HTTP client for the external car API.
//
// Every proxy route, every page of the web UI and the command line go through
// Client.Do, which owns the header conventions (bearer token, request id,
// forwarding chain), the response size cap and JSON sanity checking.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/deppfellow/carmarket/internal/config"
)

// DefaultMaxResponseBytes caps upstream bodies when the config leaves it unset.
const DefaultMaxResponseBytes = 10000000

const forwardedForHeader = "X-Forwarded-For"

// Client talks to the upstream car API.
type Client struct {
	BaseURL          string
	HTTP             *http.Client
	UserAgent        string
	MaxResponseBytes int64
	SlowThreshold    time.Duration

	logger *zerolog.Logger
}

// Request describes one call to the upstream API.
type Request struct {
	Method string
	// Path is appended to the base URL as-is; callers escape path segments.
	Path string
	// Token is sent as a bearer token when non-empty.
	Token string
	Body  []byte

	// RequestID and ForwardedFor default to the Caller stored on the context.
	RequestID    string
	ForwardedFor string
}

// NewClient builds a client from config. The transport is wrapped so that
// calls show up as external segments of the current New Relic transaction.
func NewClient(cfg config.UpstreamConfig, slowThreshold time.Duration, logger *zerolog.Logger) *Client {
	maxBytes := cfg.MaxResponseBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxResponseBytes
	}

	return &Client{
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		HTTP: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: newrelic.NewRoundTripper(http.DefaultTransport),
		},
		UserAgent:        cfg.UserAgent,
		MaxResponseBytes: maxBytes,
		SlowThreshold:    slowThreshold,
		logger:           logger,
	}
}

// Do sends the request and reads the whole response.
//
// A non-2xx status is not an error here: the caller decides how to relay it.
// Errors are reserved for failures where there is nothing to relay.
func (c *Client) Do(ctx context.Context, r Request) (*Response, error) {
	caller := CallerFrom(ctx)
	if r.RequestID == "" {
		r.RequestID = caller.RequestID
	}
	if r.ForwardedFor == "" {
		r.ForwardedFor = caller.ForwardedFor
	}

	var body io.Reader
	if len(r.Body) > 0 {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, c.BaseURL+r.Path, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build upstream request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if r.Token != "" {
		req.Header.Set("Authorization", "Bearer "+r.Token)
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	if r.RequestID != "" {
		req.Header.Set("X-Request-ID", r.RequestID)
	}
	if r.ForwardedFor != "" {
		req.Header.Set(forwardedForHeader, r.ForwardedFor)
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "upstream %s %s", r.Method, r.Path)
	}
	defer res.Body.Close()

	limited := &io.LimitedReader{R: res.Body, N: c.MaxResponseBytes + 1}
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read upstream %s %s", r.Method, r.Path)
	}
	elapsed := time.Since(start)

	if int64(len(data)) > c.MaxResponseBytes {
		return nil, ErrResponseTooLarge
	}

	c.logCall(r, res.StatusCode, elapsed)

	if len(bytes.TrimSpace(data)) > 0 && !json.Valid(data) {
		return nil, &NonJSONError{Status: res.StatusCode, Snippet: snippet(data)}
	}

	return &Response{
		Status: res.StatusCode,
		Header: res.Header,
		Body:   data,
	}, nil
}

// Ping reports whether the upstream answers HTTP at all. Any status counts as
// reachable; only transport failures are errors.
func (c *Client) Ping(ctx context.Context) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/", nil)
	if err != nil {
		return 0, errors.Wrap(err, "failed to build upstream ping")
	}
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "upstream ping")
	}
	defer res.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(res.Body, c.MaxResponseBytes))

	return res.StatusCode, nil
}

func (c *Client) logCall(r Request, status int, elapsed time.Duration) {
	if c.logger == nil {
		return
	}

	var event *zerolog.Event
	if c.SlowThreshold > 0 && elapsed > c.SlowThreshold {
		event = c.logger.Warn().Dur("threshold", c.SlowThreshold)
	} else {
		event = c.logger.Debug()
	}

	event.
		Str("request_id", r.RequestID).
		Str("method", r.Method).
		Str("path", r.Path).
		Int("status", status).
		Dur("latency", elapsed).
		Msg("upstream call")
}

// ForwardedFor appends clientIP to the forwarding chain the caller received,
// flattening repeated headers into one comma separated value.
func ForwardedFor(previous []string, clientIP string) string {
	if clientIP == "" {
		return strings.Join(previous, ", ")
	}
	return strings.Join(append(previous, clientIP), ", ")
}
