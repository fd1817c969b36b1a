// Package provider is the HTTP client for the identity-verification provider.
//
// Every request is signed with the app secret over the exact bytes sent.
// Transient failures are retried with backoff inside the client; callers see
// one result per operation and never retry themselves.
package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	kycmetrics "kycgate/internal/kyc/metrics"
	"kycgate/pkg/platform/circuit"
)

const maxResponseBytes = 4 << 20

// Config holds credentials and the base URL of the provider API.
type Config struct {
	BaseURL   string
	AppToken  string
	SecretKey string
	Timeout   time.Duration
}

// Client talks to the provider REST API.
type Client struct {
	baseURL   string
	appToken  string
	secretKey string
	http      *http.Client
	retry     RetryPolicy
	breaker   *circuit.Breaker
	logger    *slog.Logger
	metrics   *kycmetrics.Metrics
	tracer    trace.Tracer
	now       func() time.Time
	sleep     func(ctx context.Context, d time.Duration) error
}

// Option configures the Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		c.retry = p
	}
}

func WithBreaker(b *circuit.Breaker) Option {
	return func(c *Client) {
		c.breaker = b
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func WithMetrics(m *kycmetrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = t
	}
}

// WithClock overrides the signing clock.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// WithSleeper overrides the backoff sleep. Tests pass a no-op.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Client) {
		c.sleep = sleep
	}
}

// New builds a client. Timeout defaults to 10s and applies per attempt.
func New(cfg Config, opts ...Option) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		appToken:  cfg.AppToken,
		secretKey: cfg.SecretKey,
		http:      &http.Client{Timeout: timeout},
		retry:     DefaultRetryPolicy,
		breaker:   circuit.New("kyc-provider"),
		logger:    slog.Default(),
		tracer:    otel.Tracer("kycgate/internal/kyc/provider"),
		now:       time.Now,
		sleep:     sleepContext,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call is one logical operation: method, path, optional query and JSON body.
type call struct {
	op     string
	method string
	path   string
	query  url.Values
	body   any
}

// do executes c with bounded retries and decodes a 2xx body into out (which
// may be nil, or a *json.RawMessage to keep the body verbatim).
func (c *Client) do(ctx context.Context, req call, out any) error {
	start := time.Now()
	ctx, span := c.tracer.Start(ctx, "provider."+req.op, trace.WithAttributes(
		attribute.String("http.method", req.method),
		attribute.String("http.path", req.path),
	))
	defer span.End()

	var payload []byte
	if req.body != nil {
		var err error
		if payload, err = json.Marshal(req.body); err != nil {
			return NewProviderError(ErrorInternal, req.op, "encode request", err)
		}
	}

	attempts := c.retry.attempts()
	if c.breaker.IsOpen() {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, c.retry.Backoff(attempt-1)); err != nil {
				break
			}
		}
		status, body, err := c.send(ctx, req, payload)
		span.SetAttributes(attribute.Int("http.status_code", status), attribute.Int("provider.attempts", attempt))
		if err == nil {
			c.recordOutcome(ctx, true)
			if out != nil && len(body) > 0 {
				if err := json.Unmarshal(body, out); err != nil {
					lastErr = NewProviderError(ErrorBadData, req.op, "decode response", err)
					break
				}
			}
			c.metrics.ObserveProviderCall(req.op, "success", start)
			return nil
		}
		lastErr = err
		if !IsRetryable(err) {
			break
		}
		c.recordOutcome(ctx, false)
		if ctx.Err() != nil {
			break
		}
		c.logger.WarnContext(ctx, "provider call failed, retrying",
			"operation", req.op,
			"attempt", attempt,
			"max_attempts", attempts,
			"error", err,
		)
	}

	span.RecordError(lastErr)
	span.SetStatus(codes.Error, string(GetCategory(lastErr)))
	c.metrics.ObserveProviderCall(req.op, string(GetCategory(lastErr)), start)
	return lastErr
}

// send performs a single signed attempt.
func (c *Client) send(ctx context.Context, req call, payload []byte) (int, []byte, error) {
	target := c.baseURL + req.path
	if len(req.query) > 0 {
		target += "?" + req.query.Encode()
	}
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.method, target, reader)
	if err != nil {
		return 0, nil, NewProviderError(ErrorInternal, req.op, "build request", err)
	}

	ts := c.now().Unix()
	httpReq.Header.Set("Accept", "application/json")
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	httpReq.Header.Set(HeaderAppToken, c.appToken)
	httpReq.Header.Set(HeaderTimestamp, formatTS(ts))
	httpReq.Header.Set(HeaderSignature, SignRequest(c.secretKey, ts, req.method, httpReq.URL.RequestURI(), payload))

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return 0, nil, transportError(req.op, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, nil, transportError(req.op, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, body, newHTTPError(req.op, resp.StatusCode, body)
	}
	return resp.StatusCode, body, nil
}

func (c *Client) recordOutcome(ctx context.Context, ok bool) {
	var change circuit.StateChange
	if ok {
		_, change = c.breaker.RecordSuccess()
	} else {
		_, change = c.breaker.RecordFailure()
	}
	switch {
	case change.Opened:
		c.logger.WarnContext(ctx, "provider circuit opened, retries disabled", "breaker", c.breaker.Name())
		c.metrics.IncrementBreaker("open")
	case change.Closed:
		c.logger.InfoContext(ctx, "provider circuit closed", "breaker", c.breaker.Name())
		c.metrics.IncrementBreaker("closed")
	}
}

func transportError(op string, err error) *ProviderError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return NewProviderError(ErrorTimeout, op, "request timed out", err)
	}
	if errors.Is(err, context.Canceled) {
		e := NewProviderError(ErrorTimeout, op, "request cancelled", err)
		e.Retryable = false
		return e
	}
	return NewProviderError(ErrorProviderOutage, op, "transport failure", err)
}

// providerMessage pulls a human-readable description out of an error body.
func providerMessage(body []byte) string {
	var parsed struct {
		Description string `json:"description"`
		Message     string `json:"message"`
	}
	if json.Unmarshal(body, &parsed) == nil {
		if parsed.Description != "" {
			return parsed.Description
		}
		return parsed.Message
	}
	return ""
}
