// Package submission posts a completed registration form to the remote
// registration endpoint and turns the result into banner text.
package submission

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/signup/internal/log"
	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/tracing"
)

// DefaultEndpoint is the public registration API.
const DefaultEndpoint = "https://webapis.bloomtechdev.com/registration"

// DefaultTimeout bounds a single attempt.
const DefaultTimeout = 10 * time.Second

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("registration rejected: %s", e.Status)
}

// Client POSTs registration payloads as JSON.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	tracer   trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-attempt timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithTracer wraps each attempt in a client span.
func WithTracer(t trace.Tracer) Option {
	return func(c *Client) {
		if t != nil {
			c.tracer = t
		}
	}
}

// NewClient creates a client for endpoint. An empty endpoint uses DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: DefaultTimeout},
		tracer:   noop.NewTracerProvider().Tracer("noop"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

// Endpoint returns the URL posted to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Register posts state. The response body is ignored; any 2xx is success.
func (c *Client) Register(ctx context.Context, state registration.FormState) error {
	attempt := uuid.NewString()
	ctx, span := c.tracer.Start(ctx, tracing.SpanRegister,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String(tracing.AttrAttemptID, attempt),
			attribute.String(tracing.AttrEndpoint, c.endpoint),
		),
	)
	defer span.End()

	err := c.post(ctx, span, state)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		log.ErrorErr(log.CatSubmit, "registration failed", err, "attempt", attempt, "endpoint", c.endpoint)
		return err
	}
	span.SetStatus(codes.Ok, "")
	log.Info(log.CatSubmit, "registration accepted", "attempt", attempt)
	return nil
}

func (c *Client) post(ctx context.Context, span trace.Span, state registration.FormState) error {
	body, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding registration: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating registration request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting registration: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	span.SetAttributes(attribute.Int(tracing.AttrHTTPStatus, resp.StatusCode))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	return nil
}
