package submission

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/signup/internal/registration"
	"github.com/zjrosen/signup/internal/tracing"
)

// Registrar is the transport used by Handler.
type Registrar interface {
	Register(ctx context.Context, state registration.FormState) error
}

// Handler maps a submission attempt to the banner shown to the user. Every
// failure, whatever its cause, becomes the same "username taken" text.
type Handler struct {
	mu        sync.RWMutex
	registrar Registrar
	tracer    trace.Tracer
}

// NewHandler creates a handler posting through r.
func NewHandler(r Registrar, tracer trace.Tracer) *Handler {
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &Handler{registrar: r, tracer: tracer}
}

// SetRegistrar swaps the transport, e.g. after the endpoint changed in config.
// Attempts already in flight keep the old one.
func (h *Handler) SetRegistrar(r Registrar) {
	h.mu.Lock()
	h.registrar = r
	h.mu.Unlock()
}

// Registrar returns the current transport.
func (h *Handler) Registrar() Registrar {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.registrar
}

// Submit posts state and returns the banner. It never fails and never retries.
func (h *Handler) Submit(ctx context.Context, state registration.FormState) registration.ResultMessage {
	ctx, span := h.tracer.Start(ctx, tracing.SpanSubmit,
		trace.WithAttributes(attribute.String(tracing.AttrUsername, state.Username)))
	defer span.End()

	if err := h.Registrar().Register(ctx, state); err != nil {
		span.SetAttributes(
			attribute.String(tracing.AttrOutcome, tracing.OutcomeFailure),
			attribute.String(tracing.AttrErrorType, errorType(err)),
		)
		return registration.Failed(registration.MsgSubmitFailure)
	}
	span.SetAttributes(attribute.String(tracing.AttrOutcome, tracing.OutcomeSuccess))
	return registration.Succeeded(registration.MsgSubmitSuccess)
}

func errorType(err error) string {
	var se *StatusError
	if errors.As(err, &se) {
		return "status"
	}
	return "transport"
}
