package workerpresentation

import (
	"context"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	domoutbox "github.com/commercekit/klarna-payments/internal/domain/outbox"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/observability/logctx"
)

// Subscriber decorates bus registrations so every handler runs with the
// event logging context injected. It plays the role the observability
// middleware plays for HTTP routes.
type Subscriber struct {
	inner domoutbox.Subscriber
	log   observability.Logger
	tel   observability.Telemetry
}

func NewSubscriber(inner domoutbox.Subscriber, log observability.Logger, tel observability.Telemetry) *Subscriber {
	if log == nil {
		log = observability.NopLogger()
	}
	return &Subscriber{inner: inner, log: log, tel: tel}
}

func (s *Subscriber) Subscribe(eventName string, h domoutbox.Handler) {
	s.inner.Subscribe(eventName, func(ctx context.Context, e domoutbox.Event) error {
		sc := trace.SpanContextFromContext(ctx)
		ctx = WithEventContext(ctx, s.log, s.tel, sc.TraceID(), sc.SpanID(), map[string]string{
			"event": eventName,
		})
		return h(ctx, e)
	})
}

// WithEventContext injects a request-scoped logger for background/worker
// executions: trace_id/span_id when valid, a generated event_id, plus
// caller-provided low-cardinality attributes (event name, tenant, queue).
func WithEventContext(
	ctx context.Context,
	base observability.Logger,
	tel observability.Telemetry,
	traceID trace.TraceID,
	spanID trace.SpanID,
	attrs map[string]string,
) context.Context {
	if base == nil {
		base = tel.Logger()
	}

	if attrs == nil {
		attrs = make(map[string]string)
	}

	fields := make([]observability.Field, 0, 6)

	evtID := attrs["event_id"]
	if evtID == "" {
		evtID = uuid.NewString()
	}
	fields = append(fields, observability.F("event_id", evtID))

	if traceID.IsValid() {
		fields = append(fields, observability.F("trace_id", traceID.String()))
	}
	if spanID.IsValid() {
		fields = append(fields, observability.F("span_id", spanID.String()))
	}

	for k, v := range attrs {
		if k == "event_id" || v == "" {
			continue
		}
		fields = append(fields, observability.F(k, v))
	}

	return logctx.With(ctx, base.With(fields...))
}
