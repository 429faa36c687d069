package session

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/commercekit/klarna-payments/internal/application"
	"github.com/commercekit/klarna-payments/internal/application/builder"
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/observability/logctx"
)

var _ application.UseCase[RefreshInput, *RefreshResult] = (*RefreshUseCase)(nil)

const (
	sessionService        = "session-service"
	useCaseSessionRefresh = "session.refresh"
	refreshSpanName       = "RefreshSession"
	spanPrefix            = "UC."
)

type RefreshInput struct {
	BasketID  string
	Aggregate *checkout.Aggregate
	Locale    builder.Locale
}

type RefreshResult struct {
	SessionID   string
	ClientToken string
	Created     bool // false when an existing session was updated in place
}

// RefreshUseCase keeps the stored Klarna session in sync with the basket:
// an existing session for the basket and locale is updated in place, any
// other case creates a fresh one. A failed update falls back to creation so
// an expired session never strands the checkout.
type RefreshUseCase struct {
	cfg      builder.Config
	taxRates checkout.TaxRates
	emd      checkout.AttachmentProvider
	store    Store
	gateway  Gateway

	tel        observability.Telemetry
	log        observability.Logger
	reqCounter observability.Counter
	durHist    observability.Histogram
}

func NewRefreshUseCase(
	cfg builder.Config,
	taxRates checkout.TaxRates,
	emd checkout.AttachmentProvider,
	store Store,
	gateway Gateway,
	tel observability.Telemetry,
) *RefreshUseCase {
	baseLog := observability.NopLogger()
	var req observability.Counter
	var dur observability.Histogram
	if tel != nil {
		baseLog = tel.Logger().With(observability.F("service", sessionService))
		req = tel.Counter(observability.MUsecaseRequests)
		dur = tel.Histogram(observability.MUsecaseDuration)
	}

	return &RefreshUseCase{
		cfg:        cfg,
		taxRates:   taxRates,
		emd:        emd,
		store:      store,
		gateway:    gateway,
		tel:        tel,
		log:        baseLog,
		reqCounter: req,
		durHist:    dur,
	}
}

// Execute builds the session request for the basket and creates or updates
// the stored Klarna session.
func (uc *RefreshUseCase) Execute(ctx context.Context, cmd RefreshInput) (_ *RefreshResult, err error) {
	logger := logctx.FromOr(ctx, uc.log).With(
		observability.F("use_case", useCaseSessionRefresh),
		observability.F("basket_id", cmd.BasketID),
	)

	tracer := observability.NopTracer()
	if uc.tel != nil {
		tracer = uc.tel.Tracer()
	}

	ctx, span := tracer.Start(ctx, spanPrefix+refreshSpanName,
		attribute.String("use_case", useCaseSessionRefresh),
		attribute.String("basket.id", cmd.BasketID),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"

	defer func() {
		if span != nil {
			if err != nil {
				span.RecordError(err)
				span.SetStatus(codes.Error, statusText)
			} else {
				span.SetStatus(codes.Ok, statusText)
			}
			span.End()
		}

		latency := time.Since(start).Seconds()
		if uc.reqCounter != nil {
			uc.reqCounter.Add(1,
				observability.L("use_case", useCaseSessionRefresh),
				observability.L("outcome", outcome),
			)
		}
		if uc.durHist != nil {
			uc.durHist.Observe(latency,
				observability.L("use_case", useCaseSessionRefresh),
			)
		}

		fields := []observability.Field{
			observability.F("outcome", outcome),
			observability.F("status", statusText),
			observability.F("latency_seconds", latency),
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			fields = append(fields,
				observability.F("trace_id", sc.TraceID().String()),
				observability.F("span_id", sc.SpanID().String()),
			)
		}
		if err != nil {
			fields = append(fields, observability.F("error", err.Error()))
		}
		logger.Info("use_case_done", fields...)
	}()

	if cmd.BasketID == "" {
		outcome, statusText = "error", "BASKET_ID_REQUIRED"
		return nil, errors.New("session: basket id is required")
	}

	req, err := builder.NewSessionRequestBuilder(uc.cfg, uc.taxRates, uc.emd, logger).
		Build(builder.Params{Aggregate: cmd.Aggregate, Locale: cmd.Locale})
	if err != nil {
		outcome, statusText = "error", "BUILD_FAILED"
		return nil, err
	}

	stored, loadErr := uc.store.Load(ctx, cmd.BasketID)
	if loadErr == nil && stored.Locale == req.Locale {
		if updateErr := uc.gateway.UpdateSession(ctx, stored.SessionID, req); updateErr == nil {
			stored.UpdatedAt = time.Now().UTC()
			if err = uc.store.Save(ctx, stored); err != nil {
				outcome, statusText = "error", "STORE_FAILED"
				return nil, err
			}
			return &RefreshResult{SessionID: stored.SessionID, ClientToken: stored.ClientToken}, nil
		} else {
			logger.Warn("session_update_failed_recreating",
				observability.F("session_id", stored.SessionID),
				observability.F("error", updateErr.Error()),
			)
		}
	} else if loadErr != nil && !errors.Is(loadErr, ErrNotFound) {
		outcome, statusText = "error", "STORE_LOOKUP_FAILED"
		return nil, loadErr
	}

	created, err := uc.gateway.CreateSession(ctx, req)
	if err != nil {
		outcome, statusText = "error", "GATEWAY_FAILED"
		return nil, err
	}

	now := time.Now().UTC()
	rec := &Record{
		BasketID:    cmd.BasketID,
		SessionID:   created.SessionID,
		ClientToken: created.ClientToken,
		Locale:      req.Locale,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err = uc.store.Save(ctx, rec); err != nil {
		outcome, statusText = "error", "STORE_FAILED"
		return nil, err
	}

	return &RefreshResult{
		SessionID:   created.SessionID,
		ClientToken: created.ClientToken,
		Created:     true,
	}, nil
}
