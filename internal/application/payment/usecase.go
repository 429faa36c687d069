package payment

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/commercekit/klarna-payments/internal/application"
	"github.com/commercekit/klarna-payments/internal/application/builder"
	"github.com/commercekit/klarna-payments/internal/application/session"
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	domoutbox "github.com/commercekit/klarna-payments/internal/domain/outbox"
	dompay "github.com/commercekit/klarna-payments/internal/domain/payment"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/observability/logctx"
)

var _ application.UseCase[SubmitOrderInput, *SubmitOrderResult] = (*SubmitOrderUseCase)(nil)

const (
	paymentService     = "payment-service"
	useCaseOrderSubmit = "payment.submit_order"
	submitSpanName     = "SubmitOrder"
	spanPrefix         = "UC."
)

type SubmitOrderInput struct {
	BasketID  string // authorization token lookup key; optional when the token is passed directly
	Aggregate *checkout.Aggregate
	Locale    builder.Locale

	// AuthorizationToken overrides the stored token when set.
	AuthorizationToken string
}

type SubmitOrderResult struct {
	KlarnaOrderID string
	RedirectURL   string
	FraudStatus   dompay.FraudStatus
}

// SubmitOrderUseCase builds the order request for a placed order, creates
// the order at Klarna with the widget's authorization token, and records the
// resulting payment with its synchronous fraud verdict.
type SubmitOrderUseCase struct {
	cfg      builder.Config
	taxRates checkout.TaxRates
	emd      checkout.AttachmentProvider
	auth     *session.AuthService
	gateway  Gateway
	repo     dompay.Repository
	bus      domoutbox.Publisher

	tel        observability.Telemetry
	log        observability.Logger
	reqCounter observability.Counter
	durHist    observability.Histogram
}

func NewSubmitOrderUseCase(
	cfg builder.Config,
	taxRates checkout.TaxRates,
	emd checkout.AttachmentProvider,
	auth *session.AuthService,
	gateway Gateway,
	repo dompay.Repository,
	bus domoutbox.Publisher,
	tel observability.Telemetry,
) *SubmitOrderUseCase {
	baseLog := observability.NopLogger()
	var req observability.Counter
	var dur observability.Histogram
	if tel != nil {
		baseLog = tel.Logger().With(observability.F("service", paymentService))
		req = tel.Counter(observability.MUsecaseRequests)
		dur = tel.Histogram(observability.MUsecaseDuration)
	}

	return &SubmitOrderUseCase{
		cfg:        cfg,
		taxRates:   taxRates,
		emd:        emd,
		auth:       auth,
		gateway:    gateway,
		repo:       repo,
		bus:        bus,
		tel:        tel,
		log:        baseLog,
		reqCounter: req,
		durHist:    dur,
	}
}

func (uc *SubmitOrderUseCase) Execute(ctx context.Context, cmd SubmitOrderInput) (_ *SubmitOrderResult, err error) {
	orderNo := ""
	if cmd.Aggregate != nil {
		orderNo = cmd.Aggregate.OrderNo
	}

	logger := logctx.FromOr(ctx, uc.log).With(
		observability.F("use_case", useCaseOrderSubmit),
		observability.F("order_no", orderNo),
	)

	tracer := observability.NopTracer()
	if uc.tel != nil {
		tracer = uc.tel.Tracer()
	}

	ctx, span := tracer.Start(ctx, spanPrefix+submitSpanName,
		attribute.String("use_case", useCaseOrderSubmit),
		attribute.String("order.no", orderNo),
	)
	start := time.Now()
	outcome, statusText := "success", "OK"
	var fraudStatus dompay.FraudStatus

	defer func() {
		if span != nil {
			if fraudStatus != "" {
				span.SetAttributes(attribute.String("payment.fraud_status", string(fraudStatus)))
			}
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
				observability.L("use_case", useCaseOrderSubmit),
				observability.L("outcome", outcome),
			)
		}
		if uc.durHist != nil {
			uc.durHist.Observe(latency,
				observability.L("use_case", useCaseOrderSubmit),
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

	token := cmd.AuthorizationToken
	if token == "" && cmd.BasketID != "" && uc.auth != nil {
		token, err = uc.auth.LoadAuth(ctx, cmd.BasketID)
		if err != nil {
			outcome, statusText = "error", "AUTH_TOKEN_MISSING"
			return nil, err
		}
	}
	if token == "" {
		outcome, statusText = "error", "AUTH_TOKEN_REQUIRED"
		return nil, errors.New("payment: authorization token is required")
	}

	req, err := builder.NewOrderRequestBuilder(uc.cfg, uc.taxRates, uc.emd, logger).
		Build(builder.Params{Aggregate: cmd.Aggregate, Locale: cmd.Locale})
	if err != nil {
		outcome, statusText = "error", "BUILD_FAILED"
		return nil, err
	}

	created, err := uc.gateway.CreateOrder(ctx, token, req)
	if err != nil {
		outcome, statusText = "error", "GATEWAY_FAILED"
		return nil, err
	}
	fraudStatus = created.FraudStatus

	p, err := dompay.New(orderNo, created.KlarnaOrderID, req.PurchaseCurrency, req.OrderAmount, created.FraudStatus)
	if err != nil {
		outcome, statusText = "error", "RECORD_INVALID"
		return nil, err
	}
	p.RedirectURL = created.RedirectURL

	if err = uc.repo.Insert(ctx, p); err != nil {
		outcome, statusText = "error", "RECORD_FAILED"
		return nil, err
	}

	if uc.bus != nil {
		if pubErr := uc.bus.Publish(ctx, dompay.NewSubmittedEvent(p)); pubErr != nil {
			logger.Warn("event_publish_failed",
				observability.F("event", dompay.SubmittedEvent{}.EventName()),
				observability.F("error", pubErr.Error()),
			)
		}
	}

	return &SubmitOrderResult{
		KlarnaOrderID: created.KlarnaOrderID,
		RedirectURL:   created.RedirectURL,
		FraudStatus:   created.FraudStatus,
	}, nil
}
