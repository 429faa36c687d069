package payment

import (
	"context"

	domoutbox "github.com/commercekit/klarna-payments/internal/domain/outbox"
	dompay "github.com/commercekit/klarna-payments/internal/domain/payment"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/observability/logctx"
)

// Worker consumes fraud decision events and applies the verdict to the
// stored payment.
type Worker struct {
	subscriber domoutbox.Subscriber
	repo       dompay.Repository

	log        observability.Logger
	reqCounter observability.Counter
	durHist    observability.Histogram
}

func NewWorker(subscriber domoutbox.Subscriber, repo dompay.Repository, tel observability.Telemetry) *Worker {
	log := observability.NopLogger()
	var req observability.Counter
	var dur observability.Histogram
	if tel != nil {
		log = tel.Logger().With(observability.F("component", "fraud_worker"))
		req = tel.Counter(observability.MUsecaseRequests)
		dur = tel.Histogram(observability.MUsecaseDuration)
	}
	return &Worker{
		subscriber: subscriber,
		repo:       repo,
		log:        log,
		reqCounter: req,
		durHist:    dur,
	}
}

func (w *Worker) Start() {
	if w.subscriber == nil || w.repo == nil {
		return
	}
	w.subscriber.Subscribe(dompay.FraudDecisionEvent{}.EventName(), w.handleFraudDecision)
}

func (w *Worker) handleFraudDecision(ctx context.Context, e domoutbox.Event) error {
	logger := logctx.FromOr(ctx, w.log).With(
		observability.F("event", e.EventName()),
	)

	evt, ok := e.(dompay.FraudDecisionEvent)
	if !ok {
		return nil
	}
	logger = logger.With(
		observability.F("klarna_order_id", evt.KlarnaOrderID),
		observability.F("decision", evt.Decision),
	)

	p, err := w.repo.GetByKlarnaOrderID(ctx, evt.KlarnaOrderID)
	if err != nil {
		logger.Warn("fraud_decision_lookup_failed", observability.F("error", err.Error()))
		return err
	}

	switch evt.Decision {
	case dompay.EventFraudRiskAccepted:
		err = p.AcceptFraudRisk()
	case dompay.EventFraudRiskRejected, dompay.EventFraudRiskStopped:
		err = p.RejectFraudRisk()
	default:
		logger.Warn("fraud_decision_unknown")
		return nil
	}
	if err != nil {
		logger.Warn("fraud_decision_transition_failed", observability.F("error", err.Error()))
		return err
	}

	if err := w.repo.Update(ctx, p); err != nil {
		logger.Error("fraud_decision_update_failed", observability.F("error", err.Error()))
		return err
	}

	logger.Info("fraud_decision_applied",
		observability.F("status", string(p.Status)),
	)
	return nil
}
