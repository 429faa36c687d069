package payment

import (
	"context"
	"errors"

	domoutbox "github.com/commercekit/klarna-payments/internal/domain/outbox"
	dompay "github.com/commercekit/klarna-payments/internal/domain/payment"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/observability/logctx"
)

// ErrUnknownFraudEvent rejects notification callbacks carrying an event type
// outside the fraud decision set.
var ErrUnknownFraudEvent = errors.New("payment: unknown fraud event type")

// NotificationService receives Klarna's asynchronous fraud notifications and
// publishes them on the bus. Applying the decision happens in the worker so
// the callback can be acknowledged immediately.
type NotificationService struct {
	bus domoutbox.Publisher
	log observability.Logger
}

func NewNotificationService(bus domoutbox.Publisher, log observability.Logger) *NotificationService {
	if log == nil {
		log = observability.NopLogger()
	}
	return &NotificationService{
		bus: bus,
		log: log.With(observability.F("component", "fraud_notification")),
	}
}

func (s *NotificationService) Notify(ctx context.Context, klarnaOrderID, eventType string) error {
	logger := logctx.FromOr(ctx, s.log).With(
		observability.F("klarna_order_id", klarnaOrderID),
		observability.F("event_type", eventType),
	)

	if klarnaOrderID == "" {
		return errors.New("payment: klarna order id is required")
	}

	switch eventType {
	case dompay.EventFraudRiskAccepted, dompay.EventFraudRiskRejected, dompay.EventFraudRiskStopped:
	default:
		logger.Warn("fraud_notification_unknown_event")
		return ErrUnknownFraudEvent
	}

	if err := s.bus.Publish(ctx, dompay.NewFraudDecisionEvent(klarnaOrderID, eventType)); err != nil {
		logger.Error("fraud_notification_publish_failed", observability.F("error", err.Error()))
		return err
	}

	logger.Info("fraud_notification_accepted")
	return nil
}
