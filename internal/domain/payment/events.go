package payment

import "time"

// Fraud decision identifiers as delivered by Klarna's notification callback.
const (
	EventFraudRiskAccepted = "FRAUD_RISK_ACCEPTED"
	EventFraudRiskRejected = "FRAUD_RISK_REJECTED"
	EventFraudRiskStopped  = "FRAUD_RISK_STOPPED"
)

// SubmittedEvent is emitted after an order has been created at Klarna and
// recorded locally.
type SubmittedEvent struct {
	OrderNo       string
	KlarnaOrderID string
	FraudStatus   FraudStatus
	OccurredAt    time.Time
}

func (SubmittedEvent) EventName() string { return "payment.submitted" }

func NewSubmittedEvent(p *Payment) SubmittedEvent {
	return SubmittedEvent{
		OrderNo:       p.OrderNo,
		KlarnaOrderID: p.KlarnaOrderID,
		FraudStatus:   p.FraudStatus,
		OccurredAt:    time.Now().UTC(),
	}
}

// FraudDecisionEvent carries one asynchronous fraud verdict from the
// notification endpoint to the worker applying it.
type FraudDecisionEvent struct {
	KlarnaOrderID string
	Decision      string // one of the EventFraudRisk* identifiers
	OccurredAt    time.Time
}

func (FraudDecisionEvent) EventName() string { return "payment.fraud_decision" }

func NewFraudDecisionEvent(klarnaOrderID, decision string) FraudDecisionEvent {
	return FraudDecisionEvent{
		KlarnaOrderID: klarnaOrderID,
		Decision:      decision,
		OccurredAt:    time.Now().UTC(),
	}
}
