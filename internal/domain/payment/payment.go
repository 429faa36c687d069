// Package payment models the state of one Klarna payment transaction from
// order submission through the asynchronous fraud decision.
package payment

import (
	"errors"
	"time"
)

var (
	ErrNotFound          = errors.New("payment: not found")
	ErrConflict          = errors.New("payment: already recorded")
	ErrInvalidAmount     = errors.New("payment: amount must be zero or greater")
	ErrInvalidTransition = errors.New("payment: invalid fraud status transition")
)

// FraudStatus is Klarna's risk assessment verdict for an order.
type FraudStatus string

const (
	FraudPending  FraudStatus = "PENDING"
	FraudAccepted FraudStatus = "ACCEPTED"
	FraudRejected FraudStatus = "REJECTED"
)

// Status is the local lifecycle derived from the fraud verdict.
type Status string

const (
	// StatusSubmitted: order created at Klarna, fraud verdict outstanding.
	StatusSubmitted Status = "submitted"
	// StatusAccepted: fraud risk accepted, the order may be captured.
	StatusAccepted Status = "accepted"
	// StatusRejected: fraud risk rejected or stopped, the order must fail.
	StatusRejected Status = "rejected"
)

// Payment is one recorded Klarna order.
type Payment struct {
	OrderNo       string
	KlarnaOrderID string
	RedirectURL   string
	Currency      string
	Amount        int64 // minor units
	FraudStatus   FraudStatus
	Status        Status
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// New records a freshly created Klarna order. The initial local status
// follows the fraud verdict returned synchronously with the creation call.
func New(orderNo, klarnaOrderID, currency string, amount int64, fraud FraudStatus) (*Payment, error) {
	if orderNo == "" {
		return nil, errors.New("payment: order number is required")
	}
	if klarnaOrderID == "" {
		return nil, errors.New("payment: klarna order id is required")
	}
	if amount < 0 {
		return nil, ErrInvalidAmount
	}

	now := time.Now().UTC()
	p := &Payment{
		OrderNo:       orderNo,
		KlarnaOrderID: klarnaOrderID,
		Currency:      currency,
		Amount:        amount,
		FraudStatus:   fraud,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	switch fraud {
	case FraudAccepted:
		p.Status = StatusAccepted
	case FraudRejected:
		p.Status = StatusRejected
	default:
		p.FraudStatus = FraudPending
		p.Status = StatusSubmitted
	}
	return p, nil
}

// AcceptFraudRisk applies an ACCEPTED verdict. Re-accepting an accepted
// payment is a no-op; accepting a rejected one is invalid.
func (p *Payment) AcceptFraudRisk() error {
	switch p.Status {
	case StatusAccepted:
		return nil
	case StatusRejected:
		return ErrInvalidTransition
	}
	p.FraudStatus = FraudAccepted
	p.Status = StatusAccepted
	p.touch()
	return nil
}

// RejectFraudRisk applies a REJECTED (or STOPPED) verdict. Re-rejecting is a
// no-op; rejecting an accepted payment is invalid.
func (p *Payment) RejectFraudRisk() error {
	switch p.Status {
	case StatusRejected:
		return nil
	case StatusAccepted:
		return ErrInvalidTransition
	}
	p.FraudStatus = FraudRejected
	p.Status = StatusRejected
	p.touch()
	return nil
}

// Pending reports whether the fraud verdict is still outstanding.
func (p *Payment) Pending() bool { return p.Status == StatusSubmitted }

func (p *Payment) touch() { p.UpdatedAt = time.Now().UTC() }

// Clone returns a copy detached from repository storage.
func (p *Payment) Clone() *Payment {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}
