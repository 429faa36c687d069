package payment

import "context"

// Repository stores payment records. Fraud notifications are keyed by the
// Klarna order id, local lookups by the merchant order number.
type Repository interface {
	Insert(ctx context.Context, p *Payment) error
	GetByOrderNo(ctx context.Context, orderNo string) (*Payment, error)
	GetByKlarnaOrderID(ctx context.Context, klarnaOrderID string) (*Payment, error)
	Update(ctx context.Context, p *Payment) error
}
