package payment

import (
	"context"

	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	dompay "github.com/commercekit/klarna-payments/internal/domain/payment"
)

// OrderResult is the gateway's answer to an order creation.
type OrderResult struct {
	KlarnaOrderID string
	RedirectURL   string
	FraudStatus   dompay.FraudStatus
}

// Gateway is the outbound port to Klarna's order endpoint. It belongs to
// the application layer to express use-case dependencies.
type Gateway interface {
	CreateOrder(ctx context.Context, authorizationToken string, req *klarna.Request) (*OrderResult, error)
}
