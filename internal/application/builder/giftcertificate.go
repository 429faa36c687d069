package builder

import (
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/pkg/money"
)

const giftCertificateName = "Gift Certificate"

// GiftCertificateLineBuilder translates gift-certificate redemption
// instruments into negative redemption lines. Redemptions always carry zero
// tax regardless of policy.
type GiftCertificateLineBuilder struct{}

func NewGiftCertificateLineBuilder() *GiftCertificateLineBuilder {
	return &GiftCertificateLineBuilder{}
}

func (b *GiftCertificateLineBuilder) Build(pi checkout.GiftCertificatePayment) klarna.LineItem {
	amount := -money.Minor(pi.Amount)

	return klarna.LineItem{
		Type:           klarna.LineTypeGiftCard,
		Reference:      pi.MaskedCode,
		Name:           giftCertificateName,
		Quantity:       1,
		UnitPrice:      amount,
		TaxRate:        0,
		TotalAmount:    amount,
		TotalTaxAmount: 0,
	}
}
