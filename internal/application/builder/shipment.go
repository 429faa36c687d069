package builder

import (
	"github.com/shopspring/decimal"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/pkg/asciitext"
	"github.com/commercekit/klarna-payments/internal/pkg/money"
)

// ShipmentLineBuilder translates shipments with an assigned shipping method
// into shipping-fee lines. Shipments without a method yield no line; callers
// skip them before delegating here.
type ShipmentLineBuilder struct {
	policy   money.Policy
	taxRates checkout.TaxRates
}

func NewShipmentLineBuilder(policy money.Policy, taxRates checkout.TaxRates) *ShipmentLineBuilder {
	return &ShipmentLineBuilder{policy: policy, taxRates: taxRates}
}

func (b *ShipmentLineBuilder) Build(s *checkout.Shipment) klarna.LineItem {
	unitPrice := money.Minor(b.shipmentPrice(s))

	return klarna.LineItem{
		Type:           klarna.LineTypeShippingFee,
		Reference:      s.ShippingMethod.ID,
		Name:           asciitext.Sanitize(s.ShippingMethod.DisplayName),
		Quantity:       1,
		UnitPrice:      unitPrice,
		TaxRate:        b.taxRate(s),
		TotalAmount:    unitPrice,
		TotalTaxAmount: b.taxAmount(s),
	}
}

func (b *ShipmentLineBuilder) shipmentPrice(s *checkout.Shipment) decimal.Decimal {
	if s.TotalGrossPrice.Available && !b.policy.Net() {
		return s.TotalGrossPrice.Value
	}
	return s.TotalNetPrice.Value
}

// taxRate resolves the shipping tax rate through the jurisdiction lookup,
// gross policy only. It requires a tax class on the method and a shipping
// address to derive the jurisdiction from.
func (b *ShipmentLineBuilder) taxRate(s *checkout.Shipment) int64 {
	if b.policy.Net() || b.taxRates == nil {
		return 0
	}
	if s.ShippingMethod.TaxClassID == "" || s.ShippingAddress == nil {
		return 0
	}

	jurisdiction := b.taxRates.JurisdictionID(s.ShippingAddress)
	rate, ok := b.taxRates.Rate(s.ShippingMethod.TaxClassID, jurisdiction)
	if !ok {
		return 0
	}
	return money.Rate(rate)
}

func (b *ShipmentLineBuilder) taxAmount(s *checkout.Shipment) int64 {
	if b.policy.Net() {
		return 0
	}
	return money.Minor(s.TotalTax.Value)
}
