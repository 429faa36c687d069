package builder

import (
	"github.com/shopspring/decimal"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/pkg/asciitext"
	"github.com/commercekit/klarna-payments/internal/pkg/money"
)

// defaultDiscountName labels adjustments whose promotion carries no name.
const defaultDiscountName = "Discount"

// AdjustmentLineBuilder translates price adjustments (promotions, discounts)
// into canonical discount lines. The platform supplies discount amounts
// already negative; no sign inversion happens here.
type AdjustmentLineBuilder struct {
	policy money.Policy
}

func NewAdjustmentLineBuilder(policy money.Policy) *AdjustmentLineBuilder {
	return &AdjustmentLineBuilder{policy: policy}
}

// Build produces the discount line for one adjustment. Item-scoped
// adjustments prefix the reference with the owning product id, option-scoped
// ones with the option id; order- and shipment-scoped adjustments use the
// bare promotion id.
func (b *AdjustmentLineBuilder) Build(adj *checkout.PriceAdjustment, productID, optionID string) klarna.LineItem {
	amount := money.Minor(b.price(adj))

	return klarna.LineItem{
		Type:           klarna.LineTypeDiscount,
		Reference:      adjustmentReference(adj, productID, optionID),
		Name:           promotionName(adj),
		Quantity:       1,
		UnitPrice:      amount,
		TaxRate:        b.taxRate(adj),
		TotalAmount:    amount,
		TotalTaxAmount: b.taxAmount(adj),
		MerchantData:   adj.CouponCode,
	}
}

func (b *AdjustmentLineBuilder) price(adj *checkout.PriceAdjustment) decimal.Decimal {
	if adj.GrossPrice.Available && !b.policy.Net() {
		return adj.GrossPrice.Value
	}
	return adj.NetPrice.Value
}

func (b *AdjustmentLineBuilder) taxRate(adj *checkout.PriceAdjustment) int64 {
	if b.policy.Net() {
		return 0
	}
	return money.Rate(adj.TaxRate)
}

func (b *AdjustmentLineBuilder) taxAmount(adj *checkout.PriceAdjustment) int64 {
	if b.policy.Net() {
		return 0
	}
	return money.Minor(adj.Tax.Value)
}

func adjustmentReference(adj *checkout.PriceAdjustment, productID, optionID string) string {
	switch {
	case productID != "":
		return productID + "_" + adj.PromotionID
	case optionID != "":
		return optionID + "_" + adj.PromotionID
	default:
		return adj.PromotionID
	}
}

func promotionName(adj *checkout.PriceAdjustment) string {
	name := adj.PromotionName
	if name == "" {
		name = defaultDiscountName
	}
	return asciitext.Sanitize(name)
}
