package checkout

import "github.com/shopspring/decimal"

// LineKind tags a product line's source entity, resolved once at ingestion so
// translators can match on it instead of duck-typing.
type LineKind string

const (
	// LineKindProduct is an ordinary product line.
	LineKindProduct LineKind = "product"
	// LineKindOption is a product-option (or bundle component) line owned by a
	// parent product.
	LineKindOption LineKind = "option"
	// LineKindGiftCertificate is a gift certificate sold as a product. It is
	// translated through the product path.
	LineKindGiftCertificate LineKind = "gift_certificate"
)

// ProductLine is one product-like entry of the aggregate.
type ProductLine struct {
	Kind        LineKind
	ProductID   string
	ProductName string
	Quantity    int

	// Option lines reference their owner.
	ParentProductID string
	OptionID        string
	OptionValueID   string

	GrossPrice Price
	NetPrice   Price
	Tax        Price
	TaxRate    decimal.Decimal // fraction, e.g. 0.2 for 20%

	// Product carries resolved catalog data for the line's own product;
	// ParentProduct is set for option lines and used for brand/category.
	Product       *Product
	ParentProduct *Product

	// ShippingLine is set when the product ships on its own shipping line
	// item; its adjustments are emitted before the product's own adjustments.
	ShippingLine *ProductShippingLine

	PriceAdjustments []PriceAdjustment
}

// ProductShippingLine holds the product-specific shipping line adjustments.
type ProductShippingLine struct {
	PriceAdjustments []PriceAdjustment
}

// CatalogProduct returns the catalog product that identifies the line: the
// parent product for option lines, the line's own product otherwise.
func (l *ProductLine) CatalogProduct() *Product {
	if l.Kind == LineKindOption {
		return l.ParentProduct
	}
	return l.Product
}

// PriceAdjustment is a promotion/discount applied to a product, an option, a
// shipment, or the whole order. The platform supplies discount prices already
// negative; translators never invert the sign.
type PriceAdjustment struct {
	PromotionID   string
	PromotionName string
	CouponCode    string

	GrossPrice Price
	NetPrice   Price
	Tax        Price
	TaxRate    decimal.Decimal
}

// GiftCertificatePayment is a gift-certificate redemption instrument applied
// to the aggregate. Amount is the redeemed major-unit value (positive).
type GiftCertificatePayment struct {
	MaskedCode string
	Amount     decimal.Decimal
}
