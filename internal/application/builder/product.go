package builder

import (
	"github.com/shopspring/decimal"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/pkg/asciitext"
	"github.com/commercekit/klarna-payments/internal/pkg/money"
)

// ProductLineBuilder translates product lines, option lines, and gift
// certificates sold as products into canonical order lines.
type ProductLineBuilder struct {
	policy money.Policy
	cfg    Config
}

func NewProductLineBuilder(policy money.Policy, cfg Config) *ProductLineBuilder {
	return &ProductLineBuilder{policy: policy, cfg: cfg}
}

// Build produces the canonical line for one product entry. The line price is
// the platform's aggregated line total; the unit price divides it by the
// quantity and rounds once, after the division.
func (b *ProductLineBuilder) Build(li *checkout.ProductLine) klarna.LineItem {
	price := b.linePrice(li)
	quantity := li.Quantity
	if quantity < 1 {
		quantity = 1
	}

	item := klarna.LineItem{
		Type:           b.lineType(li),
		Reference:      lineReference(li),
		Name:           asciitext.Sanitize(li.ProductName),
		Quantity:       quantity,
		UnitPrice:      money.Minor(price.Div(decimal.NewFromInt(int64(quantity)))),
		TaxRate:        b.taxRate(li),
		TotalAmount:    money.Minor(price),
		TotalTaxAmount: b.taxAmount(li),
	}

	product := li.CatalogProduct()
	if product != nil {
		if path := CategoryPath(product); product.Brand != "" || path != "" {
			item.ProductIdentifiers = &klarna.ProductIdentifiers{
				Brand:        product.Brand,
				CategoryPath: path,
			}
		}
		if b.cfg.SendProductAndImageURLs {
			item.ProductURL = product.URL
			item.ImageURL = product.ImageURL
		}
	}

	return item
}

// linePrice picks the gross line total under gross taxation when the
// platform computed one, the net total otherwise.
func (b *ProductLineBuilder) linePrice(li *checkout.ProductLine) decimal.Decimal {
	if li.GrossPrice.Available && !b.policy.Net() {
		return li.GrossPrice.Value
	}
	return li.NetPrice.Value
}

func (b *ProductLineBuilder) lineType(li *checkout.ProductLine) string {
	if li.Kind == checkout.LineKindOption {
		return klarna.LineTypeSurcharge
	}
	return klarna.LineTypePhysical
}

func (b *ProductLineBuilder) taxRate(li *checkout.ProductLine) int64 {
	if b.policy.Net() {
		return 0
	}
	return money.Rate(li.TaxRate)
}

func (b *ProductLineBuilder) taxAmount(li *checkout.ProductLine) int64 {
	if b.policy.Net() {
		return 0
	}
	return money.Minor(li.Tax.Value)
}

// lineReference is the product id, or parent_option_optionValue for option
// lines.
func lineReference(li *checkout.ProductLine) string {
	if li.Kind == checkout.LineKindOption {
		return li.ParentProductID + "_" + li.OptionID + "_" + li.OptionValueID
	}
	return li.ProductID
}
