package builder

import (
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/pkg/money"
)

const salesTaxName = "Sales Tax"

// SalesTaxLineBuilder produces the single synthetic sales-tax line appended
// under net taxation. The line reports the aggregate's total tax as its
// amount and, like every net-policy line, a zero tax rate.
type SalesTaxLineBuilder struct{}

func NewSalesTaxLineBuilder() *SalesTaxLineBuilder {
	return &SalesTaxLineBuilder{}
}

func (b *SalesTaxLineBuilder) Build(agg *checkout.Aggregate) klarna.LineItem {
	var amount int64
	if agg.TotalTax.Available {
		amount = money.Minor(agg.TotalTax.Value)
	}

	return klarna.LineItem{
		Type:           klarna.LineTypeSalesTax,
		Reference:      salesTaxName,
		Name:           salesTaxName,
		Quantity:       1,
		UnitPrice:      amount,
		TaxRate:        0,
		TotalAmount:    amount,
		TotalTaxAmount: 0,
	}
}
