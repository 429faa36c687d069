package builder

import (
	"github.com/shopspring/decimal"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeTaxRates maps tax classes to flat rates ignoring the jurisdiction, and
// records the jurisdiction it resolved.
type fakeTaxRates struct {
	rates        map[string]string
	jurisdiction string
}

func (f *fakeTaxRates) JurisdictionID(_ *checkout.Address) string {
	if f.jurisdiction == "" {
		return "JURIS-1"
	}
	return f.jurisdiction
}

func (f *fakeTaxRates) Rate(taxClassID, _ string) (decimal.Decimal, bool) {
	s, ok := f.rates[taxClassID]
	if !ok {
		return decimal.Zero, false
	}
	return dec(s), true
}

type fakeEMDProvider struct {
	body string
	err  error
}

func (f *fakeEMDProvider) BuildEMD(_ *checkout.Aggregate) (string, error) {
	return f.body, f.err
}

// singleProductBasket is the smallest consistent aggregate: one product line
// priced by the platform, totals matching the line.
func singleProductBasket() *checkout.Aggregate {
	return &checkout.Aggregate{
		Kind:          checkout.KindBasket,
		CurrencyCode:  "GBP",
		CustomerEmail: "shopper@example.com",
		ProductLines: []checkout.ProductLine{
			{
				Kind:        checkout.LineKindProduct,
				ProductID:   "SKU-100",
				ProductName: "Wool Jumper",
				Quantity:    2,
				GrossPrice:  checkout.PriceFromString("40.00"),
				NetPrice:    checkout.PriceFromString("33.33"),
				Tax:         checkout.PriceFromString("6.67"),
				TaxRate:     dec("0.2"),
			},
		},
		TotalGrossPrice: checkout.PriceFromString("40.00"),
		TotalNetPrice:   checkout.PriceFromString("33.33"),
		TotalTax:        checkout.PriceFromString("6.67"),
	}
}

func gbLocale() Locale { return Locale{Country: "GB", KlarnaLocale: "en-GB"} }
func usLocale() Locale { return Locale{Country: "US", KlarnaLocale: "en-US"} }
