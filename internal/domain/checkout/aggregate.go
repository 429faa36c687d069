// Package checkout models the input aggregate handed to the request engine:
// a basket (pre-checkout) or a finalized order (post-checkout), fully priced
// and taxed by the platform's pricing pipeline. The engine treats the
// aggregate as read-only; nothing in this package mutates it.
package checkout

import "github.com/shopspring/decimal"

// Kind distinguishes the two aggregate variants.
type Kind string

const (
	KindBasket Kind = "basket"
	KindOrder  Kind = "order"
)

// Price is a major-unit decimal amount plus the platform's availability flag.
// An unavailable price means the pricing pipeline could not compute the value
// (for example gross totals in a net-taxation jurisdiction).
type Price struct {
	Value     decimal.Decimal
	Available bool
}

// PriceOf wraps an available decimal value.
func PriceOf(v decimal.Decimal) Price {
	return Price{Value: v, Available: true}
}

// PriceFromString wraps an available value parsed from s. It panics on an
// unparsable string and is intended for fixtures and tests.
func PriceFromString(s string) Price {
	return PriceOf(decimal.RequireFromString(s))
}

// Aggregate is the read-only input to a request build: either a basket or an
// order, with every collection in platform order.
type Aggregate struct {
	Kind          Kind
	OrderNo       string // set on orders only
	CurrencyCode  string
	CustomerEmail string
	Customer      *Customer

	ProductLines            []ProductLine
	GiftCertificateLines    []ProductLine // gift certificates sold as products
	GiftCertificatePayments []GiftCertificatePayment
	Shipments               []Shipment
	PriceAdjustments        []PriceAdjustment // order-level adjustments

	TotalGrossPrice Price
	TotalNetPrice   Price
	TotalTax        Price

	// Custom holds platform custom attributes; the configurable
	// merchant_reference2 mapping resolves against it.
	Custom map[string]string
}

// Total returns the gross total when available, otherwise the net total.
func (a *Aggregate) Total() decimal.Decimal {
	if a.TotalGrossPrice.Available {
		return a.TotalGrossPrice.Value
	}
	return a.TotalNetPrice.Value
}

// RegisteredCustomer reports whether the aggregate belongs to an identifiable
// registered customer with a profile.
func (a *Aggregate) RegisteredCustomer() bool {
	return a.Customer != nil && a.Customer.Profile != nil
}

// FirstShippingAddress returns the shipping address of the first shipment, or
// nil when no shipment carries one.
func (a *Aggregate) FirstShippingAddress() *Address {
	if len(a.Shipments) == 0 {
		return nil
	}
	return a.Shipments[0].ShippingAddress
}
