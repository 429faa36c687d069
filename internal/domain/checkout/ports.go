package checkout

import "github.com/shopspring/decimal"

// TaxRates is the jurisdiction tax-rate lookup consumed by the shipment
// translator under gross taxation. Implementations are synchronous lookups
// over already-resolved data; the engine performs no I/O.
type TaxRates interface {
	// JurisdictionID resolves the tax jurisdiction for a shipping address.
	JurisdictionID(addr *Address) string
	// Rate returns the fractional tax rate for a tax class in a jurisdiction
	// (0.2 for 20%).
	Rate(taxClassID, jurisdictionID string) (decimal.Decimal, bool)
}

// AttachmentProvider is the merchant extension hook supplying the
// extra-merchant-data attachment body. A nil provider or an error falls back
// to the engine's built-in EMD body.
type AttachmentProvider interface {
	BuildEMD(agg *Aggregate) (string, error)
}
