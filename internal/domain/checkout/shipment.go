package checkout

// Shipment is one delivery of the aggregate. A shipment without an assigned
// shipping method yields no shipping-fee line.
type Shipment struct {
	ID              string
	ShippingMethod  *ShippingMethod
	ShippingAddress *Address

	TotalGrossPrice Price
	TotalNetPrice   Price
	TotalTax        Price

	PriceAdjustments []PriceAdjustment // shipping promotions
}

// ShippingMethod describes the method assigned to a shipment.
type ShippingMethod struct {
	ID          string
	DisplayName string
	TaxClassID  string
}
