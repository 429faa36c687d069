package klarna

// Order line types defined by the Klarna payments API.
const (
	LineTypePhysical    = "physical"
	LineTypeSurcharge   = "surcharge"
	LineTypeShippingFee = "shipping_fee"
	LineTypeSalesTax    = "sales_tax"
	LineTypeDiscount    = "discount"
	LineTypeGiftCard    = "gift_certificate_redemption"
)

// LineItem is one entry in a request's order_lines. Amounts are integer minor
// units; TaxRate is basis points x100 (20% -> 2000). TotalAmount carries the
// line's own sign, so discount and redemption lines are negative.
type LineItem struct {
	Type               string              `json:"type"`
	Reference          string              `json:"reference"`
	Name               string              `json:"name"`
	Quantity           int                 `json:"quantity"`
	UnitPrice          int64               `json:"unit_price"`
	TaxRate            int64               `json:"tax_rate"`
	TotalAmount        int64               `json:"total_amount"`
	TotalTaxAmount     int64               `json:"total_tax_amount"`
	MerchantData       string              `json:"merchant_data,omitempty"`
	ProductIdentifiers *ProductIdentifiers `json:"product_identifiers,omitempty"`
	ProductURL         string              `json:"product_url,omitempty"`
	ImageURL           string              `json:"image_url,omitempty"`
}

// ProductIdentifiers is attached to physical lines when brand or category
// data is available.
type ProductIdentifiers struct {
	Brand        string `json:"brand,omitempty"`
	CategoryPath string `json:"category_path,omitempty"`
}
