// Package klarna models the request payloads of the Klarna payments API:
// the create-session request used for pre-checkout cost estimation and the
// create-order request used to capture the final transaction. Both share one
// shape; the order variant additionally carries merchant references and
// merchant-facing callback URLs.
package klarna

// EMDContentType is the content type of the extra-merchant-data attachment.
const EMDContentType = "application/vnd.klarna.internal.emd-v2+json"

// Request is the canonical gateway request. It is immutable once returned by
// a request builder; callers serialize it and hand it to the transport layer.
type Request struct {
	PurchaseCountry    string        `json:"purchase_country"`
	PurchaseCurrency   string        `json:"purchase_currency"`
	Locale             string        `json:"locale"`
	MerchantReference1 string        `json:"merchant_reference1,omitempty"`
	MerchantReference2 string        `json:"merchant_reference2"`
	BillingAddress     *Address      `json:"billing_address,omitempty"`
	ShippingAddress    *Address      `json:"shipping_address,omitempty"`
	OrderAmount        int64         `json:"order_amount"`
	OrderTaxAmount     int64         `json:"order_tax_amount"`
	OrderLines         []LineItem    `json:"order_lines"`
	Options            Options       `json:"options"`
	Attachment         *Attachment   `json:"attachment,omitempty"`
	MerchantURLs       *MerchantURLs `json:"merchant_urls,omitempty"`
}

// Options carries the merchant's widget styling preferences.
type Options struct {
	ColorDetails           string `json:"color_details,omitempty"`
	ColorButton            string `json:"color_button,omitempty"`
	ColorButtonText        string `json:"color_button_text,omitempty"`
	ColorCheckbox          string `json:"color_checkbox,omitempty"`
	ColorCheckboxCheckmark string `json:"color_checkbox_checkmark,omitempty"`
	ColorHeader            string `json:"color_header,omitempty"`
	ColorLink              string `json:"color_link,omitempty"`
	ColorBorder            string `json:"color_border,omitempty"`
	ColorBorderSelected    string `json:"color_border_selected,omitempty"`
	ColorText              string `json:"color_text,omitempty"`
	ColorTextSecondary     string `json:"color_text_secondary,omitempty"`
	RadiusBorder           string `json:"radius_border,omitempty"`
}

// Attachment carries the extra-merchant-data blob when the feature is enabled.
type Attachment struct {
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// MerchantURLs are the merchant-facing callback URLs sent with order requests.
type MerchantURLs struct {
	Confirmation string `json:"confirmation"`
	Notification string `json:"notification"`
}
