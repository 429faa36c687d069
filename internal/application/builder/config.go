package builder

import (
	"net/url"

	"github.com/commercekit/klarna-payments/internal/domain/klarna"
)

// Config collects every merchant preference the engine reads. It is injected
// once at builder construction and never re-queried mid-pipeline, so one
// build stays deterministic even if configuration changes externally.
type Config struct {
	// MerchantReference2Mapping names the aggregate custom attribute whose
	// value is sent as merchant_reference2. Empty disables the mapping.
	MerchantReference2Mapping string

	// AttachmentsEnabled turns on the extra-merchant-data attachment.
	AttachmentsEnabled bool

	// SendProductAndImageURLs adds product_url/image_url to physical lines.
	SendProductAndImageURLs bool

	// PreassessmentCountries lists jurisdictions where Klarna requires full
	// billing/shipping data at session-creation time.
	PreassessmentCountries []string

	// ConfirmationURL and NotificationURL are the merchant callback
	// endpoints sent with order requests; the purchase country is appended
	// as the klarna_country query parameter.
	ConfirmationURL string
	NotificationURL string

	// Options is the widget styling block copied verbatim into requests.
	Options klarna.Options
}

// PreassessmentRequired reports whether the country needs address capture
// before authorization.
func (c Config) PreassessmentRequired(country string) bool {
	for _, cc := range c.PreassessmentCountries {
		if cc == country {
			return true
		}
	}
	return false
}

// merchantURL appends the klarna_country parameter to a callback base URL.
// A malformed base is passed through untouched.
func merchantURL(base, country string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	q := u.Query()
	q.Set("klarna_country", country)
	u.RawQuery = q.Encode()
	return u.String()
}
