package klarna

// Address is the billing/shipping address shape of the Klarna request schema.
// Optional request fields hold a *Address so an unresolvable address is
// omitted from the JSON payload entirely rather than sent as null.
type Address struct {
	Title          string `json:"title,omitempty"`
	GivenName      string `json:"given_name,omitempty"`
	FamilyName     string `json:"family_name,omitempty"`
	Email          string `json:"email,omitempty"`
	Phone          string `json:"phone,omitempty"`
	StreetAddress  string `json:"street_address,omitempty"`
	StreetAddress2 string `json:"street_address2,omitempty"`
	PostalCode     string `json:"postal_code,omitempty"`
	City           string `json:"city,omitempty"`
	Region         string `json:"region,omitempty"`
	Country        string `json:"country,omitempty"`
}
