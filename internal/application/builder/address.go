package builder

import (
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
)

// AddressBuilder maps platform addresses and customer profiles into the
// canonical address shape.
//
// Resolution order: without an identifiable registered customer the first
// shipment's shipping address is used verbatim; with one, name/phone/email
// come from the profile and street/city/region/postal/country from the
// customer's preferred stored address.
type AddressBuilder struct{}

func NewAddressBuilder() *AddressBuilder {
	return &AddressBuilder{}
}

// BuildBilling resolves the billing address. It is never nil: a guest
// without any shipping address still yields an address carrying the
// aggregate's customer email.
func (b *AddressBuilder) BuildBilling(agg *checkout.Aggregate) *klarna.Address {
	addr := &klarna.Address{Email: agg.CustomerEmail}

	if !agg.RegisteredCustomer() {
		if shipping := agg.FirstShippingAddress(); shipping != nil {
			fromShippingAddress(addr, agg, shipping)
		}
		return addr
	}

	profile := agg.Customer.Profile
	addr.Email = profile.Email
	addr.Phone = profile.PhoneMobile
	addr.GivenName = profile.FirstName
	addr.FamilyName = profile.LastName
	if addr.Email == "" {
		addr.Email = agg.CustomerEmail
	}

	fromPreferredAddress(addr, agg.Customer)
	return addr
}

// BuildShipping resolves the shipping address. It returns nil when a guest
// aggregate has no shipping address at all; the request field is then
// omitted entirely. For registered customers the email is intentionally left
// empty.
func (b *AddressBuilder) BuildShipping(agg *checkout.Aggregate) *klarna.Address {
	if !agg.RegisteredCustomer() {
		shipping := agg.FirstShippingAddress()
		if shipping == nil {
			return nil
		}
		addr := &klarna.Address{Email: agg.CustomerEmail}
		fromShippingAddress(addr, agg, shipping)
		return addr
	}

	profile := agg.Customer.Profile
	addr := &klarna.Address{
		Phone:      profile.PhoneMobile,
		GivenName:  profile.FirstName,
		FamilyName: profile.LastName,
	}
	fromPreferredAddress(addr, agg.Customer)
	return addr
}

// fromShippingAddress copies a shipment address verbatim, email from the
// aggregate.
func fromShippingAddress(dst *klarna.Address, agg *checkout.Aggregate, src *checkout.Address) {
	dst.GivenName = src.FirstName
	dst.FamilyName = src.LastName
	dst.Email = agg.CustomerEmail
	dst.Title = src.Title
	dst.StreetAddress = src.Address1
	dst.StreetAddress2 = src.Address2
	dst.PostalCode = src.PostalCode
	dst.City = src.City
	dst.Region = src.StateCode
	dst.Phone = src.Phone
	dst.Country = src.CountryCode
}

// fromPreferredAddress copies only the location fields from the customer's
// preferred stored address; name, phone, and email stay with the profile
// values already set. A customer without a stored address keeps the
// profile-only fields.
func fromPreferredAddress(dst *klarna.Address, customer *checkout.Customer) {
	preferred := customer.PreferredAddress
	if preferred == nil {
		return
	}
	dst.StreetAddress = preferred.Address1
	dst.StreetAddress2 = preferred.Address2
	dst.PostalCode = preferred.PostalCode
	dst.City = preferred.City
	dst.Region = preferred.StateCode
	dst.Country = preferred.CountryCode
}
