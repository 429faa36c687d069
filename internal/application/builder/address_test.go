package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
)

func guestAggregate(withShipping bool) *checkout.Aggregate {
	agg := singleProductBasket()
	if withShipping {
		agg.Shipments = []checkout.Shipment{
			{
				ShippingAddress: &checkout.Address{
					Title:       "Ms",
					FirstName:   "Joan",
					LastName:    "Clarke",
					Address1:    "1 King's Parade",
					Address2:    "Flat 2",
					City:        "Cambridge",
					PostalCode:  "CB2 1SJ",
					StateCode:   "",
					CountryCode: "GB",
					Phone:       "+441223123456",
				},
			},
		}
	}
	return agg
}

func registeredAggregate() *checkout.Aggregate {
	agg := guestAggregate(true)
	agg.Customer = &checkout.Customer{
		ID: "cust-1",
		Profile: &checkout.Profile{
			CustomerNo:  "C0001",
			FirstName:   "Grace",
			LastName:    "Hopper",
			Email:       "grace@example.com",
			PhoneMobile: "+15550100",
		},
		PreferredAddress: &checkout.Address{
			FirstName:   "Someone",   // ignored: profile name wins
			Phone:       "+15559999", // ignored: profile phone wins
			Address1:    "3801 Nebraska Ave NW",
			City:        "Washington",
			PostalCode:  "20016",
			StateCode:   "DC",
			CountryCode: "US",
		},
	}
	return agg
}

func TestBuildBilling_GuestUsesShipmentAddressVerbatim(t *testing.T) {
	b := NewAddressBuilder()
	addr := b.BuildBilling(guestAggregate(true))

	require.NotNil(t, addr)
	assert.Equal(t, "Joan", addr.GivenName)
	assert.Equal(t, "Clarke", addr.FamilyName)
	assert.Equal(t, "Ms", addr.Title)
	assert.Equal(t, "1 King's Parade", addr.StreetAddress)
	assert.Equal(t, "Flat 2", addr.StreetAddress2)
	assert.Equal(t, "Cambridge", addr.City)
	assert.Equal(t, "CB2 1SJ", addr.PostalCode)
	assert.Equal(t, "GB", addr.Country)
	assert.Equal(t, "+441223123456", addr.Phone)
	assert.Equal(t, "shopper@example.com", addr.Email)
}

func TestBuildBilling_GuestWithoutShippingKeepsEmailOnly(t *testing.T) {
	b := NewAddressBuilder()
	addr := b.BuildBilling(guestAggregate(false))

	require.NotNil(t, addr)
	assert.Equal(t, "shopper@example.com", addr.Email)
	assert.Empty(t, addr.GivenName)
	assert.Empty(t, addr.StreetAddress)
}

func TestBuildBilling_RegisteredMergesProfileAndStoredAddress(t *testing.T) {
	b := NewAddressBuilder()
	addr := b.BuildBilling(registeredAggregate())

	require.NotNil(t, addr)
	// identity from the profile
	assert.Equal(t, "Grace", addr.GivenName)
	assert.Equal(t, "Hopper", addr.FamilyName)
	assert.Equal(t, "grace@example.com", addr.Email)
	assert.Equal(t, "+15550100", addr.Phone)
	// location from the preferred stored address
	assert.Equal(t, "3801 Nebraska Ave NW", addr.StreetAddress)
	assert.Equal(t, "Washington", addr.City)
	assert.Equal(t, "DC", addr.Region)
	assert.Equal(t, "US", addr.Country)
}

func TestBuildBilling_RegisteredEmailFallsBackToAggregate(t *testing.T) {
	agg := registeredAggregate()
	agg.Customer.Profile.Email = ""

	b := NewAddressBuilder()
	addr := b.BuildBilling(agg)

	require.NotNil(t, addr)
	assert.Equal(t, "shopper@example.com", addr.Email)
}

func TestBuildBilling_RegisteredWithoutStoredAddress(t *testing.T) {
	agg := registeredAggregate()
	agg.Customer.PreferredAddress = nil

	b := NewAddressBuilder()
	addr := b.BuildBilling(agg)

	require.NotNil(t, addr)
	assert.Equal(t, "Grace", addr.GivenName)
	assert.Empty(t, addr.StreetAddress)
	assert.Empty(t, addr.Country)
}

func TestBuildShipping_GuestWithoutShippingIsNil(t *testing.T) {
	b := NewAddressBuilder()
	assert.Nil(t, b.BuildShipping(guestAggregate(false)))
}

func TestBuildShipping_GuestUsesShipmentAddress(t *testing.T) {
	b := NewAddressBuilder()
	addr := b.BuildShipping(guestAggregate(true))

	require.NotNil(t, addr)
	assert.Equal(t, "Joan", addr.GivenName)
	assert.Equal(t, "Cambridge", addr.City)
	assert.Equal(t, "shopper@example.com", addr.Email)
}

func TestBuildShipping_RegisteredOmitsEmail(t *testing.T) {
	b := NewAddressBuilder()
	addr := b.BuildShipping(registeredAggregate())

	require.NotNil(t, addr)
	assert.Empty(t, addr.Email)
	assert.Equal(t, "Grace", addr.GivenName)
	assert.Equal(t, "+15550100", addr.Phone)
	assert.Equal(t, "Washington", addr.City)
}
