package checkout

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer identifies the aggregate's customer. A guest checkout has either a
// nil Customer or one without a Profile.
type Customer struct {
	ID               string
	Profile          *Profile
	PreferredAddress *Address
	ActiveData       *ActivityData
}

// Profile is the registered customer's stored profile.
type Profile struct {
	CustomerNo   string
	FirstName    string
	LastName     string
	Email        string
	PhoneMobile  string
	CreationDate time.Time
	LastModified time.Time
}

// ActivityData summarizes the customer's purchase history for the
// extra-merchant-data attachment.
type ActivityData struct {
	Orders        int
	OrderValue    decimal.Decimal
	LastOrderDate time.Time
}

// Address is a platform address, used both for shipment addresses and the
// customer's stored address book entries.
type Address struct {
	Title       string
	FirstName   string
	LastName    string
	Address1    string
	Address2    string
	City        string
	PostalCode  string
	StateCode   string
	CountryCode string
	Phone       string
}
