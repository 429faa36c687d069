package builder

import (
	"encoding/json"
	"time"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/observability"
)

// emdTimeLayout is the gateway's timestamp format: RFC 3339 at seconds
// precision with a literal Z suffix.
const emdTimeLayout = "2006-01-02T15:04:05Z"

// CustomerInfoBuilder assembles the extra-merchant-data attachment. A
// merchant-supplied hook takes precedence; hook failures are logged and fall
// back to the built-in body, never aborting the build.
type CustomerInfoBuilder struct {
	provider checkout.AttachmentProvider
	log      observability.Logger
}

func NewCustomerInfoBuilder(provider checkout.AttachmentProvider, log observability.Logger) *CustomerInfoBuilder {
	if log == nil {
		log = observability.NopLogger()
	}
	return &CustomerInfoBuilder{provider: provider, log: log}
}

func (b *CustomerInfoBuilder) Build(agg *checkout.Aggregate) *klarna.Attachment {
	if b.provider != nil {
		body, err := b.provider.BuildEMD(agg)
		if err == nil {
			return &klarna.Attachment{ContentType: klarna.EMDContentType, Body: body}
		}
		b.log.Warn("emd_hook_failed",
			observability.F("error", err.Error()),
		)
	}

	return &klarna.Attachment{
		ContentType: klarna.EMDContentType,
		Body:        builtinEMDBody(agg),
	}
}

type emdBody struct {
	CustomerAccountInfo []emdAccountInfo     `json:"customer_account_info"`
	PurchaseHistoryFull []emdPurchaseHistory `json:"purchase_history_full"`
}

type emdAccountInfo struct {
	UniqueAccountIdentifier string `json:"unique_account_identifier,omitempty"`
	AccountRegistrationDate string `json:"account_registration_date,omitempty"`
	AccountLastModified     string `json:"account_last_modified,omitempty"`
}

type emdPurchaseHistory struct {
	UniqueAccountIdentifier  string `json:"unique_account_identifier,omitempty"`
	PaymentOption            string `json:"payment_option"`
	NumberPaidPurchases      int    `json:"number_paid_purchases"`
	TotalAmountPaidPurchases string `json:"total_amount_paid_purchases"`
	DateOfLastPaidPurchase   string `json:"date_of_last_paid_purchase,omitempty"`
	DateOfFirstPaidPurchase  string `json:"date_of_first_paid_purchase,omitempty"`
}

// builtinEMDBody serializes account registration data and the customer's
// paid purchase history from the aggregate.
func builtinEMDBody(agg *checkout.Aggregate) string {
	account := emdAccountInfo{}
	history := emdPurchaseHistory{PaymentOption: "other", TotalAmountPaidPurchases: "0"}

	if customer := agg.Customer; customer != nil {
		history.UniqueAccountIdentifier = customer.ID

		if profile := customer.Profile; profile != nil {
			account.UniqueAccountIdentifier = profile.CustomerNo
			account.AccountRegistrationDate = emdTime(profile.CreationDate)
			account.AccountLastModified = emdTime(profile.LastModified)
		}
		if active := customer.ActiveData; active != nil {
			history.NumberPaidPurchases = active.Orders
			history.TotalAmountPaidPurchases = active.OrderValue.String()
			history.DateOfLastPaidPurchase = emdTime(active.LastOrderDate)
		}
	}

	body, err := json.Marshal(emdBody{
		CustomerAccountInfo: []emdAccountInfo{account},
		PurchaseHistoryFull: []emdPurchaseHistory{history},
	})
	if err != nil {
		return ""
	}
	return string(body)
}

func emdTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(emdTimeLayout)
}
