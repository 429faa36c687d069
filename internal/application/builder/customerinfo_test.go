package builder

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
)

func TestCustomerInfo_HookTakesPrecedence(t *testing.T) {
	provider := &fakeEMDProvider{body: `{"custom":"emd"}`}
	b := NewCustomerInfoBuilder(provider, nil)

	att := b.Build(singleProductBasket())
	require.NotNil(t, att)
	assert.Equal(t, klarna.EMDContentType, att.ContentType)
	assert.JSONEq(t, `{"custom":"emd"}`, att.Body)
}

func TestCustomerInfo_HookFailureFallsBack(t *testing.T) {
	provider := &fakeEMDProvider{err: errors.New("boom")}
	b := NewCustomerInfoBuilder(provider, nil)

	att := b.Build(singleProductBasket())
	require.NotNil(t, att)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(att.Body), &body))
	assert.Contains(t, body, "customer_account_info")
	assert.Contains(t, body, "purchase_history_full")
}

func TestCustomerInfo_BuiltinBodyForRegisteredCustomer(t *testing.T) {
	created := time.Date(2021, 3, 14, 9, 26, 53, 0, time.UTC)
	lastOrder := time.Date(2026, 8, 2, 18, 0, 0, 0, time.UTC)

	agg := singleProductBasket()
	agg.Customer = &checkout.Customer{
		ID: "cust-42",
		Profile: &checkout.Profile{
			CustomerNo:   "C0042",
			CreationDate: created,
			LastModified: created.Add(48 * time.Hour),
		},
		ActiveData: &checkout.ActivityData{
			Orders:        7,
			OrderValue:    dec("312.50"),
			LastOrderDate: lastOrder,
		},
	}

	b := NewCustomerInfoBuilder(nil, nil)
	att := b.Build(agg)
	require.NotNil(t, att)

	var body struct {
		CustomerAccountInfo []struct {
			UniqueAccountIdentifier string `json:"unique_account_identifier"`
			AccountRegistrationDate string `json:"account_registration_date"`
		} `json:"customer_account_info"`
		PurchaseHistoryFull []struct {
			UniqueAccountIdentifier  string `json:"unique_account_identifier"`
			PaymentOption            string `json:"payment_option"`
			NumberPaidPurchases      int    `json:"number_paid_purchases"`
			TotalAmountPaidPurchases string `json:"total_amount_paid_purchases"`
			DateOfLastPaidPurchase   string `json:"date_of_last_paid_purchase"`
		} `json:"purchase_history_full"`
	}
	require.NoError(t, json.Unmarshal([]byte(att.Body), &body))

	require.Len(t, body.CustomerAccountInfo, 1)
	assert.Equal(t, "C0042", body.CustomerAccountInfo[0].UniqueAccountIdentifier)
	assert.Equal(t, "2021-03-14T09:26:53Z", body.CustomerAccountInfo[0].AccountRegistrationDate)

	require.Len(t, body.PurchaseHistoryFull, 1)
	history := body.PurchaseHistoryFull[0]
	assert.Equal(t, "cust-42", history.UniqueAccountIdentifier)
	assert.Equal(t, "other", history.PaymentOption)
	assert.Equal(t, 7, history.NumberPaidPurchases)
	assert.Equal(t, "312.5", history.TotalAmountPaidPurchases)
	assert.Equal(t, "2026-08-02T18:00:00Z", history.DateOfLastPaidPurchase)
}

func TestCustomerInfo_GuestBodyOmitsAccountDates(t *testing.T) {
	b := NewCustomerInfoBuilder(nil, nil)
	att := b.Build(singleProductBasket())
	require.NotNil(t, att)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(att.Body), &body))
	accounts := body["customer_account_info"].([]any)
	require.Len(t, accounts, 1)
	assert.NotContains(t, accounts[0].(map[string]any), "account_registration_date")
}
