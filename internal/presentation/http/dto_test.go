package httppresentation

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
)

func decodeBasket(t *testing.T, raw string) basketPayload {
	t.Helper()
	var payload basketPayload
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestBasketPayload_ToAggregate(t *testing.T) {
	payload := decodeBasket(t, `{
		"order_no": "00001234",
		"currency": "GBP",
		"customer_email": "jane@example.com",
		"customer": {
			"id": "cust-1",
			"profile": {"customer_no": "C-1", "first_name": "Jane", "last_name": "Doe", "email": "jane@example.com"},
			"active_data": {"orders": 4, "order_value": "312.50"}
		},
		"product_lines": [
			{
				"product_id": "SKU-1",
				"product_name": "Jumper",
				"quantity": 2,
				"gross_price": "40.00",
				"net_price": "33.33",
				"tax": "6.67",
				"tax_rate": "0.2",
				"product": {
					"id": "SKU-1",
					"brand": "Acme",
					"primary_category": {
						"id": "jumpers",
						"display_name": "Jumpers",
						"online": true,
						"parent": {"id": "root", "display_name": "Storefront", "online": true}
					}
				}
			},
			{
				"kind": "option",
				"product_id": "SKU-1",
				"product_name": "Gift wrap",
				"quantity": 2,
				"option_id": "wrapping",
				"option_value_id": "premium",
				"gross_price": "5.00"
			}
		],
		"gift_certificate_payments": [
			{"masked_code": "****9999", "amount": "10.00"}
		],
		"shipments": [
			{
				"id": "me",
				"shipping_method": {"id": "GROUND", "display_name": "Ground", "tax_class_id": "standard"},
				"shipping_address": {"first_name": "Jane", "country_code": "GB"},
				"total_gross_price": "4.99"
			}
		],
		"price_adjustments": [
			{"promotion_id": "CARTWIDE", "gross_price": "-5.00"}
		],
		"total_gross_price": "84.99",
		"custom": {"loyaltyID": "L-77"}
	}`)

	agg, err := payload.toAggregate(checkout.KindBasket)
	require.NoError(t, err)

	assert.Equal(t, checkout.KindBasket, agg.Kind)
	assert.Equal(t, "00001234", agg.OrderNo)
	assert.Equal(t, "GBP", agg.CurrencyCode)
	assert.Equal(t, "jane@example.com", agg.CustomerEmail)
	assert.Equal(t, "L-77", agg.Custom["loyaltyID"])

	require.NotNil(t, agg.Customer)
	require.NotNil(t, agg.Customer.Profile)
	assert.Equal(t, "C-1", agg.Customer.Profile.CustomerNo)
	require.NotNil(t, agg.Customer.ActiveData)
	assert.Equal(t, 4, agg.Customer.ActiveData.Orders)
	assert.True(t, agg.Customer.ActiveData.OrderValue.Equal(decimal.RequireFromString("312.5")))

	require.Len(t, agg.ProductLines, 2)
	product := agg.ProductLines[0]
	assert.Equal(t, checkout.LineKindProduct, product.Kind)
	assert.True(t, product.GrossPrice.Available)
	assert.True(t, product.GrossPrice.Value.Equal(decimal.RequireFromString("40")))
	assert.True(t, product.TaxRate.Equal(decimal.RequireFromString("0.2")))
	require.NotNil(t, product.Product)
	assert.Equal(t, "Acme", product.Product.Brand)
	require.NotNil(t, product.Product.PrimaryCategory.Parent)
	assert.Equal(t, "root", product.Product.PrimaryCategory.Parent.ID)

	option := agg.ProductLines[1]
	assert.Equal(t, checkout.LineKindOption, option.Kind)
	assert.Equal(t, "wrapping", option.OptionID)
	assert.False(t, option.Tax.Available, "absent tax maps to an unavailable price")

	require.Len(t, agg.GiftCertificatePayments, 1)
	assert.True(t, agg.GiftCertificatePayments[0].Amount.Equal(decimal.RequireFromString("10")))

	require.Len(t, agg.Shipments, 1)
	require.NotNil(t, agg.Shipments[0].ShippingMethod)
	assert.Equal(t, "standard", agg.Shipments[0].ShippingMethod.TaxClassID)
	assert.True(t, agg.Shipments[0].TotalGrossPrice.Available)
	assert.False(t, agg.Shipments[0].TotalTax.Available)

	require.Len(t, agg.PriceAdjustments, 1)
	assert.True(t, agg.PriceAdjustments[0].GrossPrice.Value.IsNegative())

	assert.True(t, agg.TotalGrossPrice.Available)
	assert.False(t, agg.TotalNetPrice.Available)
}

func TestBasketPayload_ToAggregate_GiftCertificateDefaultKind(t *testing.T) {
	payload := decodeBasket(t, `{
		"currency": "GBP",
		"customer_email": "jane@example.com",
		"product_lines": [],
		"gift_certificate_lines": [
			{"product_id": "GC-1", "product_name": "Gift Certificate", "quantity": 1, "gross_price": "25.00"}
		]
	}`)

	agg, err := payload.toAggregate(checkout.KindBasket)
	require.NoError(t, err)
	require.Len(t, agg.GiftCertificateLines, 1)
	assert.Equal(t, checkout.LineKindGiftCertificate, agg.GiftCertificateLines[0].Kind)
}

func TestBasketPayload_ToAggregate_Errors(t *testing.T) {
	t.Run("unknown line kind", func(t *testing.T) {
		payload := decodeBasket(t, `{
			"currency": "GBP",
			"product_lines": [{"kind": "bundle", "product_id": "SKU-1", "product_name": "x", "quantity": 1}]
		}`)
		_, err := payload.toAggregate(checkout.KindBasket)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `unknown line kind "bundle"`)
	})

	t.Run("malformed decimal names the field", func(t *testing.T) {
		payload := decodeBasket(t, `{
			"currency": "GBP",
			"product_lines": [{"product_id": "SKU-1", "product_name": "x", "quantity": 1, "gross_price": "forty"}],
			"total_gross_price": "84.99"
		}`)
		_, err := payload.toAggregate(checkout.KindBasket)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "decode: gross_price")
	})
}
