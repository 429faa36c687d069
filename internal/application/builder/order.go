package builder

import (
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/observability"
)

// OrderRequestBuilder assembles the create-order request that captures the
// final transaction after authorization. Unlike the session variant it
// always resolves addresses and additionally carries the merchant order
// reference and callback URLs.
type OrderRequestBuilder struct {
	assembler
}

func NewOrderRequestBuilder(cfg Config, taxRates checkout.TaxRates, emd checkout.AttachmentProvider, log observability.Logger) *OrderRequestBuilder {
	return &OrderRequestBuilder{
		assembler: newAssembler(cfg, taxRates, emd, log),
	}
}

// Build runs the order pipeline once. The builder is single-use.
func (b *OrderRequestBuilder) Build(params Params) (*klarna.Request, error) {
	if err := b.begin(params); err != nil {
		return nil, err
	}

	req := klarna.Request{
		MerchantReference1: b.agg.OrderNo,
		MerchantReference2: b.merchantReference2(),
		OrderLines:         []klarna.LineItem{},
	}

	steps := []step{
		{to: phaseLocale, name: "locale", fn: b.buildLocale},
		{to: phaseBilling, name: "billing_address", fn: b.buildBilling},
		{to: phaseShipping, name: "shipping_address", fn: b.buildShipping},
		{to: phaseLines, name: "order_lines", fn: b.buildOrderLines},
		{to: phaseTotals, name: "total_amount", fn: b.buildTotalAmount},
		{to: phaseTax, name: "total_tax", fn: b.buildTotalTax},
		{to: phaseCustomerInfo, name: "customer_info", fn: b.buildCustomerInfo},
		{to: phaseOptions, name: "options", fn: b.buildOptions},
		{to: phaseMerchantInfo, name: "merchant_urls", fn: b.buildMerchantURLs},
	}

	return b.run(req, steps)
}

func (b *OrderRequestBuilder) buildBilling(req klarna.Request) (klarna.Request, error) {
	req.BillingAddress = b.addresses.BuildBilling(b.agg)
	return req, nil
}

func (b *OrderRequestBuilder) buildShipping(req klarna.Request) (klarna.Request, error) {
	req.ShippingAddress = b.addresses.BuildShipping(b.agg)
	return req, nil
}

func (b *OrderRequestBuilder) buildMerchantURLs(req klarna.Request) (klarna.Request, error) {
	req.MerchantURLs = &klarna.MerchantURLs{
		Confirmation: merchantURL(b.cfg.ConfirmationURL, b.locale.Country),
		Notification: merchantURL(b.cfg.NotificationURL, b.locale.Country),
	}
	return req, nil
}
