package builder

import (
	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/observability"
)

// SessionRequestBuilder assembles the create/update-session request used for
// pre-checkout cost estimation. Billing and shipping addresses are included
// only for preassessment jurisdictions.
type SessionRequestBuilder struct {
	assembler
}

func NewSessionRequestBuilder(cfg Config, taxRates checkout.TaxRates, emd checkout.AttachmentProvider, log observability.Logger) *SessionRequestBuilder {
	return &SessionRequestBuilder{
		assembler: newAssembler(cfg, taxRates, emd, log),
	}
}

// Build runs the session pipeline once. The builder is single-use.
func (b *SessionRequestBuilder) Build(params Params) (*klarna.Request, error) {
	if err := b.begin(params); err != nil {
		return nil, err
	}

	req := klarna.Request{
		MerchantReference2: b.merchantReference2(),
		OrderLines:         []klarna.LineItem{},
	}

	steps := []step{
		{to: phaseLocale, name: "locale", fn: b.buildLocale},
	}
	if b.cfg.PreassessmentRequired(b.locale.Country) {
		steps = append(steps,
			step{to: phaseBilling, name: "billing_address", fn: b.buildBilling},
			step{to: phaseShipping, name: "shipping_address", fn: b.buildShipping},
		)
	}
	steps = append(steps,
		step{to: phaseLines, name: "order_lines", fn: b.buildOrderLines},
		step{to: phaseTotals, name: "total_amount", fn: b.buildTotalAmount},
		step{to: phaseTax, name: "total_tax", fn: b.buildTotalTax},
		step{to: phaseCustomerInfo, name: "customer_info", fn: b.buildCustomerInfo},
		step{to: phaseOptions, name: "options", fn: b.buildOptions},
	)

	return b.run(req, steps)
}

func (b *SessionRequestBuilder) buildBilling(req klarna.Request) (klarna.Request, error) {
	req.BillingAddress = b.addresses.BuildBilling(b.agg)
	return req, nil
}

func (b *SessionRequestBuilder) buildShipping(req klarna.Request) (klarna.Request, error) {
	req.ShippingAddress = b.addresses.BuildShipping(b.agg)
	return req, nil
}
