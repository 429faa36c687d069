// Package builder is the order/basket to Klarna request normalization
// engine. A RequestBuilder is constructed per invocation, validated once,
// run once through a fixed step pipeline, and discarded; the returned
// request is immutable.
package builder

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
	"github.com/commercekit/klarna-payments/internal/observability"
	"github.com/commercekit/klarna-payments/internal/pkg/money"
)

var (
	// ErrInvalidParams is returned when the aggregate is missing or the
	// locale carries neither a country nor a Klarna locale tag. The pipeline
	// never starts in that case.
	ErrInvalidParams = errors.New("builder: invalid build params")
	// ErrAlreadyBuilt is returned when a builder instance is asked to build
	// a second time.
	ErrAlreadyBuilt = errors.New("builder: request already built")
)

// Locale is the resolved store locale driving tax policy and address
// capture. At least one of Country or KlarnaLocale must be set.
type Locale struct {
	Country      string `validate:"required_without=KlarnaLocale"`
	KlarnaLocale string `validate:"required_without=Country"`
}

// Params is the input to one build.
type Params struct {
	Aggregate *checkout.Aggregate `validate:"required"`
	Locale    Locale
}

var paramsValidator = validator.New(validator.WithRequiredStructEnabled())

func validateParams(p Params) error {
	if err := paramsValidator.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	return nil
}

// RequestBuilder produces one canonical gateway request from one aggregate.
// Implementations are single-use: a second Build returns ErrAlreadyBuilt.
type RequestBuilder interface {
	Build(params Params) (*klarna.Request, error)
}

// phase tracks the assembler's position in the fixed build pipeline.
// Transitions are strictly sequential and terminal at phaseBuilt.
type phase int

const (
	phaseUnvalidated phase = iota
	phaseInitialized
	phaseLocale
	phaseBilling
	phaseShipping
	phaseLines
	phaseTotals
	phaseTax
	phaseCustomerInfo
	phaseOptions
	phaseMerchantInfo
	phaseBuilt
)

// step is one pipeline stage: a pure function from the previous request
// value to the next, advancing the assembler to the given phase.
type step struct {
	to   phase
	name string
	fn   func(klarna.Request) (klarna.Request, error)
}

// assembler holds the per-build context shared by the session and order
// builders: the read-only aggregate, the locale, the tax policy, and the
// line translators constructed for that policy. It must never be reused
// across two aggregates.
type assembler struct {
	cfg      Config
	taxRates checkout.TaxRates
	log      observability.Logger

	phase  phase
	agg    *checkout.Aggregate
	locale Locale
	policy money.Policy

	products         *ProductLineBuilder
	shipments        *ShipmentLineBuilder
	adjustments      *AdjustmentLineBuilder
	giftCertificates *GiftCertificateLineBuilder
	salesTax         *SalesTaxLineBuilder
	addresses        *AddressBuilder
	customerInfo     *CustomerInfoBuilder
}

func newAssembler(cfg Config, taxRates checkout.TaxRates, emd checkout.AttachmentProvider, log observability.Logger) assembler {
	if log == nil {
		log = observability.NopLogger()
	}
	return assembler{
		cfg:          cfg,
		taxRates:     taxRates,
		log:          log,
		customerInfo: NewCustomerInfoBuilder(emd, log),
		addresses:    NewAddressBuilder(),
	}
}

// begin validates the params and fixes the build context. It is the entry
// guard: on failure no pipeline step runs and no partial request exists.
func (a *assembler) begin(params Params) error {
	if a.phase == phaseBuilt {
		return ErrAlreadyBuilt
	}
	if err := validateParams(params); err != nil {
		return err
	}

	a.agg = params.Aggregate
	a.locale = params.Locale
	a.policy = money.PolicyFor(params.Locale.Country)

	a.products = NewProductLineBuilder(a.policy, a.cfg)
	a.shipments = NewShipmentLineBuilder(a.policy, a.taxRates)
	a.adjustments = NewAdjustmentLineBuilder(a.policy)
	a.giftCertificates = NewGiftCertificateLineBuilder()
	a.salesTax = NewSalesTaxLineBuilder()

	a.phase = phaseInitialized
	return nil
}

// run executes the step pipeline over an append-only request value and
// seals the assembler.
func (a *assembler) run(req klarna.Request, steps []step) (*klarna.Request, error) {
	for _, s := range steps {
		next, err := s.fn(req)
		if err != nil {
			return nil, fmt.Errorf("builder: %s: %w", s.name, err)
		}
		req = next
		a.phase = s.to
	}
	a.phase = phaseBuilt
	return &req, nil
}

// buildLocale fills the purchase country/currency/locale triple.
func (a *assembler) buildLocale(req klarna.Request) (klarna.Request, error) {
	req.PurchaseCountry = a.locale.Country
	req.PurchaseCurrency = a.agg.CurrencyCode
	req.Locale = a.locale.KlarnaLocale
	return req, nil
}

// merchantReference2 resolves the configurable secondary reference from the
// aggregate's custom attributes. A missing attribute is logged and defaults
// to an empty string; it never aborts the build.
func (a *assembler) merchantReference2() string {
	key := a.cfg.MerchantReference2Mapping
	if key == "" {
		return ""
	}
	value, ok := a.agg.Custom[key]
	if !ok {
		a.log.Warn("merchant_reference2_not_set",
			observability.F("mapping", key),
		)
		return ""
	}
	return value
}

// buildOrderLines emits product lines (gift certificates sold as products
// included), redemption lines, and shipment lines, each preceded by its own
// adjustment lines. The order is part of the gateway contract.
func (a *assembler) buildOrderLines(req klarna.Request) (klarna.Request, error) {
	req = a.appendProductLines(req, a.agg.ProductLines)
	req = a.appendProductLines(req, a.agg.GiftCertificateLines)

	for _, pi := range a.agg.GiftCertificatePayments {
		req.OrderLines = append(req.OrderLines, a.giftCertificates.Build(pi))
	}

	for i := range a.agg.Shipments {
		shipment := &a.agg.Shipments[i]
		if shipment.ShippingMethod == nil {
			continue
		}
		req = a.appendAdjustments(req, shipment.PriceAdjustments, "", "")
		req.OrderLines = append(req.OrderLines, a.shipments.Build(shipment))
	}

	return req, nil
}

func (a *assembler) appendProductLines(req klarna.Request, lines []checkout.ProductLine) klarna.Request {
	for i := range lines {
		li := &lines[i]

		if li.ShippingLine != nil {
			req = a.appendAdjustments(req, li.ShippingLine.PriceAdjustments, li.ProductID, "")
		}
		if len(li.PriceAdjustments) > 0 {
			req = a.appendAdjustments(req, li.PriceAdjustments, li.ProductID, li.OptionID)
		}

		req.OrderLines = append(req.OrderLines, a.products.Build(li))
	}
	return req
}

func (a *assembler) appendAdjustments(req klarna.Request, adjustments []checkout.PriceAdjustment, productID, optionID string) klarna.Request {
	for i := range adjustments {
		req.OrderLines = append(req.OrderLines, a.adjustments.Build(&adjustments[i], productID, optionID))
	}
	return req
}

// buildTotalAmount computes order_amount (redeemed gift certificates
// subtracted) and appends the order-level adjustment lines.
func (a *assembler) buildTotalAmount(req klarna.Request) (klarna.Request, error) {
	total := a.agg.Total()
	for _, pi := range a.agg.GiftCertificatePayments {
		total = total.Sub(pi.Amount)
	}
	req.OrderAmount = money.Minor(total)

	req = a.appendAdjustments(req, a.agg.PriceAdjustments, "", "")
	return req, nil
}

// buildTotalTax sets order_tax_amount and, under net taxation, appends the
// single synthetic sales-tax line.
func (a *assembler) buildTotalTax(req klarna.Request) (klarna.Request, error) {
	req.OrderTaxAmount = money.Minor(a.agg.TotalTax.Value)

	if a.policy.Net() {
		req.OrderLines = append(req.OrderLines, a.salesTax.Build(a.agg))
	}
	return req, nil
}

// buildCustomerInfo attaches the extra-merchant-data blob when enabled.
func (a *assembler) buildCustomerInfo(req klarna.Request) (klarna.Request, error) {
	if !a.cfg.AttachmentsEnabled {
		return req, nil
	}
	req.Attachment = a.customerInfo.Build(a.agg)
	return req, nil
}

// buildOptions copies the merchant styling block.
func (a *assembler) buildOptions(req klarna.Request) (klarna.Request, error) {
	req.Options = a.cfg.Options
	return req, nil
}
