package httppresentation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/commercekit/klarna-payments/internal/domain/checkout"
)

// basketPayload is the platform-facing JSON shape of a basket or order.
// Prices are decimal strings; a missing field maps to an unavailable price.
type basketPayload struct {
	OrderNo                 string                   `json:"order_no,omitempty"`
	Currency                string                   `json:"currency"`
	CustomerEmail           string                   `json:"customer_email"`
	Customer                *customerPayload         `json:"customer,omitempty"`
	ProductLines            []productLinePayload     `json:"product_lines"`
	GiftCertificateLines    []productLinePayload     `json:"gift_certificate_lines,omitempty"`
	GiftCertificatePayments []giftCertPaymentPayload `json:"gift_certificate_payments,omitempty"`
	Shipments               []shipmentPayload        `json:"shipments,omitempty"`
	PriceAdjustments        []adjustmentPayload      `json:"price_adjustments,omitempty"`
	TotalGrossPrice         *string                  `json:"total_gross_price,omitempty"`
	TotalNetPrice           *string                  `json:"total_net_price,omitempty"`
	TotalTax                *string                  `json:"total_tax,omitempty"`
	Custom                  map[string]string        `json:"custom,omitempty"`
}

type customerPayload struct {
	ID               string               `json:"id,omitempty"`
	Profile          *profilePayload      `json:"profile,omitempty"`
	PreferredAddress *addressPayload      `json:"preferred_address,omitempty"`
	ActiveData       *activityDataPayload `json:"active_data,omitempty"`
}

type profilePayload struct {
	CustomerNo   string     `json:"customer_no,omitempty"`
	FirstName    string     `json:"first_name,omitempty"`
	LastName     string     `json:"last_name,omitempty"`
	Email        string     `json:"email,omitempty"`
	PhoneMobile  string     `json:"phone_mobile,omitempty"`
	CreationDate *time.Time `json:"creation_date,omitempty"`
	LastModified *time.Time `json:"last_modified,omitempty"`
}

type activityDataPayload struct {
	Orders        int        `json:"orders"`
	OrderValue    *string    `json:"order_value,omitempty"`
	LastOrderDate *time.Time `json:"last_order_date,omitempty"`
}

type addressPayload struct {
	Title       string `json:"title,omitempty"`
	FirstName   string `json:"first_name,omitempty"`
	LastName    string `json:"last_name,omitempty"`
	Address1    string `json:"address1,omitempty"`
	Address2    string `json:"address2,omitempty"`
	City        string `json:"city,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"`
	StateCode   string `json:"state_code,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	Phone       string `json:"phone,omitempty"`
}

type productLinePayload struct {
	Kind             string               `json:"kind,omitempty"` // product | option | gift_certificate
	ProductID        string               `json:"product_id"`
	ProductName      string               `json:"product_name"`
	Quantity         int                  `json:"quantity"`
	ParentProductID  string               `json:"parent_product_id,omitempty"`
	OptionID         string               `json:"option_id,omitempty"`
	OptionValueID    string               `json:"option_value_id,omitempty"`
	GrossPrice       *string              `json:"gross_price,omitempty"`
	NetPrice         *string              `json:"net_price,omitempty"`
	Tax              *string              `json:"tax,omitempty"`
	TaxRate          *string              `json:"tax_rate,omitempty"`
	Product          *productPayload      `json:"product,omitempty"`
	ParentProduct    *productPayload      `json:"parent_product,omitempty"`
	ShippingLine     *shippingLinePayload `json:"shipping_line,omitempty"`
	PriceAdjustments []adjustmentPayload  `json:"price_adjustments,omitempty"`
}

type shippingLinePayload struct {
	PriceAdjustments []adjustmentPayload `json:"price_adjustments,omitempty"`
}

type productPayload struct {
	ID              string           `json:"id"`
	Brand           string           `json:"brand,omitempty"`
	URL             string           `json:"url,omitempty"`
	ImageURL        string           `json:"image_url,omitempty"`
	PrimaryCategory *categoryPayload `json:"primary_category,omitempty"`
	Master          *productPayload  `json:"master,omitempty"`
}

type categoryPayload struct {
	ID          string           `json:"id,omitempty"`
	DisplayName string           `json:"display_name"`
	Online      bool             `json:"online"`
	Parent      *categoryPayload `json:"parent,omitempty"`
}

type giftCertPaymentPayload struct {
	MaskedCode string `json:"masked_code"`
	Amount     string `json:"amount"`
}

type shipmentPayload struct {
	ID               string                 `json:"id,omitempty"`
	ShippingMethod   *shippingMethodPayload `json:"shipping_method,omitempty"`
	ShippingAddress  *addressPayload        `json:"shipping_address,omitempty"`
	TotalGrossPrice  *string                `json:"total_gross_price,omitempty"`
	TotalNetPrice    *string                `json:"total_net_price,omitempty"`
	TotalTax         *string                `json:"total_tax,omitempty"`
	PriceAdjustments []adjustmentPayload    `json:"price_adjustments,omitempty"`
}

type shippingMethodPayload struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	TaxClassID  string `json:"tax_class_id,omitempty"`
}

type adjustmentPayload struct {
	PromotionID   string  `json:"promotion_id"`
	PromotionName string  `json:"promotion_name,omitempty"`
	CouponCode    string  `json:"coupon_code,omitempty"`
	GrossPrice    *string `json:"gross_price,omitempty"`
	NetPrice      *string `json:"net_price,omitempty"`
	Tax           *string `json:"tax,omitempty"`
	TaxRate       *string `json:"tax_rate,omitempty"`
}

func (p *basketPayload) toAggregate(kind checkout.Kind) (*checkout.Aggregate, error) {
	agg := &checkout.Aggregate{
		Kind:          kind,
		OrderNo:       p.OrderNo,
		CurrencyCode:  p.Currency,
		CustomerEmail: p.CustomerEmail,
		Custom:        p.Custom,
	}

	var err error
	if agg.Customer, err = p.Customer.toCustomer(); err != nil {
		return nil, err
	}
	if agg.ProductLines, err = toProductLines(p.ProductLines, checkout.LineKindProduct); err != nil {
		return nil, err
	}
	if agg.GiftCertificateLines, err = toProductLines(p.GiftCertificateLines, checkout.LineKindGiftCertificate); err != nil {
		return nil, err
	}
	for _, pi := range p.GiftCertificatePayments {
		amount, parseErr := parseDecimal(pi.Amount, "gift_certificate_payments.amount")
		if parseErr != nil {
			return nil, parseErr
		}
		agg.GiftCertificatePayments = append(agg.GiftCertificatePayments, checkout.GiftCertificatePayment{
			MaskedCode: pi.MaskedCode,
			Amount:     amount,
		})
	}
	for i := range p.Shipments {
		shipment, convErr := p.Shipments[i].toShipment()
		if convErr != nil {
			return nil, convErr
		}
		agg.Shipments = append(agg.Shipments, shipment)
	}
	if agg.PriceAdjustments, err = toAdjustments(p.PriceAdjustments); err != nil {
		return nil, err
	}
	if agg.TotalGrossPrice, err = parsePrice(p.TotalGrossPrice, "total_gross_price"); err != nil {
		return nil, err
	}
	if agg.TotalNetPrice, err = parsePrice(p.TotalNetPrice, "total_net_price"); err != nil {
		return nil, err
	}
	if agg.TotalTax, err = parsePrice(p.TotalTax, "total_tax"); err != nil {
		return nil, err
	}
	return agg, nil
}

func (p *customerPayload) toCustomer() (*checkout.Customer, error) {
	if p == nil {
		return nil, nil
	}
	customer := &checkout.Customer{
		ID:               p.ID,
		PreferredAddress: p.PreferredAddress.toAddress(),
	}
	if p.Profile != nil {
		customer.Profile = &checkout.Profile{
			CustomerNo:  p.Profile.CustomerNo,
			FirstName:   p.Profile.FirstName,
			LastName:    p.Profile.LastName,
			Email:       p.Profile.Email,
			PhoneMobile: p.Profile.PhoneMobile,
		}
		if p.Profile.CreationDate != nil {
			customer.Profile.CreationDate = *p.Profile.CreationDate
		}
		if p.Profile.LastModified != nil {
			customer.Profile.LastModified = *p.Profile.LastModified
		}
	}
	if p.ActiveData != nil {
		active := &checkout.ActivityData{Orders: p.ActiveData.Orders}
		if p.ActiveData.OrderValue != nil {
			value, err := parseDecimal(*p.ActiveData.OrderValue, "active_data.order_value")
			if err != nil {
				return nil, err
			}
			active.OrderValue = value
		}
		if p.ActiveData.LastOrderDate != nil {
			active.LastOrderDate = *p.ActiveData.LastOrderDate
		}
		customer.ActiveData = active
	}
	return customer, nil
}

func (p *addressPayload) toAddress() *checkout.Address {
	if p == nil {
		return nil
	}
	return &checkout.Address{
		Title:       p.Title,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Address1:    p.Address1,
		Address2:    p.Address2,
		City:        p.City,
		PostalCode:  p.PostalCode,
		StateCode:   p.StateCode,
		CountryCode: p.CountryCode,
		Phone:       p.Phone,
	}
}

func toProductLines(payloads []productLinePayload, defaultKind checkout.LineKind) ([]checkout.ProductLine, error) {
	var lines []checkout.ProductLine
	for i := range payloads {
		line, err := payloads[i].toProductLine(defaultKind)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func (p *productLinePayload) toProductLine(defaultKind checkout.LineKind) (checkout.ProductLine, error) {
	kind := defaultKind
	switch p.Kind {
	case "":
	case string(checkout.LineKindProduct), string(checkout.LineKindOption), string(checkout.LineKindGiftCertificate):
		kind = checkout.LineKind(p.Kind)
	default:
		return checkout.ProductLine{}, fmt.Errorf("decode: unknown line kind %q", p.Kind)
	}

	line := checkout.ProductLine{
		Kind:            kind,
		ProductID:       p.ProductID,
		ProductName:     p.ProductName,
		Quantity:        p.Quantity,
		ParentProductID: p.ParentProductID,
		OptionID:        p.OptionID,
		OptionValueID:   p.OptionValueID,
		Product:         p.Product.toProduct(),
		ParentProduct:   p.ParentProduct.toProduct(),
	}

	var err error
	if line.GrossPrice, err = parsePrice(p.GrossPrice, "gross_price"); err != nil {
		return checkout.ProductLine{}, err
	}
	if line.NetPrice, err = parsePrice(p.NetPrice, "net_price"); err != nil {
		return checkout.ProductLine{}, err
	}
	if line.Tax, err = parsePrice(p.Tax, "tax"); err != nil {
		return checkout.ProductLine{}, err
	}
	if p.TaxRate != nil {
		if line.TaxRate, err = parseDecimal(*p.TaxRate, "tax_rate"); err != nil {
			return checkout.ProductLine{}, err
		}
	}
	if p.ShippingLine != nil {
		adjustments, convErr := toAdjustments(p.ShippingLine.PriceAdjustments)
		if convErr != nil {
			return checkout.ProductLine{}, convErr
		}
		line.ShippingLine = &checkout.ProductShippingLine{PriceAdjustments: adjustments}
	}
	if line.PriceAdjustments, err = toAdjustments(p.PriceAdjustments); err != nil {
		return checkout.ProductLine{}, err
	}
	return line, nil
}

func (p *productPayload) toProduct() *checkout.Product {
	if p == nil {
		return nil
	}
	return &checkout.Product{
		ID:              p.ID,
		Brand:           p.Brand,
		URL:             p.URL,
		ImageURL:        p.ImageURL,
		PrimaryCategory: p.PrimaryCategory.toCategory(),
		Master:          p.Master.toProduct(),
	}
}

func (p *categoryPayload) toCategory() *checkout.Category {
	if p == nil {
		return nil
	}
	return &checkout.Category{
		ID:          p.ID,
		DisplayName: p.DisplayName,
		Online:      p.Online,
		Parent:      p.Parent.toCategory(),
	}
}

func (p *shipmentPayload) toShipment() (checkout.Shipment, error) {
	shipment := checkout.Shipment{
		ID:              p.ID,
		ShippingAddress: p.ShippingAddress.toAddress(),
	}
	if p.ShippingMethod != nil {
		shipment.ShippingMethod = &checkout.ShippingMethod{
			ID:          p.ShippingMethod.ID,
			DisplayName: p.ShippingMethod.DisplayName,
			TaxClassID:  p.ShippingMethod.TaxClassID,
		}
	}

	var err error
	if shipment.TotalGrossPrice, err = parsePrice(p.TotalGrossPrice, "shipment.total_gross_price"); err != nil {
		return checkout.Shipment{}, err
	}
	if shipment.TotalNetPrice, err = parsePrice(p.TotalNetPrice, "shipment.total_net_price"); err != nil {
		return checkout.Shipment{}, err
	}
	if shipment.TotalTax, err = parsePrice(p.TotalTax, "shipment.total_tax"); err != nil {
		return checkout.Shipment{}, err
	}
	if shipment.PriceAdjustments, err = toAdjustments(p.PriceAdjustments); err != nil {
		return checkout.Shipment{}, err
	}
	return shipment, nil
}

func toAdjustments(payloads []adjustmentPayload) ([]checkout.PriceAdjustment, error) {
	var adjustments []checkout.PriceAdjustment
	for _, p := range payloads {
		adj := checkout.PriceAdjustment{
			PromotionID:   p.PromotionID,
			PromotionName: p.PromotionName,
			CouponCode:    p.CouponCode,
		}
		var err error
		if adj.GrossPrice, err = parsePrice(p.GrossPrice, "adjustment.gross_price"); err != nil {
			return nil, err
		}
		if adj.NetPrice, err = parsePrice(p.NetPrice, "adjustment.net_price"); err != nil {
			return nil, err
		}
		if adj.Tax, err = parsePrice(p.Tax, "adjustment.tax"); err != nil {
			return nil, err
		}
		if p.TaxRate != nil {
			if adj.TaxRate, err = parseDecimal(*p.TaxRate, "adjustment.tax_rate"); err != nil {
				return nil, err
			}
		}
		adjustments = append(adjustments, adj)
	}
	return adjustments, nil
}

func parsePrice(s *string, field string) (checkout.Price, error) {
	if s == nil {
		return checkout.Price{}, nil
	}
	value, err := parseDecimal(*s, field)
	if err != nil {
		return checkout.Price{}, err
	}
	return checkout.PriceOf(value), nil
}

func parseDecimal(s, field string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("decode: %s: %w", field, err)
	}
	return value, nil
}
