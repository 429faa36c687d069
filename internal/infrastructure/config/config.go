// Package config loads the service configuration from environment variables
// (prefix KP_) with sensible defaults, once at startup.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/commercekit/klarna-payments/internal/application/builder"
	"github.com/commercekit/klarna-payments/internal/domain/klarna"
)

// Config is the immutable service configuration.
type Config struct {
	ServiceName string
	Env         string
	HTTPAddr    string

	// GatewayAcceptRate is the simulated gateway's fraud acceptance rate.
	GatewayAcceptRate float64

	Merchant Merchant
}

// Merchant collects the merchant preferences handed to the request engine.
type Merchant struct {
	Reference2Mapping       string
	AttachmentsEnabled      bool
	SendProductAndImageURLs bool
	PreassessmentCountries  []string
	ConfirmationURL         string
	NotificationURL         string
	Options                 klarna.Options
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("service.name", "klarna-payments")
	v.SetDefault("env", "dev")
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("gateway.accept_rate", 0.7)

	v.SetDefault("merchant.reference2_mapping", "")
	v.SetDefault("merchant.attachments_enabled", false)
	v.SetDefault("merchant.send_product_urls", false)
	v.SetDefault("merchant.preassessment_countries", []string{"DE", "AT", "CH"})
	v.SetDefault("merchant.confirmation_url", "")
	v.SetDefault("merchant.notification_url", "")

	v.SetDefault("merchant.options.color_details", "")
	v.SetDefault("merchant.options.color_button", "")
	v.SetDefault("merchant.options.color_button_text", "")
	v.SetDefault("merchant.options.color_checkbox", "")
	v.SetDefault("merchant.options.color_checkbox_checkmark", "")
	v.SetDefault("merchant.options.color_header", "")
	v.SetDefault("merchant.options.color_link", "")
	v.SetDefault("merchant.options.color_border", "")
	v.SetDefault("merchant.options.color_border_selected", "")
	v.SetDefault("merchant.options.color_text", "")
	v.SetDefault("merchant.options.color_text_secondary", "")
	v.SetDefault("merchant.options.radius_border", "")

	cfg := Config{
		ServiceName:       v.GetString("service.name"),
		Env:               v.GetString("env"),
		HTTPAddr:          v.GetString("http.addr"),
		GatewayAcceptRate: v.GetFloat64("gateway.accept_rate"),
		Merchant: Merchant{
			Reference2Mapping:       v.GetString("merchant.reference2_mapping"),
			AttachmentsEnabled:      v.GetBool("merchant.attachments_enabled"),
			SendProductAndImageURLs: v.GetBool("merchant.send_product_urls"),
			PreassessmentCountries:  v.GetStringSlice("merchant.preassessment_countries"),
			ConfirmationURL:         v.GetString("merchant.confirmation_url"),
			NotificationURL:         v.GetString("merchant.notification_url"),
			Options: klarna.Options{
				ColorDetails:           v.GetString("merchant.options.color_details"),
				ColorButton:            v.GetString("merchant.options.color_button"),
				ColorButtonText:        v.GetString("merchant.options.color_button_text"),
				ColorCheckbox:          v.GetString("merchant.options.color_checkbox"),
				ColorCheckboxCheckmark: v.GetString("merchant.options.color_checkbox_checkmark"),
				ColorHeader:            v.GetString("merchant.options.color_header"),
				ColorLink:              v.GetString("merchant.options.color_link"),
				ColorBorder:            v.GetString("merchant.options.color_border"),
				ColorBorderSelected:    v.GetString("merchant.options.color_border_selected"),
				ColorText:              v.GetString("merchant.options.color_text"),
				ColorTextSecondary:     v.GetString("merchant.options.color_text_secondary"),
				RadiusBorder:           v.GetString("merchant.options.radius_border"),
			},
		},
	}
	return cfg, nil
}

// BuilderConfig maps the merchant preferences onto the engine's config.
func (c Config) BuilderConfig() builder.Config {
	return builder.Config{
		MerchantReference2Mapping: c.Merchant.Reference2Mapping,
		AttachmentsEnabled:        c.Merchant.AttachmentsEnabled,
		SendProductAndImageURLs:   c.Merchant.SendProductAndImageURLs,
		PreassessmentCountries:    c.Merchant.PreassessmentCountries,
		ConfirmationURL:           c.Merchant.ConfirmationURL,
		NotificationURL:           c.Merchant.NotificationURL,
		Options:                   c.Merchant.Options,
	}
}
