package main

import (
	"fmt"
	"os"

	badger "github.com/dgraph-io/badger/v4"
	"github.com/opanaf/donations/cmd/gateway/internal/router"
	"github.com/opanaf/donations/gateway"
	"github.com/opanaf/donations/intake"
	"github.com/opanaf/donations/providers/paypal"
	"github.com/opanaf/donations/providers/stripe"
)

// Yaml configuration reference. Secrets never live here, they come from the
// environment
type Config struct {
	ListenAddress string `yaml:"listen-address"`
	// Optional path of the processed event ledger. Empty disables
	// webhook deduplication
	LedgerPath string `yaml:"ledger-path,omitempty"`
}

// Environment variables read at startup
const (
	EnvStripeSecretKey      = "STRIPE_SECRET_KEY"
	EnvStripePublishableKey = "STRIPE_PUBLISHABLE_KEY"
	EnvStripeWebhookSecret  = "STRIPE_WEBHOOK_SECRET"
	EnvPaypalClientId       = "PAYPAL_CLIENT_ID"
	EnvPaypalClientSecret   = "PAYPAL_CLIENT_SECRET"
	EnvPaypalEnv            = "PAYPAL_ENV"
	EnvSiteUrl              = "SITE_URL"
)

const DefaultPaypalEnv = "sandbox"

func (c *Config) Compile() (ctrl gateway.Controller, config gateway.Config, public router.PublicConfig, err error) {
	paypalEnv := os.Getenv(EnvPaypalEnv)
	if paypalEnv == "" {
		paypalEnv = DefaultPaypalEnv
	}

	stripeClient := stripe.New(stripe.Config{
		Secret: os.Getenv(EnvStripeSecretKey),
	})

	config = gateway.Config{
		Checkout: &stripe.Sessions{Client: stripeClient},
		Intents:  &stripe.Intents{Client: stripeClient},
		Orders: paypal.New(paypal.Config{
			ClientId:     os.Getenv(EnvPaypalClientId),
			ClientSecret: os.Getenv(EnvPaypalClientSecret),
			Env:          paypalEnv,
		}),
		Intake: intake.New(intake.Config{
			Host: os.Getenv(EnvSiteUrl),
		}),
		SiteUrl:       os.Getenv(EnvSiteUrl),
		WebhookSecret: os.Getenv(EnvStripeWebhookSecret),
	}

	if c.LedgerPath != "" {
		opt := badger.DefaultOptions(c.LedgerPath)
		config.DB, err = badger.Open(opt)
		if err != nil {
			return ctrl, config, public, fmt.Errorf("failed to open ledger: %w", err)
		}
	}

	public = router.PublicConfig{
		StripePublishableKey: os.Getenv(EnvStripePublishableKey),
		PaypalClientId:       os.Getenv(EnvPaypalClientId),
		PaypalEnv:            paypalEnv,
	}

	ctrl = gateway.New(config)
	return ctrl, config, public, nil
}
