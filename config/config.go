package config

import (
	"os"
)

// Config holds everything the service reads from the environment.
// Price IDs are opaque Stripe price identifiers, one per billing tier,
// configured per deployment.
type Config struct {
	Port string

	StripeSecretKey     string
	StripeWebhookSecret string

	SuccessURL string
	CancelURL  string

	Prices Prices
}

// Prices maps the billing tiers used by the plan catalog to Stripe price IDs.
type Prices struct {
	Price500 string
	Price400 string
	Price300 string
	Price200 string
}

func Load() *Config {
	return &Config{
		Port:                getenv("PORT", "8080"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeWebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		SuccessURL:          getenv("SUCCESS_URL", "http://localhost:8080/success"),
		CancelURL:           getenv("CANCEL_URL", "http://localhost:8080/cancel"),
		Prices: Prices{
			Price500: os.Getenv("PRICE_ID_500"),
			Price400: os.Getenv("PRICE_ID_400"),
			Price300: os.Getenv("PRICE_ID_300"),
			Price200: os.Getenv("PRICE_ID_200"),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
