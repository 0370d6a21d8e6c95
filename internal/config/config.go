// Package config reads the backend configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
)

// Config is the runtime configuration of the backend.
type Config struct {
	// DBPath is the path of the sqlite database file.
	DBPath string

	// APIURL is the URL under which the API is reachable, used for
	// CORS and the OpenAPI document.
	APIURL string

	// PaystackBaseURL is the base URL of the Paystack API.
	PaystackBaseURL string

	// PaystackSecretKey authenticates requests to Paystack and verifies
	// webhook signatures.
	PaystackSecretKey string

	// DepositFee is the flat fee in naira added to every deposit charge.
	DepositFee decimal.Decimal

	// PayoutSchedule is the cron expression the payout engine runs on.
	PayoutSchedule string

	// RedisAddr is the address of the redis server used for webhook
	// deduplication. When empty, an in-process cache is used.
	RedisAddr string
}

// FromEnv reads the configuration from the environment, applying defaults
// for everything that is optional.
func FromEnv() (Config, error) {
	c := Config{
		DBPath:            getEnv("DB_PATH", "data/ajo-zero.db"),
		APIURL:            getEnv("API_URL", "http://localhost:8080"),
		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		DepositFee:        decimal.NewFromInt(100),
		PayoutSchedule:    getEnv("PAYOUT_SCHEDULE", "@hourly"),
		RedisAddr:         os.Getenv("REDIS_ADDR"),
	}

	if fee, ok := os.LookupEnv("DEPOSIT_FEE"); ok {
		parsed, err := decimal.NewFromString(fee)
		if err != nil {
			return Config{}, fmt.Errorf("DEPOSIT_FEE must be a decimal number: %w", err)
		}

		if parsed.IsNegative() {
			return Config{}, fmt.Errorf("DEPOSIT_FEE must not be negative, it is %s", parsed)
		}

		c.DepositFee = parsed
	}

	if c.PaystackSecretKey == "" {
		return Config{}, fmt.Errorf("PAYSTACK_SECRET_KEY must be set")
	}

	return c, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}
