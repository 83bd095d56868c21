package billing

import (
	"errors"
	"strings"

	"github.com/audiozoom/backend/internal/infrastructure/config"
)

// ValidateStripeConfig checks the settings needed by the Connect adapter
func ValidateStripeConfig(cfg config.StripeConfig) error {
	if cfg.SecretKey == "" {
		return errors.New("stripe: secret key is required")
	}
	if !strings.HasPrefix(cfg.SecretKey, "sk_") && !strings.HasPrefix(cfg.SecretKey, "rk_") {
		return errors.New("stripe: secret key must start with sk_ or rk_")
	}
	if cfg.WebhookSecret != "" && !strings.HasPrefix(cfg.WebhookSecret, "whsec_") {
		return errors.New("stripe: webhook secret must start with whsec_")
	}
	return nil
}

// IsTestKey reports whether the key belongs to Stripe test mode
func IsTestKey(secretKey string) bool {
	return strings.HasPrefix(secretKey, "sk_test_") || strings.HasPrefix(secretKey, "rk_test_")
}
