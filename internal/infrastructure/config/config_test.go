package config

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withEnv sets environment variables for the duration of a test, restoring previous values.
func withEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	for k, v := range vars {
		t.Setenv(k, v)
	}
}

func clearAZEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "AZ_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
}

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		clearAZEnv(t)

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "audiozoom-backend", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "5000", cfg.App.Port)
		assert.Equal(t, "http://localhost:3000", cfg.App.ClientURL)
		assert.Equal(t, DriverPostgres, cfg.Database.Driver)
		assert.Equal(t, "audiozoom", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, "token", cfg.Cookie.Name)
		assert.Equal(t, int64(50<<20), cfg.Uploads.MaxAudioSize)
		assert.Equal(t, int64(5<<20), cfg.Uploads.MaxImageSize)
		assert.Equal(t, int64(64<<10), cfg.Uploads.MaxWebhookBody)
		assert.Equal(t, 24*time.Hour, cfg.Payments.PendingTTL)
		assert.Equal(t, "@every 15m", cfg.Scheduler.StalePaymentSchedule)
		assert.Equal(t, "https://api-m.sandbox.paypal.com", cfg.PayPal.BaseURL)
		assert.Equal(t, "AudioZoom", cfg.PayPal.BrandName)
		assert.Equal(t, "usd", cfg.Stripe.Currency)
		assert.Equal(t, "/metrics", cfg.Metrics.Path)
	})

	t.Run("loads values from environment variables with AZ prefix", func(t *testing.T) {
		clearAZEnv(t)
		withEnv(t, map[string]string{
			"AZ_APP_PORT":             "9000",
			"AZ_APP_CLIENT_URL":       "https://audiozoom.example/",
			"AZ_DATABASE_DRIVER":      "sqlite",
			"AZ_DATABASE_PATH":        "/tmp/az.db",
			"AZ_DATABASE_HOST":        "testdb.local",
			"AZ_DATABASE_PORT":        "5433",
			"AZ_PAYMENTS_PENDING_TTL": "2h",
			"AZ_STRIPE_ENABLED":       "true",
			"AZ_STRIPE_SECRET_KEY":    "sk_test_123",
		})

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "https://audiozoom.example", cfg.App.ClientURL, "trailing slash trimmed")
		assert.Equal(t, DriverSQLite, cfg.Database.Driver)
		assert.Equal(t, "/tmp/az.db", cfg.Database.DSN())
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 2*time.Hour, cfg.Payments.PendingTTL)
		assert.True(t, cfg.Stripe.Enabled)
	})

	t.Run("rejects unknown database driver", func(t *testing.T) {
		clearAZEnv(t)
		withEnv(t, map[string]string{"AZ_DATABASE_DRIVER": "oracle"})

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "database.driver")
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		clearAZEnv(t)
		withEnv(t, map[string]string{
			"AZ_DATABASE_MAX_OPEN_CONNS": "10",
			"AZ_DATABASE_MAX_IDLE_CONNS": "20",
		})

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("stripe requires a secret key when enabled", func(t *testing.T) {
		clearAZEnv(t)
		withEnv(t, map[string]string{"AZ_STRIPE_ENABLED": "true"})

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "stripe.secret_key")
	})

	t.Run("paypal requires credentials when enabled", func(t *testing.T) {
		clearAZEnv(t)
		withEnv(t, map[string]string{"AZ_PAYPAL_ENABLED": "true", "AZ_PAYPAL_CLIENT_ID": "id"})

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "paypal.client_id")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	validProduction := map[string]string{
		"AZ_APP_ENV":               "production",
		"AZ_JWT_SECRET":            "this-is-a-very-secure-jwt-secret-key-32chars",
		"AZ_DATABASE_PASSWORD":     "secure-password",
		"AZ_DATABASE_SSLMODE":      "require",
		"AZ_COOKIE_SECURE":         "true",
		"AZ_STORAGE_BUCKET":        "audiozoom-media",
		"AZ_SWAGGER_ENABLED":       "false",
		"AZ_STRIPE_ENABLED":        "true",
		"AZ_STRIPE_SECRET_KEY":     "sk_live_123",
		"AZ_STRIPE_WEBHOOK_SECRET": "whsec_123",
	}

	tests := []struct {
		name     string
		override map[string]string
		errMsg   string
	}{
		{"requires jwt.secret", map[string]string{"AZ_JWT_SECRET": ""}, "jwt.secret is required in production"},
		{"requires long jwt.secret", map[string]string{"AZ_JWT_SECRET": "short"}, "at least 32 characters"},
		{"requires database password", map[string]string{"AZ_DATABASE_PASSWORD": ""}, "database.password is required"},
		{"requires ssl", map[string]string{"AZ_DATABASE_SSLMODE": "disable"}, "database.sslmode cannot be 'disable'"},
		{"requires secure cookie", map[string]string{"AZ_COOKIE_SECURE": "false"}, "cookie.secure must be true"},
		{"requires webhook secret", map[string]string{"AZ_STRIPE_WEBHOOK_SECRET": ""}, "stripe.webhook_secret"},
		{"rejects sqlite", map[string]string{"AZ_DATABASE_DRIVER": "sqlite"}, "sqlite is not supported in production"},
		{"requires bucket", map[string]string{"AZ_STORAGE_BUCKET": ""}, "storage.bucket"},
		{"protects swagger", map[string]string{"AZ_SWAGGER_ENABLED": "true"}, "swagger endpoint must be disabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearAZEnv(t)
			withEnv(t, validProduction)
			withEnv(t, tt.override)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("passes validation with valid production config", func(t *testing.T) {
		clearAZEnv(t)
		withEnv(t, validProduction)

		cfg, err := Load()
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	t.Run("mongo production needs no postgres password", func(t *testing.T) {
		clearAZEnv(t)
		withEnv(t, validProduction)
		withEnv(t, map[string]string{"AZ_DATABASE_DRIVER": "mongo", "AZ_DATABASE_PASSWORD": ""})

		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, DriverMongo, cfg.Database.Driver)
	})
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Run("generates valid DSN", func(t *testing.T) {
		cfg := DatabaseConfig{
			Driver:   DriverPostgres,
			Host:     "localhost",
			Port:     5432,
			User:     "testuser",
			Password: "testpass",
			DBName:   "testdb",
			SSLMode:  "disable",
		}

		dsn := cfg.DSN()
		assert.Contains(t, dsn, "localhost:5432")
		assert.Contains(t, dsn, "testuser")
		assert.Contains(t, dsn, "testdb")
		assert.Contains(t, dsn, "sslmode=disable")
	})

	t.Run("escapes special characters in password", func(t *testing.T) {
		cfg := DatabaseConfig{Host: "localhost", Port: 5432, User: "user", Password: "pass@word#123", DBName: "db", SSLMode: "disable"}
		assert.Contains(t, cfg.DSN(), "pass%40word%23123")
	})
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
