package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("LOW_STOCK_THRESHOLD", "")
	t.Setenv("CURRENCY", "")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, ":3000", cfg.Address())
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, "FCFA", cfg.Currency)
	assert.Equal(t, int64(5*1024*1024), cfg.MaxImageBytes)
	assert.Empty(t, cfg.JWTSecret, "no secret should be injected when unset")
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "-3")
	t.Setenv("TOKEN_TTL_HOURS", "abc")

	cfg := Load()
	assert.Equal(t, 5, cfg.LowStockThreshold)
	assert.Equal(t, 24, cfg.TokenTTLHours)
}

func TestDSNPrefersDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/inv")
	assert.Equal(t, "postgres://u:p@db:5432/inv", Load().DSN())

	t.Setenv("DATABASE_URL", "")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "inv")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "inventory")
	t.Setenv("DB_PORT", "5433")
	t.Setenv("DB_TIMEZONE", "")
	assert.Equal(t,
		"host=db user=inv password=secret dbname=inventory port=5433 sslmode=disable TimeZone=UTC",
		Load().DSN())
}

func TestFinanceOverridesAreTrimmed(t *testing.T) {
	t.Setenv("FINANCE_PAYMENT_FIELD", "  paid_amount ")
	t.Setenv("FINANCE_COST_FIELD", "cost_price")

	cfg := Load()
	assert.Equal(t, "paid_amount", cfg.PaymentField)
	assert.Equal(t, "cost_price", cfg.CostField)
}
