package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	// Empty variables count as unset, so defaults apply.
	t.Setenv("PGSQL_URL", "")
	t.Setenv("CURRENCY_FEES", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.NotEmpty(t, cfg.JWTSecret)
	assert.Equal(t, "remit-backend", cfg.JWTIssuer)
	assert.Equal(t, []string{"GBP", "ZAR"}, cfg.Currencies.TargetCurrencies())
	assert.Equal(t, "10000", cfg.MaxAmountUSD.String())
	assert.Equal(t, 10*time.Second, cfg.RateSourceTimeout)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("CURRENCY_FEES", "gbp:0.10, ZAR:0.20, EUR:0.05")
	t.Setenv("RATE_SOURCE_TIMEOUT", "3s")
	t.Setenv("RATE_REFRESH_INTERVAL", "not-a-duration")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092")
	t.Setenv("ADMIN_USERNAMES", "root,ops")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "USD", cfg.Currencies.BaseCurrency)
	assert.Equal(t, []string{"EUR", "GBP", "ZAR"}, cfg.Currencies.TargetCurrencies())
	assert.Equal(t, "0.15", cfg.Currencies.DefaultFee.String())
	assert.Equal(t, 3*time.Second, cfg.RateSourceTimeout)
	assert.Equal(t, 15*time.Minute, cfg.RateRefreshInterval)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "10", cfg.MinAmountUSD.String())
	assert.True(t, cfg.IsAdmin("ops"))
	assert.False(t, cfg.IsAdmin("alice"))
}

func TestLoadConfig_ProductionRequiresSecret(t *testing.T) {
	t.Setenv("IS_PRODUCTION", "true")
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "JWT_SECRET")
}

func TestParseFeeTable(t *testing.T) {
	fees, err := ParseFeeTable("GBP:0.10,ZAR:0.20")
	require.NoError(t, err)
	assert.Len(t, fees, 2)
	assert.Equal(t, "0.2", fees["ZAR"].String())

	for _, bad := range []string{"GBP", "GBP:abc", "GBP:1.5", "GBP:-0.1", "GBP:0.1,GBP:0.2", "POUND:0.1"} {
		_, err := ParseFeeTable(bad)
		assert.Error(t, err, bad)
	}
}
