package config

import (
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/remit_backend/internal/core/domain"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

const defaultRateSourceURL = "https://68976304250b078c2041c7fc.mockapi.io/api/wiremit/InterviewAPIS"

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	MigrationsPath string

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Rate source
	RateSourceURL       string
	RateSourceTimeout   time.Duration
	RateRefreshInterval time.Duration

	// Currencies and transfer limits
	Currencies   domain.CurrencyConfig
	MinAmountUSD decimal.Decimal
	MaxAmountUSD decimal.Decimal

	// Events; an empty broker list disables publishing.
	KafkaBrokers          []string
	KafkaTransactionTopic string

	// HTTP edge
	CORSAllowedOrigins []string
	LoginRateLimit     string
	AdminUsernames     []string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	return fromViper(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_EXPIRY_DURATION", "1h")
	v.SetDefault("JWT_ISSUER", "remit-backend")
	v.SetDefault("RATE_SOURCE_URL", defaultRateSourceURL)
	v.SetDefault("RATE_SOURCE_TIMEOUT", "10s")
	v.SetDefault("RATE_REFRESH_INTERVAL", "15m")
	v.SetDefault("BASE_CURRENCY", "USD")
	v.SetDefault("CURRENCY_FEES", "GBP:0.10,ZAR:0.20")
	v.SetDefault("DEFAULT_FEE_FRACTION", "0.15")
	v.SetDefault("MIN_AMOUNT_USD", "10.00")
	v.SetDefault("MAX_AMOUNT_USD", "10000.00")
	v.SetDefault("KAFKA_BROKERS", "")
	v.SetDefault("KAFKA_TRANSACTION_TOPIC", "remittance-transactions")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("LOGIN_RATE_LIMIT", "5-M")
	v.SetDefault("ADMIN_USERNAMES", "")
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		DatabaseURL:           v.GetString("PGSQL_URL"),
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		MigrationsPath:        v.GetString("MIGRATIONS_PATH"),
		JWTSecret:             v.GetString("JWT_SECRET"),
		JWTIssuer:             v.GetString("JWT_ISSUER"),
		RateSourceURL:         v.GetString("RATE_SOURCE_URL"),
		KafkaBrokers:          splitList(v.GetString("KAFKA_BROKERS")),
		KafkaTransactionTopic: v.GetString("KAFKA_TRANSACTION_TOPIC"),
		CORSAllowedOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		LoginRateLimit:        v.GetString("LOGIN_RATE_LIMIT"),
		AdminUsernames:        splitList(v.GetString("ADMIN_USERNAMES")),
	}

	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set. Using in-memory storage.")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}
	if cfg.JWTIssuer == "" {
		cfg.JWTIssuer = "remit-backend"
	}

	cfg.JWTExpiryDuration = durationOrDefault(v, "JWT_EXPIRY_DURATION", time.Hour)
	cfg.RateSourceTimeout = durationOrDefault(v, "RATE_SOURCE_TIMEOUT", 10*time.Second)
	cfg.RateRefreshInterval = durationOrDefault(v, "RATE_REFRESH_INTERVAL", 15*time.Minute)

	fees, err := ParseFeeTable(v.GetString("CURRENCY_FEES"))
	if err != nil {
		return nil, err
	}
	defaultFee, err := parseFraction("DEFAULT_FEE_FRACTION", v.GetString("DEFAULT_FEE_FRACTION"))
	if err != nil {
		return nil, err
	}
	cfg.Currencies = domain.CurrencyConfig{
		BaseCurrency: strings.ToUpper(strings.TrimSpace(v.GetString("BASE_CURRENCY"))),
		Fees:         fees,
		DefaultFee:   defaultFee,
	}
	if _, clash := fees[cfg.Currencies.BaseCurrency]; clash {
		return nil, fmt.Errorf("CURRENCY_FEES must not include the base currency %s", cfg.Currencies.BaseCurrency)
	}

	if cfg.MinAmountUSD, err = decimal.NewFromString(v.GetString("MIN_AMOUNT_USD")); err != nil {
		return nil, fmt.Errorf("invalid MIN_AMOUNT_USD: %w", err)
	}
	if cfg.MaxAmountUSD, err = decimal.NewFromString(v.GetString("MAX_AMOUNT_USD")); err != nil {
		return nil, fmt.Errorf("invalid MAX_AMOUNT_USD: %w", err)
	}
	if !cfg.MinAmountUSD.IsPositive() || cfg.MinAmountUSD.GreaterThan(cfg.MaxAmountUSD) {
		return nil, fmt.Errorf("invalid amount limits: min %s, max %s", cfg.MinAmountUSD, cfg.MaxAmountUSD)
	}

	return cfg, nil
}

// ParseFeeTable parses "GBP:0.10,ZAR:0.20" into a code -> fraction map.
func ParseFeeTable(raw string) (map[string]decimal.Decimal, error) {
	fees := make(map[string]decimal.Decimal)
	for _, entry := range splitList(raw) {
		code, value, ok := strings.Cut(entry, ":")
		code = strings.ToUpper(strings.TrimSpace(code))
		if !ok || len(code) != 3 {
			return nil, fmt.Errorf("invalid CURRENCY_FEES entry %q, want CODE:FRACTION", entry)
		}
		if _, dup := fees[code]; dup {
			return nil, fmt.Errorf("duplicate currency %s in CURRENCY_FEES", code)
		}
		fraction, err := parseFraction("CURRENCY_FEES["+code+"]", value)
		if err != nil {
			return nil, err
		}
		fees[code] = fraction
	}
	if len(fees) == 0 {
		return nil, fmt.Errorf("CURRENCY_FEES must list at least one currency")
	}
	return fees, nil
}

func parseFraction(name, raw string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", name, err)
	}
	if d.IsNegative() || d.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.Zero, fmt.Errorf("invalid %s: %s is outside [0, 1)", name, d)
	}
	return d, nil
}

func durationOrDefault(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsAdmin reports whether username is listed in ADMIN_USERNAMES.
func (c *Config) IsAdmin(username string) bool {
	return slices.Contains(c.AdminUsernames, username)
}
