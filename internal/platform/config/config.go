package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kopkaka/Bismillahirrahmanirrahim-sub000/internal/core/domain"
	"github.com/spf13/viper"
)

// Store drivers.
const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL        string
	Port               string
	IsProduction       bool
	LogLevel           string
	StoreDriver        string
	RunMigrations      bool
	MigrationsPath     string
	DBStatementTimeout time.Duration
	DBMaxConns         int32

	JWTSecret         string
	JWTExpiryDuration time.Duration

	RateLimit          string // ulule format, e.g. "100-M"
	RedisURL           string
	CORSAllowedOrigins []string

	AMQPURL        string
	OutboxExchange string

	// Accounts maps ledger roles to chart-of-accounts names.
	Accounts domain.AccountNames
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	defaults := domain.DefaultAccountNames()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("STORE_DRIVER", StoreDriverPostgres)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("MIGRATIONS_PATH", "file://migrations")
	viper.SetDefault("DB_STATEMENT_TIMEOUT", "30s")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "8h")
	viper.SetDefault("RATE_LIMIT", "300-M")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("AMQP_URL", "")
	viper.SetDefault("OUTBOX_EXCHANGE", "koperasi.effects")

	viper.SetDefault("ACCOUNT_CASH", defaults.Cash)
	viper.SetDefault("ACCOUNT_LOAN_RECEIVABLE", defaults.LoanReceivable)
	viper.SetDefault("ACCOUNT_INTEREST_INCOME", defaults.InterestIncome)
	viper.SetDefault("ACCOUNT_INCOME_SUMMARY", defaults.IncomeSummary)
	viper.SetDefault("ACCOUNT_SALES_REVENUE", defaults.SalesRevenue)
	viper.SetDefault("ACCOUNT_COGS", defaults.CostOfGoodsSold)
	viper.SetDefault("ACCOUNT_INVENTORY", defaults.Inventory)
	viper.SetDefault("ACCOUNT_ACCOUNTS_PAYABLE", defaults.AccountsPayable)
	viper.SetDefault("ACCOUNT_SHU_CURRENT_YEAR", defaults.SHUCurrentYear)
	viper.SetDefault("ACCOUNT_SHU_PAYABLE", defaults.SHUPayable)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.LogLevel = viper.GetString("LOG_LEVEL")
	cfg.RunMigrations = viper.GetBool("RUN_MIGRATIONS")
	cfg.MigrationsPath = viper.GetString("MIGRATIONS_PATH")
	cfg.DBMaxConns = viper.GetInt32("DB_MAX_CONNS")
	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	cfg.RedisURL = viper.GetString("REDIS_URL")
	cfg.AMQPURL = viper.GetString("AMQP_URL")
	cfg.OutboxExchange = viper.GetString("OUTBOX_EXCHANGE")

	cfg.StoreDriver = strings.ToLower(viper.GetString("STORE_DRIVER"))
	if cfg.StoreDriver != StoreDriverPostgres && cfg.StoreDriver != StoreDriverMemory {
		log.Printf("Warning: unknown STORE_DRIVER '%s'. Defaulting to %s.\n", cfg.StoreDriver, StoreDriverPostgres)
		cfg.StoreDriver = StoreDriverPostgres
	}
	if cfg.StoreDriver == StoreDriverPostgres && cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.DBStatementTimeout = parseDuration("DB_STATEMENT_TIMEOUT", 30*time.Second)
	cfg.JWTExpiryDuration = parseDuration("JWT_EXPIRY_DURATION", 8*time.Hour)

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = "a-very-secret-key-should-be-longer-and-random" // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.Accounts = domain.AccountNames{
		Cash:            viper.GetString("ACCOUNT_CASH"),
		LoanReceivable:  viper.GetString("ACCOUNT_LOAN_RECEIVABLE"),
		InterestIncome:  viper.GetString("ACCOUNT_INTEREST_INCOME"),
		IncomeSummary:   viper.GetString("ACCOUNT_INCOME_SUMMARY"),
		SalesRevenue:    viper.GetString("ACCOUNT_SALES_REVENUE"),
		CostOfGoodsSold: viper.GetString("ACCOUNT_COGS"),
		Inventory:       viper.GetString("ACCOUNT_INVENTORY"),
		AccountsPayable: viper.GetString("ACCOUNT_ACCOUNTS_PAYABLE"),
		SHUCurrentYear:  viper.GetString("ACCOUNT_SHU_CURRENT_YEAR"),
		SHUPayable:      viper.GetString("ACCOUNT_SHU_PAYABLE"),
	}

	return cfg, nil
}

// parseDuration reads a duration setting, falling back with a warning when it is invalid.
func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil {
		if raw != "" {
			log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, fallback.String())
		}
		return fallback
	}
	return d
}
