package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	// Central bank quote feed
	TCMBEndpoint string
	TCMBTimeout  time.Duration
	TCMBCacheTTL time.Duration

	// Rate limiting, e.g. "100-M" for 100 requests per minute per IP
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_EXPIRY_DURATION", "1h")
	viper.SetDefault("JWT_ISSUER", "tour-backoffice-app")
	viper.SetDefault("TCMB_ENDPOINT", "https://www.tcmb.gov.tr/kurlar/today.xml")
	viper.SetDefault("TCMB_TIMEOUT", "10s")
	viper.SetDefault("TCMB_CACHE_TTL", "1h")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "a-very-secret-key-should-be-longer-and-random" {
		log.Println("Warning: JWT_SECRET not set. Using default insecure key.")
	}
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	jwtExpiry, err := time.ParseDuration(viper.GetString("JWT_EXPIRY_DURATION"))
	if err != nil {
		log.Printf("Warning: invalid JWT_EXPIRY_DURATION %q, defaulting to 1h\n", viper.GetString("JWT_EXPIRY_DURATION"))
		jwtExpiry = time.Hour
	}
	cfg.JWTExpiryDuration = jwtExpiry

	cfg.TCMBEndpoint = viper.GetString("TCMB_ENDPOINT")
	cfg.TCMBTimeout = viper.GetDuration("TCMB_TIMEOUT")
	if cfg.TCMBTimeout <= 0 {
		cfg.TCMBTimeout = 10 * time.Second
	}
	cfg.TCMBCacheTTL = viper.GetDuration("TCMB_CACHE_TTL")
	if cfg.TCMBCacheTTL <= 0 {
		cfg.TCMBCacheTTL = time.Hour
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
