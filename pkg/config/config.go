package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port         string
	IsProduction bool

	// Fiat pair-rate provider (exchangerate-api.com compatible).
	ExchangeRateAPIKey     string
	ExchangeRateAPIBaseURL string

	// Crypto market provider (CoinGecko compatible).
	CoinGeckoAPIBaseURL  string
	CryptoMarketPageSize int

	// Per-call upstream timeout; a timeout surfaces as a provider failure.
	UpstreamTimeout time.Duration

	// Age at which the crypto symbol directory snapshot is refreshed.
	SymbolCacheTTL time.Duration
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("EXCHANGE_RATE_API_KEY", "")
	viper.SetDefault("EXCHANGE_RATE_API_BASE_URL", "https://v6.exchangerate-api.com/v6")
	viper.SetDefault("COINGECKO_API_BASE_URL", "https://api.coingecko.com/api/v3")
	viper.SetDefault("CRYPTO_MARKET_PAGE_SIZE", 100)
	viper.SetDefault("UPSTREAM_TIMEOUT", "5s")
	viper.SetDefault("SYMBOL_CACHE_TTL", "600s")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")

	cfg.ExchangeRateAPIKey = viper.GetString("EXCHANGE_RATE_API_KEY")
	if cfg.ExchangeRateAPIKey == "" {
		log.Println("Warning: EXCHANGE_RATE_API_KEY environment variable not set. Fiat conversions will fail.")
	}
	cfg.ExchangeRateAPIBaseURL = viper.GetString("EXCHANGE_RATE_API_BASE_URL")
	cfg.CoinGeckoAPIBaseURL = viper.GetString("COINGECKO_API_BASE_URL")

	cfg.CryptoMarketPageSize = viper.GetInt("CRYPTO_MARKET_PAGE_SIZE")
	if cfg.CryptoMarketPageSize <= 0 {
		cfg.CryptoMarketPageSize = 100
		log.Printf("Warning: Invalid value for CRYPTO_MARKET_PAGE_SIZE. Defaulting to %d.\n", cfg.CryptoMarketPageSize)
	}

	upstreamTimeoutStr := viper.GetString("UPSTREAM_TIMEOUT")
	upstreamTimeout, err := time.ParseDuration(upstreamTimeoutStr)
	if err != nil || upstreamTimeout <= 0 {
		upstreamTimeout = 5 * time.Second
		if upstreamTimeoutStr != "" {
			log.Printf("Warning: Invalid value for UPSTREAM_TIMEOUT ('%s'). Defaulting to %s.\n", upstreamTimeoutStr, upstreamTimeout)
		}
	}
	cfg.UpstreamTimeout = upstreamTimeout

	symbolTTLStr := viper.GetString("SYMBOL_CACHE_TTL")
	symbolTTL, err := time.ParseDuration(symbolTTLStr)
	if err != nil || symbolTTL <= 0 {
		symbolTTL = 600 * time.Second
		if symbolTTLStr != "" {
			log.Printf("Warning: Invalid value for SYMBOL_CACHE_TTL ('%s'). Defaulting to %s.\n", symbolTTLStr, symbolTTL)
		}
	}
	cfg.SymbolCacheTTL = symbolTTL

	return cfg, nil
}
