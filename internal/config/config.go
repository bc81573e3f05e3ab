package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config carries the tunable pricing constants and wiring for one
// deployment. Fee rate and claim amount are injected here rather than
// hardcoded so tests and deployments can vary them.
type Config struct {
	Port         string
	DatabaseURL  string // Postgres DSN; takes precedence over DatabasePath
	DatabasePath string // SQLite file path

	FeePercentage     decimal.Decimal // trading fee, e.g. 0.02
	FaucetClaimAmount decimal.Decimal // e.g. 0.25
	FaucetCoinSymbol  string          // platform coin handed out by the faucet
}

const (
	defaultPort              = "8080"
	defaultDatabasePath      = "exchange.db"
	defaultFeePercentage     = "0.02"
	defaultFaucetClaimAmount = "0.25"
	defaultFaucetCoinSymbol  = "ARZ"
)

// Load reads configuration from the environment, honoring a .env file when
// present.
func Load() (*Config, error) {
	// Missing .env is fine, env vars may be set directly.
	_ = godotenv.Load()

	fee, err := decimal.NewFromString(getEnv("TRADING_FEE", defaultFeePercentage))
	if err != nil {
		return nil, fmt.Errorf("invalid TRADING_FEE: %w", err)
	}
	claim, err := decimal.NewFromString(getEnv("FAUCET_CLAIM_AMOUNT", defaultFaucetClaimAmount))
	if err != nil {
		return nil, fmt.Errorf("invalid FAUCET_CLAIM_AMOUNT: %w", err)
	}

	return &Config{
		Port:              getEnv("PORT", defaultPort),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DatabasePath:      getEnv("DATABASE_PATH", defaultDatabasePath),
		FeePercentage:     fee,
		FaucetClaimAmount: claim,
		FaucetCoinSymbol:  getEnv("FAUCET_COIN_SYMBOL", defaultFaucetCoinSymbol),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
