package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string
	Backend     BackendConfig
	Pricing     PricingConfig
	LogLevel    string
}

type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
}

type PricingConfig struct {
	FreeShippingThreshold string
	TaxRate               string
}

func Load() (*Config, error) {
	viper.SetConfigType("env")
	viper.SetConfigName(".env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.AddConfigPath("../..")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ENVIRONMENT", "development")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", "30")
	viper.SetDefault("LOG_LEVEL", "info")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read .env file (optional)
	if err := viper.ReadInConfig(); err != nil {
		// It's okay if .env doesn't exist, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	timeout, err := strconv.Atoi(getEnvOrViper("BACKEND_TIMEOUT_SECONDS", "30"))
	if err != nil {
		return nil, fmt.Errorf("BACKEND_TIMEOUT_SECONDS must be an integer: %w", err)
	}

	cfg := &Config{
		Port:        getEnvOrViper("PORT", "8080"),
		Environment: getEnvOrViper("ENVIRONMENT", "development"),
		Backend: BackendConfig{
			BaseURL:        getEnvOrViper("BACKEND_BASE_URL", ""),
			TimeoutSeconds: timeout,
		},
		Pricing: PricingConfig{
			FreeShippingThreshold: getEnvOrViper("FREE_SHIPPING_THRESHOLD", "50"),
			TaxRate:               getEnvOrViper("TAX_RATE", "0.08"),
		},
		LogLevel: getEnvOrViper("LOG_LEVEL", "info"),
	}

	// Validate required fields
	if cfg.Backend.BaseURL == "" {
		return nil, fmt.Errorf("BACKEND_BASE_URL is required")
	}

	return cfg, nil
}

func getEnvOrViper(key, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if viper.IsSet(key) {
		return viper.GetString(key)
	}
	return defaultValue
}
