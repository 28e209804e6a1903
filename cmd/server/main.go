package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api"
	"github.com/jafarshop/storefront/internal/auth"
	"github.com/jafarshop/storefront/internal/backend"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	var logger *zap.Logger
	if cfg.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	pricing, err := pricingFromConfig(cfg.Pricing)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid pricing configuration: %v\n", err)
		os.Exit(1)
	}

	// Collaborators. The session and cart are backed by the surrounding
	// storefront in production; the seeded versions here make the service
	// runnable on its own.
	session := auth.NewStatic(&domain.User{
		ID:    uuid.New(),
		Name:  "Demo Customer",
		Email: "demo@example.com",
	})
	memCart := cart.NewMemory(pricing,
		domain.CartItem{
			ProductID: uuid.New(),
			Name:      "Espresso Beans 1kg",
			Price:     decimal.RequireFromString("18.50"),
			Quantity:  2,
		},
		domain.CartItem{
			ProductID: uuid.New(),
			Name:      "Pour-Over Kettle",
			Price:     decimal.RequireFromString("42.00"),
			Quantity:  1,
		},
	)

	client := backend.NewClient(cfg.Backend, logger)
	submitter := checkout.NewSubmitter(client, memCart, logger)

	router := api.NewRouter(cfg, session, memCart, submitter, logger)

	logger.Info("Starting checkout service",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.String("backend", cfg.Backend.BaseURL),
	)

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

func pricingFromConfig(cfg config.PricingConfig) (cart.Pricing, error) {
	threshold, err := decimal.NewFromString(cfg.FreeShippingThreshold)
	if err != nil {
		return cart.Pricing{}, fmt.Errorf("free shipping threshold: %w", err)
	}
	taxRate, err := decimal.NewFromString(cfg.TaxRate)
	if err != nil {
		return cart.Pricing{}, fmt.Errorf("tax rate: %w", err)
	}

	pricing := cart.DefaultPricing()
	pricing.FreeShippingThreshold = threshold
	pricing.TaxRate = taxRate
	return pricing, nil
}
