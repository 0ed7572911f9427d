package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/convertly/currency-gateway/internal/adapters/providers/coingecko"
	"github.com/convertly/currency-gateway/internal/adapters/providers/exchangerateapi"
	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
	"github.com/convertly/currency-gateway/internal/core/services"
	"github.com/convertly/currency-gateway/internal/handlers"
	"github.com/convertly/currency-gateway/internal/middleware"
	"github.com/convertly/currency-gateway/internal/platform/validation"
	"github.com/convertly/currency-gateway/pkg/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Currency Conversion Gateway API
// @version 1.0
// @description Converts amounts between fiat currencies and crypto assets, bridging through USD.

// @host localhost:8080
// @BasePath /
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	// Upstream provider clients
	fiatProvider := exchangerateapi.NewClient(cfg.ExchangeRateAPIBaseURL, cfg.ExchangeRateAPIKey, cfg.UpstreamTimeout, logger)
	marketProvider := coingecko.NewClient(cfg.CoinGeckoAPIBaseURL, cfg.UpstreamTimeout, cfg.CryptoMarketPageSize, logger)

	// The fiat code set is loaded once per process; a failed load is survivable
	// but downgrades every code to the crypto domain until restart.
	fiatCurrencies := services.NewFiatCurrencyService(fiatProvider, logger)
	if err := fiatCurrencies.Load(context.Background()); err != nil {
		logger.Warn("Failed to load fiat currency codes, all codes will classify as crypto",
			slog.String("error", err.Error()))
	}

	directory := services.NewSymbolDirectory(marketProvider, cfg.SymbolCacheTTL, logger)
	cryptoPrices := services.NewCryptoPriceService(directory, marketProvider, logger)

	container := &portssvc.ServiceContainer{
		Conversion:  services.NewConversionService(fiatProvider, fiatCurrencies, cryptoPrices, logger),
		CryptoPrice: cryptoPrices,
		Catalog:     services.NewCatalogService(fiatCurrencies, directory, logger),
	}

	if err := validation.RegisterCurrencyCode(); err != nil {
		logger.Error("Failed to register currency code validation", slog.String("error", err.Error()))
		os.Exit(1)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS for the browser frontend)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, container)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
