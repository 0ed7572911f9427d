package services

import (
	"context"

	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConversionSvcFacade routes a conversion request through the matching strategy.
type ConversionSvcFacade interface {
	// Convert converts amount of from into to, composing upstream rates as needed.
	Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error)
}

// CryptoPriceSvcFacade prices crypto symbols in USD.
type CryptoPriceSvcFacade interface {
	// PriceInUSD resolves symbol to its canonical id and fetches the current USD price.
	PriceInUSD(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// CatalogSvcFacade serves the merged fiat + crypto currency catalog.
type CatalogSvcFacade interface {
	// ListAll returns currency code to display name for every known currency.
	ListAll(ctx context.Context) (map[string]string, error)
}

// FiatCurrencySvcFacade exposes the process-wide fiat currency set.
type FiatCurrencySvcFacade interface {
	// IsFiat reports whether code belongs to the known fiat currency set.
	IsFiat(code string) bool

	// Names returns fiat currency code to display name, or an error if the set
	// was never loaded.
	Names(ctx context.Context) (map[string]string, error)
}

// CryptoDirectorySvcFacade exposes the crypto symbol directory.
type CryptoDirectorySvcFacade interface {
	// Resolve maps a ticker symbol to the provider's canonical asset id.
	Resolve(ctx context.Context, symbol string) (string, error)

	// Assets returns the directory's current asset listing, refreshing it when stale.
	Assets(ctx context.Context) ([]domain.CryptoAsset, error)
}
