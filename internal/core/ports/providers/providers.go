package providers

import (
	"context"

	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PairConversion is the upstream pair-rate answer for one (from, to, amount) request.
type PairConversion struct {
	Rate            decimal.Decimal
	ConvertedAmount decimal.Decimal
}

// SupportedCode is one (code, name) pair from the fiat provider's codes listing.
type SupportedCode struct {
	Code string
	Name string
}

// FiatRateProvider wraps the fiat pair-rate upstream.
type FiatRateProvider interface {
	// PairConversion converts amount of from into to using a single upstream rate.
	PairConversion(ctx context.Context, from, to string, amount decimal.Decimal) (*PairConversion, error)

	// SupportedCodes lists the fiat currency codes the upstream can convert.
	SupportedCodes(ctx context.Context) ([]SupportedCode, error)
}

// CryptoMarketProvider wraps the crypto market-listing and simple-price upstream.
type CryptoMarketProvider interface {
	// TopAssets lists the top assets by market capitalization, in listing order.
	TopAssets(ctx context.Context) ([]domain.CryptoAsset, error)

	// SimplePriceUSD returns the current USD price for a canonical asset id.
	// A response without a price for the id is apperrors.ErrNotFound; transport
	// and HTTP failures are apperrors.ErrProviderUnavailable.
	SimplePriceUSD(ctx context.Context, id string) (decimal.Decimal, error)
}
