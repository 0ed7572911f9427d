package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/convertly/currency-gateway/internal/core/ports/providers"
	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// CryptoPriceService prices crypto ticker symbols in USD, resolving them to
// canonical ids through the symbol directory first.
type CryptoPriceService struct {
	directory portssvc.CryptoDirectorySvcFacade
	provider  providers.CryptoMarketProvider
	logger    *slog.Logger
}

// NewCryptoPriceService creates a new CryptoPriceService.
func NewCryptoPriceService(directory portssvc.CryptoDirectorySvcFacade, provider providers.CryptoMarketProvider, logger *slog.Logger) *CryptoPriceService {
	return &CryptoPriceService{
		directory: directory,
		provider:  provider,
		logger:    logger,
	}
}

var _ portssvc.CryptoPriceSvcFacade = (*CryptoPriceService)(nil)

// PriceInUSD returns the current USD price for a ticker symbol. Resolution failure
// returns apperrors.ErrNotFound without issuing a price call.
func (s *CryptoPriceService) PriceInUSD(ctx context.Context, symbol string) (decimal.Decimal, error) {
	id, err := s.directory.Resolve(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}

	price, err := s.provider.SimplePriceUSD(ctx, id)
	if err != nil {
		s.logger.Warn("Crypto price lookup failed",
			slog.String("symbol", symbol),
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return decimal.Zero, fmt.Errorf("failed to price %s: %w", symbol, err)
	}
	return price, nil
}
