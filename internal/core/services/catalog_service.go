package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/convertly/currency-gateway/internal/core/domain"
	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
)

// CatalogService merges the fiat code list and the crypto symbol list into one
// code->display-name lookup table for client discovery.
type CatalogService struct {
	fiatCurrencies portssvc.FiatCurrencySvcFacade
	directory      portssvc.CryptoDirectorySvcFacade
	logger         *slog.Logger
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(fiatCurrencies portssvc.FiatCurrencySvcFacade, directory portssvc.CryptoDirectorySvcFacade, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		fiatCurrencies: fiatCurrencies,
		directory:      directory,
		logger:         logger,
	}
}

var _ portssvc.CatalogSvcFacade = (*CatalogService)(nil)

// ListAll returns currency code to display name for every known currency. Both
// sources are fetched concurrently, and either one failing fails the whole call:
// a partial catalog is never served. On a code present in both sets the crypto
// entry wins; crypto listings are the more authoritative side for ambiguous tickers.
func (s *CatalogService) ListAll(ctx context.Context) (map[string]string, error) {
	type fiatResult struct {
		names map[string]string
		err   error
	}

	fiatCh := make(chan fiatResult, 1)
	go func() {
		names, err := s.fiatCurrencies.Names(ctx)
		fiatCh <- fiatResult{names: names, err: err}
	}()

	assets, cryptoErr := s.directory.Assets(ctx)
	fiat := <-fiatCh

	if fiat.err != nil {
		return nil, fmt.Errorf("currency catalog unavailable: %w", fiat.err)
	}
	if cryptoErr != nil {
		return nil, fmt.Errorf("currency catalog unavailable: %w", cryptoErr)
	}

	catalog := make(map[string]string, len(fiat.names)+len(assets))
	for code, name := range fiat.names {
		catalog[code] = name
	}
	for _, asset := range assets {
		catalog[domain.NormalizeCode(asset.Symbol)] = asset.Name
	}

	s.logger.Info("Currency catalog merged",
		slog.Int("fiat", len(fiat.names)),
		slog.Int("crypto", len(assets)),
		slog.Int("total", len(catalog)),
	)
	return catalog, nil
}
