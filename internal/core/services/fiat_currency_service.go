package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/convertly/currency-gateway/internal/apperrors"
	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/convertly/currency-gateway/internal/core/ports/providers"
	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
)

// FiatCurrencyService holds the process-wide set of known fiat currency codes and
// their display names. The set is loaded once at startup and never refreshed; fiat
// code lists change rarely enough that a restart suffices.
type FiatCurrencyService struct {
	provider providers.FiatRateProvider
	logger   *slog.Logger

	mu    sync.RWMutex
	names map[string]string // code -> display name; nil until a load succeeds
}

// NewFiatCurrencyService creates a FiatCurrencyService with an empty code set.
func NewFiatCurrencyService(provider providers.FiatRateProvider, logger *slog.Logger) *FiatCurrencyService {
	return &FiatCurrencyService{
		provider: provider,
		logger:   logger,
	}
}

var _ portssvc.FiatCurrencySvcFacade = (*FiatCurrencyService)(nil)

// Load fetches the supported fiat codes from the upstream provider. Intended to be
// called once at startup; on failure the set stays empty and every code classifies
// as crypto until the process restarts.
func (s *FiatCurrencyService) Load(ctx context.Context) error {
	codes, err := s.provider.SupportedCodes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load fiat currency codes: %w", err)
	}

	names := make(map[string]string, len(codes))
	for _, c := range codes {
		names[domain.NormalizeCode(c.Code)] = c.Name
	}

	s.mu.Lock()
	s.names = names
	s.mu.Unlock()

	s.logger.Info("Loaded fiat currency codes", slog.Int("count", len(names)))
	return nil
}

// IsFiat reports whether code belongs to the known fiat currency set.
func (s *FiatCurrencyService) IsFiat(code string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[domain.NormalizeCode(code)]
	return ok
}

// Names returns fiat currency code to display name for the whole set. It fails when
// the set was never loaded, so callers that need the full catalog do not serve a
// partial one.
func (s *FiatCurrencyService) Names(ctx context.Context) (map[string]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.names == nil {
		return nil, fmt.Errorf("%w: fiat currency codes never loaded", apperrors.ErrProviderUnavailable)
	}

	out := make(map[string]string, len(s.names))
	for code, name := range s.names {
		out[code] = name
	}
	return out, nil
}
