package services_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/convertly/currency-gateway/internal/apperrors"
	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/convertly/currency-gateway/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Mock CryptoMarketProvider ---
type MockCryptoMarketProvider struct {
	mock.Mock
}

func (m *MockCryptoMarketProvider) TopAssets(ctx context.Context) ([]domain.CryptoAsset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CryptoAsset), args.Error(1)
}

func (m *MockCryptoMarketProvider) SimplePriceUSD(ctx context.Context, id string) (decimal.Decimal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

// stubDirectory resolves from a fixed symbol->id table.
type stubDirectory struct {
	ids map[string]string
}

func (s *stubDirectory) Resolve(ctx context.Context, symbol string) (string, error) {
	id, ok := s.ids[symbol]
	if !ok {
		return "", fmt.Errorf("%w: crypto symbol %q", apperrors.ErrNotFound, symbol)
	}
	return id, nil
}

func (s *stubDirectory) Assets(ctx context.Context) ([]domain.CryptoAsset, error) {
	out := make([]domain.CryptoAsset, 0, len(s.ids))
	for symbol, id := range s.ids {
		out = append(out, domain.CryptoAsset{ID: id, Symbol: symbol})
	}
	return out, nil
}

func TestPriceInUSD_ResolvesThenPrices(t *testing.T) {
	provider := new(MockCryptoMarketProvider)
	directory := &stubDirectory{ids: map[string]string{"BTC": "bitcoin"}}
	service := services.NewCryptoPriceService(directory, provider, slog.Default())
	ctx := context.Background()

	provider.On("SimplePriceUSD", ctx, "bitcoin").Return(decimal.RequireFromString("50000.25"), nil).Once()

	price, err := service.PriceInUSD(ctx, "BTC")

	require.NoError(t, err)
	assert.True(t, price.Equal(decimal.RequireFromString("50000.25")), "got %s", price)
	provider.AssertExpectations(t)
}

func TestPriceInUSD_UnresolvedSymbolSkipsPriceCall(t *testing.T) {
	provider := new(MockCryptoMarketProvider)
	directory := &stubDirectory{ids: map[string]string{"BTC": "bitcoin"}}
	service := services.NewCryptoPriceService(directory, provider, slog.Default())

	_, err := service.PriceInUSD(context.Background(), "ZZZ")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	provider.AssertNotCalled(t, "SimplePriceUSD", mock.Anything, mock.Anything)
}

func TestPriceInUSD_PriceFailurePreservesKind(t *testing.T) {
	provider := new(MockCryptoMarketProvider)
	directory := &stubDirectory{ids: map[string]string{"ETH": "ethereum"}}
	service := services.NewCryptoPriceService(directory, provider, slog.Default())
	ctx := context.Background()

	provider.On("SimplePriceUSD", ctx, "ethereum").
		Return(decimal.Zero, fmt.Errorf("%w: status 503", apperrors.ErrProviderUnavailable)).Once()

	_, err := service.PriceInUSD(ctx, "ETH")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
	assert.Contains(t, err.Error(), "failed to price ETH")
}
