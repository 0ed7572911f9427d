package services_test

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/convertly/currency-gateway/internal/apperrors"
	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/convertly/currency-gateway/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMarketProvider serves a configurable listing and counts upstream fetches.
type fakeMarketProvider struct {
	mu      sync.Mutex
	calls   int
	listing []domain.CryptoAsset
	err     error
	delay   time.Duration
}

func (f *fakeMarketProvider) TopAssets(ctx context.Context) ([]domain.CryptoAsset, error) {
	f.mu.Lock()
	f.calls++
	listing, err, delay := f.listing, f.err, f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func (f *fakeMarketProvider) SimplePriceUSD(ctx context.Context, id string) (decimal.Decimal, error) {
	return decimal.Zero, fmt.Errorf("%w: not implemented", apperrors.ErrProviderUnavailable)
}

func (f *fakeMarketProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func (f *fakeMarketProvider) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

func defaultListing() []domain.CryptoAsset {
	return []domain.CryptoAsset{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum"},
	}
}

func TestResolve_CachesWithinTTL(t *testing.T) {
	provider := &fakeMarketProvider{listing: defaultListing()}
	directory := services.NewSymbolDirectory(provider, time.Hour, slog.Default())
	ctx := context.Background()

	first, err := directory.Resolve(ctx, "BTC")
	require.NoError(t, err)
	second, err := directory.Resolve(ctx, "btc")
	require.NoError(t, err)

	assert.Equal(t, "bitcoin", first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, provider.callCount(), "resolves within the TTL must not refetch")
}

func TestResolve_RefreshesWhenExpired(t *testing.T) {
	provider := &fakeMarketProvider{listing: defaultListing()}
	directory := services.NewSymbolDirectory(provider, 0, slog.Default())
	ctx := context.Background()

	_, err := directory.Resolve(ctx, "ETH")
	require.NoError(t, err)
	_, err = directory.Resolve(ctx, "ETH")
	require.NoError(t, err)

	assert.Equal(t, 2, provider.callCount())
}

func TestResolve_ServesStaleSnapshotOnRefreshFailure(t *testing.T) {
	provider := &fakeMarketProvider{listing: defaultListing()}
	directory := services.NewSymbolDirectory(provider, 0, slog.Default())
	ctx := context.Background()

	_, err := directory.Resolve(ctx, "BTC")
	require.NoError(t, err)

	provider.setErr(fmt.Errorf("%w: status 503", apperrors.ErrProviderUnavailable))

	id, err := directory.Resolve(ctx, "BTC")
	require.NoError(t, err, "a failed refresh must fall back to the stale snapshot")
	assert.Equal(t, "bitcoin", id)
	assert.Equal(t, 2, provider.callCount())
}

func TestResolve_NotFoundUntilFirstRefreshSucceeds(t *testing.T) {
	provider := &fakeMarketProvider{listing: defaultListing()}
	provider.setErr(fmt.Errorf("%w: connection refused", apperrors.ErrProviderUnavailable))
	directory := services.NewSymbolDirectory(provider, time.Hour, slog.Default())
	ctx := context.Background()

	_, err := directory.Resolve(ctx, "BTC")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// Upstream recovers; the next resolve populates the directory.
	provider.setErr(nil)
	id, err := directory.Resolve(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", id)
}

func TestResolve_UnknownSymbol(t *testing.T) {
	provider := &fakeMarketProvider{listing: defaultListing()}
	directory := services.NewSymbolDirectory(provider, time.Hour, slog.Default())

	_, err := directory.Resolve(context.Background(), "ZZZ")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDirectory_BitcoinIDOwnsBTCSymbol(t *testing.T) {
	// A coin sharing the BTC ticker appears before bitcoin in the listing.
	provider := &fakeMarketProvider{listing: []domain.CryptoAsset{
		{ID: "batcoin", Symbol: "BTC", Name: "Batcoin"},
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum"},
	}}
	directory := services.NewSymbolDirectory(provider, time.Hour, slog.Default())
	ctx := context.Background()

	id, err := directory.Resolve(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", id)

	assets, err := directory.Assets(ctx)
	require.NoError(t, err)
	var btcNames []string
	for _, a := range assets {
		if a.Symbol == "BTC" {
			btcNames = append(btcNames, a.Name)
		}
	}
	assert.Equal(t, []string{"Bitcoin"}, btcNames, "only the canonical bitcoin entry may own BTC")
}

func TestDirectory_BitcoinDisplacementHandlesLowercaseTickers(t *testing.T) {
	// A provider reporting lowercase tickers must not defeat the displacement.
	provider := &fakeMarketProvider{listing: []domain.CryptoAsset{
		{ID: "batcoin", Symbol: "btc", Name: "Batcoin"},
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin"},
	}}
	directory := services.NewSymbolDirectory(provider, time.Hour, slog.Default())
	ctx := context.Background()

	id, err := directory.Resolve(ctx, "BTC")
	require.NoError(t, err)
	assert.Equal(t, "bitcoin", id)

	assets, err := directory.Assets(ctx)
	require.NoError(t, err)
	require.Len(t, assets, 1)
	assert.Equal(t, "Bitcoin", assets[0].Name)
}

func TestDirectory_FirstListedAssetWinsTicker(t *testing.T) {
	provider := &fakeMarketProvider{listing: []domain.CryptoAsset{
		{ID: "first-coin", Symbol: "ABC", Name: "First Coin"},
		{ID: "second-coin", Symbol: "ABC", Name: "Second Coin"},
	}}
	directory := services.NewSymbolDirectory(provider, time.Hour, slog.Default())

	id, err := directory.Resolve(context.Background(), "ABC")
	require.NoError(t, err)
	assert.Equal(t, "first-coin", id)
}

func TestDirectory_ConcurrentMissesCollapseToOneFetch(t *testing.T) {
	provider := &fakeMarketProvider{listing: defaultListing(), delay: 50 * time.Millisecond}
	directory := services.NewSymbolDirectory(provider, time.Hour, slog.Default())
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := directory.Resolve(ctx, "BTC")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	assert.Equal(t, 1, provider.callCount(), "simultaneous misses must share one in-flight refresh")
}
