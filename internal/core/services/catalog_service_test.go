package services_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/convertly/currency-gateway/internal/apperrors"
	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/convertly/currency-gateway/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingFiatSet always reports an unloaded fiat code set.
type failingFiatSet struct{}

func (failingFiatSet) IsFiat(code string) bool {
	return false
}

func (failingFiatSet) Names(ctx context.Context) (map[string]string, error) {
	return nil, fmt.Errorf("%w: fiat currency codes never loaded", apperrors.ErrProviderUnavailable)
}

// fakeDirectory serves a fixed asset listing.
type fakeDirectory struct {
	assets []domain.CryptoAsset
	err    error
}

func (f *fakeDirectory) Resolve(ctx context.Context, symbol string) (string, error) {
	return "", fmt.Errorf("%w: crypto symbol %q", apperrors.ErrNotFound, symbol)
}

func (f *fakeDirectory) Assets(ctx context.Context) ([]domain.CryptoAsset, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.assets, nil
}

func TestListAll_MergesBothSources(t *testing.T) {
	fiat := fakeFiatSet{"USD": "US Dollar", "EUR": "Euro"}
	directory := &fakeDirectory{assets: []domain.CryptoAsset{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"},
		{ID: "ethereum", Symbol: "ETH", Name: "Ethereum"},
	}}
	svc := services.NewCatalogService(fiat, directory, slog.Default())

	catalog, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"USD": "US Dollar",
		"EUR": "Euro",
		"BTC": "Bitcoin",
		"ETH": "Ethereum",
	}, catalog)
}

func TestListAll_CryptoNameWinsCollision(t *testing.T) {
	// A ticker present in both symbol spaces resolves to the crypto name.
	fiat := fakeFiatSet{"USD": "US Dollar", "XBT": "Some Fiat XBT"}
	directory := &fakeDirectory{assets: []domain.CryptoAsset{
		{ID: "xbt-coin", Symbol: "XBT", Name: "XBT Coin"},
	}}
	svc := services.NewCatalogService(fiat, directory, slog.Default())

	catalog, err := svc.ListAll(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "XBT Coin", catalog["XBT"])
	assert.Equal(t, "US Dollar", catalog["USD"])
}

func TestListAll_FailsWhenFiatSourceFails(t *testing.T) {
	directory := &fakeDirectory{assets: []domain.CryptoAsset{
		{ID: "bitcoin", Symbol: "BTC", Name: "Bitcoin"},
	}}
	svc := services.NewCatalogService(failingFiatSet{}, directory, slog.Default())

	catalog, err := svc.ListAll(context.Background())

	require.Error(t, err, "a partial catalog must never be served")
	assert.Nil(t, catalog)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}

func TestListAll_FailsWhenCryptoSourceFails(t *testing.T) {
	fiat := fakeFiatSet{"USD": "US Dollar"}
	directory := &fakeDirectory{err: fmt.Errorf("%w: status 429", apperrors.ErrProviderUnavailable)}
	svc := services.NewCatalogService(fiat, directory, slog.Default())

	catalog, err := svc.ListAll(context.Background())

	require.Error(t, err)
	assert.Nil(t, catalog)
	assert.ErrorIs(t, err, apperrors.ErrProviderUnavailable)
}
