package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/convertly/currency-gateway/internal/apperrors"
	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/convertly/currency-gateway/internal/core/ports/providers"
	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
)

// bitcoinID is the canonical id that must own the BTC symbol regardless of where it
// appears in the market listing; other coins sharing a ticker never displace the
// primary asset.
const bitcoinID = "bitcoin"

// directorySnapshot is an immutable symbol->asset map plus its fetch time. It is
// replaced wholesale on refresh; readers never observe a half-built map.
type directorySnapshot struct {
	bySymbol  map[string]domain.CryptoAsset
	assets    []domain.CryptoAsset // deduped, listing order; used by the catalog
	fetchedAt time.Time
}

// SymbolDirectory maps crypto ticker symbols to the market provider's canonical
// asset ids. It is populated lazily on first lookup and refreshed when the cached
// snapshot's age reaches the TTL. Concurrent cache misses collapse to a single
// in-flight refresh, and a failed refresh keeps serving the stale snapshot.
type SymbolDirectory struct {
	provider providers.CryptoMarketProvider
	ttl      time.Duration
	logger   *slog.Logger

	mu   sync.RWMutex
	snap *directorySnapshot

	// refreshMu serializes refreshes; callers that lose the race re-check snapshot
	// freshness instead of issuing a redundant upstream fetch.
	refreshMu sync.Mutex
}

// NewSymbolDirectory creates an empty directory refreshed on the given TTL.
func NewSymbolDirectory(provider providers.CryptoMarketProvider, ttl time.Duration, logger *slog.Logger) *SymbolDirectory {
	return &SymbolDirectory{
		provider: provider,
		ttl:      ttl,
		logger:   logger,
	}
}

var _ portssvc.CryptoDirectorySvcFacade = (*SymbolDirectory)(nil)

// Resolve maps a ticker symbol to the provider's canonical asset id. Unknown
// symbols return apperrors.ErrNotFound without a per-symbol network call.
func (d *SymbolDirectory) Resolve(ctx context.Context, symbol string) (string, error) {
	snap, err := d.snapshot(ctx)
	if err != nil {
		// Never-populated directory: every symbol is unresolvable until a
		// refresh succeeds, which is the caller's not-found case rather than a
		// hard provider failure.
		return "", fmt.Errorf("%w: crypto symbol %q (directory unavailable: %v)", apperrors.ErrNotFound, symbol, err)
	}

	asset, ok := snap.bySymbol[domain.NormalizeCode(symbol)]
	if !ok {
		return "", fmt.Errorf("%w: crypto symbol %q", apperrors.ErrNotFound, symbol)
	}
	return asset.ID, nil
}

// Assets returns the directory's current asset listing, refreshing it when stale.
func (d *SymbolDirectory) Assets(ctx context.Context) ([]domain.CryptoAsset, error) {
	snap, err := d.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.CryptoAsset, len(snap.assets))
	copy(out, snap.assets)
	return out, nil
}

func (d *SymbolDirectory) current() *directorySnapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.snap
}

func (d *SymbolDirectory) fresh(snap *directorySnapshot) bool {
	return snap != nil && time.Since(snap.fetchedAt) < d.ttl
}

// snapshot returns a fresh snapshot, refreshing if needed. When the refresh fetch
// fails and a stale snapshot exists, the stale one is served; with no snapshot at
// all the fetch error propagates.
func (d *SymbolDirectory) snapshot(ctx context.Context) (*directorySnapshot, error) {
	if snap := d.current(); d.fresh(snap) {
		return snap, nil
	}
	return d.refresh(ctx)
}

func (d *SymbolDirectory) refresh(ctx context.Context) (*directorySnapshot, error) {
	d.refreshMu.Lock()
	defer d.refreshMu.Unlock()

	// Another caller may have refreshed while we waited on the lock.
	if snap := d.current(); d.fresh(snap) {
		return snap, nil
	}

	d.logger.Info("Refreshing crypto symbol directory")

	listing, err := d.provider.TopAssets(ctx)
	if err != nil {
		if snap := d.current(); snap != nil {
			d.logger.Warn("Symbol directory refresh failed, serving stale snapshot",
				slog.String("error", err.Error()),
				slog.Duration("age", time.Since(snap.fetchedAt)),
			)
			return snap, nil
		}
		return nil, fmt.Errorf("failed to refresh symbol directory: %w", err)
	}

	snap := buildSnapshot(listing, time.Now())

	d.mu.Lock()
	d.snap = snap
	d.mu.Unlock()

	d.logger.Info("Crypto symbol directory refreshed", slog.Int("symbols", len(snap.bySymbol)))
	return snap, nil
}

// buildSnapshot keeps one asset per symbol: the first occurrence in listing order
// wins, except that the asset with the canonical bitcoin id always owns BTC.
func buildSnapshot(listing []domain.CryptoAsset, fetchedAt time.Time) *directorySnapshot {
	bySymbol := make(map[string]domain.CryptoAsset, len(listing))
	assets := make([]domain.CryptoAsset, 0, len(listing))

	for _, asset := range listing {
		symbol := domain.NormalizeCode(asset.Symbol)
		if symbol == "BTC" && asset.ID == bitcoinID {
			if prev, ok := bySymbol[symbol]; ok {
				// Displace whichever coin claimed BTC earlier in the listing.
				for i := range assets {
					if assets[i].ID == prev.ID && domain.NormalizeCode(assets[i].Symbol) == symbol {
						assets[i] = asset
						break
					}
				}
				bySymbol[symbol] = asset
				continue
			}
			bySymbol[symbol] = asset
			assets = append(assets, asset)
			continue
		}
		if _, ok := bySymbol[symbol]; ok {
			continue
		}
		bySymbol[symbol] = asset
		assets = append(assets, asset)
	}

	return &directorySnapshot{
		bySymbol:  bySymbol,
		assets:    assets,
		fetchedAt: fetchedAt,
	}
}
