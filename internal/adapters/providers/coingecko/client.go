package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/convertly/currency-gateway/internal/apperrors"
	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/convertly/currency-gateway/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// Client calls a CoinGecko compatible crypto market upstream.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a crypto market client. pageSize bounds the market listing
// used to build the symbol directory.
func NewClient(baseURL string, timeout time.Duration, pageSize int, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		pageSize:   pageSize,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ providers.CryptoMarketProvider = (*Client)(nil)

type marketEntry struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// TopAssets lists the top assets by market capitalization, in listing order.
func (c *Client) TopAssets(ctx context.Context) ([]domain.CryptoAsset, error) {
	reqURL := fmt.Sprintf("%s/coins/markets?vs_currency=usd&order=market_cap_desc&per_page=%d&page=1", c.baseURL, c.pageSize)

	c.logger.Debug("Issuing crypto market-listing request", slog.Int("page_size", c.pageSize))

	var entries []marketEntry
	if err := c.getJSON(ctx, reqURL, &entries); err != nil {
		return nil, fmt.Errorf("market listing: %w", err)
	}

	assets := make([]domain.CryptoAsset, 0, len(entries))
	for _, e := range entries {
		if e.ID == "" || e.Symbol == "" {
			return nil, fmt.Errorf("%w: market listing entry missing id or symbol", apperrors.ErrMalformedResponse)
		}
		assets = append(assets, domain.CryptoAsset{
			ID:     e.ID,
			Symbol: strings.ToUpper(e.Symbol),
			Name:   e.Name,
		})
	}
	return assets, nil
}

// SimplePriceUSD fetches the current USD price for a canonical asset id.
// A 2xx response that lacks a price for the id is apperrors.ErrNotFound.
func (c *Client) SimplePriceUSD(ctx context.Context, id string) (decimal.Decimal, error) {
	reqURL := fmt.Sprintf("%s/simple/price?ids=%s&vs_currencies=usd", c.baseURL, url.QueryEscape(id))

	c.logger.Debug("Issuing crypto simple-price request", slog.String("id", id))

	var body map[string]map[string]float64
	if err := c.getJSON(ctx, reqURL, &body); err != nil {
		return decimal.Zero, fmt.Errorf("simple price for %q: %w", id, err)
	}

	usd, ok := body[id]["usd"]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: no usd price for %q", apperrors.ErrNotFound, id)
	}
	return decimal.NewFromFloat(usd), nil
}

func (c *Client) getJSON(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("%w: building request: %v", apperrors.ErrProviderUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", apperrors.ErrProviderUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding body: %v", apperrors.ErrMalformedResponse, err)
	}
	return nil
}
