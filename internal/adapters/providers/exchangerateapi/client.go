package exchangerateapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/convertly/currency-gateway/internal/apperrors"
	"github.com/convertly/currency-gateway/internal/core/ports/providers"
	"github.com/shopspring/decimal"
)

// Client calls an exchangerate-api.com compatible pair-rate upstream.
// It is stateless per call.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a fiat pair-rate client with a bounded per-call timeout.
func NewClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

var _ providers.FiatRateProvider = (*Client)(nil)

type pairResponse struct {
	ConversionResult *float64 `json:"conversion_result"`
	ConversionRate   *float64 `json:"conversion_rate"`
}

type codesResponse struct {
	SupportedCodes [][]string `json:"supported_codes"`
}

// PairConversion converts amount of from into to with a single upstream pair call.
// Success requires both conversion_result and conversion_rate in the response.
func (c *Client) PairConversion(ctx context.Context, from, to string, amount decimal.Decimal) (*providers.PairConversion, error) {
	url := fmt.Sprintf("%s/%s/pair/%s/%s/%s", c.baseURL, c.apiKey, from, to, amount.String())

	c.logger.Debug("Issuing fiat pair conversion request",
		slog.String("from", from),
		slog.String("to", to),
	)

	var body pairResponse
	if err := c.getJSON(ctx, url, &body); err != nil {
		return nil, fmt.Errorf("pair conversion %s/%s: %w", from, to, err)
	}

	if body.ConversionResult == nil || body.ConversionRate == nil {
		return nil, fmt.Errorf("%w: pair conversion %s/%s missing conversion_result or conversion_rate", apperrors.ErrMalformedResponse, from, to)
	}

	return &providers.PairConversion{
		Rate:            decimal.NewFromFloat(*body.ConversionRate),
		ConvertedAmount: decimal.NewFromFloat(*body.ConversionResult),
	}, nil
}

// SupportedCodes lists the upstream's supported fiat codes as (code, name) pairs.
func (c *Client) SupportedCodes(ctx context.Context) ([]providers.SupportedCode, error) {
	url := fmt.Sprintf("%s/%s/codes", c.baseURL, c.apiKey)

	c.logger.Debug("Issuing fiat supported-codes request")

	var body codesResponse
	if err := c.getJSON(ctx, url, &body); err != nil {
		return nil, fmt.Errorf("supported codes: %w", err)
	}

	if body.SupportedCodes == nil {
		return nil, fmt.Errorf("%w: codes response missing supported_codes", apperrors.ErrMalformedResponse)
	}

	codes := make([]providers.SupportedCode, 0, len(body.SupportedCodes))
	for _, pair := range body.SupportedCodes {
		if len(pair) < 2 {
			return nil, fmt.Errorf("%w: supported_codes entry is not a (code, name) pair", apperrors.ErrMalformedResponse)
		}
		codes = append(codes, providers.SupportedCode{Code: pair[0], Name: pair[1]})
	}
	return codes, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
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
