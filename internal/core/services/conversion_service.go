package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/convertly/currency-gateway/internal/apperrors"
	"github.com/convertly/currency-gateway/internal/core/domain"
	"github.com/convertly/currency-gateway/internal/core/ports/providers"
	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// bridgeCode is the fiat currency both cross-domain strategies bridge through,
// because the crypto provider prices everything in USD.
const bridgeCode = "USD"

// ConversionService classifies the two currency codes, selects the matching
// conversion strategy, invokes the needed clients and composes the result. Any
// upstream failure aborts the whole request with a typed error; partial results
// are never returned.
type ConversionService struct {
	fiatProvider   providers.FiatRateProvider
	fiatCurrencies portssvc.FiatCurrencySvcFacade
	cryptoPrices   portssvc.CryptoPriceSvcFacade
	logger         *slog.Logger
}

// NewConversionService creates a new ConversionService.
func NewConversionService(
	fiatProvider providers.FiatRateProvider,
	fiatCurrencies portssvc.FiatCurrencySvcFacade,
	cryptoPrices portssvc.CryptoPriceSvcFacade,
	logger *slog.Logger,
) *ConversionService {
	return &ConversionService{
		fiatProvider:   fiatProvider,
		fiatCurrencies: fiatCurrencies,
		cryptoPrices:   cryptoPrices,
		logger:         logger,
	}
}

var _ portssvc.ConversionSvcFacade = (*ConversionService)(nil)

// route is the classified (from, to) domain pair a conversion dispatches on.
type route struct {
	from domain.CurrencyKind
	to   domain.CurrencyKind
}

// Convert converts amount of from into to.
func (s *ConversionService) Convert(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	from = domain.NormalizeCode(from)
	to = domain.NormalizeCode(to)

	if from == "" || to == "" {
		return nil, fmt.Errorf("%w: from and to currency codes are required", apperrors.ErrValidation)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be greater than zero", apperrors.ErrValidation)
	}

	// Classify once; every branch below matches on the tag pair. A code outside
	// the fiat set is taken to be a crypto symbol and fails later with a not-found
	// error if the directory cannot resolve it.
	r := route{from: s.classify(from), to: s.classify(to)}

	s.logger.Info("Routing conversion",
		slog.String("from", from),
		slog.String("to", to),
		slog.String("from_kind", r.from.String()),
		slog.String("to_kind", r.to.String()),
	)

	switch r {
	case route{from: domain.KindFiat, to: domain.KindFiat}:
		return s.convertFiatToFiat(ctx, from, to, amount)
	case route{from: domain.KindFiat, to: domain.KindCrypto}:
		return s.convertFiatToCrypto(ctx, from, to, amount)
	case route{from: domain.KindCrypto, to: domain.KindCrypto}:
		return s.convertCryptoToCrypto(ctx, from, to, amount)
	case route{from: domain.KindCrypto, to: domain.KindFiat}:
		return s.convertCryptoToFiat(ctx, from, to, amount)
	}
	return nil, fmt.Errorf("%w: unsupported conversion %s to %s", apperrors.ErrValidation, from, to)
}

func (s *ConversionService) classify(code string) domain.CurrencyKind {
	if s.fiatCurrencies.IsFiat(code) {
		return domain.KindFiat
	}
	return domain.KindCrypto
}

// convertFiatToFiat delegates to the pair-rate provider; a single upstream rate
// applies directly, so the result carries it.
func (s *ConversionService) convertFiatToFiat(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	pair, err := s.fiatProvider.PairConversion(ctx, from, to, amount)
	if err != nil {
		return nil, fmt.Errorf("fiat to fiat %s/%s: %w", from, to, err)
	}

	rate := pair.Rate
	return &domain.ConversionResult{
		FromCode:        from,
		ToCode:          to,
		OriginalAmount:  amount,
		ConvertedAmount: pair.ConvertedAmount.Round(domain.FiatScale),
		Rate:            &rate,
	}, nil
}

// convertFiatToCrypto bridges through USD: the fiat leg converts amount into USD,
// the crypto leg divides by the target's USD price. The result composes two rates,
// so it carries none. The fiat leg rounds to 2 decimals at the upstream boundary
// before the crypto leg divides.
func (s *ConversionService) convertFiatToCrypto(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	bridge, err := s.fiatProvider.PairConversion(ctx, from, bridgeCode, amount)
	if err != nil {
		return nil, fmt.Errorf("fiat to crypto: bridge conversion to USD failed: %w", err)
	}
	usdAmount := bridge.ConvertedAmount.Round(domain.FiatScale)

	price, err := s.cryptoPrices.PriceInUSD(ctx, to)
	if err != nil {
		return nil, fmt.Errorf("fiat to crypto: no price for %s: %w", to, err)
	}
	if price.IsZero() {
		return nil, fmt.Errorf("%w: zero usd price for %s", apperrors.ErrMalformedResponse, to)
	}

	return &domain.ConversionResult{
		FromCode:        from,
		ToCode:          to,
		OriginalAmount:  amount,
		ConvertedAmount: usdAmount.DivRound(price, domain.CryptoScale),
	}, nil
}

// convertCryptoToCrypto composes the two USD prices. Both are fetched
// concurrently; there is no ordering dependency between them.
func (s *ConversionService) convertCryptoToCrypto(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	type priced struct {
		price decimal.Decimal
		err   error
	}

	fromCh := make(chan priced, 1)
	go func() {
		price, err := s.cryptoPrices.PriceInUSD(ctx, from)
		fromCh <- priced{price: price, err: err}
	}()

	toPrice, toErr := s.cryptoPrices.PriceInUSD(ctx, to)
	fromRes := <-fromCh

	if fromRes.err != nil {
		return nil, fmt.Errorf("crypto to crypto: no price for %s: %w", from, fromRes.err)
	}
	if toErr != nil {
		return nil, fmt.Errorf("crypto to crypto: no price for %s: %w", to, toErr)
	}
	if toPrice.IsZero() {
		return nil, fmt.Errorf("%w: zero usd price for %s", apperrors.ErrMalformedResponse, to)
	}

	return &domain.ConversionResult{
		FromCode:        from,
		ToCode:          to,
		OriginalAmount:  amount,
		ConvertedAmount: amount.Mul(fromRes.price).DivRound(toPrice, domain.CryptoScale),
	}, nil
}

// convertCryptoToFiat multiplies by the source's USD price. The fiat leg is assumed
// to be USD: a non-USD target currently receives a USD-denominated amount labeled
// with its own code.
// TODO: bridge the residual USD leg with a second pair-rate call when to != USD.
func (s *ConversionService) convertCryptoToFiat(ctx context.Context, from, to string, amount decimal.Decimal) (*domain.ConversionResult, error) {
	price, err := s.cryptoPrices.PriceInUSD(ctx, from)
	if err != nil {
		return nil, fmt.Errorf("crypto to fiat: no price for %s: %w", from, err)
	}

	return &domain.ConversionResult{
		FromCode:        from,
		ToCode:          to,
		OriginalAmount:  amount,
		ConvertedAmount: amount.Mul(price).Round(domain.FiatScale),
	}, nil
}
