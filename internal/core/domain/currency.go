package domain

import "strings"

// CurrencyKind tags a currency code as fiat or crypto. Classification happens once,
// in the conversion service, and every routing branch matches on the tag instead of
// re-testing set membership.
type CurrencyKind int

const (
	KindFiat CurrencyKind = iota
	KindCrypto
)

func (k CurrencyKind) String() string {
	switch k {
	case KindFiat:
		return "fiat"
	case KindCrypto:
		return "crypto"
	}
	return "unknown"
}

// NormalizeCode canonicalizes a currency code for classification and map lookups.
// Comparison is case-insensitive throughout; upstream crypto calls lowercase their
// identifiers separately (upstream convention).
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// CryptoAsset is one listing from the crypto market provider.
type CryptoAsset struct {
	ID     string // provider canonical id, e.g. "bitcoin"
	Symbol string // ticker, uppercase, e.g. "BTC"
	Name   string // display name, e.g. "Bitcoin"
}
