package domain

import "github.com/shopspring/decimal"

// ConversionResult is the outcome of a successful conversion. Rate is set only when
// a single upstream rate directly applies (fiat→fiat); composed conversions carry
// no single rate.
type ConversionResult struct {
	FromCode        string
	ToCode          string
	OriginalAmount  decimal.Decimal
	ConvertedAmount decimal.Decimal
	Rate            *decimal.Decimal
}

// Rounding scale applied to a converted amount, chosen by result class: fiat-terminal
// amounts round the way the pair-rate upstream quotes them, crypto-terminal and
// composed amounts keep satoshi-level precision.
const (
	FiatScale   = 2
	CryptoScale = 8
)
