package dto

import "github.com/shopspring/decimal"

// CryptoPriceQuery defines the query parameters of a crypto price request.
// Only USD quotes are supported.
type CryptoPriceQuery struct {
	CryptoID   string `form:"crypto_id" binding:"required,currencycode"`
	VsCurrency string `form:"vs_currency"`
}

// CryptoPriceResponse defines the data returned for a crypto price lookup.
type CryptoPriceResponse struct {
	CryptoID   string  `json:"crypto_id"`
	VsCurrency string  `json:"vs_currency"`
	Price      float64 `json:"price"`
}

// ToCryptoPriceResponse converts a priced symbol to a CryptoPriceResponse DTO.
func ToCryptoPriceResponse(symbol string, price decimal.Decimal) CryptoPriceResponse {
	return CryptoPriceResponse{
		CryptoID:   symbol,
		VsCurrency: "usd",
		Price:      price.InexactFloat64(),
	}
}
