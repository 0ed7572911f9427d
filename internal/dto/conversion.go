package dto

import "github.com/convertly/currency-gateway/internal/core/domain"

// ConvertQuery defines the query parameters of a conversion request. Amount is
// bound as a string so that non-numeric input surfaces as a validation error
// rather than a bind panic; it defaults to "1" when absent.
type ConvertQuery struct {
	From   string `form:"from" binding:"required,currencycode"`
	To     string `form:"to" binding:"required,currencycode"`
	Amount string `form:"amount"`
}

// ConvertResponse defines the data returned for a conversion. The pair fields and
// rate are present only for direct fiat-to-fiat conversions; composed conversions
// return the converted amount alone.
type ConvertResponse struct {
	From            string   `json:"from,omitempty"`
	To              string   `json:"to,omitempty"`
	OriginalAmount  *float64 `json:"original_amount,omitempty"`
	ConvertedAmount float64  `json:"converted_amount"`
	Rate            *float64 `json:"rate,omitempty"`
}

// ToConvertResponse converts a domain.ConversionResult to a ConvertResponse DTO.
// Amounts cross the JSON boundary as numbers, hence the float conversions.
func ToConvertResponse(result *domain.ConversionResult) ConvertResponse {
	resp := ConvertResponse{
		ConvertedAmount: result.ConvertedAmount.InexactFloat64(),
	}

	// A single directly-applicable rate means the full pair shape is returned.
	if result.Rate != nil {
		original := result.OriginalAmount.InexactFloat64()
		rate := result.Rate.InexactFloat64()
		resp.From = result.FromCode
		resp.To = result.ToCode
		resp.OriginalAmount = &original
		resp.Rate = &rate
	}

	return resp
}
