package validation

import (
	"errors"
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// currencyCodeRx matches fiat codes and crypto tickers alike. Case-insensitive;
// codes are canonicalized later, so both "usd" and "USD" bind.
var currencyCodeRx = regexp.MustCompile(`^[A-Za-z0-9]{2,10}$`)

// RegisterCurrencyCode registers the "currencycode" rule on gin's binding
// validator engine. Must be called once before the router handles requests.
func RegisterCurrencyCode() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin binding validator engine is not *validator.Validate")
	}
	return v.RegisterValidation("currencycode", func(fl validator.FieldLevel) bool {
		return currencyCodeRx.MatchString(fl.Field().String())
	})
}
