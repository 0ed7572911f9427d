package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/convertly/currency-gateway/internal/apperrors"
	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
	"github.com/convertly/currency-gateway/internal/dto"
	"github.com/convertly/currency-gateway/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// conversionHandler handles HTTP requests for currency conversions.
type conversionHandler struct {
	conversionService portssvc.ConversionSvcFacade
}

// newConversionHandler creates a new conversionHandler.
func newConversionHandler(cs portssvc.ConversionSvcFacade) *conversionHandler {
	return &conversionHandler{
		conversionService: cs,
	}
}

// registerConversionRoutes registers the conversion route.
func registerConversionRoutes(r *gin.Engine, conversionService portssvc.ConversionSvcFacade) {
	h := newConversionHandler(conversionService)
	r.GET("/convert", h.convert)
}

// convert godoc
// @Summary Convert an amount between two currencies
// @Description Converts between fiat and crypto currencies, bridging through USD when the domains differ
// @Tags conversion
// @Produce  json
// @Param   from   query string true  "Source currency code or crypto ticker"
// @Param   to     query string true  "Target currency code or crypto ticker"
// @Param   amount query number false "Amount to convert (default 1)"
// @Success 200 {object} dto.ConvertResponse
// @Failure 400 {object} map[string]string "Validation failure or unknown currency"
// @Failure 502 {object} map[string]string "Upstream provider failure"
// @Router /convert [get]
func (h *conversionHandler) convert(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.ConvertQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind conversion query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid required parameters"})
		return
	}

	// The original amount defaults to one unit of the source currency.
	if query.Amount == "" {
		query.Amount = "1"
	}
	amount, err := decimal.NewFromString(query.Amount)
	if err != nil {
		logger.Warn("Non-numeric conversion amount", slog.String("amount", query.Amount))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid amount. Must be a number"})
		return
	}

	logger.Info("Received conversion request",
		slog.String("from", query.From),
		slog.String("to", query.To),
		slog.String("amount", amount.String()),
	)

	result, err := h.conversionService.Convert(c.Request.Context(), query.From, query.To, amount)
	if err != nil {
		respondConversionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConvertResponse(result))
}

// respondConversionError maps a service error to an HTTP status: client-correctable
// failures are 4xx, upstream-side failures 5xx. The underlying kind is preserved in
// the message; no half-computed result is ever returned.
func respondConversionError(c *gin.Context, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Conversion rejected", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrProviderUnavailable), errors.Is(err, apperrors.ErrMalformedResponse):
		logger.Error("Conversion failed upstream", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error("Conversion failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Conversion failed"})
	}
}
