package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
	"github.com/convertly/currency-gateway/internal/dto"
	"github.com/convertly/currency-gateway/internal/middleware"
	"github.com/gin-gonic/gin"
)

// cryptoPriceHandler handles HTTP requests for single crypto price lookups.
type cryptoPriceHandler struct {
	priceService portssvc.CryptoPriceSvcFacade
}

// newCryptoPriceHandler creates a new cryptoPriceHandler.
func newCryptoPriceHandler(ps portssvc.CryptoPriceSvcFacade) *cryptoPriceHandler {
	return &cryptoPriceHandler{
		priceService: ps,
	}
}

// registerCryptoPriceRoutes registers the crypto price route.
func registerCryptoPriceRoutes(rg *gin.RouterGroup, priceService portssvc.CryptoPriceSvcFacade) {
	h := newCryptoPriceHandler(priceService)
	rg.GET("/crypto_price", h.getCryptoPrice)
}

// getCryptoPrice godoc
// @Summary Get the USD price of a crypto symbol
// @Description Resolves the ticker through the symbol directory and quotes it in USD
// @Tags currencies
// @Produce  json
// @Param   crypto_id   query string true  "Crypto ticker symbol"
// @Param   vs_currency query string false "Quote currency (only usd)"
// @Success 200 {object} dto.CryptoPriceResponse
// @Failure 400 {object} map[string]string "Unknown symbol or unsupported quote currency"
// @Failure 502 {object} map[string]string "Upstream provider failure"
// @Router /api/crypto_price [get]
func (h *cryptoPriceHandler) getCryptoPrice(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var query dto.CryptoPriceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		logger.Warn("Failed to bind crypto price query", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing or invalid crypto_id"})
		return
	}

	if query.VsCurrency != "" && !strings.EqualFold(query.VsCurrency, "usd") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only usd quotes are supported"})
		return
	}

	logger.Info("Received crypto price request", slog.String("crypto_id", query.CryptoID))

	price, err := h.priceService.PriceInUSD(c.Request.Context(), query.CryptoID)
	if err != nil {
		respondConversionError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCryptoPriceResponse(query.CryptoID, price))
}
