package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
	"github.com/convertly/currency-gateway/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests for the merged currency catalog.
type currencyHandler struct {
	catalogService portssvc.CatalogSvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CatalogSvcFacade) *currencyHandler {
	return &currencyHandler{
		catalogService: cs,
	}
}

// registerCurrencyRoutes registers routes related to the currency catalog.
func registerCurrencyRoutes(rg *gin.RouterGroup, catalogService portssvc.CatalogSvcFacade) {
	h := newCurrencyHandler(catalogService)
	rg.GET("/currencies", h.listCurrencies)
}

// listCurrencies godoc
// @Summary List all known currencies
// @Description Returns the merged fiat and crypto catalog as code to display name
// @Tags currencies
// @Produce  json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string "Either catalog source failed"
// @Router /api/currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	logger.Info("Received request to list currencies")

	catalog, err := h.catalogService.ListAll(c.Request.Context())
	if err != nil {
		// Consistency over availability: either source failing fails the read.
		logger.Error("Failed to build currency catalog", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load currency data"})
		return
	}

	c.JSON(http.StatusOK, catalog)
}
