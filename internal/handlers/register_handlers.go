package handlers

import (
	"github.com/convertly/currency-gateway/cmd/docs"
	portssvc "github.com/convertly/currency-gateway/internal/core/ports/services"
	"github.com/convertly/currency-gateway/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Conversion lives at the root, matching the consumer contract
	registerConversionRoutes(r, services.Conversion)

	// Discovery routes under /api
	api := r.Group("/api")
	registerCurrencyRoutes(api, services.Catalog)
	registerCryptoPriceRoutes(api, services.CryptoPrice)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
