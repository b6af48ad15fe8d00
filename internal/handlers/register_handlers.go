package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/brtdigital/remesa-backend/cmd/docs"
	portssvc "github.com/brtdigital/remesa-backend/internal/core/ports/services"
	"github.com/brtdigital/remesa-backend/internal/middleware"
	"github.com/brtdigital/remesa-backend/pkg/config"
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

	// Public authentication routes
	public := r.Group("/api/v1")
	registerAuthRoutes(public, services.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Staff-only routes additionally pass the role gate
	staff := middleware.RequireStaff()

	registerUserRoutes(v1, staff, services.User)
	registerCurrencyRoutes(v1, staff, services.Currency)
	registerExchangeRateRoutes(v1, staff, services.ExchangeRate)
	registerRangeRoutes(v1, staff, services.Range)
	registerCommissionRoutes(v1, staff, services.Commission)
	registerCouponRoutes(v1, staff, services.Coupon)
	registerBankAccountRoutes(v1, services.BankAccount)
	registerTransactionRoutes(v1, staff, services.Transaction, cfg.VoucherDir)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
