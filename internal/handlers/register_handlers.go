package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/SscSPs/erp_journal_engine/cmd/docs"
	portssvc "github.com/SscSPs/erp_journal_engine/internal/core/ports/services"
	"github.com/SscSPs/erp_journal_engine/internal/middleware"
	"github.com/SscSPs/erp_journal_engine/internal/platform/config"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	checks ...HealthCheck,
) error {
	r.GET("/health", healthHandler(checks))

	if err := setupAPIV1Routes(r, cfg, services); err != nil {
		return err
	}

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
	return nil
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) error {
	handlersChain := []gin.HandlerFunc{}
	if cfg.RateLimit != "" {
		ipLimiter, err := middleware.NewIPLimiter(cfg.RateLimit)
		if err != nil {
			return err
		}
		handlersChain = append(handlersChain, middleware.RateLimit(ipLimiter))
	}
	handlersChain = append(handlersChain, middleware.AuthMiddleware(cfg.JWTSecret))

	v1 := r.Group("/api/v1", handlersChain...)

	RegisterJournalRoutes(v1, services.Journal, services.JournalLine)
	RegisterJournalLineRoutes(v1, services.JournalLine)
	return nil
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
