package handlers

import (
	"time"

	"github.com/chasseuragace/code-sub001/cmd/docs"
	portssvc "github.com/chasseuragace/code-sub001/internal/core/ports/services"
	"github.com/chasseuragace/code-sub001/internal/middleware"
	"github.com/chasseuragace/code-sub001/internal/platform/config"
	"github.com/chasseuragace/code-sub001/internal/utils"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// Infrastructure carries the process-wide collaborators the routes need besides services.
// Nil fields disable the matching feature.
type Infrastructure struct {
	Limiter *limiter.Limiter
	Posthog *utils.PosthogClientWrapper
	Health  HealthChecker
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	r.Use(cors.New(corsConfig(cfg)))

	// Add health check route
	health := []gin.HandlerFunc{getHealth(infra.Health)}
	if infra.Limiter != nil {
		health = append([]gin.HandlerFunc{middleware.GinMiddlewarize(infra.Limiter)}, health...)
	}
	r.GET("/health", health...)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, services, infra)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	infra Infrastructure,
) {
	// An x-api-key resolves the actor first; otherwise the bearer JWT is required
	v1 := r.Group("/api/v1",
		middleware.APITokenAuth(services.APIToken),
		middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer),
	)
	if infra.Limiter != nil {
		v1.Use(middleware.RateLimit(infra.Limiter))
	}
	v1.Use(middleware.PosthogMiddleware(infra.Posthog))

	// Delegate route registration to specific handlers, passing required services
	RegisterApplicationRoutes(v1, services)
	RegisterAPITokenRoutes(v1, services.APIToken)
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.APITokenHeader, "X-Request-ID"}
	corsCfg.ExposeHeaders = []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"}
	corsCfg.MaxAge = 12 * time.Hour
	return corsCfg
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
