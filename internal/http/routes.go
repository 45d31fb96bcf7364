package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// BadgeRoutes registers the badge endpoints.
type BadgeRoutes struct {
	handler *Handler
}

// NewBadgeRoutes creates a new BadgeRoutes instance.
func NewBadgeRoutes(handler *Handler) *BadgeRoutes {
	return &BadgeRoutes{handler: handler}
}

// RegisterRoutes registers GET / and GET /:package. The bare root answers
// like a blank package name.
func (r *BadgeRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", r.handler.GetBadge)
	rg.GET("/:package", r.handler.GetBadge)
}

// InfrastructureRoutes registers health, metrics and documentation routes.
type InfrastructureRoutes struct {
	health      *HealthHandler
	swaggerUser string
	swaggerPass string
}

// NewInfrastructureRoutes creates a new InfrastructureRoutes instance.
func NewInfrastructureRoutes(health *HealthHandler, swaggerUser, swaggerPass string) *InfrastructureRoutes {
	return &InfrastructureRoutes{
		health:      health,
		swaggerUser: swaggerUser,
		swaggerPass: swaggerPass,
	}
}

// RegisterRoutes registers the probes, /metrics and /_swagger/*any.
// Swagger is behind basic auth when credentials are configured.
func (r *InfrastructureRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	if r.health != nil {
		r.health.Register(rg)
	}
	rg.GET(metricsPath, gin.WrapH(promhttp.Handler()))

	if r.swaggerUser != "" && r.swaggerPass != "" {
		authorized := rg.Group(swaggerPath, gin.BasicAuth(gin.Accounts{
			r.swaggerUser: r.swaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		rg.GET(swaggerPath+"/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}
