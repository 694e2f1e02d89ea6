package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "dataquality/internal/docs"
	"dataquality/internal/handler"
	"dataquality/internal/middleware"
	"dataquality/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Auth   *handler.AuthHandler
	Record *handler.RecordHandler
	Run    *handler.RunHandler
	Batch  *handler.BatchHandler
	Health *handler.HealthHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(authSvc service.AuthService, h Handlers, allowedOrigins []string) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth routes
	v1.POST("/auth/token", h.Auth.Token)

	// Protected routes - require valid JWT
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	protected.POST("/records/validate", h.Record.Validate)
	protected.GET("/rules", h.Record.Rules)

	runs := protected.Group("/runs")
	runs.GET("", h.Run.List)
	runs.GET("/export", h.Run.Export)
	runs.GET("/:id", h.Run.GetByID)

	batches := protected.Group("/batches")
	batches.POST("", h.Batch.Submit)
	batches.GET("", h.Batch.List)
	batches.GET("/:id", h.Batch.GetByID)
	batches.GET("/:id/source", h.Batch.Source)

	return r
}
