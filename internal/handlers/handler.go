package handlers

import (
	"net/http"

	"furnace_forecast/internal/logger"
	"furnace_forecast/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services *service.Service
	log      *logger.Logger
	metrics  http.Handler // Prometheus scrape endpoint, optional
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, metrics http.Handler) *Handler {
	return &Handler{services: services, log: log, metrics: metrics}
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health endpoint
	router.GET("/health", h.health)

	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	// Auth endpoints
	h.registerAuthRoutes(router)

	// Versioned API endpoints (protected)
	h.registerAPIRoutes(router)

	// WebSocket forecast stream (HTTP upgrade) on the same port
	router.GET("/ws", h.wsConnect)

	return router
}

func (h *Handler) registerAuthRoutes(r *gin.Engine) {
	auth := r.Group("/auth")
	{
		auth.POST("/sign-up", h.signUp)
		auth.POST("/sign-in", h.signIn)
	}
}

func (h *Handler) registerAPIRoutes(r *gin.Engine) {
	api := r.Group("/api/v1", h.requireAuth)
	{
		h.registerForecastRoutes(api)
		h.registerObservationRoutes(api)
	}
}

func (h *Handler) registerForecastRoutes(api *gin.RouterGroup) {
	forecast := api.Group("/forecast")
	{
		forecast.GET("/prediction", h.getPrediction)
		forecast.GET("/snapshot", h.getSnapshot)
		forecast.GET("/stats", h.getStats)
		forecast.GET("/curve", h.getCurve)
		// Body example: {"points":[{"outdoor_temp_f":-22,"rate_f_per_min":0.18}]}
		forecast.PUT("/curve", h.putCurve)
	}
}

func (h *Handler) registerObservationRoutes(api *gin.RouterGroup) {
	obs := api.Group("/observations")
	{
		obs.GET("/", h.getObservations)
	}
}
