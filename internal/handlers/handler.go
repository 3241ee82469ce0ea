package handlers

import (
	"net/http"
	"time"

	_ "driver_logsheet/docs"
	"driver_logsheet/internal/logger"
	"driver_logsheet/internal/service"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Handler wires HTTP layer to services and logging.
type Handler struct {
	services       *service.Service
	log            *logger.Logger
	metrics        http.Handler
	streamInterval time.Duration
}

// Option customizes a Handler.
type Option func(*Handler)

// WithMetrics exposes h on GET /metrics.
func WithMetrics(h http.Handler) Option {
	return func(hd *Handler) { hd.metrics = h }
}

// WithStreamInterval sets the default WebSocket re-render interval.
func WithStreamInterval(d time.Duration) Option {
	return func(hd *Handler) {
		if d > 0 && d <= maxInterval {
			hd.streamInterval = d
		}
	}
}

// NewHandler constructs a new HTTP handler with dependencies.
func NewHandler(services *service.Service, log *logger.Logger, opts ...Option) *Handler {
	h := &Handler{services: services, log: log, streamInterval: defaultInterval}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// InitRoutes builds and returns the Gin router with all routes registered.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", h.health)
	if h.metrics != nil {
		router.GET("/metrics", gin.WrapH(h.metrics))
	}

	h.registerAuthRoutes(router)
	h.registerAPIRoutes(router)

	// Browsers cannot set headers on the upgrade request, so the token may come as ?token=.
	router.GET("/ws/trips/:id/days/:day", h.userIdMiddleware, h.wsLogSheet)

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
	api := r.Group("/api/v1", h.userIdMiddleware)
	{
		h.registerTripRoutes(api)
		h.registerLogSheetRoutes(api)
		h.registerLogRoutes(api)
	}
}

func (h *Handler) registerTripRoutes(api *gin.RouterGroup) {
	trips := api.Group("/trips")
	{
		// Body: a trip schedule as JSON, or YAML with Content-Type application/yaml.
		trips.POST("", h.createTrip)
		trips.GET("", h.listTrips)
		trips.GET("/:id", h.getTrip)
		trips.DELETE("/:id", h.deleteTrip)
		trips.GET("/:id/days/:day/log", h.getDayLog)
	}
}

func (h *Handler) registerLogSheetRoutes(api *gin.RouterGroup) {
	sheet := api.Group("/logsheet")
	{
		sheet.POST("/render", h.renderLogSheet)
		sheet.GET("/layout", h.getLayout)
	}
}

func (h *Handler) registerLogRoutes(api *gin.RouterGroup) {
	logs := api.Group("/logs")
	{
		logs.GET("/", h.getLogs)
	}
}
