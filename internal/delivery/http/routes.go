package http

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/skillmatch/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Forwarded headers are honoured only from these proxies; none by default
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		log.Printf("[HTTP] invalid trusted proxies %v, trusting none: %v", cfg.Server.TrustedProxies, err)
		_ = router.SetTrustedProxies(nil)
	}
	if cfg.Workbook.MaxUploadMB > 0 {
		router.MaxMultipartMemory = cfg.Workbook.MaxUploadMB << 20
	}

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	v1.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))
	{
		datasets := v1.Group("/datasets")
		{
			datasets.POST("", handler.CreateDataset)
			datasets.GET("/:id", handler.GetDataset)
			datasets.DELETE("/:id", handler.DeleteDataset)
			datasets.GET("/:id/bench", handler.BenchView)
			datasets.POST("/:id/matches/:mode", handler.Match)
		}
	}

	return router
}
