package http

import (
	"embed"
	"html/template"

	"github.com/gin-gonic/gin"
	"github.com/grocerylist/backend/config"
	"go.uber.org/zap"
)

//go:embed templates/*.html
var templateFS embed.FS

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler, logger *zap.Logger) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	// Only listed proxies may supply the client IP through X-Forwarded-For
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		logger.Error("invalid trusted proxies, trusting none", zap.Error(err))
		_ = router.SetTrustedProxies(nil)
	}
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware(logger))
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))
	router.Use(RateLimitMiddleware(cfg.RateLimit.PerIP, cfg.RateLimit.Burst))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	secure := cfg.Server.Environment == "production"
	session := SessionMiddleware(cfg.Session.CookieName, cfg.Session.TTL, secure)

	// Browser page
	page := router.Group("/", session)
	{
		page.GET("/", handler.Index)
		page.POST("/cart/add", handler.AddToCartForm)
		page.POST("/cart/remove", handler.RemoveFromCartForm)
		page.POST("/cart/clear", handler.ClearCartForm)
		page.POST("/session/reset", handler.ResetSessionForm)
	}

	// API v1 routes
	v1 := router.Group("/api/v1", session)
	{
		v1.GET("/view", handler.GetView)
		v1.DELETE("/session", handler.ResetSession)

		catalog := v1.Group("/catalog")
		{
			catalog.GET("/rows", handler.GetRows)
			catalog.GET("/categories", handler.GetCategories)
		}

		cart := v1.Group("/cart")
		{
			cart.GET("", handler.GetCart)
			cart.DELETE("", handler.ClearCart)
			cart.POST("/items", handler.AddCartItem)
			cart.DELETE("/items/:name", handler.RemoveCartItem)
		}
	}

	return router
}
