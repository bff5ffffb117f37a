package handler

import (
	"log/slog"
	"net/http"

	"notebook/middleware"
	"notebook/usecase"
	"notebook/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const defaultMaxBodyBytes = 1 << 20

type RouterConfig struct {
	Accounts       *usecase.AccountService
	Notes          *usecase.NotesService
	Feedback       *usecase.FeedbackService
	HealthChecks   map[string]Pinger
	AllowedOrigins []string
	MaxBodyBytes   int64
	Logger         *slog.Logger
}

// NewRouter wires every route under /api plus /metrics.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	utils.InitValidator()

	router := gin.New()
	router.Use(
		middleware.RequestTracingMiddleware(),
		middleware.EnhancedRecoveryMiddleware(),
		middleware.RequestLoggingMiddleware(logger),
		middleware.MetricsMiddleware(),
		middleware.CORSMiddleware(cfg.AllowedOrigins),
	)
	router.NoRoute(func(c *gin.Context) {
		utils.NotFound(c, "Route not found")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(cfg.Accounts)
	notesHandler := NewNotesHandler(cfg.Notes)
	feedbackHandler := NewFeedbackHandler(cfg.Feedback)
	healthHandler := NewHealthHandler(cfg.HealthChecks)
	requireAuth := middleware.AuthMiddleware(cfg.Accounts)

	api := router.Group("/api")
	api.Use(
		middleware.CacheControlMiddleware("no-store"),
		middleware.RequestSizeLimiter(cfg.MaxBodyBytes),
	)
	{
		api.GET("/health", healthHandler.Health)

		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/verify", requireAuth, authHandler.Verify)
			auth.PUT("/update-password", requireAuth, authHandler.UpdatePassword)
		}

		notes := api.Group("/notes", requireAuth)
		{
			notes.GET("", notesHandler.List)
			notes.GET("/stats", notesHandler.Stats)
			notes.POST("", notesHandler.Create)
			notes.GET("/:id", notesHandler.Get)
			notes.PUT("/:id", notesHandler.Update)
			notes.PUT("/:id/toggle-completion", notesHandler.ToggleCompletion)
			notes.PUT("/:id/toggle-favorite", notesHandler.ToggleFavorite)
			notes.DELETE("/:id", notesHandler.Delete)
		}

		feedback := api.Group("/feedback")
		{
			feedback.GET("", feedbackHandler.List)
			feedback.POST("", requireAuth, feedbackHandler.Submit)
		}
	}

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Notebook API is running"})
	})

	return router
}
