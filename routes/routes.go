package routes

import (
	"net/http"
	"strings"
	"time"

	"kindred/handlers"
	"kindred/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Config struct {
	ClientURL     string
	Limiter       middleware.Limiter
	Authenticator middleware.Authenticator
	Log           *zap.Logger
}

func SetupRouter(h *handlers.Handler, cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(cfg.Log))

	// Session cookies need credentials, which rules out a wildcard origin.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "Content-Type", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", h.Health)

	api := router.Group("/api")
	if cfg.Limiter != nil {
		api.Use(middleware.RateLimit(cfg.Limiter, cfg.Log))
	}
	protect := middleware.Protect(cfg.Authenticator, cfg.Log)

	authRoutes := api.Group("/auth")
	authRoutes.POST("/signup", h.Signup)
	authRoutes.POST("/login", h.Login)
	authRoutes.POST("/logout", h.Logout)
	authRoutes.GET("/me", protect, h.Me)

	users := api.Group("/users", protect)
	users.PUT("/update-profile", h.UpdateProfile)

	matches := api.Group("/matches", protect)
	matches.POST("/swipe-right/:likedUserId", h.SwipeRight)
	matches.POST("/swipe-left/:dislikedUserId", h.SwipeLeft)
	matches.GET("", h.GetMatches)
	matches.GET("/user-profiles", h.GetUserProfiles)

	messages := api.Group("/messages", protect)
	messages.POST("/send", h.SendMessage)
	messages.GET("/conversation/:userId", h.GetConversation)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api") {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Endpoint not found",
			})
			return
		}
		c.Status(http.StatusNotFound)
	})

	return router
}
