// Package http exposes the dictionary API over gin: auth, word lookups,
// favorites and history, plus health.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	authController := NewAuthController(cfg.AuthService)
	wordsController := NewWordsController(cfg.WordsService, cfg.FavoritesService)
	usersController := NewUsersController(cfg.AuthService, cfg.FavoritesService, cfg.HistoryService)
	health := NewHealthController(cfg.Database, cfg.Cache, cfg.Version)

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Dictionary API",
		})
	})
	router.GET("/health", health.Status)

	router.POST("/auth/signup", authController.Signup)
	router.POST("/auth/signin", authController.Signin)

	protected := router.Group("/", cfg.AuthMiddleware.Handler())
	protected.POST("/auth/logout", authController.Logout)

	protected.GET("/user/me", usersController.Me)
	protected.GET("/user/me/favorites", usersController.Favorites)
	protected.GET("/user/me/history", usersController.History)

	protected.GET("/entries/en", wordsController.List)
	protected.GET("/entries/en/:word", wordsController.Show)
	protected.POST("/entries/en/:word/favorite", wordsController.Favorite)
	protected.DELETE("/entries/en/:word/unfavorite", wordsController.Unfavorite)

	return router
}
