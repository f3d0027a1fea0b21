package http

import (
	"github.com/mrlokans/dictionary/internal/auth"
	"github.com/mrlokans/dictionary/internal/cache"
	"github.com/mrlokans/dictionary/internal/database"
	"github.com/mrlokans/dictionary/internal/favorites"
	"github.com/mrlokans/dictionary/internal/history"
	"github.com/mrlokans/dictionary/internal/words"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router. This replaces a long parameter list in NewRouter.
type RouterConfig struct {
	// Core dependencies
	Database *database.Database
	Cache    cache.Store

	// Domain services
	WordsService     *words.Service
	FavoritesService *favorites.Service
	HistoryService   *history.Service

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware

	// Application info
	Version string
}
