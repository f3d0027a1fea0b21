package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dictionary/internal/auth"
	"github.com/mrlokans/dictionary/internal/favorites"
	"github.com/mrlokans/dictionary/internal/history"
	"github.com/mrlokans/dictionary/internal/pagination"
)

// DefaultUserListLimit is the page size of the favorites and history
// listings when the client sends none.
const DefaultUserListLimit = 10

// UsersController handles the authenticated user's profile, favorites and
// history listings.
type UsersController struct {
	auth      *auth.Service
	favorites *favorites.Service
	history   *history.Service
}

// NewUsersController creates a new users controller.
func NewUsersController(authService *auth.Service, favoritesService *favorites.Service, historyService *history.Service) *UsersController {
	return &UsersController{
		auth:      authService,
		favorites: favoritesService,
		history:   historyService,
	}
}

// Me returns the authenticated user's profile.
// GET /user/me
func (uc *UsersController) Me(c *gin.Context) {
	user, err := uc.auth.GetUserByID(GetUserID(c))
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			respondNotFound(c, "user")
			return
		}
		respondInternalError(c, err, "get profile")
		return
	}
	c.JSON(http.StatusOK, user)
}

// Favorites returns a page of the user's favorited words, newest first.
// GET /user/me/favorites?limit=&cursor=
func (uc *UsersController) Favorites(c *gin.Context) {
	start := time.Now()

	limit, ok := parseLimit(c, DefaultUserListLimit)
	if !ok {
		return
	}

	listing, hit, err := uc.favorites.List(c.Request.Context(), GetUserID(c), limit, c.Query("cursor"))
	if err != nil {
		switch {
		case errors.Is(err, favorites.ErrNoFavorites):
			respondNotFound(c, "favorite words")
		case errors.Is(err, pagination.ErrInvalidCursor):
			respondBadRequest(c, "invalid cursor")
		default:
			respondInternalError(c, err, "list favorites")
		}
		return
	}

	setCacheHeaders(c, hit, start)
	c.JSON(http.StatusOK, listResponse(c, listing.Results, listing.TotalDocs,
		listing.Next, listing.Prev, listing.HasNext, listing.HasPrev))
}

// History returns a page of the user's viewed words, most recent first.
// GET /user/me/history?limit=&cursor=
func (uc *UsersController) History(c *gin.Context) {
	start := time.Now()

	limit, ok := parseLimit(c, DefaultUserListLimit)
	if !ok {
		return
	}

	listing, hit, err := uc.history.List(c.Request.Context(), GetUserID(c), limit, c.Query("cursor"))
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			respondBadRequest(c, "invalid cursor")
			return
		}
		respondInternalError(c, err, "list history")
		return
	}

	setCacheHeaders(c, hit, start)
	c.JSON(http.StatusOK, listResponse(c, listing.Results, listing.TotalDocs,
		listing.Next, listing.Prev, listing.HasNext, listing.HasPrev))
}
