package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dictionary/internal/dictionary"
	"github.com/mrlokans/dictionary/internal/favorites"
	"github.com/mrlokans/dictionary/internal/pagination"
	"github.com/mrlokans/dictionary/internal/words"
)

// DefaultWordLimit is the page size of the word index listing when the
// client sends none.
const DefaultWordLimit = 100

// WordsController handles the word index, single-word lookups and the
// favorite/unfavorite actions on a word.
type WordsController struct {
	words     *words.Service
	favorites *favorites.Service
}

// NewWordsController creates a new words controller.
func NewWordsController(wordsService *words.Service, favoritesService *favorites.Service) *WordsController {
	return &WordsController{
		words:     wordsService,
		favorites: favoritesService,
	}
}

// List returns a page of known words, optionally filtered by prefix.
// GET /entries/en?search=&limit=&cursor=
func (wc *WordsController) List(c *gin.Context) {
	start := time.Now()

	limit, ok := parseLimit(c, DefaultWordLimit)
	if !ok {
		return
	}

	listing, hit, err := wc.words.List(c.Request.Context(), c.Query("search"), limit, c.Query("cursor"))
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			respondBadRequest(c, "invalid cursor")
			return
		}
		respondInternalError(c, err, "list words")
		return
	}

	setCacheHeaders(c, hit, start)
	c.JSON(http.StatusOK, listResponse(c, listing.Results, listing.TotalDocs,
		listing.Next, listing.Prev, listing.HasNext, listing.HasPrev))
}

// Show proxies the upstream dictionary definition of a single word.
// GET /entries/en/:word
func (wc *WordsController) Show(c *gin.Context) {
	start := time.Now()

	payload, hit, err := wc.words.Show(c.Request.Context(), c.Param("word"), GetUserID(c))
	if err != nil {
		respondLookupError(c, err, "show word")
		return
	}

	setCacheHeaders(c, hit, start)
	c.Data(http.StatusOK, "application/json; charset=utf-8", payload)
}

// Favorite adds the word to the user's favorites.
// POST /entries/en/:word/favorite
func (wc *WordsController) Favorite(c *gin.Context) {
	err := wc.favorites.Add(c.Request.Context(), c.Param("word"), GetUserID(c))
	if err != nil {
		if errors.Is(err, favorites.ErrAlreadyFavorited) {
			respondError(c, http.StatusConflict, "word already favorited")
			return
		}
		respondLookupError(c, err, "favorite word")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Word favorited successfully"})
}

// Unfavorite removes the word from the user's favorites.
// DELETE /entries/en/:word/unfavorite
func (wc *WordsController) Unfavorite(c *gin.Context) {
	err := wc.favorites.Remove(c.Request.Context(), c.Param("word"), GetUserID(c))
	if err != nil {
		if errors.Is(err, favorites.ErrNotFavorited) {
			respondNotFound(c, "favorite")
			return
		}
		respondInternalError(c, err, "unfavorite word")
		return
	}
	respondMessage(c, "Word removed from favorites successfully")
}

// respondLookupError maps dictionary lookup failures: unknown words are 404,
// upstream HTTP failures keep the upstream's status code, network failures
// are a bad gateway.
func respondLookupError(c *gin.Context, err error, context string) {
	if errors.Is(err, dictionary.ErrNotFound) {
		respondNotFound(c, "word")
		return
	}

	var upstreamErr *dictionary.UpstreamError
	if errors.As(err, &upstreamErr) {
		status := upstreamErr.StatusCode
		if status == 0 {
			status = http.StatusBadGateway
		}
		respondError(c, status, "dictionary lookup failed")
		return
	}

	respondInternalError(c, err, context)
}
