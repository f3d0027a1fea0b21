package http

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dictionary/internal/auth"
)

// MaxPageLimit caps the page size of every listing endpoint.
const MaxPageLimit = 100

// GetUserID extracts the authenticated user's ID from the Gin context.
func GetUserID(c *gin.Context) uint {
	return auth.GetUserID(c)
}

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Message string `json:"message"`
}

// ListResponse is the envelope every listing endpoint returns. Previous and
// Next are absolute page URLs, null when no page exists in that direction.
type ListResponse struct {
	Results   any     `json:"results"`
	TotalDocs int64   `json:"totalDocs"`
	Previous  *string `json:"previous"`
	Next      *string `json:"next"`
	HasNext   bool    `json:"hasNext"`
	HasPrev   bool    `json:"hasPrev"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Message: message})
}

// respondNotFound sends a 404 Not Found response.
func respondNotFound(c *gin.Context, resource string) {
	c.JSON(http.StatusNotFound, ErrorResponse{Message: resource + " not found"})
}

// respondInternalError logs the error and sends a 500 Internal Server Error
// response. The actual error is logged but not exposed to the client.
func respondInternalError(c *gin.Context, err error, context string) {
	log.Printf("Internal error (%s): %v", context, err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "internal server error"})
}

// respondError sends an error response with the given status code.
func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, ErrorResponse{Message: message})
}

// respondMessage sends a 200 OK response with a message.
func respondMessage(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// --- Cache Headers ---

// setCacheHeaders marks a response as served from the cache or not and
// reports the handling time. Set on every cache-backed read endpoint.
func setCacheHeaders(c *gin.Context, hit bool, start time.Time) {
	status := "MISS"
	if hit {
		status = "HIT"
	}
	c.Header("x-cache", status)
	c.Header("x-response-time", fmt.Sprintf("%dms", time.Since(start).Milliseconds()))
}

// --- Parameter Parsing ---

// parseLimit reads the limit query parameter. Absent means fallback, larger
// than MaxPageLimit clamps, anything non-numeric or non-positive responds
// 400 and returns false.
func parseLimit(c *gin.Context, fallback int) (int, bool) {
	limitStr := c.Query("limit")
	if limitStr == "" {
		return fallback, true
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit < 1 {
		respondBadRequest(c, "invalid limit")
		return 0, false
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return limit, true
}

// --- Page URLs ---

// pageURL rebuilds the request URL with the given cursor, producing the
// absolute link clients follow to the adjacent page. Nil when there is no
// such page.
func pageURL(c *gin.Context, cursor string) *string {
	if cursor == "" {
		return nil
	}
	u := *c.Request.URL
	q := u.Query()
	q.Set("cursor", cursor)
	u.RawQuery = q.Encode()
	u.Scheme = requestScheme(c)
	u.Host = c.Request.Host
	s := u.String()
	return &s
}

func requestScheme(c *gin.Context) string {
	if proto := c.GetHeader("X-Forwarded-Proto"); proto != "" {
		return proto
	}
	if c.Request.TLS != nil {
		return "https"
	}
	return "http"
}

// listResponse assembles the listing envelope, resolving cursors into
// absolute page URLs against the current request.
func listResponse(c *gin.Context, results any, total int64, next, prev string, hasNext, hasPrev bool) ListResponse {
	return ListResponse{
		Results:   results,
		TotalDocs: total,
		Previous:  pageURL(c, prev),
		Next:      pageURL(c, next),
		HasNext:   hasNext,
		HasPrev:   hasPrev,
	}
}
