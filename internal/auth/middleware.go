package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dictionary/internal/entities"
)

// Context keys for authenticated request data
const (
	ContextKeyUserID  = "auth_user_id"
	ContextKeyEmail   = "auth_email"
	ContextKeyTokenID = "auth_token_id"
)

// TokenValidator resolves a plaintext bearer token to the user and token row
// it belongs to.
type TokenValidator interface {
	ValidateToken(token string) (*entities.User, *entities.APIToken, error)
}

// Middleware authenticates requests with a bearer token from the
// Authorization header.
type Middleware struct {
	validator TokenValidator
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(validator TokenValidator) *Middleware {
	return &Middleware{validator: validator}
}

// Handler returns a Gin handler that rejects requests without a valid token.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthenticated",
			})
			return
		}

		user, record, err := m.validator.ValidateToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"message": "Unauthenticated",
			})
			return
		}

		c.Set(ContextKeyUserID, user.ID)
		c.Set(ContextKeyEmail, user.Email)
		c.Set(ContextKeyTokenID, record.ID)
		c.Next()
	}
}

// extractBearerToken pulls the token out of an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or malformed.
func extractBearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// GetUserID retrieves the authenticated user's ID from the context. Returns
// 0 on unauthenticated requests.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return 0
}

// GetEmail retrieves the authenticated user's email from the context.
func GetEmail(c *gin.Context) string {
	if v, exists := c.Get(ContextKeyEmail); exists {
		if email, ok := v.(string); ok {
			return email
		}
	}
	return ""
}

// GetTokenID retrieves the ID of the token row the request authenticated
// with. Logout revokes exactly this row.
func GetTokenID(c *gin.Context) uint {
	if v, exists := c.Get(ContextKeyTokenID); exists {
		if tokenID, ok := v.(uint); ok {
			return tokenID
		}
	}
	return 0
}
