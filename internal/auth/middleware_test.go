package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dictionary/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeValidator struct {
	user  *entities.User
	token *entities.APIToken
	err   error
	seen  string
}

func (f *fakeValidator) ValidateToken(token string) (*entities.User, *entities.APIToken, error) {
	f.seen = token
	if f.err != nil {
		return nil, nil, f.err
	}
	return f.user, f.token, nil
}

func newProtectedRouter(validator TokenValidator) *gin.Engine {
	router := gin.New()
	router.Use(NewMiddleware(validator).Handler())
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  GetUserID(c),
			"email":    GetEmail(c),
			"token_id": GetTokenID(c),
		})
	})
	return router
}

func TestMiddleware_ValidToken(t *testing.T) {
	validator := &fakeValidator{
		user:  &entities.User{ID: 7, Email: "test@example.com"},
		token: &entities.APIToken{ID: 3, UserID: 7},
	}
	router := newProtectedRouter(validator)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if validator.seen != "sometoken" {
		t.Errorf("validator received token %q, want %q", validator.seen, "sometoken")
	}
}

func TestMiddleware_CaseInsensitiveScheme(t *testing.T) {
	validator := &fakeValidator{
		user:  &entities.User{ID: 7},
		token: &entities.APIToken{ID: 3},
	}
	router := newProtectedRouter(validator)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "bearer sometoken")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestMiddleware_RejectsInvalidRequests(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "bare token without scheme", header: "sometoken"},
		{name: "unknown token", header: "Bearer sometoken"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newProtectedRouter(&fakeValidator{err: ErrInvalidToken})

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}
		})
	}
}

func TestGetUserID_Unauthenticated(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	if id := GetUserID(c); id != 0 {
		t.Errorf("GetUserID() = %d, want 0", id)
	}
	if tokenID := GetTokenID(c); tokenID != 0 {
		t.Errorf("GetTokenID() = %d, want 0", tokenID)
	}
}
