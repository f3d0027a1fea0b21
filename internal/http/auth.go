package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/dictionary/internal/auth"
)

// AuthController handles signup, signin and logout.
type AuthController struct {
	service *auth.Service
}

// NewAuthController creates a new auth controller.
func NewAuthController(service *auth.Service) *AuthController {
	return &AuthController{service: service}
}

type signupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type signinRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned by both signup and signin: the account identity
// plus a fresh bearer token shown to the client exactly once.
type authResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Signup registers a new account and signs it in.
// POST /auth/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := ac.service.Register(req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			respondError(c, http.StatusConflict, "email already registered")
		case isValidationError(err):
			respondError(c, http.StatusUnprocessableEntity, err.Error())
		default:
			respondInternalError(c, err, "signup")
		}
		return
	}

	token, err := ac.service.IssueToken(user.ID)
	if err != nil {
		respondInternalError(c, err, "signup token")
		return
	}

	c.JSON(http.StatusCreated, authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

// Signin exchanges credentials for a bearer token.
// POST /auth/signin
func (ac *AuthController) Signin(c *gin.Context) {
	var req signinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	user, err := ac.service.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(c, http.StatusUnprocessableEntity, "invalid email or password")
			return
		}
		respondInternalError(c, err, "signin")
		return
	}

	token, err := ac.service.IssueToken(user.ID)
	if err != nil {
		respondInternalError(c, err, "signin token")
		return
	}

	c.JSON(http.StatusOK, authResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: token,
	})
}

// Logout revokes the token the request authenticated with. Other sessions of
// the same user stay signed in.
// POST /auth/logout
func (ac *AuthController) Logout(c *gin.Context) {
	tokenID := auth.GetTokenID(c)
	if err := ac.service.RevokeToken(tokenID); err != nil {
		respondInternalError(c, err, "logout")
		return
	}
	respondMessage(c, "signed out")
}

// isValidationError reports whether a registration failure is the client's
// fault rather than the server's.
func isValidationError(err error) bool {
	return errors.Is(err, auth.ErrNameRequired) ||
		errors.Is(err, auth.ErrEmailRequired) ||
		errors.Is(err, auth.ErrPasswordRequired) ||
		errors.Is(err, auth.ErrEmailInvalid) ||
		errors.Is(err, auth.ErrPasswordTooShort) ||
		errors.Is(err, auth.ErrPasswordTooLong)
}
