// Package auth provides user accounts and bearer-token authentication.
//
// Clients sign up with name/email/password, sign in to receive a plaintext
// API token, and present it on every protected request:
//
//	Authorization: Bearer <token>
//
// Only the SHA-256 hash of each token is stored (api_tokens table). A user
// may hold several tokens at once, one per signed-in client; signing out
// deletes exactly the token the request was made with.
//
// # Usage
//
// Initialize in the entrypoint:
//
//	authService := auth.NewService(db, cfg.Auth)
//	authMiddleware := auth.NewMiddleware(authService)
//	protected.Use(authMiddleware.Handler())
//
// Extract the user in handlers:
//
//	userID := auth.GetUserID(c)
package auth
