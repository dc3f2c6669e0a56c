// Package auth authenticates users and authorizes requests with scoped access tokens.
//
// # Authentication
//
// Login looks the user up by name and checks the password against the stored
// digest. A missing user and a wrong password both fail with ErrAuthentication
// so a caller cannot tell which one happened. A user without a role cannot log in.
//
// # Tokens
//
// An access token is an HMAC signed JWT carrying:
//   - sub: the user name
//   - scopes: the names of the active permissions of the user's role
//   - exp: the expiry, AccessTokenExpire after issue
//
// # Authorization
//
// Verify decodes a token, re-reads the user and checks that every required
// scope is in the token. The user must still be active.
//
// Example usage:
//
//	hasher, err := auth.NewHasher(cfg.Auth.PasswordScheme)
//	tokens, err := auth.NewTokens(cfg.Auth)
//	authService := auth.NewService(users, permissions, hasher, tokens)
//
//	// Protect route with middleware
//	app.Get("/users",
//	    auth.RequireScopes(authService, auth.ScopeUsers),
//	    handler,
//	)
package auth
