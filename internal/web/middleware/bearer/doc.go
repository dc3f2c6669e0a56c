// Package bearer reads OAuth2 bearer tokens from requests and carries the
// authenticated user through fiber.Locals.
//
// Usage:
//
//	token, ok := bearer.Token(c)
//	...
//	bearer.SetUser(c, user)
//
//	// in a handler behind auth.RequireScopes
//	me := bearer.User(c)
package bearer
