package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/umsproject/ums/internal/web/middleware/bearer"
)

// RequireScopes creates Fiber middleware that requires a token granting every scope.
// With no scopes any valid token of an active user passes.
// The authenticated user is stored with bearer.SetUser.
func RequireScopes(authService *Service, scopes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearer.Token(c)
		if !ok {
			return &ChallengeError{Err: ErrCredentials, Scopes: scopes}
		}

		user, err := authService.Verify(c.UserContext(), token, scopes...)
		if err != nil {
			return err
		}

		bearer.SetUser(c, user)

		return c.Next()
	}
}
