package bearer

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/umsproject/ums/internal/db/models"
)

// LocalsUser is the fiber.Locals key of the authenticated user.
const LocalsUser = "user"

const scheme = "bearer"

// Token returns the token of an "Authorization: Bearer <token>" header.
// The scheme is matched case-insensitively.
func Token(c *fiber.Ctx) (string, bool) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))

	prefix, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(prefix, scheme) {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}

// SetUser stores the authenticated user for the rest of the request.
func SetUser(c *fiber.Ctx, user *models.User) {
	c.Locals(LocalsUser, user)
}

// User returns the authenticated user, or nil outside an authenticated route.
func User(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(LocalsUser).(*models.User)
	return user
}
