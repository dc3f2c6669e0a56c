// Package login exchanges a name and password for a bearer access token.
package login

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/web/handler"
	"github.com/umsproject/ums/internal/web/handler/params"
)

const (
	// Path is the path to the login endpoint.
	Path = "/login"
)

// Form is the login request. It is sent form encoded.
type Form struct {
	Username string `form:"username"`
	Password string `form:"password"`
}

// Service is the login handler service.
type Service struct {
	auth *auth.Service
}

// Init initializes the login handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *handler.Services) error {
	if app == nil || cfg == nil || svc == nil || svc.Auth == nil {
		return handler.ErrNilDependency
	}

	s.auth = svc.Auth

	// register routes
	app.Route(Path, func(router fiber.Router) {
		router.Post(handler.RouterRootPath, s.Post)
	})

	return nil
}

// Post handles the login form submission.
func (s *Service) Post(c *fiber.Ctx) error {
	form := new(Form)

	if err := params.Body(c, form); err != nil {
		return err //nolint:wrapcheck
	}

	if form.Username == "" || form.Password == "" {
		return fmt.Errorf("%w: username and password are required", params.ErrInvalidParam)
	}

	token, err := s.auth.Login(c.UserContext(), form.Username, form.Password)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(token)
}
