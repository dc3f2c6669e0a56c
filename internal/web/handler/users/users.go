// Package users serves the user administration endpoints and /users/me.
package users

import (
	"github.com/gofiber/fiber/v2"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/domain/user"
	"github.com/umsproject/ums/internal/web/handler"
	"github.com/umsproject/ums/internal/web/handler/params"
	"github.com/umsproject/ums/internal/web/middleware/bearer"
)

const (
	// Path is the path of the user collection.
	Path = "/users"

	// MePath is the path of the caller's own profile, relative to Path.
	MePath = "/me"
)

// Service is the users handler service.
type Service struct {
	users *user.Service
}

// Init initializes the users handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *handler.Services) error {
	if app == nil || cfg == nil || svc == nil || svc.Auth == nil || svc.Users == nil {
		return handler.ErrNilDependency
	}

	s.users = svc.Users

	admin := auth.RequireScopes(svc.Auth, auth.ScopeUsers)

	// register routes, /me before /:id
	app.Route(Path, func(router fiber.Router) {
		router.Get(MePath, auth.RequireScopes(svc.Auth, auth.ScopeMe), s.Me)
		router.Get(handler.RouterRootPath, admin, s.List)
		router.Post(handler.RouterRootPath, admin, s.Create)
		router.Get("/:"+handler.IDParam, admin, s.Get)
		router.Patch("/:"+handler.IDParam, admin, s.Update)
		router.Delete("/:"+handler.IDParam, admin, s.Delete)
	})

	return nil
}

// Me returns the authenticated user.
func (s *Service) Me(c *fiber.Ctx) error {
	u := bearer.User(c)
	if u == nil {
		return fiber.ErrUnauthorized
	}

	return c.JSON(user.ToPublic(u))
}

// List returns one page of users matching the query filters.
func (s *Service) List(c *fiber.Ctx) error {
	var filter models.UserFilter

	if err := params.Filter(c, &filter); err != nil {
		return err //nolint:wrapcheck
	}

	sort, page, err := params.List(c)
	if err != nil {
		return err //nolint:wrapcheck
	}

	found, err := s.users.GetUsers(c.UserContext(), filter, sort, page)
	if err != nil {
		return err //nolint:wrapcheck
	}

	out := make([]user.Public, 0, len(found))
	for i := range found {
		out = append(out, user.ToPublic(&found[i]))
	}

	return c.JSON(out)
}

// Create adds a user.
func (s *Service) Create(c *fiber.Ctx) error {
	var in user.Create

	if err := params.Body(c, &in); err != nil {
		return err //nolint:wrapcheck
	}

	created, err := s.users.AddUser(c.UserContext(), in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.Status(fiber.StatusCreated).JSON(user.ToDetail(created))
}

// Get returns one user.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	u, err := s.users.GetUser(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if u == nil {
		return domain.NotFound(domain.ErrInvalidUser, id)
	}

	return c.JSON(user.ToDetail(u))
}

// Update applies a partial update. The id comes from the path.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	var in user.Update

	if err = params.Body(c, &in); err != nil {
		return err //nolint:wrapcheck
	}

	in.ID = id

	updated, err := s.users.UpdateUser(c.UserContext(), in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(user.ToDetail(updated))
}

// Delete soft deletes a user.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	deleted, err := s.users.DeleteUser(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(user.ToDetail(deleted))
}
