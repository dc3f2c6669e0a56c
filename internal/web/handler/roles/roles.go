// Package roles serves the role endpoints. Managing roles needs the users scope.
package roles

import (
	"github.com/gofiber/fiber/v2"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/domain/role"
	"github.com/umsproject/ums/internal/web/handler"
	"github.com/umsproject/ums/internal/web/handler/params"
)

const (
	// Path is the path of the role collection.
	Path = "/roles"
)

// Service is the roles handler service.
type Service struct {
	roles *role.Service
}

// Init initializes the roles handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *handler.Services) error {
	if app == nil || cfg == nil || svc == nil || svc.Auth == nil || svc.Roles == nil {
		return handler.ErrNilDependency
	}

	s.roles = svc.Roles

	app.Route(Path, func(router fiber.Router) {
		router.Use(auth.RequireScopes(svc.Auth, auth.ScopeUsers))
		router.Get(handler.RouterRootPath, s.List)
		router.Post(handler.RouterRootPath, s.Create)
		router.Get("/:"+handler.IDParam, s.Get)
		router.Patch("/:"+handler.IDParam, s.Update)
		router.Delete("/:"+handler.IDParam, s.Delete)
	})

	return nil
}

// List returns one page of roles.
func (s *Service) List(c *fiber.Ctx) error {
	var filter models.NamedFilter

	if err := params.Filter(c, &filter); err != nil {
		return err //nolint:wrapcheck
	}

	sort, page, err := params.List(c)
	if err != nil {
		return err //nolint:wrapcheck
	}

	found, err := s.roles.GetRoles(c.UserContext(), filter, sort, page)
	if err != nil {
		return err //nolint:wrapcheck
	}

	out := make([]role.Public, 0, len(found))
	for i := range found {
		out = append(out, role.ToPublic(&found[i]))
	}

	return c.JSON(out)
}

// Create adds a role.
func (s *Service) Create(c *fiber.Ctx) error {
	var in role.Create

	if err := params.Body(c, &in); err != nil {
		return err //nolint:wrapcheck
	}

	created, err := s.roles.AddRole(c.UserContext(), in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.Status(fiber.StatusCreated).JSON(role.ToPublic(created))
}

// Get returns one role.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	r, err := s.roles.GetRole(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if r == nil {
		return domain.NotFound(domain.ErrInvalidRole, id)
	}

	return c.JSON(role.ToPublic(r))
}

// Update applies a partial update. The id comes from the path.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	var in role.Update

	if err = params.Body(c, &in); err != nil {
		return err //nolint:wrapcheck
	}

	in.ID = id

	updated, err := s.roles.UpdateRole(c.UserContext(), in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(role.ToPublic(updated))
}

// Delete soft deletes a role.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	deleted, err := s.roles.DeleteRole(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(role.ToPublic(deleted))
}
