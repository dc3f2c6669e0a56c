// Package permissions serves the permission endpoints. Managing permissions needs the users scope.
package permissions

import (
	"github.com/gofiber/fiber/v2"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/domain/permission"
	"github.com/umsproject/ums/internal/web/handler"
	"github.com/umsproject/ums/internal/web/handler/params"
)

const (
	// Path is the path of the permission collection.
	Path = "/permissions"
)

// Service is the permissions handler service.
type Service struct {
	permissions *permission.Service
}

// Init initializes the permissions handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *handler.Services) error {
	if app == nil || cfg == nil || svc == nil || svc.Auth == nil || svc.Permissions == nil {
		return handler.ErrNilDependency
	}

	s.permissions = svc.Permissions

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

// List returns one page of permissions.
func (s *Service) List(c *fiber.Ctx) error {
	var filter models.NamedFilter

	if err := params.Filter(c, &filter); err != nil {
		return err //nolint:wrapcheck
	}

	sort, page, err := params.List(c)
	if err != nil {
		return err //nolint:wrapcheck
	}

	found, err := s.permissions.GetPermissions(c.UserContext(), filter, sort, page)
	if err != nil {
		return err //nolint:wrapcheck
	}

	out := make([]permission.Public, 0, len(found))
	for i := range found {
		out = append(out, permission.ToPublic(&found[i]))
	}

	return c.JSON(out)
}

// Create adds a permission.
func (s *Service) Create(c *fiber.Ctx) error {
	var in permission.Create

	if err := params.Body(c, &in); err != nil {
		return err //nolint:wrapcheck
	}

	created, err := s.permissions.AddPermission(c.UserContext(), in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.Status(fiber.StatusCreated).JSON(permission.ToPublic(created))
}

// Get returns one permission.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	p, err := s.permissions.GetPermission(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if p == nil {
		return domain.NotFound(domain.ErrInvalidPermission, id)
	}

	return c.JSON(permission.ToPublic(p))
}

// Update applies a partial update. The id comes from the path.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	var in permission.Update

	if err = params.Body(c, &in); err != nil {
		return err //nolint:wrapcheck
	}

	in.ID = id

	updated, err := s.permissions.UpdatePermission(c.UserContext(), in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(permission.ToPublic(updated))
}

// Delete soft deletes a permission.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	deleted, err := s.permissions.DeletePermission(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(permission.ToPublic(deleted))
}
