// Package groups serves the group endpoints.
package groups

import (
	"github.com/gofiber/fiber/v2"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/domain/group"
	"github.com/umsproject/ums/internal/domain/user"
	"github.com/umsproject/ums/internal/web/handler"
	"github.com/umsproject/ums/internal/web/handler/params"
)

const (
	// Path is the path of the group collection.
	Path = "/groups"

	// MembersPath lists the members of one group, relative to Path.
	MembersPath = "/:" + handler.IDParam + "/members"
)

// Service is the groups handler service.
type Service struct {
	groups *group.Service
}

// Init initializes the groups handler. Every route needs the groups scope.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *handler.Services) error {
	if app == nil || cfg == nil || svc == nil || svc.Auth == nil || svc.Groups == nil {
		return handler.ErrNilDependency
	}

	s.groups = svc.Groups

	app.Route(Path, func(router fiber.Router) {
		router.Use(auth.RequireScopes(svc.Auth, auth.ScopeGroups))
		router.Get(handler.RouterRootPath, s.List)
		router.Post(handler.RouterRootPath, s.Create)
		router.Get(MembersPath, s.Members)
		router.Get("/:"+handler.IDParam, s.Get)
		router.Patch("/:"+handler.IDParam, s.Update)
		router.Delete("/:"+handler.IDParam, s.Delete)
	})

	return nil
}

// List returns one page of groups matching the query filters.
func (s *Service) List(c *fiber.Ctx) error {
	var filter models.GroupFilter

	if err := params.Filter(c, &filter); err != nil {
		return err //nolint:wrapcheck
	}

	sort, page, err := params.List(c)
	if err != nil {
		return err //nolint:wrapcheck
	}

	found, err := s.groups.GetGroups(c.UserContext(), filter, sort, page)
	if err != nil {
		return err //nolint:wrapcheck
	}

	out := make([]group.Public, 0, len(found))
	for i := range found {
		out = append(out, group.ToPublic(&found[i]))
	}

	return c.JSON(out)
}

// Create adds a group.
func (s *Service) Create(c *fiber.Ctx) error {
	var in group.Create

	if err := params.Body(c, &in); err != nil {
		return err //nolint:wrapcheck
	}

	created, err := s.groups.AddGroup(c.UserContext(), in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.Status(fiber.StatusCreated).JSON(group.ToDetail(created))
}

// Get returns one group.
func (s *Service) Get(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	g, err := s.groups.GetGroup(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	if g == nil {
		return domain.NotFound(domain.ErrInvalidGroup, id)
	}

	return c.JSON(group.ToDetail(g))
}

// Members returns the active members of a group.
func (s *Service) Members(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	members, err := s.groups.GetMembers(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	out := make([]user.Public, 0, len(members))
	for i := range members {
		out = append(out, user.ToPublic(&members[i]))
	}

	return c.JSON(out)
}

// Update applies a partial update. The id comes from the path.
func (s *Service) Update(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	var in group.Update

	if err = params.Body(c, &in); err != nil {
		return err //nolint:wrapcheck
	}

	in.ID = id

	updated, err := s.groups.UpdateGroup(c.UserContext(), in)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(group.ToDetail(updated))
}

// Delete soft deletes a group.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, err := params.ID(c, handler.IDParam)
	if err != nil {
		return err //nolint:wrapcheck
	}

	deleted, err := s.groups.DeleteGroup(c.UserContext(), id)
	if err != nil {
		return err //nolint:wrapcheck
	}

	return c.JSON(group.ToDetail(deleted))
}
