// Package status reports whether the service and its database answer.
package status

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db"
	"github.com/umsproject/ums/internal/web/handler"
)

const (
	// Path is the path to the status endpoint.
	Path = "/status"

	// OK is the status reported when the database answers.
	OK = "OK"
)

// Response is the status body.
type Response struct {
	Status string `json:"status"`
}

// Service is the status handler service.
type Service struct {
	db *gorm.DB
}

// Init initializes the status handler. Any authenticated user may call it.
func (s *Service) Init(app *fiber.App, cfg *config.Config, svc *handler.Services) error {
	if app == nil || cfg == nil || svc == nil || svc.DB == nil || svc.Auth == nil {
		return handler.ErrNilDependency
	}

	s.db = svc.DB

	app.Get(Path, auth.RequireScopes(svc.Auth), s.Get)

	return nil
}

// Get pings the database.
func (s *Service) Get(c *fiber.Ctx) error {
	if err := db.Ping(c.UserContext(), s.db); err != nil {
		log.Error().Err(err).Msg("status check failed")
		return fiber.NewError(fiber.StatusInternalServerError, "database unavailable")
	}

	return c.JSON(Response{Status: OK})
}
