package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/domain/group"
	"github.com/umsproject/ums/internal/domain/permission"
	"github.com/umsproject/ums/internal/domain/role"
	"github.com/umsproject/ums/internal/domain/user"
)

// ErrNilDependency is returned by Init when a dependency is missing.
var ErrNilDependency = errors.New(ErrNilDependencyMsg)

// Services bundles what the handlers call into.
type Services struct {
	DB          *gorm.DB
	Hasher      *auth.Hasher
	Auth        *auth.Service
	Users       *user.Service
	Groups      *group.Service
	Roles       *role.Service
	Permissions *permission.Service
}

// Service is the interface for a web handler service.
type Service interface {
	Init(app *fiber.App, cfg *config.Config, svc *Services) error
}

// NewServices builds the password hasher, the token issuer and every entity service on db.
func NewServices(cfg config.Auth, db *gorm.DB) (*Services, error) {
	hasher, err := auth.NewHasher(cfg.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("password hasher: %w", err)
	}

	tokens, err := auth.NewTokens(cfg)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	svc := &Services{
		DB:          db,
		Hasher:      hasher,
		Users:       user.NewService(db, hasher),
		Groups:      group.NewService(db),
		Roles:       role.NewService(db),
		Permissions: permission.NewService(db),
	}
	svc.Auth = auth.NewService(svc.Users, svc.Permissions, hasher, tokens)

	return svc, nil
}
