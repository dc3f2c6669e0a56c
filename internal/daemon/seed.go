package daemon

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/db/repository"
	"github.com/umsproject/ums/internal/domain/user"
	"github.com/umsproject/ums/internal/query"
	"github.com/umsproject/ums/internal/uniuri"
)

// Fixed ids of the seeded rows, so seeding again overwrites instead of duplicating.
var (
	permissionIDs = map[string]uuid.UUID{ //nolint:gochecknoglobals
		auth.ScopeUsers:  uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405101"),
		auth.ScopeMe:     uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405102"),
		auth.ScopeItems:  uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405103"),
		auth.ScopeGroups: uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405104"),
	}

	seedRoles = []struct { //nolint:gochecknoglobals
		id     uuid.UUID
		name   string
		scopes []string
	}{
		{
			id:     uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405201"),
			name:   "Admin",
			scopes: []string{auth.ScopeUsers, auth.ScopeMe, auth.ScopeItems, auth.ScopeGroups},
		},
		{
			id:     uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405202"),
			name:   "Maintainer",
			scopes: []string{auth.ScopeMe, auth.ScopeItems},
		},
		{
			id:     uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405203"),
			name:   "Engineer",
			scopes: []string{auth.ScopeMe},
		},
	}

	seedGroups = []struct { //nolint:gochecknoglobals
		id       uuid.UUID
		name     string
		location string
	}{
		{id: uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405301"), name: "Alpha", location: "Mexico City"},
		{id: uuid.MustParse("7c5a3d1e-2f41-4b8e-9a0c-1d2e3f405302"), name: "Delta", location: "Quito"},
	}
)

// Seed writes the scope permissions, the default roles and groups and, when no user
// has its name yet, the admin user holding the Admin role. Rows seeded before get
// their columns back but keep their creation time and links.
// It returns the admin password when one had to be generated.
func Seed(ctx context.Context, cfg config.Seed, conn *gorm.DB, hasher user.Hasher, now time.Time) (string, error) {
	permissions := make(map[string]models.Permission, len(auth.Scopes))

	for i, scope := range auth.Scopes {
		description := scope.Description
		p := models.NewPermission(scope.Name, &description, nil, now.Add(time.Duration(i)*time.Millisecond))
		p.ID = permissionIDs[scope.Name]

		existing, err := repository.Permissions(conn).Get(ctx, p.ID)
		if err != nil {
			return "", fmt.Errorf("seed permission %s: %w", scope.Name, err)
		}

		if existing != nil {
			p.CreatedAt, p.Roles = existing.CreatedAt, existing.Roles
		}

		if _, err = repository.Permissions(conn).Upsert(ctx, &p); err != nil {
			return "", fmt.Errorf("seed permission %s: %w", scope.Name, err)
		}

		permissions[scope.Name] = p
	}

	for i, sr := range seedRoles {
		granted := make([]models.Permission, 0, len(sr.scopes))
		for _, scope := range sr.scopes {
			granted = append(granted, permissions[scope])
		}

		r := models.NewRole(sr.name, nil, granted, now.Add(time.Duration(i)*time.Millisecond))
		r.ID = sr.id

		existing, err := repository.Roles(conn).Get(ctx, r.ID)
		if err != nil {
			return "", fmt.Errorf("seed role %s: %w", sr.name, err)
		}

		if existing != nil {
			r.CreatedAt, r.Permissions = existing.CreatedAt, existing.Permissions
		}

		if _, err = repository.Roles(conn).Upsert(ctx, &r); err != nil {
			return "", fmt.Errorf("seed role %s: %w", sr.name, err)
		}
	}

	groups := make([]models.Group, 0, len(seedGroups))

	for i, sg := range seedGroups {
		g := models.NewGroup(sg.name, sg.location, nil, nil, now.Add(time.Duration(i)*time.Millisecond))
		g.ID = sg.id

		existing, err := repository.Groups(conn).Get(ctx, g.ID)
		if err != nil {
			return "", fmt.Errorf("seed group %s: %w", sg.name, err)
		}

		if existing != nil {
			g.CreatedAt, g.Members = existing.CreatedAt, existing.Members
		}

		if _, err = repository.Groups(conn).Upsert(ctx, &g); err != nil {
			return "", fmt.Errorf("seed group %s: %w", sg.name, err)
		}

		groups = append(groups, g)
	}

	log.Info().Int("permissions", len(permissions)).Int("roles", len(seedRoles)).Int("groups", len(groups)).
		Msg("seed data written")

	return seedAdmin(ctx, cfg, conn, hasher, groups[0], now)
}

func seedAdmin(
	ctx context.Context, cfg config.Seed, conn *gorm.DB, hasher user.Hasher, group models.Group, now time.Time,
) (string, error) {
	if cfg.AdminName == "" {
		return "", nil
	}

	users := repository.Users(conn)

	existing, err := users.GetBy(ctx, query.Filter{"name": cfg.AdminName})
	if err != nil {
		return "", fmt.Errorf("look up admin: %w", err)
	}

	if existing != nil {
		return "", nil
	}

	password, generated := cfg.AdminPassword, ""
	if password == "" {
		if password, err = uniuri.Password(uniuri.StdLen); err != nil {
			return "", fmt.Errorf("generate admin password: %w", err)
		}

		generated = password
	}

	digest, err := hasher.Hash(password)
	if err != nil {
		return "", fmt.Errorf("hash admin password: %w", err)
	}

	roleID := seedRoles[0].id
	u := models.NewUser(cfg.AdminName, cfg.AdminName, cfg.AdminEmail, digest, &roleID, []models.Group{group}, now)
	models.SetVerified(&u, true, now)

	if _, err = users.Create(ctx, &u); err != nil {
		return "", fmt.Errorf("seed admin: %w", err)
	}

	log.Info().Str("user", u.Name).Msg("admin user created")

	return generated, nil
}
