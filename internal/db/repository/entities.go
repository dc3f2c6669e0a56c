package repository

import (
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/db/models"
)

// Typed repositories of the four entities.
type (
	UserRepository       = Repository[models.User, *models.User]
	GroupRepository      = Repository[models.Group, *models.Group]
	RoleRepository       = Repository[models.Role, *models.Role]
	PermissionRepository = Repository[models.Permission, *models.Permission]
)

// Users returns the user repository. Groups are loaded and written with every user.
func Users(db *gorm.DB) *UserRepository {
	return New[models.User](db, Config[models.User]{
		Name:     "user",
		Filters:  models.UserFilters,
		Sorts:    models.UserSorts,
		Preloads: []string{"Groups"},
		Relations: []Relation[models.User]{{
			Name:  "Groups",
			Value: func(u *models.User) (any, int) { return u.Groups, len(u.Groups) },
		}},
	})
}

// Groups returns the group repository. Members are loaded and written with every group.
func Groups(db *gorm.DB) *GroupRepository {
	return New[models.Group](db, Config[models.Group]{
		Name:     "group",
		Filters:  models.GroupFilters,
		Sorts:    models.GroupSorts,
		Preloads: []string{"Members"},
		Relations: []Relation[models.Group]{{
			Name:  "Members",
			Value: func(g *models.Group) (any, int) { return g.Members, len(g.Members) },
		}},
	})
}

// Roles returns the role repository.
func Roles(db *gorm.DB) *RoleRepository {
	return New[models.Role](db, Config[models.Role]{
		Name:     "role",
		Filters:  models.RoleFilters,
		Sorts:    models.RoleSorts,
		Preloads: []string{"Permissions"},
		Relations: []Relation[models.Role]{{
			Name:  "Permissions",
			Value: func(r *models.Role) (any, int) { return r.Permissions, len(r.Permissions) },
		}},
	})
}

// Permissions returns the permission repository.
func Permissions(db *gorm.DB) *PermissionRepository {
	return New[models.Permission](db, Config[models.Permission]{
		Name:     "permission",
		Filters:  models.PermissionFilters,
		Sorts:    models.PermissionSorts,
		Preloads: []string{"Roles"},
		Relations: []Relation[models.Permission]{{
			Name:  "Roles",
			Value: func(p *models.Permission) (any, int) { return p.Roles, len(p.Roles) },
		}},
	})
}
