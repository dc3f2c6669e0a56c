package models

import (
	"github.com/umsproject/ums/internal/query"
)

// Filter and sort allow-lists. Keys are the public names accepted over HTTP,
// values the storage columns they map to.
var (
	UserFilters = query.Columns{ //nolint:gochecknoglobals
		"name":        "name",
		"full_name":   "full_name",
		"email":       "email",
		"is_active":   "is_active",
		"is_verified": "is_verified",
		"is_deleted":  "is_deleted",
	}
	UserSorts = query.Columns{ //nolint:gochecknoglobals
		"name":       "name",
		"full_name":  "full_name",
		"email":      "email",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}

	GroupFilters = query.Columns{ //nolint:gochecknoglobals
		"name":        "name",
		"location":    "location",
		"description": "description",
		"is_active":   "is_active",
		"is_deleted":  "is_deleted",
	}
	GroupSorts = query.Columns{ //nolint:gochecknoglobals
		"name":       "name",
		"location":   "location",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}

	RoleFilters = query.Columns{ //nolint:gochecknoglobals
		"name":       "name",
		"is_active":  "is_active",
		"is_deleted": "is_deleted",
	}
	RoleSorts = query.Columns{ //nolint:gochecknoglobals
		"name":       "name",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}

	PermissionFilters = query.Columns{ //nolint:gochecknoglobals
		"name":       "name",
		"is_active":  "is_active",
		"is_deleted": "is_deleted",
	}
	PermissionSorts = query.Columns{ //nolint:gochecknoglobals
		"name":       "name",
		"created_at": "created_at",
		"updated_at": "updated_at",
	}
)

// UserFilter lists the user fields that can be matched on.
// The query tags let fiber bind it from a query string.
type UserFilter struct {
	Name       *string `query:"name"`
	FullName   *string `query:"full_name"`
	Email      *string `query:"email"`
	IsActive   *bool   `query:"is_active"`
	IsVerified *bool   `query:"is_verified"`
	IsDeleted  *bool   `query:"is_deleted"`
}

// Filter returns the populated fields keyed by public name.
func (f UserFilter) Filter() query.Filter {
	out := query.Filter{}
	setString(out, "name", f.Name)
	setString(out, "full_name", f.FullName)
	setString(out, "email", f.Email)
	setBool(out, "is_active", f.IsActive)
	setBool(out, "is_verified", f.IsVerified)
	setBool(out, "is_deleted", f.IsDeleted)

	return out
}

// GroupFilter lists the group fields that can be matched on.
type GroupFilter struct {
	Name        *string `query:"name"`
	Location    *string `query:"location"`
	Description *string `query:"description"`
	IsActive    *bool   `query:"is_active"`
	IsDeleted   *bool   `query:"is_deleted"`
}

// Filter returns the populated fields keyed by public name.
func (f GroupFilter) Filter() query.Filter {
	out := query.Filter{}
	setString(out, "name", f.Name)
	setString(out, "location", f.Location)
	setString(out, "description", f.Description)
	setBool(out, "is_active", f.IsActive)
	setBool(out, "is_deleted", f.IsDeleted)

	return out
}

// NamedFilter lists the fields shared by roles and permissions.
type NamedFilter struct {
	Name      *string `query:"name"`
	IsActive  *bool   `query:"is_active"`
	IsDeleted *bool   `query:"is_deleted"`
}

// Filter returns the populated fields keyed by public name.
func (f NamedFilter) Filter() query.Filter {
	out := query.Filter{}
	setString(out, "name", f.Name)
	setBool(out, "is_active", f.IsActive)
	setBool(out, "is_deleted", f.IsDeleted)

	return out
}

// ActiveOnly matches usable entities.
func ActiveOnly() query.Filter {
	return query.Filter{"is_active": true, "is_deleted": false}
}

func setString(f query.Filter, key string, v *string) {
	if v != nil {
		f[key] = *v
	}
}

func setBool(f query.Filter, key string, v *bool) {
	if v != nil {
		f[key] = *v
	}
}
