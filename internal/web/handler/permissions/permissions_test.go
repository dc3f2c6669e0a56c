package permissions_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/domain/permission"
	"github.com/umsproject/ums/internal/web/webtest"
)

func TestPermissions(t *testing.T) {
	env := webtest.New(t)
	admin := env.AddUser(t, "admin", auth.ScopeUsers)
	token := env.Token(t, "admin")

	resp, raw := env.Request(t, fiber.MethodGet, "/permissions?limit=50", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	names := make([]string, 0, len(auth.Scopes))
	for _, p := range webtest.Decode[[]permission.Public](t, raw) {
		names = append(names, p.Name)
	}

	assert.Equal(t, []string{auth.ScopeUsers, auth.ScopeMe, auth.ScopeItems, auth.ScopeGroups}, names)

	// link a new permission to the admin role on creation
	resp, raw = env.Request(t, fiber.MethodPost, "/permissions", token, permission.Create{
		Name:    "reports",
		RoleIDs: []uuid.UUID{*admin.RoleID},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	created := webtest.Decode[permission.Public](t, raw)
	assert.Equal(t, "reports", created.Name)

	resp, raw = env.Request(t, fiber.MethodGet, "/permissions/"+created.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	// a fresh login carries the new scope
	_, err := env.Services.Auth.Verify(t.Context(), env.Token(t, "admin"), "reports")
	require.NoError(t, err)

	resp, raw = env.Request(t, fiber.MethodDelete, "/permissions/"+created.ID.String(), token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, webtest.Decode[permission.Public](t, raw).IsDeleted)
}

func TestCreatePermissionWithUnknownRole(t *testing.T) {
	env := webtest.New(t)
	env.AddUser(t, "admin", auth.ScopeUsers)
	token := env.Token(t, "admin")
	missing := uuid.New()

	resp, raw := env.Request(t, fiber.MethodPost, "/permissions", token, permission.Create{
		Name:    "reports",
		RoleIDs: []uuid.UUID{missing},
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode, string(raw))
	assert.Equal(t, "invalid role_id: "+missing.String(), webtest.Detail(t, raw))
}
