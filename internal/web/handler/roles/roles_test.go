package roles_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/domain/role"
	"github.com/umsproject/ums/internal/web/webtest"
)

func TestRoleLifecycle(t *testing.T) {
	env := webtest.New(t)
	env.AddUser(t, "admin", auth.ScopeUsers)
	token := env.Token(t, "admin")

	resp, raw := env.Request(t, fiber.MethodPost, "/roles", token, role.Create{
		Name:          "Maintainer",
		PermissionIDs: []uuid.UUID{env.Perms[auth.ScopeMe], env.Perms[auth.ScopeItems]},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	created := webtest.Decode[role.Public](t, raw)
	assert.Equal(t, []string{auth.ScopeMe, auth.ScopeItems}, created.Permissions)

	path := "/roles/" + created.ID.String()

	resp, raw = env.Request(t, fiber.MethodPatch, path, token, map[string]any{
		"permission_ids": []uuid.UUID{env.Perms[auth.ScopeMe]},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, []string{auth.ScopeMe}, webtest.Decode[role.Public](t, raw).Permissions)

	resp, raw = env.Request(t, fiber.MethodGet, "/roles?name=Maintainer", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	require.Len(t, webtest.Decode[[]role.Public](t, raw), 1)

	resp, raw = env.Request(t, fiber.MethodDelete, path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, webtest.Decode[role.Public](t, raw).IsDeleted)

	resp, raw = env.Request(t, fiber.MethodGet, path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.False(t, webtest.Decode[role.Public](t, raw).IsActive)
}

func TestCreateRoleWithUnknownPermission(t *testing.T) {
	env := webtest.New(t)
	env.AddUser(t, "admin", auth.ScopeUsers)
	token := env.Token(t, "admin")
	missing := uuid.New()

	resp, raw := env.Request(t, fiber.MethodPost, "/roles", token, role.Create{
		Name:          "Ghost",
		PermissionIDs: []uuid.UUID{missing},
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode, string(raw))
	assert.Equal(t, "invalid permission_id: "+missing.String(), webtest.Detail(t, raw))

	resp, _ = env.Request(t, fiber.MethodGet, "/roles/"+uuid.NewString(), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
