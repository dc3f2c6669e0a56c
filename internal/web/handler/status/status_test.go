package status_test

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/web/handler/status"
	"github.com/umsproject/ums/internal/web/webtest"
)

func TestStatus(t *testing.T) {
	env := webtest.New(t)
	env.AddUser(t, "vic", auth.ScopeItems)
	token := env.Token(t, "vic")

	resp, raw := env.Request(t, fiber.MethodGet, status.Path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Equal(t, status.OK, webtest.Decode[status.Response](t, raw).Status)
}

func TestStatusNeedsToken(t *testing.T) {
	env := webtest.New(t)

	resp, raw := env.Request(t, fiber.MethodGet, status.Path, "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Bearer", resp.Header.Get(fiber.HeaderWWWAuthenticate))
	assert.Equal(t, "Could not validate credentials", webtest.Detail(t, raw))

	resp, _ = env.Request(t, fiber.MethodGet, status.Path, "not-a-token", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestStatusDatabaseDown(t *testing.T) {
	env := webtest.New(t)
	env.AddUser(t, "vic", auth.ScopeMe)
	token := env.Token(t, "vic")

	sqlDB, err := env.Services.DB.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	resp, _ := env.Request(t, fiber.MethodGet, status.Path, token, nil)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
}
