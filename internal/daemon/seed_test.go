package daemon

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/dbtest"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/db/repository"
	"github.com/umsproject/ums/internal/uniuri"
	"github.com/umsproject/ums/internal/web/handler"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newServices(t *testing.T) *handler.Services {
	t.Helper()

	svc, err := handler.NewServices(config.Auth{
		SecretKey:         "secret",
		Algorithm:         "HS256",
		AccessTokenExpire: time.Minute,
		PasswordScheme:    auth.SchemeBcrypt,
	}, dbtest.New(t))
	require.NoError(t, err)

	return svc
}

func TestSeedIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)
	cfg := config.Seed{Enabled: true, AdminName: "admin", AdminEmail: "admin@example.com"}

	generated, err := Seed(ctx, cfg, svc.DB, svc.Hasher, t0)
	require.NoError(t, err)
	assert.Len(t, generated, uniuri.StdLen)

	again, err := Seed(ctx, cfg, svc.DB, svc.Hasher, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, again, "the admin exists, nothing is generated")

	counts := map[string]int64{}

	counts["permissions"], err = repository.Permissions(svc.DB).Count(ctx, nil)
	require.NoError(t, err)
	counts["roles"], err = repository.Roles(svc.DB).Count(ctx, nil)
	require.NoError(t, err)
	counts["groups"], err = repository.Groups(svc.DB).Count(ctx, nil)
	require.NoError(t, err)
	counts["users"], err = repository.Users(svc.DB).Count(ctx, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]int64{"permissions": 4, "roles": 3, "groups": 2, "users": 1}, counts)

	// the generated password logs in with every scope
	token, err := svc.Auth.Login(ctx, "admin", generated)
	require.NoError(t, err)

	admin, err := svc.Auth.Verify(ctx, token.AccessToken, auth.ScopeUsers, auth.ScopeMe, auth.ScopeItems, auth.ScopeGroups)
	require.NoError(t, err)
	assert.True(t, admin.IsVerified)
	require.Len(t, admin.Groups, 1)
	assert.Equal(t, "Alpha", admin.Groups[0].Name)
}

func TestSeedRoles(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)

	_, err := Seed(ctx, config.Seed{}, svc.DB, svc.Hasher, t0)
	require.NoError(t, err)

	want := map[string][]string{
		"Admin":      {auth.ScopeUsers, auth.ScopeMe, auth.ScopeItems, auth.ScopeGroups},
		"Maintainer": {auth.ScopeMe, auth.ScopeItems},
		"Engineer":   {auth.ScopeMe},
	}

	for name, scopes := range want {
		r, err := svc.Roles.GetRoleByName(ctx, name)
		require.NoError(t, err)
		require.NotNil(t, r, name)

		got, err := svc.Auth.Scopes(ctx, r.ID)
		require.NoError(t, err)
		assert.Equal(t, scopes, got, name)
	}

	// no admin name, no user
	n, err := svc.Users.CountUsers(ctx, models.UserFilter{})
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedConfiguredPassword(t *testing.T) {
	ctx := context.Background()
	svc := newServices(t)

	generated, err := Seed(ctx, config.Seed{AdminName: "root", AdminPassword: "s3cret!"}, svc.DB, svc.Hasher, t0)
	require.NoError(t, err)
	assert.Empty(t, generated)

	_, err = svc.Auth.Login(ctx, "root", "s3cret!")
	require.NoError(t, err)
}

func TestLoginStorage(t *testing.T) {
	cfg := &config.Config{DB: config.DB{GormEngine: config.EngineSQLite}}
	assert.Nil(t, loginStorage(cfg))

	cfg.Webserver.LoginRateLimit.Enabled = true
	assert.Nil(t, loginStorage(cfg), "sqlite keeps the counters in memory")
}
