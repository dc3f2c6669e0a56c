package role_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/db/dbtest"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/db/repository"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/domain/role"
	"github.com/umsproject/ums/internal/query"
)

func ptr[T any](v T) *T { return &v }

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func addPermission(t *testing.T, conn *gorm.DB, name string, mutate func(p *models.Permission)) models.Permission {
	t.Helper()

	p := models.NewPermission(name, nil, nil, t0)
	if mutate != nil {
		mutate(&p)
	}

	_, err := repository.Permissions(conn).Create(context.Background(), &p)
	require.NoError(t, err)

	return p
}

func TestAddRole(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.New(t)
	svc := role.NewService(conn, role.WithClock(func() time.Time { return t0 }))

	me := addPermission(t, conn, "me", nil)
	items := addPermission(t, conn, "items", nil)

	created, err := svc.AddRole(ctx, role.Create{
		Name:          "Maintainer",
		PermissionIDs: []uuid.UUID{me.ID, items.ID},
	})
	require.NoError(t, err)
	assert.Equal(t, t0, created.CreatedAt)

	stored, err := svc.GetRole(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	public := role.ToPublic(stored)
	assert.Equal(t, "Maintainer", public.Name)
	assert.ElementsMatch(t, []string{"me", "items"}, public.Permissions)

	byName, err := svc.GetRoleByName(ctx, "Maintainer")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, created.ID, byName.ID)
}

func TestAddRoleRejectsUnusablePermission(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.New(t)
	svc := role.NewService(conn)

	me := addPermission(t, conn, "me", nil)
	off := addPermission(t, conn, "items", func(p *models.Permission) { p.IsActive = false })
	unknown := uuid.New()

	for _, tt := range []struct {
		name     string
		ids      []uuid.UUID
		offender uuid.UUID
	}{
		{name: "unknown", ids: []uuid.UUID{me.ID, unknown}, offender: unknown},
		{name: "inactive", ids: []uuid.UUID{off.ID, me.ID}, offender: off.ID},
	} {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddRole(ctx, role.Create{Name: "Admin", PermissionIDs: tt.ids})
			require.ErrorIs(t, err, domain.ErrInvalidPermission)
			assert.Equal(t, "invalid permission_id: "+tt.offender.String(), err.Error())

			got, errGet := svc.GetRoles(ctx, models.NamedFilter{}, nil, query.Page{})
			require.NoError(t, errGet)
			assert.Empty(t, got)
		})
	}
}

func TestUpdateAndDeleteRole(t *testing.T) {
	ctx := context.Background()
	conn := dbtest.New(t)
	svc := role.NewService(conn)

	me := addPermission(t, conn, "me", nil)
	users := addPermission(t, conn, "users", nil)

	created, err := svc.AddRole(ctx, role.Create{Name: "Engineer", PermissionIDs: []uuid.UUID{me.ID}})
	require.NoError(t, err)

	_, err = svc.UpdateRole(ctx, role.Update{
		ID:            created.ID,
		Description:   ptr("reads itself"),
		PermissionIDs: &[]uuid.UUID{me.ID, users.ID},
	})
	require.NoError(t, err)

	stored, err := svc.GetRole(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "reads itself", *stored.Description)
	assert.Len(t, stored.Permissions, 2)

	_, err = svc.UpdateRole(ctx, role.Update{ID: uuid.New(), Name: ptr("x")})
	require.ErrorIs(t, err, domain.ErrInvalidRole)

	_, err = svc.DeleteRole(ctx, created.ID)
	require.NoError(t, err)

	active, err := svc.GetRoles(ctx, models.NamedFilter{IsActive: ptr(true)}, nil, query.Page{})
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = svc.DeleteRole(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrInvalidRole)
}

func TestUpdateDeletedRole(t *testing.T) {
	ctx := context.Background()
	svc := role.NewService(dbtest.New(t))

	created, err := svc.AddRole(ctx, role.Create{Name: "Engineer"})
	require.NoError(t, err)

	_, err = svc.DeleteRole(ctx, created.ID)
	require.NoError(t, err)

	_, err = svc.UpdateRole(ctx, role.Update{ID: created.ID, IsActive: ptr(true)})
	require.ErrorIs(t, err, domain.ErrInvalidRole)

	stored, err := svc.GetRole(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.True(t, stored.IsDeleted)
}
