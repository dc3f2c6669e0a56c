package user_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/db/dbtest"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/db/repository"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/domain/user"
	"github.com/umsproject/ums/internal/query"
)

func ptr[T any](v T) *T { return &v }

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// clock hands out t0, t0+1s, t0+2s, ...
type clock struct{ next time.Time }

func (c *clock) Now() time.Time {
	now := c.next
	c.next = c.next.Add(time.Second)

	return now
}

type fixture struct {
	conn   *gorm.DB
	svc    *user.Service
	hasher *auth.Hasher
	clock  *clock
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	hasher, err := auth.NewHasher(auth.SchemeArgon2id)
	require.NoError(t, err)

	c := &clock{next: t0}
	conn := dbtest.New(t)

	return fixture{
		conn:   conn,
		svc:    user.NewService(conn, hasher, user.WithClock(c.Now)),
		hasher: hasher,
		clock:  c,
	}
}

func (f fixture) role(t *testing.T, name string, mutate func(r *models.Role)) models.Role {
	t.Helper()

	r := models.NewRole(name, nil, nil, t0)
	if mutate != nil {
		mutate(&r)
	}

	_, err := repository.Roles(f.conn).Create(context.Background(), &r)
	require.NoError(t, err)

	return r
}

func (f fixture) group(t *testing.T, name string, mutate func(g *models.Group)) models.Group {
	t.Helper()

	g := models.NewGroup(name, "Quito", nil, nil, t0)
	if mutate != nil {
		mutate(&g)
	}

	_, err := repository.Groups(f.conn).Create(context.Background(), &g)
	require.NoError(t, err)

	return g
}

func (f fixture) countUsers(t *testing.T) int64 {
	t.Helper()

	n, err := f.svc.CountUsers(context.Background(), models.UserFilter{})
	require.NoError(t, err)

	return n
}

func vic() user.Create {
	return user.Create{
		Name:     "vic",
		FullName: "Vic Doe",
		Email:    "vic@example.com",
		Password: "abcdefg",
	}
}

func TestAddUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.AddUser(ctx, vic())
	require.NoError(t, err)

	assert.False(t, created.IsVerified)
	assert.True(t, created.IsActive)
	assert.False(t, created.IsDeleted)
	assert.Nil(t, created.RoleID)
	assert.Nil(t, created.VerifiedAt)
	assert.Empty(t, created.Groups)

	stored, err := f.svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "abcdefg", stored.Password)

	match, err := f.hasher.Verify("abcdefg", stored.Password)
	require.NoError(t, err)
	assert.True(t, match)

	match, err = f.hasher.Verify("abcdefh", stored.Password)
	require.NoError(t, err)
	assert.False(t, match)
}

func TestAddUserWithRoleAndGroups(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	engineer := f.role(t, "Engineer", nil)
	alpha := f.group(t, "Alpha", nil)
	delta := f.group(t, "Delta", nil)

	in := vic()
	in.RoleID = &engineer.ID
	in.GroupIDs = []uuid.UUID{delta.ID, alpha.ID, delta.ID}

	created, err := f.svc.AddUser(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, created.RoleID)
	assert.Equal(t, engineer.ID, *created.RoleID)

	stored, err := f.svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, stored.Groups, 2)

	detail := user.ToDetail(stored)
	assert.ElementsMatch(t, []uuid.UUID{alpha.ID, delta.ID}, detail.GroupIDs)
}

func TestAddUserRejectsUnusableRole(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *models.Role)
		saved  bool
	}{
		{name: "unknown role"},
		{name: "inactive role", mutate: func(r *models.Role) { r.IsActive = false }, saved: true},
		{name: "deleted role", mutate: func(r *models.Role) { r.SoftDelete(t0) }, saved: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture(t)

			roleID := uuid.New()
			if tt.saved {
				roleID = f.role(t, "Ghost", tt.mutate).ID
			}

			in := vic()
			in.RoleID = &roleID

			_, err := f.svc.AddUser(ctx, in)
			require.ErrorIs(t, err, domain.ErrInvalidRole)

			var refErr *domain.ReferenceError
			require.True(t, errors.As(err, &refErr))
			assert.Equal(t, roleID, refErr.ID)
			assert.Equal(t, "role_id", refErr.Field)

			assert.Zero(t, f.countUsers(t))
		})
	}
}

func TestAddUserRejectsUnusableGroup(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alpha := f.group(t, "Alpha", nil)
	gone := f.group(t, "Gone", func(g *models.Group) { g.SoftDelete(t0) })
	unknown := uuid.New()

	tests := []struct {
		name     string
		ids      []uuid.UUID
		offender uuid.UUID
	}{
		{name: "unknown group", ids: []uuid.UUID{alpha.ID, unknown}, offender: unknown},
		{name: "deleted group", ids: []uuid.UUID{gone.ID, alpha.ID}, offender: gone.ID},
		{name: "first offender is reported", ids: []uuid.UUID{unknown, gone.ID}, offender: unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := vic()
			in.GroupIDs = tt.ids

			_, err := f.svc.AddUser(ctx, in)
			require.ErrorIs(t, err, domain.ErrInvalidGroup)
			assert.Equal(t, domain.InvalidGroupError(tt.offender).Error(), err.Error())

			assert.Zero(t, f.countUsers(t))
		})
	}
}

func TestAddUserInvalidInput(t *testing.T) {
	f := newFixture(t)

	in := vic()
	in.Email = "not-an-email"
	in.Password = ""

	_, err := f.svc.AddUser(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "email failed on email")
	assert.Contains(t, err.Error(), "password failed on required")
	assert.Zero(t, f.countUsers(t))
}

func TestUpdateUserVerification(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.AddUser(ctx, vic())
	require.NoError(t, err)

	first, err := f.svc.UpdateUser(ctx, user.Update{ID: created.ID, IsVerified: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, first.VerifiedAt)
	assert.True(t, first.IsVerified)
	assert.True(t, first.VerifiedAt.Equal(first.UpdatedAt))
	assert.True(t, first.UpdatedAt.After(created.UpdatedAt))

	second, err := f.svc.UpdateUser(ctx, user.Update{ID: created.ID, IsVerified: ptr(true)})
	require.NoError(t, err)
	require.NotNil(t, second.VerifiedAt)
	assert.True(t, first.VerifiedAt.Equal(*second.VerifiedAt))
	assert.True(t, second.UpdatedAt.After(first.UpdatedAt))

	stored, err := f.svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.VerifiedAt)
	assert.True(t, first.VerifiedAt.Equal(*stored.VerifiedAt))
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	alpha := f.group(t, "Alpha", nil)

	in := vic()
	in.GroupIDs = []uuid.UUID{alpha.ID}

	created, err := f.svc.AddUser(ctx, in)
	require.NoError(t, err)

	updated, err := f.svc.UpdateUser(ctx, user.Update{
		ID:       created.ID,
		FullName: ptr("Victoria Doe"),
		Password: ptr("hijklmn"),
		GroupIDs: &[]uuid.UUID{},
	})
	require.NoError(t, err)

	stored, err := f.svc.GetUser(ctx, updated.ID)
	require.NoError(t, err)
	assert.Equal(t, "vic", stored.Name)
	assert.Equal(t, "Victoria Doe", stored.FullName)
	assert.Empty(t, stored.Groups)

	match, err := f.hasher.Verify("hijklmn", stored.Password)
	require.NoError(t, err)
	assert.True(t, match)
}

func TestUpdateUserErrors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.AddUser(ctx, vic())
	require.NoError(t, err)

	missing := uuid.New()

	_, err = f.svc.UpdateUser(ctx, user.Update{ID: missing, FullName: ptr("x")})
	require.ErrorIs(t, err, domain.ErrInvalidUser)
	assert.Equal(t, "invalid id: "+missing.String(), err.Error())

	unknownRole := uuid.New()
	_, err = f.svc.UpdateUser(ctx, user.Update{ID: created.ID, FullName: ptr("x"), RoleID: &unknownRole})
	require.ErrorIs(t, err, domain.ErrInvalidRole)

	stored, err := f.svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Vic Doe", stored.FullName)
	assert.Nil(t, stored.RoleID)
}

func TestDeleteUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.AddUser(ctx, vic())
	require.NoError(t, err)

	_, err = f.svc.DeleteUser(ctx, created.ID)
	require.NoError(t, err)

	stored, err := f.svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.IsActive)
	assert.True(t, stored.IsDeleted)
	assert.NotNil(t, stored.DeletedAt)

	active, err := f.svc.GetUsers(ctx, models.UserFilter{IsActive: ptr(true)}, nil, query.Page{})
	require.NoError(t, err)
	assert.Empty(t, active)

	_, err = f.svc.DeleteUser(ctx, uuid.New())
	require.ErrorIs(t, err, domain.ErrInvalidUser)
}

func TestGetUserRoleID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	admin := f.role(t, "Admin", nil)

	in := vic()
	in.RoleID = &admin.ID
	_, err := f.svc.AddUser(ctx, in)
	require.NoError(t, err)

	other := vic()
	other.Name = "ana"
	_, err = f.svc.AddUser(ctx, other)
	require.NoError(t, err)

	roleID, err := f.svc.GetUserRoleID(ctx, "vic")
	require.NoError(t, err)
	require.NotNil(t, roleID)
	assert.Equal(t, admin.ID, *roleID)

	roleID, err = f.svc.GetUserRoleID(ctx, "ana")
	require.NoError(t, err)
	assert.Nil(t, roleID)

	roleID, err = f.svc.GetUserRoleID(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, roleID)
}

func TestGetUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for _, name := range []string{"carl", "ana", "bob"} {
		in := vic()
		in.Name = name
		_, err := f.svc.AddUser(ctx, in)
		require.NoError(t, err)
	}

	got, err := f.svc.GetUsers(ctx, models.UserFilter{}, nil, query.Page{Limit: 2})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "carl", got[0].Name)
	assert.Equal(t, "ana", got[1].Name)

	got, err = f.svc.GetUsers(ctx, models.UserFilter{}, &query.Sort{By: "name", Order: query.Asc}, query.Page{Limit: 2, Number: 2})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "carl", got[0].Name)

	got, err = f.svc.GetUsers(ctx, models.UserFilter{Name: ptr("bob")}, nil, query.Page{})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, user.Public{Name: "bob", FullName: "Vic Doe", Email: "vic@example.com"}, user.ToPublic(&got[0]))
}

func TestUpdateDeletedUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	created, err := f.svc.AddUser(ctx, vic())
	require.NoError(t, err)

	_, err = f.svc.DeleteUser(ctx, created.ID)
	require.NoError(t, err)

	_, err = f.svc.UpdateUser(ctx, user.Update{ID: created.ID, IsActive: ptr(true)})
	require.ErrorIs(t, err, domain.ErrInvalidUser)

	stored, err := f.svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.True(t, stored.IsDeleted)

	active, err := f.svc.GetUsers(ctx, models.UserFilter{IsActive: ptr(true)}, nil, query.Page{})
	require.NoError(t, err)
	assert.Empty(t, active)
}

func TestUpdateUserClearRole(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	engineer := f.role(t, "Engineer", nil)

	in := vic()
	in.RoleID = &engineer.ID

	created, err := f.svc.AddUser(ctx, in)
	require.NoError(t, err)

	// a nil role id keeps the role
	kept, err := f.svc.UpdateUser(ctx, user.Update{ID: created.ID, FullName: ptr("Victoria Doe")})
	require.NoError(t, err)
	require.NotNil(t, kept.RoleID)
	assert.Equal(t, engineer.ID, *kept.RoleID)

	_, err = f.svc.UpdateUser(ctx, user.Update{ID: created.ID, RoleID: &engineer.ID, ClearRole: true})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	cleared, err := f.svc.UpdateUser(ctx, user.Update{ID: created.ID, ClearRole: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.RoleID)

	stored, err := f.svc.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.RoleID)
}
