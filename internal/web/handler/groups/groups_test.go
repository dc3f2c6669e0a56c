package groups_test

import (
	"context"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain/group"
	"github.com/umsproject/ums/internal/domain/user"
	"github.com/umsproject/ums/internal/web/webtest"
)

func setup(t *testing.T) (*webtest.Env, string) {
	t.Helper()

	env := webtest.New(t)
	env.AddUser(t, "admin", auth.ScopeGroups)

	return env, env.Token(t, "admin")
}

func TestGroupLifecycle(t *testing.T) {
	env, token := setup(t)
	vic := env.AddUser(t, "vic")
	ana := env.AddUser(t, "ana")

	resp, raw := env.Request(t, fiber.MethodPost, "/groups", token, group.Create{
		Name:      "Alpha",
		Location:  "Mexico City",
		MemberIDs: []uuid.UUID{vic.ID, ana.ID},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, string(raw))

	created := webtest.Decode[group.Detail](t, raw)
	assert.Equal(t, "Alpha", created.Name)
	assert.ElementsMatch(t, []uuid.UUID{vic.ID, ana.ID}, created.MemberIDs)

	path := "/groups/" + created.ID.String()

	resp, raw = env.Request(t, fiber.MethodGet, path+"/members", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.Len(t, webtest.Decode[[]user.Public](t, raw), 2)

	// inactive members are not listed
	_, err := env.Services.Users.DeleteUser(context.Background(), ana.ID)
	require.NoError(t, err)

	resp, raw = env.Request(t, fiber.MethodGet, path+"/members", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	members := webtest.Decode[[]user.Public](t, raw)
	require.Len(t, members, 1)
	assert.Equal(t, "vic", members[0].Name)

	resp, raw = env.Request(t, fiber.MethodPatch, path, token, map[string]any{
		"location":   "Quito",
		"member_ids": []uuid.UUID{},
	})
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	updated := webtest.Decode[group.Detail](t, raw)
	assert.Equal(t, "Quito", updated.Location)
	assert.Empty(t, updated.MemberIDs)

	resp, raw = env.Request(t, fiber.MethodDelete, path, token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))
	assert.True(t, webtest.Decode[group.Detail](t, raw).IsDeleted)
}

func TestCreateGroupWithUnknownMember(t *testing.T) {
	env, token := setup(t)
	vic := env.AddUser(t, "vic")
	missing := uuid.New()

	resp, raw := env.Request(t, fiber.MethodPost, "/groups", token, group.Create{
		Name:      "Alpha",
		Location:  "Mexico City",
		MemberIDs: []uuid.UUID{vic.ID, missing},
	})
	require.Equal(t, fiber.StatusNotFound, resp.StatusCode, string(raw))
	assert.Equal(t, "invalid member_id: "+missing.String(), webtest.Detail(t, raw))

	count, err := env.Services.Groups.CountGroups(context.Background(), models.GroupFilter{})
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestListGroups(t *testing.T) {
	env, token := setup(t)
	ctx := context.Background()

	for _, g := range []group.Create{
		{Name: "Alpha", Location: "Mexico City"},
		{Name: "Delta", Location: "Quito"},
	} {
		_, err := env.Services.Groups.AddGroup(ctx, g)
		require.NoError(t, err)
	}

	resp, raw := env.Request(t, fiber.MethodGet, "/groups?location=Quito", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	list := webtest.Decode[[]group.Public](t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "Delta", list[0].Name)

	resp, raw = env.Request(t, fiber.MethodGet, "/groups?sort_by=name&sort_order=desc", token, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, string(raw))

	list = webtest.Decode[[]group.Public](t, raw)
	require.Len(t, list, 2)
	assert.Equal(t, "Delta", list[0].Name)
}

func TestGroupsNeedScope(t *testing.T) {
	env := webtest.New(t)
	env.AddUser(t, "vic", auth.ScopeUsers)
	token := env.Token(t, "vic")

	resp, _ := env.Request(t, fiber.MethodGet, "/groups", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, `Bearer scope="groups"`, resp.Header.Get(fiber.HeaderWWWAuthenticate))

	resp, _ = env.Request(t, fiber.MethodGet, "/groups/"+uuid.NewString()+"/members", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestGroupNotFound(t *testing.T) {
	env, token := setup(t)

	resp, _ := env.Request(t, fiber.MethodGet, "/groups/"+uuid.NewString(), token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, _ = env.Request(t, fiber.MethodGet, "/groups/"+uuid.NewString()+"/members", token, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
