// Package webtest runs the complete HTTP service against a throwaway database.
package webtest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/dbtest"
	"github.com/umsproject/ums/internal/db/models"
	"github.com/umsproject/ums/internal/domain/permission"
	"github.com/umsproject/ums/internal/domain/role"
	"github.com/umsproject/ums/internal/domain/user"
	"github.com/umsproject/ums/internal/web"
	"github.com/umsproject/ums/internal/web/handler"
)

// Password is the password of every user added with AddUser.
const Password = "abcdefg"

// Env is a running service with the scope permissions seeded.
type Env struct {
	App      *fiber.App
	Config   *config.Config
	Services *handler.Services
	// Perms maps each scope to its permission id.
	Perms map[string]uuid.UUID
}

// Config returns the settings New starts from.
func Config() *config.Config {
	return &config.Config{
		Title: "ums-test",
		Auth: config.Auth{
			SecretKey:         "test-secret",
			Algorithm:         "HS256",
			AccessTokenExpire: 15 * time.Minute,
			PasswordScheme:    auth.SchemeBcrypt,
		},
	}
}

// New starts the service. opts may adjust the configuration first.
func New(t testing.TB, opts ...func(*config.Config)) *Env {
	t.Helper()

	cfg := Config()
	for _, opt := range opts {
		opt(cfg)
	}

	svc, err := handler.NewServices(cfg.Auth, dbtest.New(t))
	require.NoError(t, err)

	ws, err := web.New(cfg, svc, nil)
	require.NoError(t, err)

	e := &Env{App: ws.App, Config: cfg, Services: svc, Perms: map[string]uuid.UUID{}}

	for _, scope := range auth.Scopes {
		p, err := svc.Permissions.AddPermission(context.Background(), permission.Create{Name: scope.Name})
		require.NoError(t, err)

		e.Perms[scope.Name] = p.ID
	}

	return e
}

// AddUser creates name with Password and, when scopes are given, a role "<name>-role" holding them.
func (e *Env) AddUser(t testing.TB, name string, scopes ...string) *models.User {
	t.Helper()

	ctx := context.Background()
	in := user.Create{Name: name, FullName: strings.ToUpper(name), Email: name + "@example.com", Password: Password}

	if len(scopes) > 0 {
		ids := make([]uuid.UUID, 0, len(scopes))
		for _, s := range scopes {
			ids = append(ids, e.Perms[s])
		}

		r, err := e.Services.Roles.AddRole(ctx, role.Create{Name: name + "-role", PermissionIDs: ids})
		require.NoError(t, err)

		in.RoleID = &r.ID
	}

	u, err := e.Services.Users.AddUser(ctx, in)
	require.NoError(t, err)

	return u
}

// Token logs name in and returns its access token.
func (e *Env) Token(t testing.TB, name string) string {
	t.Helper()

	token, err := e.Services.Auth.Login(context.Background(), name, Password)
	require.NoError(t, err)

	return token.AccessToken
}

// Request sends body as JSON, with token as bearer when set.
func (e *Env) Request(t testing.TB, method, target, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}

	return e.do(t, req)
}

// PostForm sends a form encoded POST.
func (e *Env) PostForm(t testing.TB, target string, form url.Values) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(fiber.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	return e.do(t, req)
}

func (e *Env) do(t testing.TB, req *http.Request) (*http.Response, []byte) {
	t.Helper()

	// no timeout, hashing is slow
	resp, err := e.App.Test(req, -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, raw
}

// Decode unmarshals a response body.
func Decode[T any](t testing.TB, raw []byte) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(raw, &out), string(raw))

	return out
}

// Detail returns the detail of an error body.
func Detail(t testing.TB, raw []byte) string {
	t.Helper()

	return Decode[web.ErrorResponse](t, raw).Detail
}
