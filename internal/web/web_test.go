package web_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/config"
	"github.com/umsproject/ums/internal/db/repository"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/web"
	"github.com/umsproject/ums/internal/web/handler/params"
	"github.com/umsproject/ums/internal/web/webtest"
)

func TestErrorHandler(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantDetail string
		wantHeader string
	}{
		{
			name:       "invalid reference",
			err:        domain.InvalidRoleError(id),
			wantStatus: fiber.StatusNotFound,
			wantDetail: "invalid role_id: " + id.String(),
		},
		{
			name:       "missing target",
			err:        domain.NotFound(domain.ErrInvalidGroup, id),
			wantStatus: fiber.StatusNotFound,
			wantDetail: "invalid id: " + id.String(),
		},
		{
			name:       "bad credentials",
			err:        auth.ErrBadCredentials,
			wantStatus: fiber.StatusNotFound,
			wantDetail: "Incorrect name or password",
			wantHeader: "Bearer",
		},
		{
			name:       "no role",
			err:        auth.ErrNoRole,
			wantStatus: fiber.StatusForbidden,
			wantDetail: "User has no role assigned.",
			wantHeader: "Bearer",
		},
		{
			name:       "missing scope",
			err:        &auth.ChallengeError{Err: auth.ErrInsufficientScope, Scopes: []string{"users", "me"}},
			wantStatus: fiber.StatusUnauthorized,
			wantDetail: "Not enough permissions",
			wantHeader: `Bearer scope="users me"`,
		},
		{
			name:       "bad token",
			err:        &auth.ChallengeError{Err: auth.ErrCredentials},
			wantStatus: fiber.StatusUnauthorized,
			wantDetail: "Could not validate credentials",
			wantHeader: "Bearer",
		},
		{
			name:       "inactive user",
			err:        auth.ErrInactiveUser,
			wantStatus: fiber.StatusBadRequest,
			wantDetail: "Inactive user",
		},
		{name: "invalid input", err: fmt.Errorf("%w: name failed on required", domain.ErrInvalidInput), wantStatus: fiber.StatusUnprocessableEntity},
		{name: "invalid param", err: params.ErrInvalidParam, wantStatus: fiber.StatusUnprocessableEntity},
		{name: "invalid sort", err: repository.ErrInvalidSort, wantStatus: fiber.StatusUnprocessableEntity},
		{name: "too many filters", err: repository.ErrTooManyFilters, wantStatus: fiber.StatusUnprocessableEntity},
		{name: "not found", err: repository.ErrNotFound, wantStatus: fiber.StatusNotFound},
		{
			name:       "fiber error",
			err:        fiber.NewError(fiber.StatusTooManyRequests, "slow down"),
			wantStatus: fiber.StatusTooManyRequests,
			wantDetail: "slow down",
		},
		{
			name:       "anything else",
			err:        errors.New("disk on fire"),
			wantStatus: fiber.StatusInternalServerError,
			wantDetail: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: web.ErrorHandler})
			app.Get("/", func(*fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/", nil))
			require.NoError(t, err)

			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantHeader, resp.Header.Get(fiber.HeaderWWWAuthenticate))

			if tt.wantDetail != "" {
				var body web.ErrorResponse
				require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
				assert.Equal(t, tt.wantDetail, body.Detail)
			}
		})
	}
}

func TestCheckAliveAndRequestID(t *testing.T) {
	env := webtest.New(t)

	resp, _ := env.Request(t, fiber.MethodGet, web.CheckAlivePath, "", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	_, err := ulid.Parse(resp.Header.Get(fiber.HeaderXRequestID))
	assert.NoError(t, err)
}

func TestMetrics(t *testing.T) {
	env := webtest.New(t)

	resp, _ := env.Request(t, fiber.MethodGet, "/users/"+uuid.NewString(), "", nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, raw := env.Request(t, fiber.MethodGet, web.MetricsPath, "", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), `http_requests_total{method="GET",path="/users/:id",status="401"}`)
	assert.Contains(t, string(raw), "http_request_duration_seconds")
}

func TestLoginRateLimit(t *testing.T) {
	env := webtest.New(t, func(cfg *config.Config) {
		cfg.Webserver.LoginRateLimit = config.RateLimit{Enabled: true, Max: 2, Expiration: time.Minute}
	})

	form := url.Values{"username": {"nobody"}, "password": {"wrong"}}

	for range 2 {
		resp, _ := env.PostForm(t, "/login", form)
		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	}

	resp, raw := env.PostForm(t, "/login", form)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "Too many login attempts", webtest.Detail(t, raw))
}
