package web

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/umsproject/ums/internal/auth"
	"github.com/umsproject/ums/internal/db/repository"
	"github.com/umsproject/ums/internal/domain"
	"github.com/umsproject/ums/internal/query"
	"github.com/umsproject/ums/internal/web/handler/params"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

// ErrorHandler maps domain and auth errors to status codes.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code, detail := statusOf(err)

	var challenge *auth.ChallengeError

	switch {
	case errors.As(err, &challenge):
		c.Set(fiber.HeaderWWWAuthenticate, challenge.Challenge())
	case errors.Is(err, auth.ErrAuthentication), errors.Is(err, auth.ErrNoRole):
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
	}

	if code >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("request failed")
	}

	return c.Status(code).JSON(ErrorResponse{Detail: detail})
}

func statusOf(err error) (int, string) {
	var (
		challenge *auth.ChallengeError
		fiberErr  *fiber.Error
	)

	switch {
	case errors.As(err, &challenge):
		if errors.Is(challenge, auth.ErrInsufficientScope) {
			return fiber.StatusUnauthorized, "Not enough permissions"
		}

		return fiber.StatusUnauthorized, "Could not validate credentials"
	case errors.Is(err, auth.ErrAuthentication):
		return fiber.StatusNotFound, "Incorrect name or password"
	case errors.Is(err, auth.ErrNoRole):
		return fiber.StatusForbidden, "User has no role assigned."
	case errors.Is(err, auth.ErrInactiveUser):
		return fiber.StatusBadRequest, "Inactive user"
	case errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrInvalidGroup),
		errors.Is(err, domain.ErrInvalidUser),
		errors.Is(err, domain.ErrInvalidPermission):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, repository.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, params.ErrInvalidParam),
		errors.Is(err, query.ErrInvalidSort),
		errors.Is(err, repository.ErrTooManyFilters),
		errors.Is(err, repository.ErrEmptyFilter):
		return fiber.StatusUnprocessableEntity, err.Error()
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	default:
		return fiber.StatusInternalServerError, "Internal Server Error"
	}
}
