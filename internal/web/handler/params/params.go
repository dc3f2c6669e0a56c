// Package params reads paging, sorting, filters, ids and bodies from requests.
// Every malformed value is reported as ErrInvalidParam.
package params

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/umsproject/ums/internal/query"
)

// Paging bounds of list endpoints.
const (
	DefaultLimit = 10
	MaxLimit     = 50
)

// ErrInvalidParam is returned for a query, path or body value that cannot be used.
var ErrInvalidParam = errors.New("invalid parameter")

// Page reads limit and page. Both are optional.
func Page(c *fiber.Ctx) (query.Page, error) {
	limit, err := intQuery(c, "limit", DefaultLimit)
	if err != nil {
		return query.Page{}, err
	}

	if limit < 1 || limit > MaxLimit {
		return query.Page{}, fmt.Errorf("%w: limit must be between 1 and %d", ErrInvalidParam, MaxLimit)
	}

	number, err := intQuery(c, "page", 1)
	if err != nil {
		return query.Page{}, err
	}

	if number < 1 {
		return query.Page{}, fmt.Errorf("%w: page must be at least 1", ErrInvalidParam)
	}

	return query.Page{Limit: limit, Number: number}, nil
}

// Sort reads sort=field:order, or sort_by with an optional sort_order.
// Whether the key may be sorted on is decided by the repository.
func Sort(c *fiber.Ctx) (*query.Sort, error) {
	if s := c.Query("sort"); s != "" {
		return query.ParseSort(s) //nolint:wrapcheck
	}

	return query.NewSort(c.Query("sort_by"), c.Query("sort_order")) //nolint:wrapcheck
}

// List reads the paging and sorting of a list endpoint.
func List(c *fiber.Ctx) (*query.Sort, query.Page, error) {
	page, err := Page(c)
	if err != nil {
		return nil, page, err
	}

	sort, err := Sort(c)

	return sort, page, err
}

// Filter binds the query string into a typed filter such as models.UserFilter.
// Keys the filter does not declare are ignored.
func Filter(c *fiber.Ctx, out any) error {
	if err := c.QueryParser(out); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidParam, err)
	}

	return nil
}

// ID reads the entity id from the path.
func ID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s: %w", ErrInvalidParam, name, err)
	}

	return id, nil
}

// Body decodes the request body into out.
func Body(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fmt.Errorf("%w: body: %w", ErrInvalidParam, err)
	}

	return nil
}

func intQuery(c *fiber.Ctx, key string, def int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrInvalidParam, key, err)
	}

	return n, nil
}
