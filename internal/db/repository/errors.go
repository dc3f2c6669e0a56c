package repository

import (
	"errors"

	"github.com/umsproject/ums/internal/query"
)

var (
	// ErrTooManyFilters is returned by GetBy when more than one filter field is populated.
	ErrTooManyFilters = errors.New("only one filter allowed")

	// ErrEmptyFilter is returned by GetBy when no filter field is populated.
	ErrEmptyFilter = errors.New("a filter is required")

	// ErrNotFound is returned when a write targets a row that does not exist.
	ErrNotFound = errors.New("object not found")

	// ErrInvalidSort is returned for sort keys outside the allow-list.
	ErrInvalidSort = query.ErrInvalidSort
)
