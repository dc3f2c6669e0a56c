package query

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSort is returned for a sort key outside the allow-list or an unknown order.
var ErrInvalidSort = errors.New("invalid sort")

// Order of a sort.
type Order string

// Sort orders.
const (
	Asc  Order = "asc"
	Desc Order = "desc"
)

// Sort is one sort key with its direction.
type Sort struct {
	By    string
	Order Order
}

// NewSort builds a Sort from separate key and order values. An empty key means no sort.
func NewSort(by, order string) (*Sort, error) {
	by = strings.TrimSpace(by)
	if by == "" {
		return nil, nil //nolint:nilnil
	}

	o := Order(strings.ToLower(strings.TrimSpace(order)))

	switch o {
	case "":
		o = Asc
	case Asc, Desc:
	default:
		return nil, fmt.Errorf("%w: order %q", ErrInvalidSort, order)
	}

	return &Sort{By: by, Order: o}, nil
}

// ParseSort reads the "field:asc|desc" form. The order part is optional.
func ParseSort(s string) (*Sort, error) {
	by, order, _ := strings.Cut(s, ":")

	return NewSort(by, order)
}

// String implements fmt.Stringer.
func (s Sort) String() string {
	return s.By + ":" + string(s.Order)
}

// OrderBy resolves the sort against the allow-list into an ORDER BY clause.
func (c Columns) OrderBy(s *Sort) (string, error) {
	if s == nil {
		return "", nil
	}

	column, ok := c[s.By]
	if !ok {
		return "", fmt.Errorf("%w: unknown key %q, expected one of %s",
			ErrInvalidSort, s.By, strings.Join(c.Keys(), ", "))
	}

	if s.Order == Desc {
		return column + " DESC", nil
	}

	return column + " ASC", nil
}
