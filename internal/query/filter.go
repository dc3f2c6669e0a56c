package query

import (
	"slices"
)

// Columns is an allow-list mapping a public key to its storage column.
type Columns map[string]string

// Predicate is a single equality condition on a column.
type Predicate struct {
	Column string
	Value  any
}

// Filter holds requested equality conditions keyed by public name.
// Nil values count as not supplied.
type Filter map[string]any

// Populated returns the keys that carry a value.
func (f Filter) Populated() Filter {
	out := make(Filter, len(f))

	for k, v := range f {
		if v != nil {
			out[k] = v
		}
	}

	return out
}

// Predicates resolves the filter against the allow-list.
// Keys missing from the allow-list are dropped. The result is ordered by column.
func (c Columns) Predicates(f Filter) []Predicate {
	out := make([]Predicate, 0, len(f))

	for key, value := range f.Populated() {
		column, ok := c[key]
		if !ok {
			continue
		}

		out = append(out, Predicate{Column: column, Value: value})
	}

	slices.SortFunc(out, func(a, b Predicate) int {
		switch {
		case a.Column < b.Column:
			return -1
		case a.Column > b.Column:
			return 1
		default:
			return 0
		}
	})

	return out
}

// Keys returns the permitted public keys, sorted.
func (c Columns) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}

	slices.Sort(keys)

	return keys
}
