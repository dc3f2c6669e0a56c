package query

// DefaultLimit is the page size used when none is given.
const DefaultLimit = 5

// Page selects a window of a result set. Number is 1-based.
type Page struct {
	Limit  int
	Number int
}

// Normalize fills the default limit and clamps the page number to 1.
func (p Page) Normalize() Page {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}

	p.Number = max(p.Number, 1)

	return p
}

// Offset of the first row of the page.
func (p Page) Offset() int {
	p = p.Normalize()

	return (p.Number - 1) * p.Limit
}
