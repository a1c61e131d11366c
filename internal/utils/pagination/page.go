package pagination

// DefaultPageSize is the number of records per page for history listings.
const DefaultPageSize = 10

// Page describes one page of a page-number paginated listing.
type Page struct {
	Number     int
	Size       int
	TotalItems int
}

// NewPage normalises the requested page number against the total number of
// items. Pages are 1-based; out-of-range numbers are clamped to the last page,
// and anything below 1 becomes 1.
func NewPage(requested, size, totalItems int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	p := Page{Number: requested, Size: size, TotalItems: totalItems}
	if p.Number < 1 {
		p.Number = 1
	}
	if last := p.TotalPages(); p.Number > last {
		p.Number = last
	}
	return p
}

// TotalPages returns the number of pages; an empty listing still has one page.
func (p Page) TotalPages() int {
	if p.TotalItems <= 0 {
		return 1
	}
	return (p.TotalItems + p.Size - 1) / p.Size
}

// Offset returns the number of items to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Limit returns the page size.
func (p Page) Limit() int {
	return p.Size
}

func (p Page) HasNext() bool {
	return p.Number < p.TotalPages()
}

func (p Page) HasPrevious() bool {
	return p.Number > 1
}
