package pipeline

import "github.com/mlahtinen/bookfind/internal/enrich"

// DefaultPageSize matches the grid view of the original client.
const DefaultPageSize = 8

// Page is one slice of a filtered, sorted result set.
type Page struct {
	Books      []enrich.EnrichedBook
	Number     int
	TotalPages int
	TotalItems int
	PageSize   int
}

// HasNext reports whether a later page exists.
func (p Page) HasNext() bool {
	return p.Number < p.TotalPages
}

// HasPrev reports whether an earlier page exists.
func (p Page) HasPrev() bool {
	return p.Number > 1
}

// Paginate slices books into the requested 1-indexed page. The page number
// is clamped into [1, totalPages]; a non-positive pageSize falls back to the
// default. An empty input yields zero total pages and an empty page 1.
func Paginate(books []enrich.EnrichedBook, page, pageSize int) Page {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	total := len(books)
	totalPages := (total + pageSize - 1) / pageSize

	if page < 1 {
		page = 1
	}
	if totalPages > 0 && page > totalPages {
		page = totalPages
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return Page{
		Books:      books[start:end],
		Number:     page,
		TotalPages: totalPages,
		TotalItems: total,
		PageSize:   pageSize,
	}
}
