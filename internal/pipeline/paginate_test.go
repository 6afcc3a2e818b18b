package pipeline

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/bookfind/internal/enrich"
)

func makeBooks(n int) []enrich.EnrichedBook {
	books := make([]enrich.EnrichedBook, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, book(fmt.Sprintf("book-%02d", i), nil))
	}
	return books
}

func TestPaginateBasic(t *testing.T) {
	books := makeBooks(20)

	page := Paginate(books, 1, 8)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 20, page.TotalItems)
	assert.Len(t, page.Books, 8)
	assert.Equal(t, "book-00", page.Books[0].Key)
	assert.True(t, page.HasNext())
	assert.False(t, page.HasPrev())

	last := Paginate(books, 3, 8)
	assert.Len(t, last.Books, 4)
	assert.Equal(t, "book-16", last.Books[0].Key)
	assert.False(t, last.HasNext())
	assert.True(t, last.HasPrev())
}

func TestPaginateClamping(t *testing.T) {
	books := makeBooks(10)

	// Past the end clamps to the last page
	page := Paginate(books, 99, 8)
	assert.Equal(t, 2, page.Number)
	assert.Len(t, page.Books, 2)

	// Zero and negative clamp to the first page
	assert.Equal(t, 1, Paginate(books, 0, 8).Number)
	assert.Equal(t, 1, Paginate(books, -3, 8).Number)
}

func TestPaginateDefaultPageSize(t *testing.T) {
	books := makeBooks(9)

	page := Paginate(books, 1, 0)
	assert.Equal(t, DefaultPageSize, page.PageSize)
	assert.Len(t, page.Books, DefaultPageSize)
}

func TestPaginateEmptyInput(t *testing.T) {
	page := Paginate(nil, 5, 8)
	assert.Equal(t, 1, page.Number)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 0, page.TotalItems)
	assert.Empty(t, page.Books)
	assert.False(t, page.HasNext())
	assert.False(t, page.HasPrev())
}

func TestPaginateExactMultiple(t *testing.T) {
	books := makeBooks(16)

	page := Paginate(books, 2, 8)
	assert.Equal(t, 2, page.TotalPages)
	assert.Len(t, page.Books, 8)
	assert.False(t, page.HasNext())
}

func TestPaginateReconstructsInput(t *testing.T) {
	books := makeBooks(27)

	first := Paginate(books, 1, 8)
	var collected []string
	for n := 1; n <= first.TotalPages; n++ {
		page := Paginate(books, n, 8)
		if n < first.TotalPages {
			require.Len(t, page.Books, 8)
		} else {
			require.NotEmpty(t, page.Books)
		}
		collected = append(collected, keys(page.Books)...)
	}

	// Walking every page yields the input with no gaps or duplicates
	assert.Equal(t, keys(books), collected)
}
