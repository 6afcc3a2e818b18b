package pipeline

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/openlibrary"
)

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortTitle, ParseSortKey("title"))
	assert.Equal(t, SortPopularity, ParseSortKey(" Popularity "))
	assert.Equal(t, SortRelevance, ParseSortKey("relevance"))
	assert.Equal(t, SortRelevance, ParseSortKey("bogus"))
	assert.Equal(t, SortRelevance, ParseSortKey(""))
}

func TestSortTitle(t *testing.T) {
	books := []enrich.EnrichedBook{
		book("Charlie", nil),
		book("alpha", nil),
		book("Bravo", nil),
	}

	sorted := Sort(books, SortTitle)
	// Plain byte order, so uppercase sorts before lowercase
	assert.Equal(t, []string{"Bravo", "Charlie", "alpha"}, keys(sorted))
	// Input untouched
	assert.Equal(t, []string{"Charlie", "alpha", "Bravo"}, keys(books))
}

func TestSortAuthorFallsBackToUnknown(t *testing.T) {
	books := []enrich.EnrichedBook{
		book("anon", nil),
		book("adams", func(r *openlibrary.BookRecord) { r.AuthorNames = []string{"Douglas Adams"} }),
	}

	sorted := Sort(books, SortAuthor)
	assert.Equal(t, []string{"adams", "anon"}, keys(sorted))
}

func TestSortYearNewestFirst(t *testing.T) {
	books := []enrich.EnrichedBook{
		book("old", func(r *openlibrary.BookRecord) { r.FirstPublishYear = 1951 }),
		book("new", func(r *openlibrary.BookRecord) { r.FirstPublishYear = 2020 }),
		book("undated", nil),
	}

	sorted := Sort(books, SortYear)
	assert.Equal(t, []string{"new", "old", "undated"}, keys(sorted))
}

func TestSortPopularityHighestFirst(t *testing.T) {
	books := []enrich.EnrichedBook{
		book("mid", func(r *openlibrary.BookRecord) { r.RatingsCount = 10; r.RatingsAverage = 4.0 }),
		book("top", func(r *openlibrary.BookRecord) { r.RatingsCount = 100; r.RatingsAverage = 4.6 }),
		book("unrated", nil),
	}

	sorted := Sort(books, SortPopularity)
	assert.Equal(t, []string{"top", "mid", "unrated"}, keys(sorted))
}

func TestSortRelevancePreservesOrder(t *testing.T) {
	books := []enrich.EnrichedBook{book("b", nil), book("a", nil), book("c", nil)}

	sorted := Sort(books, SortRelevance)
	assert.Equal(t, keys(books), keys(sorted))
}

func TestSortIsStable(t *testing.T) {
	books := []enrich.EnrichedBook{
		book("first", func(r *openlibrary.BookRecord) { r.FirstPublishYear = 2000 }),
		book("second", func(r *openlibrary.BookRecord) { r.FirstPublishYear = 2000 }),
		book("third", func(r *openlibrary.BookRecord) { r.FirstPublishYear = 2000 }),
	}

	sorted := Sort(books, SortYear)
	assert.Equal(t, []string{"first", "second", "third"}, keys(sorted))
}

func TestSortIsIdempotent(t *testing.T) {
	books := []enrich.EnrichedBook{
		book("Zebra", nil),
		book("Apple", nil),
		book("Mango", nil),
	}

	once := Sort(books, SortTitle)
	twice := Sort(once, SortTitle)
	assert.Equal(t, keys(once), keys(twice))
}
