package pipeline

import (
	"sort"
	"strings"

	"github.com/mlahtinen/bookfind/internal/enrich"
)

// SortKey selects the result ordering.
type SortKey string

const (
	// SortRelevance preserves the fetch-time order (popularity at fetch).
	SortRelevance SortKey = "relevance"
	// SortTitle orders lexicographically ascending by title.
	SortTitle SortKey = "title"
	// SortAuthor orders lexicographically ascending by first author.
	SortAuthor SortKey = "author"
	// SortYear orders by publish year, newest first.
	SortYear SortKey = "year"
	// SortRating orders by average rating, highest first.
	SortRating SortKey = "rating"
	// SortPopularity orders by popularity score, highest first.
	SortPopularity SortKey = "popularity"
)

// ParseSortKey maps a user-supplied string to a SortKey, defaulting to
// relevance for anything unknown.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return SortTitle
	case "author":
		return SortAuthor
	case "year":
		return SortYear
	case "rating":
		return SortRating
	case "popularity":
		return SortPopularity
	default:
		return SortRelevance
	}
}

// Sort returns the books ordered by key. The sort is stable: equal keys keep
// their relative input order. Relevance is a pass-through of the input order,
// which the fetch stage already sorted by popularity. The input slice is not
// modified.
func Sort(books []enrich.EnrichedBook, key SortKey) []enrich.EnrichedBook {
	sorted := make([]enrich.EnrichedBook, len(books))
	copy(sorted, books)

	switch key {
	case SortTitle:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Title < sorted[j].Title
		})
	case SortAuthor:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].FirstAuthor() < sorted[j].FirstAuthor()
		})
	case SortYear:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].FirstPublishYear > sorted[j].FirstPublishYear
		})
	case SortRating:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RatingsAverage > sorted[j].RatingsAverage
		})
	case SortPopularity:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].PopularityScore > sorted[j].PopularityScore
		})
	}

	return sorted
}
