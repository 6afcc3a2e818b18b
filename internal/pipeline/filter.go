// Package pipeline applies the client-side filter, sort and paginate stages
// to an enriched result set. All stages are pure: they never mutate or
// re-enrich their input.
package pipeline

import (
	"slices"
	"strings"

	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/errors"
)

// Open-ended year range defaults.
const (
	yearRangeOpenFrom = 0
	yearRangeOpenTo   = 9999
)

// Filters holds the user-selected narrowing criteria. Zero values mean
// "not set": an unset predicate is skipped entirely.
type Filters struct {
	// Language is an ISO code the record's language list must contain.
	Language string
	// YearFrom / YearTo bound the publish year inclusively.
	YearFrom int
	YearTo   int
	// MinRating is the average-rating floor.
	MinRating float64
	// HasCover requires a cover image identifier.
	HasCover bool
	// Subject is a case-insensitive substring matched against any tag.
	Subject string
}

// IsZero reports whether no filter is active.
func (f Filters) IsZero() bool {
	return f == Filters{}
}

// Validate rejects an inverted year range.
func (f Filters) Validate() error {
	if f.YearFrom > 0 && f.YearTo > 0 && f.YearFrom > f.YearTo {
		return errors.NewValidationError("year range start must not be after its end")
	}
	return nil
}

// Apply returns the books matching every active predicate, preserving input
// order. The result is a fresh slice; the input is never modified.
func Apply(books []enrich.EnrichedBook, filters Filters) []enrich.EnrichedBook {
	result := make([]enrich.EnrichedBook, 0, len(books))
	for _, book := range books {
		if matches(book, filters) {
			result = append(result, book)
		}
	}
	return result
}

func matches(book enrich.EnrichedBook, f Filters) bool {
	if f.Language != "" && !slices.Contains(book.Languages, f.Language) {
		return false
	}

	if f.YearFrom > 0 || f.YearTo > 0 {
		if book.FirstPublishYear == 0 {
			return false
		}
		from, to := f.YearFrom, f.YearTo
		if from <= 0 {
			from = yearRangeOpenFrom
		}
		if to <= 0 {
			to = yearRangeOpenTo
		}
		if book.FirstPublishYear < from || book.FirstPublishYear > to {
			return false
		}
	}

	if f.HasCover && book.CoverID <= 0 {
		return false
	}

	if f.MinRating > 0 {
		if book.RatingsAverage == 0 || book.RatingsAverage < f.MinRating {
			return false
		}
	}

	if f.Subject != "" && !anySubjectContains(book.Subjects, f.Subject) {
		return false
	}

	return true
}

func anySubjectContains(subjects []string, query string) bool {
	query = strings.ToLower(query)
	for _, subject := range subjects {
		if strings.Contains(strings.ToLower(subject), query) {
			return true
		}
	}
	return false
}
