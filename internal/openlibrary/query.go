package openlibrary

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mlahtinen/bookfind/internal/errors"
)

// SearchType selects which query parameter the search term is bound to.
type SearchType string

const (
	// SearchTitle searches by book title.
	SearchTitle SearchType = "title"
	// SearchAuthor searches by author name.
	SearchAuthor SearchType = "author"
	// SearchSubject searches by subject tag.
	SearchSubject SearchType = "subject"
	// SearchISBN searches by ISBN.
	SearchISBN SearchType = "isbn"
	// SearchAny is the free-text default.
	SearchAny SearchType = "q"
)

const (
	// DefaultLimit is the canonical result-count default.
	DefaultLimit = 24
	// MaxLimit is the hard upper bound the API accepts usefully.
	MaxLimit = 50
)

// searchFields is the requested-fields allowlist, kept minimal so the
// response payload stays small.
const searchFields = "key,title,author_name,cover_i,first_publish_year,subject,publisher,language,isbn,ratings_average,ratings_count,number_of_pages_median"

// ParseSearchType maps a user-supplied type string to a SearchType.
// Unknown values fall back to free-text search.
func ParseSearchType(s string) SearchType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "title":
		return SearchTitle
	case "author":
		return SearchAuthor
	case "subject":
		return SearchSubject
	case "isbn":
		return SearchISBN
	default:
		return SearchAny
	}
}

// ClampLimit normalizes a requested result count into [1, MaxLimit],
// substituting the default for non-positive values.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// ValidateTerm rejects empty or whitespace-only search terms before any
// request is built.
func ValidateTerm(term string) error {
	if strings.TrimSpace(term) == "" {
		return errors.NewValidationError("please enter a search term")
	}
	return nil
}

// NormalizeWorkKey returns the canonical "/works/OL...W" form the search
// API uses, accepting either a bare ID or an already-prefixed key.
func NormalizeWorkKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || strings.HasPrefix(key, "/works/") {
		return key
	}
	return "/works/" + key
}

// BuildSearchURL produces the fully-qualified search request URL.
// The term must already be validated via ValidateTerm.
func BuildSearchURL(baseURL, term string, searchType SearchType, limit int) string {
	params := url.Values{}
	params.Set(string(searchType), term)
	params.Set("limit", strconv.Itoa(ClampLimit(limit)))
	params.Set("fields", searchFields)

	return fmt.Sprintf("%s/search.json?%s", baseURL, params.Encode())
}

// SearchSignature is the cache key for a search request: the endpoint path
// plus its encoded parameters, independent of the host the client points at.
func SearchSignature(term string, searchType SearchType, limit int) string {
	params := url.Values{}
	params.Set(string(searchType), term)
	params.Set("limit", strconv.Itoa(ClampLimit(limit)))

	return "search.json?" + params.Encode()
}
