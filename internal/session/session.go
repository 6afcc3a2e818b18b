// Package session holds the interactive view state: the current result set,
// the active filter, sort and page selections, and the latest error. Search
// responses carry a sequence token so a slow response for an older query can
// never clobber a newer one.
package session

import (
	"sync"
	"time"

	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/pipeline"
)

// ErrorTTL is how long a recorded error stays visible before it expires.
const ErrorTTL = 10 * time.Second

// State is the mutable session. All methods are safe for concurrent use.
type State struct {
	mu sync.Mutex

	seq     uint64
	applied uint64

	term  string
	books []enrich.EnrichedBook

	filters  pipeline.Filters
	sortKey  pipeline.SortKey
	page     int
	pageSize int

	err      error
	errSetAt time.Time

	now func() time.Time
}

// New returns an empty session on page 1 with relevance ordering.
func New(pageSize int) *State {
	if pageSize <= 0 {
		pageSize = pipeline.DefaultPageSize
	}
	return &State{
		sortKey:  pipeline.SortRelevance,
		page:     1,
		pageSize: pageSize,
		now:      time.Now,
	}
}

// Begin registers a new in-flight search and returns its sequence token.
// Responses must present the token back; only the latest token is accepted.
func (s *State) Begin(term string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	s.term = term
	return s.seq
}

// ApplyResults installs books as the current result set. It reports whether
// the response was accepted: a token older than the newest Begin call is
// stale and discarded without touching the state. Accepting a result resets
// the page to 1 and clears any visible error.
func (s *State) ApplyResults(token uint64, books []enrich.EnrichedBook) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token < s.seq || token <= s.applied {
		return false
	}

	s.applied = token
	s.books = books
	s.page = 1
	s.err = nil
	return true
}

// ApplyError records err as the visible error, subject to the same staleness
// rule as ApplyResults. The current result set is left in place.
func (s *State) ApplyError(token uint64, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token < s.seq || token <= s.applied {
		return false
	}

	s.applied = token
	s.err = err
	s.errSetAt = s.now()
	return true
}

// Err returns the visible error, or nil once it has aged past ErrorTTL.
// An expired error is cleared for good.
func (s *State) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil && s.now().Sub(s.errSetAt) >= ErrorTTL {
		s.err = nil
	}
	return s.err
}

// ClearErr drops the visible error immediately.
func (s *State) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = nil
}

// Term returns the term of the most recent search.
func (s *State) Term() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.term
}

// SetFilters replaces the active filters and resets the page to 1.
func (s *State) SetFilters(filters pipeline.Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = filters
	s.page = 1
}

// SetSort replaces the active sort key and resets the page to 1.
func (s *State) SetSort(key pipeline.SortKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sortKey = key
	s.page = 1
}

// SetPage moves to the requested page. Clamping happens at view time, when
// the filtered total is known.
func (s *State) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if page < 1 {
		page = 1
	}
	s.page = page
}

// NextPage advances one page.
func (s *State) NextPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.page++
}

// PrevPage moves back one page, stopping at 1.
func (s *State) PrevPage() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page > 1 {
		s.page--
	}
}

// View runs the current result set through filter, sort and pagination and
// returns the visible page.
func (s *State) View() pipeline.Page {
	s.mu.Lock()
	defer s.mu.Unlock()

	visible := pipeline.Apply(s.books, s.filters)
	visible = pipeline.Sort(visible, s.sortKey)
	page := pipeline.Paginate(visible, s.page, s.pageSize)

	// Keep the stored page in sync with the clamped view
	s.page = page.Number
	return page
}
