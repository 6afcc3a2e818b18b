package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/favorites"
	"github.com/mlahtinen/bookfind/internal/openlibrary"
	"github.com/mlahtinen/bookfind/internal/session"
	"github.com/mlahtinen/bookfind/internal/storage"
)

func testBooks(n int) []enrich.EnrichedBook {
	books := make([]enrich.EnrichedBook, 0, n)
	for i := 0; i < n; i++ {
		books = append(books, enrich.EnrichedBook{
			BookRecord: openlibrary.BookRecord{
				Key:             "/works/OL" + strings.Repeat("I", i+1) + "W",
				Title:           "Book " + string(rune('A'+i)),
				AuthorNames:     []string{"Author " + string(rune('A'+i))},
				PageCountMedian: 200,
			},
			PrimaryGenre: "General",
			ReadingLevel: enrich.LevelIntermediate,
		})
	}
	return books
}

func newTestModel(t *testing.T, bookCount, pageSize int) (*browseModel, *favorites.List) {
	t.Helper()

	state := session.New(pageSize)
	token := state.Begin("test")
	if !state.ApplyResults(token, testBooks(bookCount)) {
		t.Fatal("failed to seed session state")
	}

	favs, err := favorites.Load(storage.NewMemStore())
	if err != nil {
		t.Fatalf("favorites.Load error = %v", err)
	}

	return newBrowseModel(state, favs, "dark"), favs
}

func TestEnterTogglesFavorite(t *testing.T) {
	m, favs := newTestModel(t, 3, 8)

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if favs.Count() != 1 {
		t.Fatalf("expected 1 favorite after toggle, got %d", favs.Count())
	}

	selected, ok := m.list.SelectedItem().(bookItem)
	if !ok {
		t.Fatal("expected a selected book item")
	}
	if !selected.favorited {
		t.Fatal("expected selected item to render as favorited")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if favs.Count() != 0 {
		t.Fatalf("expected toggle back to remove favorite, got %d", favs.Count())
	}
}

func TestPagingKeys(t *testing.T) {
	m, _ := newTestModel(t, 10, 4)

	if got := m.state.View().Number; got != 1 {
		t.Fatalf("expected to start on page 1, got %d", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.state.View().Number; got != 2 {
		t.Fatalf("expected page 2 after right, got %d", got)
	}
	if got := len(m.list.Items()); got != 4 {
		t.Fatalf("expected 4 items on page 2, got %d", got)
	}

	// Third page is the last and holds the remainder
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := len(m.list.Items()); got != 2 {
		t.Fatalf("expected 2 items on page 3, got %d", got)
	}

	// Advancing past the end stays clamped
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := m.state.View().Number; got != 3 {
		t.Fatalf("expected clamp at page 3, got %d", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := m.state.View().Number; got != 2 {
		t.Fatalf("expected page 2 after left, got %d", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, key := range []string{"q", "esc", "ctrl+c"} {
		m, _ := newTestModel(t, 2, 8)

		var msg tea.KeyMsg
		switch key {
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
		}

		_, cmd := m.Update(msg)
		if cmd == nil {
			t.Fatalf("expected quit command for key %q", key)
		}
	}
}

func TestFormatBookMetadata(t *testing.T) {
	book := enrich.EnrichedBook{
		BookRecord:         openlibrary.BookRecord{PageCountMedian: 480},
		PrimaryGenre:       "Science",
		ReadingLevel:       enrich.LevelAdvanced,
		AvailabilityStatus: enrich.Available,
	}

	metadata := formatBookMetadata(book, 0)
	want := "Science | Advanced | 10h | Available"
	if metadata != want {
		t.Fatalf("formatBookMetadata = %q, want %q", metadata, want)
	}

	empty := formatBookMetadata(enrich.EnrichedBook{}, 0)
	if empty != "No metadata available" {
		t.Fatalf("expected placeholder for empty metadata, got %q", empty)
	}
}

func TestFormatRating(t *testing.T) {
	rated := enrich.EnrichedBook{BookRecord: openlibrary.BookRecord{RatingsAverage: 4.25, RatingsCount: 120}}
	if got := formatRating(rated); got != "4.2/5 (120 ratings)" {
		t.Fatalf("formatRating = %q", got)
	}
	if got := formatRating(enrich.EnrichedBook{}); got != "unrated" {
		t.Fatalf("formatRating empty = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("one  two   three", 0); got != "one two three" {
		t.Fatalf("truncate collapse = %q", got)
	}
	if got := truncate("abcdefghij", 8); got != "abcde..." {
		t.Fatalf("truncate width = %q", got)
	}
}
