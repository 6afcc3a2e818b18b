// Package favorites maintains the user's saved book list on top of the
// key-value store. The list keeps insertion order and is persisted as a
// JSON array of raw API records under a single key. Derived fields (genre,
// reading level, read time) are recomputed at display and export time, so
// nothing simulated ever reaches durable storage.
package favorites

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mlahtinen/bookfind/internal/openlibrary"
	"github.com/mlahtinen/bookfind/internal/storage"
)

// StorageKey is the key-value entry holding the serialized favorites list.
const StorageKey = "bookfind-favorites"

// List wraps a storage backend with favorite semantics. It is not safe for
// concurrent use; the CLI drives it from a single goroutine.
type List struct {
	store storage.Store
	books []openlibrary.BookRecord
}

// Load reads the persisted favorites from store. A missing entry yields an
// empty list. A corrupt entry is logged and discarded rather than blocking
// the whole feature.
func Load(store storage.Store) (*List, error) {
	raw, found, err := store.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}

	list := &List{store: store}
	if !found {
		return list, nil
	}

	if err := json.Unmarshal([]byte(raw), &list.books); err != nil {
		slog.Warn("Discarding unreadable favorites entry", "error", err)
		list.books = nil
	}
	return list, nil
}

// Toggle adds book to the list when absent and removes it when present.
// It reports whether the book is favorited after the call. Toggling twice
// restores the previous state.
func (l *List) Toggle(book openlibrary.BookRecord) (bool, error) {
	idx := l.indexOf(book.Key)
	if idx >= 0 {
		l.books = append(l.books[:idx], l.books[idx+1:]...)
	} else {
		l.books = append(l.books, book)
	}

	if err := l.save(); err != nil {
		return idx < 0, err
	}
	return idx < 0, nil
}

// IsFavorited reports whether the work identified by key is on the list.
func (l *List) IsFavorited(key string) bool {
	return l.indexOf(key) >= 0
}

// Count returns the number of saved books.
func (l *List) Count() int {
	return len(l.books)
}

// All returns the saved books in insertion order. The returned slice is a
// copy; mutating it does not affect the list.
func (l *List) All() []openlibrary.BookRecord {
	books := make([]openlibrary.BookRecord, len(l.books))
	copy(books, l.books)
	return books
}

// Clear removes every saved book.
func (l *List) Clear() error {
	l.books = nil
	if err := l.store.Remove(StorageKey); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	return nil
}

func (l *List) indexOf(key string) int {
	for i, b := range l.books {
		if b.Key == key {
			return i
		}
	}
	return -1
}

func (l *List) save() error {
	data, err := json.Marshal(l.books)
	if err != nil {
		return fmt.Errorf("failed to serialize favorites: %w", err)
	}
	if err := l.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}
