// Package recent tracks the user's latest search terms and offers
// completion suggestions against a fixed vocabulary.
package recent

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mlahtinen/bookfind/internal/storage"
)

// StorageKey is the key-value entry holding the serialized search history.
const StorageKey = "bookfind-recent-searches"

// MaxEntries caps the history length. The oldest entry falls off first.
const MaxEntries = 5

// History is the persisted list of recent search terms, most recent first.
type History struct {
	store storage.Store
	terms []string
}

// Load reads the search history from store. A missing or corrupt entry
// yields an empty history.
func Load(store storage.Store) (*History, error) {
	raw, found, err := store.Get(StorageKey)
	if err != nil {
		return nil, fmt.Errorf("failed to read search history: %w", err)
	}

	history := &History{store: store}
	if !found {
		return history, nil
	}

	if err := json.Unmarshal([]byte(raw), &history.terms); err != nil {
		slog.Warn("Discarding unreadable search history", "error", err)
		history.terms = nil
	}
	if len(history.terms) > MaxEntries {
		history.terms = history.terms[:MaxEntries]
	}
	return history, nil
}

// Add records term at the front of the history. A term already present is
// moved to the front instead of duplicated; the comparison ignores case and
// surrounding whitespace. Blank terms are ignored.
func (h *History) Add(term string) error {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil
	}

	kept := make([]string, 0, len(h.terms)+1)
	kept = append(kept, term)
	for _, existing := range h.terms {
		if strings.EqualFold(existing, term) {
			continue
		}
		kept = append(kept, existing)
	}
	if len(kept) > MaxEntries {
		kept = kept[:MaxEntries]
	}
	h.terms = kept

	return h.save()
}

// Terms returns the history, most recent first. The returned slice is a copy.
func (h *History) Terms() []string {
	terms := make([]string, len(h.terms))
	copy(terms, h.terms)
	return terms
}

// Clear empties the history.
func (h *History) Clear() error {
	h.terms = nil
	if err := h.store.Remove(StorageKey); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}

func (h *History) save() error {
	data, err := json.Marshal(h.terms)
	if err != nil {
		return fmt.Errorf("failed to serialize search history: %w", err)
	}
	if err := h.store.Set(StorageKey, string(data)); err != nil {
		return fmt.Errorf("failed to persist search history: %w", err)
	}
	return nil
}
