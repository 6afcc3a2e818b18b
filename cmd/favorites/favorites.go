// Package favorites implements the favorites management commands.
package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mlahtinen/bookfind/internal/config"
	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/favorites"
	"github.com/mlahtinen/bookfind/internal/openlibrary"
	"github.com/mlahtinen/bookfind/internal/storage"
)

// Options configures the favorites subcommands.
type Options struct {
	// Key identifies the work for toggle (e.g. OL45883W or /works/OL45883W).
	Key string
	// Dir is the markdown export directory; empty uses the configured one.
	Dir string
	// File is the JSON export path.
	File string

	JSON bool

	Output io.Writer
	Client *openlibrary.Client
	Store  storage.Store
}

func (o *Options) defaults() {
	if o.Output == nil {
		o.Output = os.Stdout
	}
}

func (o *Options) load() (*favorites.List, func(), error) {
	store := o.Store
	cleanup := func() {}
	if store == nil {
		opened, err := storage.NewSQLiteStore(viper.GetString("store.dbfile"))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open store: %w", err)
		}
		store = opened
		cleanup = func() { _ = opened.Close() }
	}

	list, err := favorites.Load(store)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return list, cleanup, nil
}

// RunList prints the saved favorites.
func RunList(opts Options) error {
	opts.defaults()

	list, cleanup, err := opts.load()
	if err != nil {
		return err
	}
	defer cleanup()

	books := list.All()
	if opts.JSON {
		encoder := json.NewEncoder(opts.Output)
		encoder.SetIndent("", "  ")
		return encoder.Encode(books)
	}

	if len(books) == 0 {
		fmt.Fprintln(opts.Output, "No favorites saved")
		return nil
	}

	fmt.Fprintf(opts.Output, "%d favorites\n\n", len(books))
	for _, book := range books {
		fmt.Fprintf(opts.Output, "* %s\n", book.Title)
		fmt.Fprintf(opts.Output, "  by %s (%s)\n", enrich.FormatAuthors(book.AuthorNames), book.Key)
	}
	return nil
}

// RunToggle flips the favorite state of a single work. Favoriting a work
// that is not in the list yet fetches its details from the API.
func RunToggle(opts Options) error {
	opts.defaults()

	list, cleanup, err := opts.load()
	if err != nil {
		return err
	}
	defer cleanup()

	key := openlibrary.NormalizeWorkKey(opts.Key)
	if list.IsFavorited(key) {
		if _, err := list.Toggle(openlibrary.BookRecord{Key: key}); err != nil {
			return err
		}
		fmt.Fprintf(opts.Output, "Removed %s from favorites\n", key)
		return nil
	}

	if opts.Client == nil {
		opts.Client = openlibrary.NewClient()
	}
	work, err := opts.Client.Work(context.Background(), workID(key))
	if err != nil {
		return fmt.Errorf("failed to fetch work details: %w", err)
	}

	record := openlibrary.BookRecord{
		Key:      key,
		Title:    work.Title,
		Subjects: work.Subjects,
	}
	if len(work.Covers) > 0 {
		record.CoverID = work.Covers[0]
	}

	if _, err := list.Toggle(record); err != nil {
		return err
	}
	fmt.Fprintf(opts.Output, "Added %q to favorites\n", work.Title)
	return nil
}

// RunExport writes the favorites as markdown notes, plus a JSON file when
// File is set.
func RunExport(opts Options) error {
	opts.defaults()

	list, cleanup, err := opts.load()
	if err != nil {
		return err
	}
	defer cleanup()

	dir := opts.Dir
	if dir == "" {
		dir = filepath.Join(viper.GetString("ExportOutputDir"), "favorites")
	}

	written, err := list.ExportMarkdown(dir, config.OverwriteFiles)
	if err != nil {
		return err
	}
	fmt.Fprintf(opts.Output, "Exported %d of %d favorites to %s\n", written, list.Count(), dir)

	if opts.File != "" {
		if err := list.ExportJSON(opts.File, config.OverwriteFiles); err != nil {
			return err
		}
		fmt.Fprintf(opts.Output, "Wrote JSON export to %s\n", opts.File)
	}
	return nil
}

// RunClear removes every favorite.
func RunClear(opts Options) error {
	opts.defaults()

	list, cleanup, err := opts.load()
	if err != nil {
		return err
	}
	defer cleanup()

	count := list.Count()
	if err := list.Clear(); err != nil {
		return err
	}
	fmt.Fprintf(opts.Output, "Removed %d favorites\n", count)
	return nil
}

// workID strips the /works/ prefix for the API call.
func workID(key string) string {
	const prefix = "/works/"
	if len(key) > len(prefix) && key[:len(prefix)] == prefix {
		return key[len(prefix):]
	}
	return key
}
