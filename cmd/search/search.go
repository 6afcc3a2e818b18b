// Package search implements the book discovery pipeline behind the search
// and trending commands: query the OpenLibrary API, enrich the results and
// run them through the filter, sort and pagination stages.
package search

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/mlahtinen/bookfind/internal/config"
	"github.com/mlahtinen/bookfind/internal/covers"
	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/favorites"
	"github.com/mlahtinen/bookfind/internal/openlibrary"
	"github.com/mlahtinen/bookfind/internal/pipeline"
	"github.com/mlahtinen/bookfind/internal/recent"
	"github.com/mlahtinen/bookfind/internal/session"
	"github.com/mlahtinen/bookfind/internal/storage"
	"github.com/mlahtinen/bookfind/internal/tui"
)

// ThemeKey is the key-value entry holding the persisted theme choice.
const ThemeKey = "bookfind-theme"

// Options carries everything one search run needs. Zero values fall back to
// sensible defaults so the CLI layer only sets what the user asked for.
type Options struct {
	Term  string
	Type  string
	Limit int

	Filters  pipeline.Filters
	Sort     string
	Page     int
	PageSize int

	JSON        bool
	Interactive bool

	DownloadCovers bool
	CoverDir       string

	NoCache bool

	// Seed fixes the enrichment randomness; zero means time-seeded.
	Seed int64

	// Output receives the rendered results; defaults to stdout.
	Output io.Writer

	// Client and Store are injectable for tests.
	Client *openlibrary.Client
	Store  storage.Store
}

func (o *Options) defaults() {
	if o.Output == nil {
		o.Output = os.Stdout
	}
	if o.PageSize <= 0 {
		o.PageSize = config.PageSize
	}
	if o.Page <= 0 {
		o.Page = 1
	}
	if o.Client == nil {
		clientOpts := []openlibrary.Option{}
		if o.NoCache {
			clientOpts = append(clientOpts, openlibrary.WithoutCache())
		}
		o.Client = openlibrary.NewClient(clientOpts...)
	}
}

func newRng(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// openStore returns the injected store or opens the configured SQLite one.
// The second return value tells the caller whether it owns the store.
func openStore(opts *Options) (storage.Store, bool, error) {
	if opts.Store != nil {
		return opts.Store, false, nil
	}
	store, err := storage.NewSQLiteStore(viper.GetString("store.dbfile"))
	if err != nil {
		return nil, false, err
	}
	return store, true, nil
}

// Run executes one search: fetch, enrich, filter, sort, paginate, render.
func Run(opts Options) error {
	opts.defaults()
	if err := opts.Filters.Validate(); err != nil {
		return err
	}

	store, owned, err := openStore(&opts)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if owned {
		defer func() { _ = store.Close() }()
	}

	searchType := openlibrary.ParseSearchType(opts.Type)
	state := session.New(opts.PageSize)
	token := state.Begin(opts.Term)

	records, err := opts.Client.Search(context.Background(), opts.Term, searchType, opts.Limit)
	if err != nil {
		state.ApplyError(token, err)
		return err
	}

	// Successful searches go into the recent history; a history failure is
	// not worth failing the search over.
	if history, histErr := recent.Load(store); histErr == nil {
		if addErr := history.Add(opts.Term); addErr != nil {
			slog.Warn("Failed to record search history", "error", addErr)
		}
	} else {
		slog.Warn("Failed to load search history", "error", histErr)
	}

	enriched := enrich.EnrichAll(records, newRng(opts.Seed))
	state.ApplyResults(token, enriched)
	state.SetFilters(opts.Filters)
	state.SetSort(pipeline.ParseSortKey(opts.Sort))
	state.SetPage(opts.Page)

	return present(state, store, &opts)
}

// present renders the session either interactively or as text/JSON, and
// downloads covers when asked.
func present(state *session.State, store storage.Store, opts *Options) error {
	favs, err := favorites.Load(store)
	if err != nil {
		return err
	}

	if opts.DownloadCovers {
		if err := downloadCovers(state.View(), opts); err != nil {
			slog.Warn("Cover download failed", "error", err)
		}
	}

	if opts.Interactive {
		return tui.Browse(state, favs, resolveTheme(store, config.Theme))
	}

	page := state.View()
	if opts.JSON {
		return renderJSON(opts.Output, state.Term(), page)
	}
	renderText(opts.Output, state.Term(), page, favs)
	return nil
}

func downloadCovers(page pipeline.Page, opts *Options) error {
	dir := opts.CoverDir
	if dir == "" {
		dir = viper.GetString("ExportOutputDir")
	}

	downloader := covers.NewDownloader(covers.WithUpdate(config.UpdateCovers))
	for _, book := range page.Books {
		url := opts.Client.CoverURL(book.CoverID, openlibrary.CoverLarge)
		if _, _, err := downloader.Download(context.Background(), url, dir, book.Title); err != nil {
			return err
		}
	}
	return nil
}

// resolveTheme prefers an explicit --theme flag and persists it; otherwise
// it falls back to the stored choice, then the configured default.
func resolveTheme(store storage.Store, configured string) string {
	if flagged := viper.GetString("theme.flag"); flagged != "" {
		if err := store.Set(ThemeKey, flagged); err != nil {
			slog.Warn("Failed to persist theme", "error", err)
		}
		return flagged
	}

	if stored, found, err := store.Get(ThemeKey); err == nil && found && stored != "" {
		return stored
	}
	return configured
}
