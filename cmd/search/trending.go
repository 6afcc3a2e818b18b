package search

import (
	"context"
	"fmt"

	"github.com/mlahtinen/bookfind/internal/enrich"
	"github.com/mlahtinen/bookfind/internal/pipeline"
	"github.com/mlahtinen/bookfind/internal/session"
)

// RunTrending picks a rotating subject, searches it and renders the results
// through the same pipeline as a normal search.
func RunTrending(opts Options) error {
	opts.defaults()

	store, owned, err := openStore(&opts)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	if owned {
		defer func() { _ = store.Close() }()
	}

	rng := newRng(opts.Seed)
	term, records, err := opts.Client.Trending(context.Background(), rng, opts.Limit)
	if err != nil {
		return err
	}

	state := session.New(opts.PageSize)
	token := state.Begin(term)
	state.ApplyResults(token, enrich.EnrichAll(records, rng))
	state.SetSort(pipeline.ParseSortKey(opts.Sort))
	state.SetPage(opts.Page)

	fmt.Fprintf(opts.Output, "Trending now: %s\n\n", term)
	return present(state, store, &opts)
}
