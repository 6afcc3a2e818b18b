package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"

	"github.com/mlahtinen/bookfind/internal/recent"
	"github.com/mlahtinen/bookfind/internal/storage"
)

// recentOutput is swappable in tests.
var recentOutput io.Writer = os.Stdout

// RecentCmd represents the recent searches command
type RecentCmd struct {
	Clear bool `help:"Forget all recent searches"`
}

func (r *RecentCmd) Run() error {
	store, err := storage.NewSQLiteStore(viper.GetString("store.dbfile"))
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = store.Close() }()

	history, err := recent.Load(store)
	if err != nil {
		return err
	}

	if r.Clear {
		if err := history.Clear(); err != nil {
			return err
		}
		fmt.Fprintln(recentOutput, "Recent searches cleared")
		return nil
	}

	terms := history.Terms()
	if len(terms) == 0 {
		fmt.Fprintln(recentOutput, "No recent searches")
		return nil
	}

	for i, term := range terms {
		fmt.Fprintf(recentOutput, "%d. %s\n", i+1, term)
	}
	return nil
}

// SuggestCmd represents the search term suggestion command
type SuggestCmd struct {
	Partial string `arg:"" help:"Partial search term"`
}

func (s *SuggestCmd) Run() error {
	matches := recent.Suggest(s.Partial)
	if len(matches) == 0 {
		fmt.Fprintf(recentOutput, "No suggestions for %q\n", s.Partial)
		return nil
	}

	for _, term := range matches {
		fmt.Fprintln(recentOutput, term)
	}
	return nil
}
