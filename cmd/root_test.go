package cmd

import (
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlahtinen/bookfind/cmd/search"
	"github.com/mlahtinen/bookfind/internal/config"
)

func resetCmdState(t *testing.T) {
	origOverwrite := config.OverwriteFiles
	origUpdate := config.UpdateCovers
	origPageSize := config.PageSize
	origTheme := config.Theme

	t.Cleanup(func() {
		config.OverwriteFiles = origOverwrite
		config.UpdateCovers = origUpdate
		config.PageSize = origPageSize
		config.Theme = origTheme
		viper.Reset()
	})

	viper.Reset()
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"bookfind"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("bookfind"),
		kong.Description("Discover books through the OpenLibrary catalog."),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		Overwrite:    true,
		UpdateCovers: true,
		PageSize:     12,
		Theme:        "light",
		StoreDB:      "/tmp/bookfind.db",
		CacheDBFile:  "/tmp/cache.db",
		CacheTTL:     "10m",
	}

	updateGlobalConfig(cli)

	assert.True(t, config.OverwriteFiles)
	assert.True(t, config.UpdateCovers)
	assert.Equal(t, 12, config.PageSize)
	assert.Equal(t, "light", config.Theme)
	assert.Equal(t, "/tmp/bookfind.db", viper.GetString("store.dbfile"))
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "10m", viper.GetString("cache.ttl"))
}

func TestUpdateGlobalConfigKeepsThemeWhenUnset(t *testing.T) {
	resetCmdState(t)
	config.Theme = "dark"

	updateGlobalConfig(&CLI{})

	assert.Equal(t, "dark", config.Theme)
	assert.False(t, viper.IsSet("theme.flag"))
}

func TestSearchCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "search", "dune", "-t", "author", "--min-rating", "4.0",
		"--year-from", "1960", "--has-cover", "-s", "rating", "-p", "2", "--json")

	assert.Equal(t, "search <term>", ctx.Command())
	assert.Equal(t, "dune", cli.Search.Term)
	assert.Equal(t, "author", cli.Search.Type)
	assert.InDelta(t, 4.0, cli.Search.MinRating, 0.001)
	assert.Equal(t, 1960, cli.Search.YearFrom)
	assert.True(t, cli.Search.HasCover)
	assert.Equal(t, "rating", cli.Search.Sort)
	assert.Equal(t, 2, cli.Search.Page)
	assert.True(t, cli.Search.JSON)
}

func TestSearchCommandDefaults(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "search", "dune")

	assert.Equal(t, "title", cli.Search.Type)
	assert.Equal(t, 24, cli.Search.Limit)
	assert.Equal(t, "relevance", cli.Search.Sort)
	assert.Equal(t, 1, cli.Search.Page)
	assert.False(t, cli.Search.Interactive)
	assert.Equal(t, 8, cli.PageSize)
	assert.Equal(t, "./bookfind.db", cli.StoreDB)
	assert.Equal(t, "5m", cli.CacheTTL)
}

func TestFavoritesCommandParsing(t *testing.T) {
	resetCmdState(t)

	_, ctx := parseCLI(t, "favorites")
	assert.Equal(t, "favorites list", ctx.Command())

	cli, ctx := parseCLI(t, "favorites", "toggle", "OL45883W")
	assert.Equal(t, "favorites toggle <key>", ctx.Command())
	assert.Equal(t, "OL45883W", cli.Favorites.Toggle.Key)

	cli, _ = parseCLI(t, "favorites", "export", "-o", "/tmp/notes", "--json", "/tmp/favs.json")
	assert.Equal(t, "/tmp/notes", cli.Favorites.Export.Output)
	assert.Equal(t, "/tmp/favs.json", cli.Favorites.Export.JSON)
}

func TestShowCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "show", "work", "OL45883W", "--json")
	assert.Equal(t, "show work <id>", ctx.Command())
	assert.Equal(t, "OL45883W", cli.Show.Work.ID)
	assert.True(t, cli.Show.Work.JSON)

	cli, _ = parseCLI(t, "show", "author", "OL23919A")
	assert.Equal(t, "OL23919A", cli.Show.Author.ID)
}

func TestRecentAndSuggestParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "recent", "--clear")
	assert.Equal(t, "recent", ctx.Command())
	assert.True(t, cli.Recent.Clear)

	cli, ctx = parseCLI(t, "suggest", "pyth")
	assert.Equal(t, "suggest <partial>", ctx.Command())
	assert.Equal(t, "pyth", cli.Suggest.Partial)
}

func TestCacheClearParsing(t *testing.T) {
	resetCmdState(t)

	cli, ctx := parseCLI(t, "cache", "clear", "--expired")
	assert.Equal(t, "cache clear", ctx.Command())
	assert.True(t, cli.Cache.Clear.Expired)
}

func TestSearchRunWiresOptions(t *testing.T) {
	resetCmdState(t)
	config.PageSize = 8

	orig := runSearch
	defer func() { runSearch = orig }()

	var got search.Options
	runSearch = func(opts search.Options) error {
		got = opts
		return nil
	}

	cli, ctx := parseCLI(t, "search", "dune", "--language", "eng", "--subject", "fiction")
	updateGlobalConfig(cli)
	require.NoError(t, ctx.Run())

	assert.Equal(t, "dune", got.Term)
	assert.Equal(t, "eng", got.Filters.Language)
	assert.Equal(t, "fiction", got.Filters.Subject)
	assert.Equal(t, 8, got.PageSize)
}
