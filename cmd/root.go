package cmd

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	favoritescmd "github.com/mlahtinen/bookfind/cmd/favorites"
	"github.com/mlahtinen/bookfind/cmd/search"
	"github.com/mlahtinen/bookfind/cmd/show"
	"github.com/mlahtinen/bookfind/internal/cache"
	"github.com/mlahtinen/bookfind/internal/config"
	"github.com/mlahtinen/bookfind/internal/pipeline"
)

var (
	runSearch         = search.Run
	runTrending       = search.RunTrending
	runShowWork       = show.RunWork
	runShowAuthor     = show.RunAuthor
	runFavoritesList  = favoritescmd.RunList
	runFavoritesAdd   = favoritescmd.RunToggle
	runFavoritesExp   = favoritescmd.RunExport
	runFavoritesClear = favoritescmd.RunClear
)

// CLI represents the complete command structure for the bookfind application
type CLI struct {
	// Global flags
	Overwrite    bool   `help:"Overwrite existing export files when writing"`
	UpdateCovers bool   `help:"Re-download cover images even if they already exist"`
	PageSize     int    `help:"Results shown per page" default:"8"`
	Theme        string `help:"Colour theme for interactive output (dark or light)"`

	// Storage flags
	StoreDB string `help:"Path to the favorites/history SQLite database" default:"./bookfind.db"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 5m)" default:"5m"`

	Search    SearchCmd    `cmd:"" help:"Search OpenLibrary for books"`
	Favorites FavoritesCmd `cmd:"" help:"Manage saved favorites"`
	Recent    RecentCmd    `cmd:"" help:"Show or clear recent searches"`
	Suggest   SuggestCmd   `cmd:"" help:"Suggest search terms for a partial input"`
	Show      ShowCmd      `cmd:"" help:"Show details for a single work or author"`
	Trending  TrendingCmd  `cmd:"" help:"Browse a trending subject"`
	Cache     CacheCmd     `cmd:"" help:"Manage the search response cache"`
}

// SearchCmd represents the search command
type SearchCmd struct {
	Term string `arg:"" help:"Search term"`

	Type  string `short:"t" help:"Search type: title, author, subject, isbn or any" default:"title" enum:"title,author,subject,isbn,any"`
	Limit int    `short:"l" help:"Number of results to fetch (max 50)" default:"24"`

	Language  string  `help:"Only include books available in this language code (e.g. eng)"`
	YearFrom  int     `help:"Only include books first published in or after this year"`
	YearTo    int     `help:"Only include books first published in or before this year"`
	MinRating float64 `help:"Only include books rated at least this highly"`
	HasCover  bool    `help:"Only include books with a cover image"`
	Subject   string  `help:"Only include books whose subjects contain this text"`

	Sort string `short:"s" help:"Sort order: relevance, title, author, year, rating or popularity" default:"relevance" enum:"relevance,title,author,year,rating,popularity"`
	Page int    `short:"p" help:"Page of results to show" default:"1"`

	JSON        bool `help:"Write results as JSON"`
	Interactive bool `short:"i" help:"Browse results interactively"`
	Covers      bool `help:"Download cover images for the shown page"`
	NoCache     bool `help:"Bypass the response cache"`
}

func (s *SearchCmd) Run() error {
	return runSearch(search.Options{
		Term:  s.Term,
		Type:  s.Type,
		Limit: s.Limit,
		Filters: pipeline.Filters{
			Language:  s.Language,
			YearFrom:  s.YearFrom,
			YearTo:    s.YearTo,
			MinRating: s.MinRating,
			HasCover:  s.HasCover,
			Subject:   s.Subject,
		},
		Sort:           s.Sort,
		Page:           s.Page,
		PageSize:       config.PageSize,
		JSON:           s.JSON,
		Interactive:    s.Interactive,
		DownloadCovers: s.Covers,
		NoCache:        s.NoCache,
	})
}

// FavoritesCmd represents the favorites command and its subcommands
type FavoritesCmd struct {
	List   FavoritesListCmd   `cmd:"" default:"1" help:"List saved favorites"`
	Toggle FavoritesToggleCmd `cmd:"" help:"Add or remove a favorite by work key"`
	Export FavoritesExportCmd `cmd:"" help:"Export favorites as markdown notes"`
	Clear  FavoritesClearCmd  `cmd:"" help:"Remove all favorites"`
}

// FavoritesListCmd lists the saved favorites
type FavoritesListCmd struct {
	JSON bool `help:"Write favorites as JSON"`
}

func (f *FavoritesListCmd) Run() error {
	return runFavoritesList(favoritescmd.Options{JSON: f.JSON})
}

// FavoritesToggleCmd adds or removes a favorite
type FavoritesToggleCmd struct {
	Key string `arg:"" help:"OpenLibrary work key (e.g. OL45883W)"`
}

func (f *FavoritesToggleCmd) Run() error {
	return runFavoritesAdd(favoritescmd.Options{Key: f.Key})
}

// FavoritesExportCmd exports favorites to disk
type FavoritesExportCmd struct {
	Output string `short:"o" help:"Directory for the markdown notes (defaults to the export directory)"`
	JSON   string `help:"Also write a JSON export to this path"`
}

func (f *FavoritesExportCmd) Run() error {
	return runFavoritesExp(favoritescmd.Options{Dir: f.Output, File: f.JSON})
}

// FavoritesClearCmd removes all favorites
type FavoritesClearCmd struct{}

func (f *FavoritesClearCmd) Run() error {
	return runFavoritesClear(favoritescmd.Options{})
}

// ShowCmd represents the detail lookup command
type ShowCmd struct {
	Work   ShowWorkCmd   `cmd:"" help:"Show details for a work"`
	Author ShowAuthorCmd `cmd:"" help:"Show details for an author"`
}

// ShowWorkCmd shows one work
type ShowWorkCmd struct {
	ID   string `arg:"" help:"OpenLibrary work ID (e.g. OL45883W)"`
	JSON bool   `help:"Write details as JSON"`
}

func (s *ShowWorkCmd) Run() error {
	return runShowWork(show.Options{ID: s.ID, JSON: s.JSON})
}

// ShowAuthorCmd shows one author
type ShowAuthorCmd struct {
	ID   string `arg:"" help:"OpenLibrary author ID (e.g. OL23919A)"`
	JSON bool   `help:"Write details as JSON"`
}

func (s *ShowAuthorCmd) Run() error {
	return runShowAuthor(show.Options{ID: s.ID, JSON: s.JSON})
}

// TrendingCmd represents the trending command
type TrendingCmd struct {
	Limit int    `short:"l" help:"Number of results to fetch (max 50)" default:"24"`
	Sort  string `short:"s" help:"Sort order" default:"relevance" enum:"relevance,title,author,year,rating,popularity"`
	JSON  bool   `help:"Write results as JSON"`
	Seed  int64  `help:"Fix the subject rotation for reproducible output"`
}

func (c *TrendingCmd) Run() error {
	return runTrending(search.Options{
		Limit:    c.Limit,
		Sort:     c.Sort,
		JSON:     c.JSON,
		Seed:     c.Seed,
		PageSize: config.PageSize,
	})
}

// CacheCmd represents the cache command and its subcommands
type CacheCmd struct {
	Clear cache.ClearCacheCmd `cmd:"" help:"Clear cached search responses"`
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("bookfind"),
		kong.Description("Discover books through the OpenLibrary catalog."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	if err := ctx.Run(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("ExportOutputDir", "./export/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("pagesize", 8)
	viper.SetDefault("theme", "dark")

	// Storage defaults
	viper.SetDefault("store.dbfile", "./bookfind.db")

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "5m")

	// Enable environment variable support
	viper.AutomaticEnv()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Info("Config file not found, writing default config file...")
			if err := viper.SafeWriteConfig(); err != nil {
				slog.Error("Error writing config file", "error", err)
			}
			os.Exit(0)
		} else {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	// Initialize global config
	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetOverwriteFiles(cli.Overwrite)
	config.SetUpdateCovers(cli.UpdateCovers)
	config.SetPageSize(cli.PageSize)
	if cli.Theme != "" {
		viper.Set("theme.flag", cli.Theme)
		config.SetTheme(cli.Theme)
	}

	// Update storage config
	viper.Set("store.dbfile", cli.StoreDB)

	// Update cache config
	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})

	slog.SetDefault(slog.New(handler))
}
