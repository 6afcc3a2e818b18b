package cache

import (
	"fmt"
	"log/slog"

	"github.com/spf13/viper"
)

// ClearCacheCmd represents the cache clear subcommand
type ClearCacheCmd struct {
	Expired bool `help:"Only remove entries past their TTL"`
}

func (c *ClearCacheCmd) Run() error {
	cacheDB := viper.GetString("cache.dbfile")

	cacheInstance, err := GetGlobalCache()
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}

	if c.Expired {
		if err := cacheInstance.ClearExpired(TTL()); err != nil {
			return fmt.Errorf("failed to clear expired cache entries: %w", err)
		}
		slog.Info("Expired cache entries cleared", "database", cacheDB)
		return nil
	}

	rowsDeleted, err := cacheInstance.ClearAll()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}

	slog.Info("Cache cleared", "database", cacheDB, "rows_deleted", rowsDeleted)
	return nil
}
