// Package cache provides a time-boxed, size-capped store for search API
// responses, keyed by request signature (endpoint + parameters).
package cache

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/spf13/viper"
	_ "modernc.org/sqlite"
)

const (
	// DefaultTTL is how long a cached response stays fresh (5 minutes)
	DefaultTTL = 5 * time.Minute
	// MaxEntries caps the cache size; inserting beyond it evicts the
	// oldest-inserted rows (insertion order, not LRU-by-access)
	MaxEntries = 100
)

// FetchFunc represents a function that fetches data from the external API
type FetchFunc[T any] func() (T, error)

// DB manages the SQLite database connection for the response cache
type DB struct {
	db         *sql.DB
	mu         sync.RWMutex
	path       string
	maxEntries int
}

var (
	globalCache     *DB
	globalCacheOnce sync.Once
)

// ResetGlobalCache closes the current global cache and resets the singleton
// so the next call to GetGlobalCache will create a new instance.
// This is primarily for testing purposes.
func ResetGlobalCache() error {
	if globalCache != nil {
		if err := globalCache.Close(); err != nil {
			return err
		}
	}
	globalCache = nil
	globalCacheOnce = sync.Once{}
	return nil
}

// GetGlobalCache returns the singleton cache database instance
func GetGlobalCache() (*DB, error) {
	var initErr error
	globalCacheOnce.Do(func() {
		dbPath := viper.GetString("cache.dbfile")
		if dbPath == "" {
			dbPath = "./cache.db"
		}
		globalCache, initErr = NewDB(dbPath)
	})
	if initErr != nil {
		return nil, initErr
	}
	return globalCache, nil
}

// NewDB creates a new cache DB and opens the database connection
func NewDB(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	if err := db.Ping(); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to connect to cache database: %w", err), closeErr)
	}

	if _, err := db.Exec(SearchCacheSchema); err != nil {
		closeErr := db.Close()
		return nil, errors.Join(fmt.Errorf("failed to create cache table: %w", err), closeErr)
	}

	return &DB{
		db:         db,
		path:       dbPath,
		maxEntries: MaxEntries,
	}, nil
}

// Close closes the database connection
func (c *DB) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// TTL returns the configured cache TTL, falling back to the 5-minute default
func TTL() time.Duration {
	ttlStr := viper.GetString("cache.ttl")
	if ttlStr == "" {
		return DefaultTTL
	}
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		slog.Warn("Invalid cache TTL, using default", "ttl", ttlStr, "error", err)
		return DefaultTTL
	}
	return ttl
}

// GetOrFetch retrieves data from the cache or fetches it using fetchFunc.
// signature is the request signature (endpoint + encoded parameters) used as
// the cache key. A cache layer failure degrades to a direct fetch.
func GetOrFetch[T any](signature string, fetchFunc FetchFunc[T]) (T, bool, error) {
	var zero T

	cache, err := GetGlobalCache()
	if err != nil {
		slog.Warn("Failed to initialize cache, fetching directly", "error", err)
		data, fetchErr := fetchFunc()
		return data, false, fetchErr
	}

	ttl := TTL()

	cached, fromCache, err := cache.Get(signature, ttl)
	if err == nil && fromCache {
		var result T
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			slog.Debug("Cache hit", "signature", signature)
			return result, true, nil
		}
		slog.Warn("Failed to unmarshal cached data, will refetch", "signature", signature, "error", err)
	}

	slog.Debug("Cache miss, fetching data", "signature", signature)
	data, err := fetchFunc()
	if err != nil {
		return zero, false, err
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		slog.Warn("Failed to marshal data for caching", "signature", signature, "error", err)
	} else if err := cache.Set(signature, string(jsonData)); err != nil {
		// Caching failure must not fail the search
		slog.Warn("Failed to cache data", "signature", signature, "error", err)
	}

	return data, false, nil
}

// Get retrieves a cached value by signature.
// Returns the cached payload, whether it was fresh, and any error.
func (c *DB) Get(signature string, ttl time.Duration) (string, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var data string
	var cachedAt time.Time
	err := c.db.QueryRow(`
		SELECT data, cached_at
		FROM search_cache
		WHERE signature = ?
	`, signature).Scan(&data, &cachedAt)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to query cache: %w", err)
	}

	age := time.Now().UTC().Sub(cachedAt)
	if age > ttl {
		slog.Debug("Cache expired", "signature", signature, "age", age)
		return "", false, nil
	}

	return data, true, nil
}

// Set stores a payload under signature and evicts the oldest-inserted
// entries when the cache exceeds its capacity.
func (c *DB) Set(signature, data string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO search_cache (signature, data, cached_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
	`, signature, data)
	if err != nil {
		return fmt.Errorf("failed to set cache: %w", err)
	}

	return c.evictOldestLocked()
}

// evictOldestLocked trims the table down to maxEntries by insertion order.
// Caller must hold the write lock.
func (c *DB) evictOldestLocked() error {
	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM search_cache").Scan(&count); err != nil {
		return fmt.Errorf("failed to count cache entries: %w", err)
	}

	if count <= c.maxEntries {
		return nil
	}

	result, err := c.db.Exec(`
		DELETE FROM search_cache
		WHERE rowid IN (
			SELECT rowid FROM search_cache
			ORDER BY rowid ASC
			LIMIT ?
		)
	`, count-c.maxEntries)
	if err != nil {
		return fmt.Errorf("failed to evict cache entries: %w", err)
	}

	evicted, _ := result.RowsAffected()
	slog.Debug("Evicted oldest cache entries", "count", evicted)
	return nil
}

// ClearExpired removes entries older than ttl
func (c *DB) ClearExpired(ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	cutoff := time.Now().UTC().Add(-ttl)
	result, err := c.db.Exec("DELETE FROM search_cache WHERE cached_at < ?", cutoff)
	if err != nil {
		return fmt.Errorf("failed to clear expired cache: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows > 0 {
		slog.Info("Cleared expired cache entries", "count", rows)
	}

	return nil
}

// ClearAll removes every cache entry.
// Returns the number of rows deleted.
func (c *DB) ClearAll() (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result, err := c.db.Exec("DELETE FROM search_cache")
	if err != nil {
		return 0, fmt.Errorf("failed to clear cache: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	slog.Debug("Cache cleared", "rows_deleted", rows)
	return rows, nil
}

// Exists checks if a cache entry exists for the given signature,
// regardless of freshness
func (c *DB) Exists(signature string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var exists int
	err := c.db.QueryRow("SELECT 1 FROM search_cache WHERE signature = ? LIMIT 1", signature).Scan(&exists)
	return err == nil
}

// Count returns the number of entries currently cached
func (c *DB) Count() (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var count int
	if err := c.db.QueryRow("SELECT COUNT(*) FROM search_cache").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}
