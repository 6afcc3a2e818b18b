package cache

// SearchCacheSchema defines the schema for the search response cache.
// The signature column is the full request signature (endpoint + parameters).
const SearchCacheSchema = `
CREATE TABLE IF NOT EXISTS search_cache (
	signature TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_search_cached_at ON search_cache(cached_at);
`
