package testutil

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/mlahtinen/bookfind/internal/config"
)

// ConfigState holds the state of the config package variables.
type ConfigState struct {
	OverwriteFiles bool
	UpdateCovers   bool
	PageSize       int
	Theme          string
}

// SaveConfigState captures the current state of config package variables.
func SaveConfigState() ConfigState {
	return ConfigState{
		OverwriteFiles: config.OverwriteFiles,
		UpdateCovers:   config.UpdateCovers,
		PageSize:       config.PageSize,
		Theme:          config.Theme,
	}
}

// RestoreConfigState restores the config package variables to a saved state.
func RestoreConfigState(state ConfigState) {
	config.OverwriteFiles = state.OverwriteFiles
	config.UpdateCovers = state.UpdateCovers
	config.PageSize = state.PageSize
	config.Theme = state.Theme
}

// ResetConfig saves the current config state, resets viper, and schedules
// restoration when the test completes.
func ResetConfig(t *testing.T) {
	t.Helper()

	state := SaveConfigState()
	viper.Reset()

	t.Cleanup(func() {
		RestoreConfigState(state)
		viper.Reset()
	})
}

// SetTestConfig sets up a test configuration with common defaults and
// restores the previous state on cleanup.
func SetTestConfig(t *testing.T) {
	t.Helper()

	ResetConfig(t)

	config.OverwriteFiles = true
	config.UpdateCovers = false
	config.PageSize = 8
	config.Theme = "dark"
}

// SetViperValue sets a viper configuration value and schedules cleanup.
func SetViperValue(t *testing.T, key string, value any) {
	t.Helper()

	oldValue := viper.Get(key)
	hadValue := viper.IsSet(key)

	viper.Set(key, value)

	t.Cleanup(func() {
		if hadValue {
			viper.Set(key, oldValue)
		}
	})
}

// SetupTestCache points the search cache at a fresh database inside env and
// returns the cache directory.
func SetupTestCache(t *testing.T, env *TestEnv) string {
	t.Helper()

	cacheDir := env.Path("cache")
	env.MkdirAll("cache")

	viper.Set("cache.dbfile", env.Path("cache", "test-cache.db"))
	viper.Set("cache.ttl", "5m")

	return cacheDir
}

// SetupTestStore points the key-value store at a fresh database inside env
// and returns the database path.
func SetupTestStore(t *testing.T, env *TestEnv) string {
	t.Helper()

	dbPath := env.Path("store.db")
	SetViperValue(t, "store.dbfile", dbPath)
	return dbPath
}
