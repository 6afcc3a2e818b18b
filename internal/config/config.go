package config

import (
	"github.com/spf13/viper"
)

// Global configuration variables
var (
	// OverwriteFiles controls whether existing export files should be overwritten
	OverwriteFiles bool
	// UpdateCovers controls whether cover images are re-downloaded when they already exist
	UpdateCovers bool
	// PageSize is the number of results shown per page in search output
	PageSize int
	// Theme selects the colour palette for text output ("light" or "dark")
	Theme string
)

// InitConfig initializes the global configuration
func InitConfig() {
	// Set default values
	viper.SetDefault("ExportOutputDir", "./export/")
	viper.SetDefault("OverwriteFiles", false)
	viper.SetDefault("pagesize", 8)
	viper.SetDefault("theme", "dark")

	// Get values from viper
	OverwriteFiles = viper.GetBool("OverwriteFiles")
	UpdateCovers = viper.GetBool("UpdateCovers")
	PageSize = viper.GetInt("pagesize")
	Theme = viper.GetString("theme")
}

// SetOverwriteFiles sets the OverwriteFiles flag
func SetOverwriteFiles(overwrite bool) {
	OverwriteFiles = overwrite
}

// SetUpdateCovers sets the UpdateCovers flag
func SetUpdateCovers(update bool) {
	UpdateCovers = update
}

// SetPageSize sets the results-per-page count, ignoring non-positive values
func SetPageSize(size int) {
	if size > 0 {
		PageSize = size
	}
}

// SetTheme sets the output theme
func SetTheme(theme string) {
	if theme != "" {
		Theme = theme
	}
}
