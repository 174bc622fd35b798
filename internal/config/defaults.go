package config

import (
	"os"
	"path/filepath"
)

// GetDefault returns the default configuration
func GetDefault() *Config {
	return &Config{
		Folder:            DefaultFolder(),
		Days:              7,
		UseHash:           true,
		UseSize:           false,
		UseName:           false,
		UseMtime:          false,
		UseMime:           false,
		HashLimitEnabled:  true,
		HashMaxMB:         500,
		IncludeSubfolders: true,
		NamePrefix:        "",
		RecentFolders:     []string{},
		Rename: RenameConfig{
			Components: []RenameComponent{
				{Kind: "folder_name"},
				{Kind: "date_created"},
				{Kind: "time_created"},
				{Kind: "sequence", PadWidth: 3},
			},
			Separator:      "_",
			FileTypePreset: "all",
		},
	}
}

// DefaultFolder resolves a sensible default scan folder: the user's
// Downloads directory when present, otherwise the working directory.
func DefaultFolder() string {
	if home, err := os.UserHomeDir(); err == nil {
		downloads := filepath.Join(home, "Downloads")
		if info, err := os.Stat(downloads); err == nil && info.IsDir() {
			return downloads
		}
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}
