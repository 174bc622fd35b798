// Package config holds the persisted application settings: scan folder,
// duplicate criteria, hash cap, traversal options and the rename schema.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/dupesweep/internal/dedupe"
	"github.com/fenilsonani/dupesweep/pkg/utils"
)

// maxRecentFolders caps the recent-folder history.
const maxRecentFolders = 8

// Config represents the application configuration
type Config struct {
	Folder            string       `yaml:"folder"`
	Days              int          `yaml:"days"`
	UseHash           bool         `yaml:"use_hash"`
	UseSize           bool         `yaml:"use_size"`
	UseName           bool         `yaml:"use_name"`
	UseMtime          bool         `yaml:"use_mtime"`
	UseMime           bool         `yaml:"use_mime"`
	HashLimitEnabled  bool         `yaml:"hash_limit_enabled"`
	HashMaxMB         int          `yaml:"hash_max_mb"`
	IncludeSubfolders bool         `yaml:"include_subfolders"`
	NamePrefix        string       `yaml:"name_prefix"`
	RecentFolders     []string     `yaml:"recent_folders"`
	Rename            RenameConfig `yaml:"rename"`
}

// RenameConfig holds the auto-renamer schema
type RenameConfig struct {
	Components     []RenameComponent `yaml:"components"`
	Separator      string            `yaml:"separator"`
	FileTypePreset string            `yaml:"file_type_preset"`
}

// RenameComponent is one schema component; Kind selects the variant and
// PadWidth/Value apply only to the sequence and literal kinds.
type RenameComponent struct {
	Kind     string `yaml:"kind"`
	PadWidth int    `yaml:"pad_width,omitempty"`
	Value    string `yaml:"value,omitempty"`
}

// Criteria maps the enabled flags onto the engine's criteria set.
func (c *Config) Criteria() dedupe.Criteria {
	return dedupe.Criteria{
		Hash:  c.UseHash,
		Size:  c.UseSize,
		Name:  c.UseName,
		Mtime: c.UseMtime,
		Mime:  c.UseMime,
	}
}

// HashCapBytes returns the configured hash cap in bytes, or 0 when the
// limit is disabled.
func (c *Config) HashCapBytes() int64 {
	if !c.HashLimitEnabled || c.HashMaxMB <= 0 {
		return 0
	}
	return int64(c.HashMaxMB) * utils.MB
}

// CollectOptions maps the traversal settings onto the engine's options.
func (c *Config) CollectOptions() dedupe.CollectOptions {
	return dedupe.CollectOptions{
		DaysBack:   c.Days,
		NamePrefix: c.NamePrefix,
		Recursive:  c.IncludeSubfolders,
	}
}

// AddRecentFolder records a scanned folder at the front of the history,
// dropping duplicates and trimming to the cap.
func (c *Config) AddRecentFolder(folder string) {
	recent := []string{folder}
	for _, f := range c.RecentFolders {
		if f != folder {
			recent = append(recent, f)
		}
	}
	if len(recent) > maxRecentFolders {
		recent = recent[:maxRecentFolders]
	}
	c.RecentFolders = recent
}

// Load loads configuration from a file
func Load(configPath string) (*Config, error) {
	// If config doesn't exist, return default config
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return GetDefault(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Save saves configuration to a file
func Save(config *Config, configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Days < 0 {
		return fmt.Errorf("days must be >= 0")
	}
	if c.HashMaxMB < 0 {
		return fmt.Errorf("hash_max_mb must be >= 0")
	}
	if !c.Criteria().Any() {
		return fmt.Errorf("at least one duplicate criterion must be enabled")
	}
	for _, comp := range c.Rename.Components {
		switch comp.Kind {
		case "folder_name", "date_created", "date_modified",
			"time_created", "time_modified", "sequence",
			"original_stem", "literal":
		default:
			return fmt.Errorf("unknown rename component kind: %q", comp.Kind)
		}
	}
	return nil
}

// GetConfigPath returns the default config path
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	configDir := filepath.Join(homeDir, ".config", "dupesweep")
	return filepath.Join(configDir, "config.yaml"), nil
}

// EnsureConfigExists creates a default config file if it doesn't exist
func EnsureConfigExists() (string, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(GetDefault(), configPath); err != nil {
			return "", err
		}
	}

	return configPath, nil
}
