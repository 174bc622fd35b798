package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fenilsonani/dupesweep/pkg/utils"
)

func TestGetDefault(t *testing.T) {
	cfg := GetDefault()

	if cfg.Days != 7 {
		t.Errorf("Days = %d, want 7", cfg.Days)
	}
	if !cfg.UseHash {
		t.Error("UseHash should default to true")
	}
	if !cfg.HashLimitEnabled || cfg.HashMaxMB != 500 {
		t.Errorf("hash cap defaults = %v/%d, want enabled at 500 MB", cfg.HashLimitEnabled, cfg.HashMaxMB)
	}
	if !cfg.IncludeSubfolders {
		t.Error("IncludeSubfolders should default to true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestLoadMissingReturnsDefault(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Days != 7 || !cfg.UseHash {
		t.Errorf("missing config did not yield defaults: %+v", cfg)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := GetDefault()
	cfg.Folder = "/data/photos"
	cfg.Days = 30
	cfg.UseHash = false
	cfg.UseName = true
	cfg.UseMtime = true
	cfg.NamePrefix = "IMG_"
	cfg.AddRecentFolder("/data/photos")

	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Folder != "/data/photos" || loaded.Days != 30 {
		t.Errorf("round-trip lost scalar fields: %+v", loaded)
	}
	if loaded.UseHash || !loaded.UseName || !loaded.UseMtime {
		t.Errorf("round-trip lost criteria flags: %+v", loaded)
	}
	if loaded.NamePrefix != "IMG_" {
		t.Errorf("NamePrefix = %q, want IMG_", loaded.NamePrefix)
	}
	if len(loaded.RecentFolders) != 1 || loaded.RecentFolders[0] != "/data/photos" {
		t.Errorf("RecentFolders = %v", loaded.RecentFolders)
	}
	if len(loaded.Rename.Components) != 4 {
		t.Errorf("rename schema lost components: %+v", loaded.Rename)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("{not yaml"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default is valid", func(c *Config) {}, false},
		{"negative days", func(c *Config) { c.Days = -1 }, true},
		{"negative hash cap", func(c *Config) { c.HashMaxMB = -5 }, true},
		{"no criteria", func(c *Config) { c.UseHash = false }, true},
		{"bad rename kind", func(c *Config) {
			c.Rename.Components = []RenameComponent{{Kind: "moon_phase"}}
		}, true},
		{"all criteria", func(c *Config) {
			c.UseSize, c.UseName, c.UseMtime, c.UseMime = true, true, true, true
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCriteriaMapping(t *testing.T) {
	cfg := &Config{UseHash: true, UseMime: true}
	crit := cfg.Criteria()
	if !crit.Hash || !crit.Mime || crit.Size || crit.Name || crit.Mtime {
		t.Errorf("Criteria() = %+v", crit)
	}
}

func TestHashCapBytes(t *testing.T) {
	cfg := &Config{HashLimitEnabled: true, HashMaxMB: 500}
	if got := cfg.HashCapBytes(); got != 500*utils.MB {
		t.Errorf("HashCapBytes() = %d, want %d", got, 500*utils.MB)
	}

	cfg.HashLimitEnabled = false
	if got := cfg.HashCapBytes(); got != 0 {
		t.Errorf("HashCapBytes() disabled = %d, want 0", got)
	}
}

func TestCollectOptionsMapping(t *testing.T) {
	cfg := &Config{Days: 14, NamePrefix: "inv_", IncludeSubfolders: true}
	opts := cfg.CollectOptions()
	if opts.DaysBack != 14 || opts.NamePrefix != "inv_" || !opts.Recursive {
		t.Errorf("CollectOptions() = %+v", opts)
	}
}

func TestAddRecentFolder(t *testing.T) {
	cfg := &Config{}

	cfg.AddRecentFolder("/a")
	cfg.AddRecentFolder("/b")
	cfg.AddRecentFolder("/a")

	if len(cfg.RecentFolders) != 2 {
		t.Fatalf("RecentFolders = %v, want deduped pair", cfg.RecentFolders)
	}
	if cfg.RecentFolders[0] != "/a" || cfg.RecentFolders[1] != "/b" {
		t.Errorf("RecentFolders order = %v, want most recent first", cfg.RecentFolders)
	}

	for i := 0; i < 20; i++ {
		cfg.AddRecentFolder(filepath.Join("/spam", string(rune('a'+i))))
	}
	if len(cfg.RecentFolders) != maxRecentFolders {
		t.Errorf("history grew to %d entries, want cap of %d", len(cfg.RecentFolders), maxRecentFolders)
	}
}
