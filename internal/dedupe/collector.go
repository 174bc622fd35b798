package dedupe

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// CollectOptions control a collection pass.
type CollectOptions struct {
	// DaysBack limits collection to files modified within the last N days.
	// Zero or negative collects everything.
	DaysBack int
	// NamePrefix, when non-empty, keeps only files whose base name starts
	// with the prefix (case-insensitive). Applied to the name only, never
	// the path.
	NamePrefix string
	// Recursive descends into subdirectories.
	Recursive bool
}

// SkipReasons counts entries skipped over I/O errors during collection.
type SkipReasons struct {
	Permission int
	Missing    int
	Other      int
}

// Total is the overall skipped-entry count.
func (s SkipReasons) Total() int {
	return s.Permission + s.Missing + s.Other
}

func (s *SkipReasons) record(err error) {
	switch {
	case os.IsPermission(err):
		s.Permission++
	case os.IsNotExist(err):
		s.Missing++
	default:
		s.Other++
	}
}

// Collect walks root and returns a record for every regular file that passes
// the active filters, plus counts of entries skipped over I/O errors.
//
// The recency cutoff is computed once up front, so a long walk applies one
// consistent threshold. Per-entry failures (permission denied, vanished
// files, unreadable directories) never abort the walk; an unusable root is
// the only error returned.
func Collect(root string, opts CollectOptions) ([]FileRecord, SkipReasons, error) {
	var skipped SkipReasons

	info, err := os.Stat(root)
	if err != nil {
		return nil, skipped, fmt.Errorf("cannot scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, skipped, fmt.Errorf("cannot scan %s: not a directory", root)
	}

	var cutoff time.Time
	if opts.DaysBack > 0 {
		cutoff = time.Now().Add(-time.Duration(opts.DaysBack) * 24 * time.Hour)
	}
	prefix := strings.ToLower(opts.NamePrefix)

	var records []FileRecord

	filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			skipped.record(walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if !opts.Recursive && path != root {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if prefix != "" && !strings.HasPrefix(strings.ToLower(d.Name()), prefix) {
			return nil
		}
		fi, err := d.Info()
		if err != nil {
			skipped.record(err)
			return nil
		}
		if !cutoff.IsZero() && fi.ModTime().Before(cutoff) {
			return nil
		}
		records = append(records, FileRecord{
			Path:    path,
			Size:    fi.Size(),
			ModTime: fi.ModTime(),
		})
		return nil
	})

	return records, skipped, nil
}
