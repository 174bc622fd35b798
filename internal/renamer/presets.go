package renamer

import (
	"path/filepath"
	"strings"
)

var presetExtensions = map[string][]string{
	"images":    {"jpg", "jpeg", "png", "gif", "bmp", "webp", "tif", "tiff", "heic", "heif", "svg"},
	"videos":    {"mp4", "mov", "avi", "mkv", "webm", "m4v", "mpg", "mpeg", "wmv"},
	"audio":     {"mp3", "wav", "flac", "aac", "m4a", "ogg", "opus", "wma"},
	"documents": {"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "txt", "rtf", "odt", "ods", "odp", "csv", "md"},
	"archives":  {"zip", "rar", "7z", "tar", "gz", "bz2", "xz", "tgz"},
}

// NormalizePreset maps a preset name to its canonical form; anything
// unrecognized becomes "all".
func NormalizePreset(preset string) string {
	p := strings.ToLower(strings.TrimSpace(preset))
	if _, ok := presetExtensions[p]; ok {
		return p
	}
	return "all"
}

// MatchesPreset reports whether a file's extension belongs to the preset.
// The "all" preset matches everything.
func MatchesPreset(path, preset string) bool {
	normalized := NormalizePreset(preset)
	if normalized == "all" {
		return true
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext == "" {
		return false
	}
	for _, e := range presetExtensions[normalized] {
		if e == ext {
			return true
		}
	}
	return false
}
