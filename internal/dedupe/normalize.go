package dedupe

import (
	"runtime"
	"strings"
)

// caseInsensitiveFS reports whether the platform's default filesystem
// compares names case-insensitively.
var caseInsensitiveFS = runtime.GOOS == "windows" || runtime.GOOS == "darwin"

// NormalizeName maps a file name to its comparison form: folded to lower
// case on platforms with case-insensitive filesystems, unchanged elsewhere.
func NormalizeName(name string) string {
	if caseInsensitiveFS {
		return strings.ToLower(name)
	}
	return name
}
