// Package trash provides file removal strategies. Reversible strategies move
// files into an OS trash location so the user can recover them; the
// permanent strategy unlinks outright. The best available strategy is
// selected once at startup via Detect.
package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Strategy is a file removal mechanism.
type Strategy interface {
	// Name identifies the mechanism in reports.
	Name() string
	// Delete removes the file at path. Deleting a missing file is not an
	// error.
	Delete(path string) error
}

// Detect picks the best reversible mechanism available on this platform,
// falling back to permanent deletion.
func Detect() Strategy {
	switch runtime.GOOS {
	case "darwin":
		if s := detectDarwin(); s != nil {
			return s
		}
	case "linux":
		if s := detectXDG(); s != nil {
			return s
		}
	}
	return Permanent{}
}

// Permanent removes files outright with no recovery path.
type Permanent struct{}

func (Permanent) Name() string { return "permanent" }

func (Permanent) Delete(path string) error {
	err := os.Remove(path)
	if err != nil && os.IsNotExist(err) {
		return nil
	}
	return err
}

// uniqueTarget returns a path in dir based on base that does not collide
// with an existing entry.
func uniqueTarget(dir, base string) string {
	target := filepath.Join(dir, base)
	for i := 2; ; i++ {
		if _, err := os.Lstat(target); os.IsNotExist(err) {
			return target
		}
		target = filepath.Join(dir, fmt.Sprintf("%s.%d", base, i))
	}
}
