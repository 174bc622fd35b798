package trash

import (
	"os"
	"path/filepath"
)

// darwinTrash moves files into the user's ~/.Trash folder.
type darwinTrash struct {
	dir string
}

func detectDarwin() Strategy {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil
	}
	dir := filepath.Join(home, ".Trash")
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil
	}
	return &darwinTrash{dir: dir}
}

func (t *darwinTrash) Name() string { return "macos-trash" }

func (t *darwinTrash) Delete(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(abs); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	// Same EXDEV caveat as the XDG strategy: a failed rename surfaces to
	// the caller, which falls back to permanent deletion.
	return os.Rename(abs, uniqueTarget(t.dir, filepath.Base(abs)))
}
