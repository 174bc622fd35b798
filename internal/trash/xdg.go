package trash

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// xdgTrash implements the freedesktop.org trash layout: files move into
// $XDG_DATA_HOME/Trash/files with a matching record under Trash/info.
type xdgTrash struct {
	filesDir string
	infoDir  string
}

func detectXDG() Strategy {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	t := &xdgTrash{
		filesDir: filepath.Join(dataHome, "Trash", "files"),
		infoDir:  filepath.Join(dataHome, "Trash", "info"),
	}
	if err := os.MkdirAll(t.filesDir, 0o700); err != nil {
		return nil
	}
	if err := os.MkdirAll(t.infoDir, 0o700); err != nil {
		return nil
	}
	return t
}

func (t *xdgTrash) Name() string { return "xdg-trash" }

func (t *xdgTrash) Delete(path string) error {
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

	target := uniqueTarget(t.filesDir, filepath.Base(abs))
	infoPath := filepath.Join(t.infoDir, filepath.Base(target)+".trashinfo")

	info := fmt.Sprintf("[Trash Info]\nPath=%s\nDeletionDate=%s\n",
		abs, time.Now().Format("2006-01-02T15:04:05"))
	if err := os.WriteFile(infoPath, []byte(info), 0o600); err != nil {
		return err
	}

	// Rename fails across filesystems (EXDEV); the caller falls back to
	// permanent deletion in that case.
	if err := os.Rename(abs, target); err != nil {
		os.Remove(infoPath)
		return err
	}
	return nil
}
