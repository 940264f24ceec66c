// Package fileio reads and writes the plain text, CSV and JSON files of the
// file lesson. Every function opens its file, uses it and closes it before
// returning, on success and on error alike.
package fileio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrFileNotFound is matched by errors from any read of a missing file.
var ErrFileNotFound = errors.New("file not found")

func openErr(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s: %w", ErrFileNotFound, path, err)
	}
	return fmt.Errorf("failed to open %s: %w", path, err)
}

// ensureDir creates the parent directory of path if it has one.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// Exists reports whether path names an existing regular file.
func Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func closeWith(f *os.File, err *error) {
	if cerr := f.Close(); cerr != nil && *err == nil {
		*err = fmt.Errorf("failed to close %s: %w", f.Name(), cerr)
	}
}
