package fileio

import (
	"fmt"
	"os"
)

// WriteText truncates path and writes each line as given. Lines are not
// terminated for the caller.
func WriteText(path string, lines ...string) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return openErr(path, err)
	}
	defer closeWith(f, &err)

	for _, line := range lines {
		if _, err := f.WriteString(line); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// AppendText appends s to path, creating the file if it is absent.
func AppendText(path, s string) (err error) {
	if err := ensureDir(path); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return openErr(path, err)
	}
	defer closeWith(f, &err)

	if _, err := f.WriteString(s); err != nil {
		return fmt.Errorf("failed to append to %s: %w", path, err)
	}
	return nil
}

// ReadText returns the whole content of path.
func ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", openErr(path, err)
	}
	return string(data), nil
}
