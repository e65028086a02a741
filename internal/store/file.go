package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// File stores each key in its own file under baseDir.
// Layout: <baseDir>/<key>.json
type File struct {
	baseDir string
}

// NewFile creates a file-backed store rooted at baseDir. The directory is
// created lazily on the first write.
func NewFile(baseDir string) *File {
	return &File{baseDir: baseDir}
}

// Path returns the file that holds key.
func (f *File) Path(key string) string {
	return filepath.Join(f.baseDir, key+".json")
}

// Get reads the value for key.
func (f *File) Get(key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("reading %s: %w", key, err)
	}
	return string(data), true, nil
}

// Set writes value atomically via a temp file and rename.
func (f *File) Set(key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(f.baseDir, 0750); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}

	destPath := f.Path(key)
	tmpPath := destPath + ".tmp"

	if err := os.WriteFile(tmpPath, []byte(value), 0600); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}

// Delete removes key if it exists.
func (f *File) Delete(key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	err := os.Remove(f.Path(key))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Close is a no-op.
func (f *File) Close() error { return nil }
