package session

import (
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/graphmapper/pkg/errors"
)

// FileStore writes session artifacts under a base directory.
// Writes go to a temporary file that is renamed into place, so a failed
// write never leaves a truncated artifact behind.
type FileStore struct {
	baseDir string
}

// NewFileStore creates a store rooted at baseDir.
// The directory is created on the first write.
func NewFileStore(baseDir string) *FileStore {
	return &FileStore{baseDir: baseDir}
}

// Path returns the base directory.
func (s *FileStore) Path() string {
	return s.baseDir
}

// Exists reports whether a regular file exists at path.
func (s *FileStore) Exists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// Write atomically replaces the file at path with what fn writes.
func (s *FileStore) Write(path string, fn func(io.Writer) error) error {
	if err := os.MkdirAll(s.baseDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create output dir")
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "create temp file for %s", path)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	if err := fn(f); err != nil {
		f.Close()
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeIO, err, "write %s", path)
		}
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return errors.Wrap(errors.ErrCodeIO, err, "sync %s", path)
	}
	if err := f.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "close %s", path)
	}
	if err := os.Chmod(tmp, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "chmod %s", path)
	}
	if err := os.Rename(tmp, path); err != nil {
		return errors.Wrap(errors.ErrCodeIO, err, "rename to %s", path)
	}
	return nil
}
