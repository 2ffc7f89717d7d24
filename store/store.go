// Package store persists rendered transcripts under a data root, one
// directory per format: <root>/<format>/<id>.<format>.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultRoot is the data root used when New is given an empty string.
const DefaultRoot = "./data"

// ErrInvalidName is returned for ids or formats that would escape their
// directory.
var ErrInvalidName = errors.New("invalid name")

// Store writes files beneath a root directory.
type Store struct {
	root string
}

// New creates a Store rooted at root.
func New(root string) *Store {
	if root == "" {
		root = DefaultRoot
	}
	return &Store{root: root}
}

// Root returns the data root.
func (s *Store) Root() string {
	return s.root
}

// Rel returns the slash-separated path of a saved file relative to the root,
// e.g. "json/abc.json".
func (s *Store) Rel(id, format string) (string, error) {
	if err := validate(id, format); err != nil {
		return "", err
	}
	return format + "/" + id + "." + format, nil
}

// Path returns where the rendering of id in format is stored.
func (s *Store) Path(id, format string) (string, error) {
	rel, err := s.Rel(id, format)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(rel)), nil
}

// Save writes data to Path(id, format), creating directories as needed, and
// returns the path written. The file is replaced atomically: on error the
// previous contents, if any, are left untouched.
func (s *Store) Save(id, format string, data []byte) (string, error) {
	path, err := s.Path(id, format)
	if err != nil {
		return "", err
	}
	if err := WriteAtomic(path, data); err != nil {
		return "", fmt.Errorf("save %s: %w", path, err)
	}
	return path, nil
}

// Exists reports whether a rendering of id in format has been saved.
func (s *Store) Exists(id, format string) bool {
	path, err := s.Path(id, format)
	if err != nil {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}

// WriteAtomic writes data to a temporary file next to path, syncs it and
// renames it into place.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

func validate(id, format string) error {
	for _, v := range []struct{ kind, s string }{{"id", id}, {"format", format}} {
		switch {
		case v.s == "", v.s == ".", v.s == "..":
			return fmt.Errorf("%w: %s %q", ErrInvalidName, v.kind, v.s)
		case strings.ContainsAny(v.s, `/\`), strings.Contains(v.s, ".."):
			return fmt.Errorf("%w: %s %q", ErrInvalidName, v.kind, v.s)
		}
	}
	return nil
}
