// Package storage owns the flat directory of uploaded and generated
// files. Stored names are derived deterministically from the applicant
// identity, the upload category, and the original file name, keeping one
// applicant's documents grouped and collision-resistant across categories.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// ErrBadName is returned for names that would escape the upload directory.
var ErrBadName = errors.New("invalid file name")

type Store struct {
	dir string
}

// New creates the upload directory if needed and returns a store over it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string { return s.dir }

// DerivedName builds the stored name for one uploaded document:
// <Nom>_<Prenom>_<category>_<original base name>, each part sanitized.
func DerivedName(nom, prenom, category, original string) string {
	return strings.Join([]string{
		Sanitize(nom),
		Sanitize(prenom),
		Sanitize(category),
		Sanitize(filepath.Base(original)),
	}, "_")
}

// Sanitize keeps letters, digits, dots and dashes; everything else
// (separators, spaces, control bytes) becomes a dash.
func Sanitize(part string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-':
			return r
		default:
			return '-'
		}
	}, part)
}

// Save writes one file under the store. name must be a bare file name.
func (s *Store) Save(name string, r io.Reader) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(p)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(p)
		return fmt.Errorf("flush %s: %w", name, err)
	}
	return nil
}

// Open returns the stored file for reading.
func (s *Store) Open(name string) (*os.File, error) {
	p, err := s.Path(name)
	if err != nil {
		return nil, err
	}
	return os.Open(p)
}

// Remove deletes one stored file; a missing file is not an error.
func (s *Store) Remove(name string) error {
	p, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

// Exists reports whether the stored name resolves to a file on disk.
func (s *Store) Exists(name string) bool {
	p, err := s.Path(name)
	if err != nil {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && !info.IsDir()
}

// Path resolves a stored name to its on-disk path, rejecting anything
// that is not a bare file name.
func (s *Store) Path(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." {
		return "", ErrBadName
	}
	return filepath.Join(s.dir, name), nil
}

// Count returns the number of stored files.
func (s *Store) Count() (int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, e := range entries {
		if !e.IsDir() {
			n++
		}
	}
	return n, nil
}
