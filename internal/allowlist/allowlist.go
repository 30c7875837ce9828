// Package allowlist loads and caches the set of authorized source
// identifiers from a boundary-checked flat file.
//
// The store is fail-closed: a missing or unreadable file yields an
// empty set, so nothing is authorized. The only hard error is a
// boundary violation at construction time, which is operator
// misconfiguration rather than untrusted input.
package allowlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// BoundaryError reports an allowlist path that escapes the base
// directory.
type BoundaryError struct {
	Base string
	Path string
}

func (e *BoundaryError) Error() string {
	return fmt.Sprintf("allowlist path %q escapes base directory %q", e.Path, e.Base)
}

// Store loads and caches authorized source identifiers. Safe for
// concurrent use: the first lookup populates the cache under the write
// lock, later lookups take only the read lock on an immutable set.
type Store struct {
	base string // canonical boundary directory
	path string // canonical allowlist path, inside base

	mu      sync.RWMutex
	loaded  bool
	entries map[string]struct{}
	loadErr error
}

// New resolves relativePath against baseDir and boundary-checks the
// result. The file itself may be absent; loading then yields an empty
// set.
func New(baseDir, relativePath string) (*Store, error) {
	base, path, err := Resolve(baseDir, relativePath)
	if err != nil {
		return nil, err
	}
	return &Store{base: base, path: path}, nil
}

// Resolve canonicalizes baseDir and relativePath and verifies the
// result is a strict descendant of the boundary. Symlinks in every
// existing path component are resolved before comparing, and the
// comparison is by path segment so /base-evil is never mistaken for a
// child of /base.
func Resolve(baseDir, relativePath string) (base, path string, err error) {
	base, err = filepath.Abs(baseDir)
	if err != nil {
		return "", "", fmt.Errorf("resolve base directory: %w", err)
	}
	if resolved, serr := filepath.EvalSymlinks(base); serr == nil {
		base = resolved
	}

	full := filepath.Join(base, relativePath)
	canon, err := canonicalize(full)
	if err != nil {
		return "", "", fmt.Errorf("resolve allowlist path: %w", err)
	}

	rel, rerr := filepath.Rel(base, canon)
	if rerr != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", &BoundaryError{Base: base, Path: full}
	}
	return base, canon, nil
}

// canonicalize resolves symlinks in the deepest existing ancestor of
// path and rejoins the missing tail. The allowlist file is allowed to
// not exist yet, but any symlink on the way to it must be followed
// before the boundary comparison.
func canonicalize(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}
	dir := filepath.Dir(filepath.Clean(path))
	if dir == path {
		// Reached the root without an existing ancestor.
		return path, nil
	}
	parent, err := canonicalize(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(path)), nil
}

// load returns the cached entry set, reading the file on first call.
// A missing file yields an empty set. A read failure also yields an
// empty set and is retained for diagnostics; it never reaches the
// authorization decision as anything but a denial.
func (s *Store) load() map[string]struct{} {
	s.mu.RLock()
	if s.loaded {
		entries := s.entries
		s.mu.RUnlock()
		return entries
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.entries
	}

	entries := make(map[string]struct{})
	s.loadErr = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.loadErr = fmt.Errorf("read allowlist: %w", err)
		}
	} else {
		for _, line := range strings.Split(string(data), "\n") {
			line = strings.TrimSpace(line)
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			// Entries are byte-exact: no normalization, case-sensitive.
			entries[line] = struct{}{}
		}
	}

	s.entries = entries
	s.loaded = true
	return s.entries
}

// Lookup reports whether id is on the allowlist.
func (s *Store) Lookup(id string) bool {
	_, ok := s.load()[id]
	return ok
}

// Size returns the number of cached entries, loading if needed.
func (s *Store) Size() int {
	return len(s.load())
}

// Reset clears the cache so the next lookup re-reads the file.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	s.entries = nil
	s.loadErr = nil
}

// LoadErr returns the read error from the most recent load, if any.
// A missing file is not an error.
func (s *Store) LoadErr() error {
	s.load()
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Base returns the canonical boundary directory.
func (s *Store) Base() string { return s.base }

// Path returns the canonical allowlist file path.
func (s *Store) Path() string { return s.path }

// FileExists reports whether the allowlist file is present on disk.
func (s *Store) FileExists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}
