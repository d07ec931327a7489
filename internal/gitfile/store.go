// Package gitfile implements a key-value store backed by a file in git
// config format. Keys are dotted strings ("section.name" or
// "section.subsection.name"); values are stored as text and read back
// through typed accessors that follow git's value conventions.
//
// Mutations re-read the file under an exclusive cross-process lock, apply
// the change to the parsed document, and write the whole file back
// atomically. Lines the store does not understand (comments, blanks,
// unknown constructs) are preserved across writes.
package gitfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"

	"gitconf/internal/logging"
)

// Store is a single config file plus optional read-only fallback files
// consulted, in order, when a key is missing locally. Writes never touch
// the fallbacks.
type Store struct {
	path          string
	doc           *document
	fallbackPaths []string
	fallbacks     []*Store
	closed        bool
}

// Option configures a Store at open time.
type Option func(*Store)

// WithFallback adds config files consulted on read misses, in precedence
// order. A fallback path that does not exist reads as empty.
func WithFallback(paths ...string) Option {
	return func(s *Store) {
		for _, p := range paths {
			if p != "" {
				s.fallbackPaths = append(s.fallbackPaths, p)
			}
		}
	}
}

// Open reads and parses the config file at path. A missing file is not an
// error; the store starts empty and the file is created on the first write.
func Open(path string, opts ...Option) (*Store, error) {
	s := &Store{path: path}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.load(); err != nil {
		return nil, err
	}

	for _, fp := range s.fallbackPaths {
		fb, err := Open(fp)
		if err != nil {
			return nil, fmt.Errorf("opening fallback config %s: %w", fp, err)
		}
		s.fallbacks = append(s.fallbacks, fb)
	}
	return s, nil
}

// Path returns the file this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Close releases the store. It is idempotent; operations after Close
// return ErrStoreClosed.
func (s *Store) Close() error {
	s.closed = true
	return nil
}

// String returns the raw value for key, consulting fallbacks on a miss.
func (s *Store) String(key string) (string, error) {
	return s.get(key)
}

// Bool returns the value for key interpreted with git's boolean spellings.
func (s *Store) Bool(key string) (bool, error) {
	raw, err := s.get(key)
	if err != nil {
		return false, err
	}
	v, err := ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("key %q: %w", key, err)
	}
	return v, nil
}

// Int32 returns the value for key as a 32-bit integer.
func (s *Store) Int32(key string) (int32, error) {
	raw, err := s.get(key)
	if err != nil {
		return 0, err
	}
	v, err := ParseInt32(raw)
	if err != nil {
		return 0, fmt.Errorf("key %q: %w", key, err)
	}
	return v, nil
}

// Int64 returns the value for key as a 64-bit integer.
func (s *Store) Int64(key string) (int64, error) {
	raw, err := s.get(key)
	if err != nil {
		return 0, err
	}
	v, err := ParseInt64(raw)
	if err != nil {
		return 0, fmt.Errorf("key %q: %w", key, err)
	}
	return v, nil
}

// SetString writes key = value to the store's file.
func (s *Store) SetString(key, value string) error {
	return s.set(key, encodeValue(value))
}

// SetBool writes key = true/false to the store's file.
func (s *Store) SetBool(key string, value bool) error {
	return s.set(key, strconv.FormatBool(value))
}

// SetInt32 writes key = value to the store's file.
func (s *Store) SetInt32(key string, value int32) error {
	return s.set(key, strconv.FormatInt(int64(value), 10))
}

// SetInt64 writes key = value to the store's file.
func (s *Store) SetInt64(key string, value int64) error {
	return s.set(key, strconv.FormatInt(value, 10))
}

// Delete removes key from the store's file. Deleting a key that is not
// present returns ErrKeyNotFound; fallbacks are never consulted or
// modified.
func (s *Store) Delete(key string) error {
	if s.closed {
		return fmt.Errorf("store %s: %w", s.path, ErrStoreClosed)
	}
	return s.withLock(func(doc *document) error {
		return doc.delete(key)
	})
}

// All returns a copy of the key-value pairs defined in this store's own
// file, excluding fallbacks.
func (s *Store) All() map[string]string {
	if s.closed {
		return map[string]string{}
	}
	return s.doc.all()
}

func (s *Store) get(key string) (string, error) {
	if s.closed {
		return "", fmt.Errorf("store %s: %w", s.path, ErrStoreClosed)
	}
	canonical, err := canonicalKey(key)
	if err != nil {
		return "", err
	}
	if e, ok := s.doc.entries[canonical]; ok {
		return e.value, nil
	}
	for _, fb := range s.fallbacks {
		if e, ok := fb.doc.entries[canonical]; ok {
			return e.value, nil
		}
	}
	return "", fmt.Errorf("key %q: %w", key, ErrKeyNotFound)
}

func (s *Store) set(key, rendered string) error {
	if s.closed {
		return fmt.Errorf("store %s: %w", s.path, ErrStoreClosed)
	}
	if _, err := canonicalKey(key); err != nil {
		return err
	}
	return s.withLock(func(doc *document) error {
		return doc.set(key, rendered)
	})
}

// withLock acquires an exclusive file lock, re-reads the config from disk
// (picking up writes from other processes), calls fn to mutate the
// document, then atomically writes it back.
func (s *Store) withLock(fn func(*document) error) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	lock := flock.New(s.path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquiring config lock: %w", err)
	}
	defer func() {
		_ = lock.Unlock()
	}()

	// Re-read from disk to pick up changes from other processes.
	if err := s.load(); err != nil {
		return err
	}

	if err := fn(s.doc); err != nil {
		return err
	}

	pending, err := renameio.NewPendingFile(s.path, renameio.WithStaticPermissions(0o644))
	if err != nil {
		return fmt.Errorf("creating pending config file: %w", err)
	}
	defer func() {
		_ = pending.Cleanup()
	}()

	if _, err := pending.WriteString(s.doc.render()); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replacing config file: %w", err)
	}

	logger := logging.Logger()
	logger.Debug().Str("path", s.path).Msg("config file updated")
	return nil
}

// load reloads the document from the file on disk. A missing file yields
// an empty document.
func (s *Store) load() error {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.doc = &document{
				entries:  make(map[string]entry),
				sections: make(map[string]sectionBlock),
			}
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", s.path, err)
	}

	doc, err := parseDocument(splitLines(string(raw)))
	if err != nil {
		return fmt.Errorf("parsing config file %s: %w", s.path, err)
	}
	s.doc = doc
	return nil
}

// splitLines breaks file content into lines without the trailing newline,
// so rendering can re-join deterministically.
func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	lines := strings.Split(content, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
