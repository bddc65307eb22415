package vocab

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

// ErrLocked is returned when another process holds the vocabulary file lock
var ErrLocked = errors.New("vocabulary file is locked by another process")

var prettyOptions = &pretty.Options{
	Indent: "  ",
}

// Parse decodes a vocabulary file: a JSON array whose elements are all objects
func Parse(data []byte) ([]*Entry, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformed)
	}

	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, fmt.Errorf("%w: top-level value is not an array", ErrMalformed)
	}

	var (
		entries []*Entry
		err     error
	)
	root.ForEach(func(_, value gjson.Result) bool {
		if !value.IsObject() {
			err = fmt.Errorf("%w: element %d is not an object", ErrMalformed, len(entries)+1)
			return false
		}
		entries = append(entries, &Entry{raw: []byte(value.Raw)})
		return true
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Encode renders entries as a pretty-printed JSON array with 2-space indentation
func Encode(entries []*Entry) []byte {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, e := range entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.Write(e.raw)
	}
	buf.WriteByte(']')

	return pretty.PrettyOptions(buf.Bytes(), prettyOptions)
}

// Store loads and saves one vocabulary file
type Store struct {
	path string
	lock *flock.Flock
}

// NewStore creates a store for the file at path
func NewStore(path string) *Store {
	return &Store{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

// Path returns the vocabulary file path
func (s *Store) Path() string {
	return s.path
}

// Lock takes the advisory lock guarding the vocabulary file
func (s *Store) Lock() error {
	ok, err := s.lock.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrLocked, s.lock.Path())
	}
	return nil
}

// Unlock releases the lock. The lock file stays in place so every process
// locks the same inode.
func (s *Store) Unlock() error {
	if err := s.lock.Unlock(); err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	return nil
}

// Load reads and parses the whole vocabulary file
func (s *Store) Load() ([]*Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary: %w", err)
	}

	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
	}
	return entries, nil
}

// Save overwrites the vocabulary file with entries
func (s *Store) Save(entries []*Entry) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(Encode(entries)); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write vocabulary: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write vocabulary: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("failed to replace vocabulary: %w", err)
	}

	return nil
}
