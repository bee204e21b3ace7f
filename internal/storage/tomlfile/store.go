// Package tomlfile stores preferences as a flat TOML table on disk.
package tomlfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pelletier/go-toml/v2"
)

// FileName is the preference file name inside the config directory.
const FileName = "ui.toml"

// ErrClosed is returned by operations on a closed store.
var ErrClosed = errors.New("tomlfile storage: store is closed")

// Store keeps preferences in a single TOML file.
// Every write rewrites the file through a temp file and rename.
type Store struct {
	mu     sync.Mutex
	path   string
	closed bool
}

// New returns a store backed by the file at path.
// The parent directory is created if needed; the file itself is created on
// the first write.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("tomlfile storage: create directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, ErrClosed
	}
	values, err := s.read()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	return s.update(func(values map[string]string) {
		values[key] = value
	})
}

func (s *Store) Delete(key string) error {
	return s.update(func(values map[string]string) {
		delete(values, key)
	})
}

func (s *Store) Keys() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	values, err := s.read()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *Store) update(mutate func(map[string]string)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return withLock(s.path+".lock", func() error {
		values, err := s.read()
		if err != nil {
			return err
		}
		mutate(values)
		return s.write(values)
	})
}

// read loads the file; a missing file is an empty table.
func (s *Store) read() (map[string]string, error) {
	values := make(map[string]string)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return values, nil
	}
	if err != nil {
		return nil, fmt.Errorf("tomlfile storage: read %s: %w", s.path, err)
	}
	if err := toml.Unmarshal(data, &values); err != nil {
		return nil, fmt.Errorf("tomlfile storage: parse %s: %w", s.path, err)
	}
	return values, nil
}

func (s *Store) write(values map[string]string) error {
	data, err := toml.Marshal(values)
	if err != nil {
		return fmt.Errorf("tomlfile storage: encode: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ui-*.toml")
	if err != nil {
		return fmt.Errorf("tomlfile storage: create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("tomlfile storage: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("tomlfile storage: close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("tomlfile storage: replace %s: %w", s.path, err)
	}
	return nil
}
