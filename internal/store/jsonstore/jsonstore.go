package jsonstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/Makepad-fr/listy/internal/store/kv"
)

// JSON-backed slot storage. Single file, human-readable, portable.
// Every slot lives in one object: {"checklist": "<serialized value>"}.
// No cross-process locking; fine for a local single-user tool.

const DataFileName = "listy.json"

// Store implements kv.Store on top of one JSON file.
type Store struct {
	path string

	mu     sync.Mutex
	closed bool
}

var _ kv.Store = (*Store)(nil)

// Open returns a Store writing DataFileName inside dir. The directory is
// created on first write.
func Open(dir string) (*Store, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		dir = wd
	}
	return &Store{path: filepath.Join(dir, DataFileName)}, nil
}

// Path is the backing file.
func (s *Store) Path() string { return s.path }

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, kv.ErrClosed
	}
	slots, err := s.load()
	if err != nil {
		return nil, false, err
	}
	v, ok := slots[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(v), true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return kv.ErrClosed
	}
	slots, err := s.load()
	if err != nil {
		// An unreadable file is replaced rather than blocking every write.
		slots = map[string]string{}
	}
	slots[key] = string(value)
	return s.save(slots)
}

func (s *Store) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

func (s *Store) load() (map[string]string, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	slots := map[string]string{}
	if len(b) == 0 {
		return slots, nil
	}
	if err := json.Unmarshal(b, &slots); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return slots, nil
}

func (s *Store) save(slots map[string]string) error {
	b, err := json.MarshalIndent(slots, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	// write to a sibling temp file and rename so a crash never leaves half a file
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".listy-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}
