// Package kv defines the key-value slot contract the persistence layer
// writes through, plus an in-memory implementation.
package kv

import (
	"context"
	"errors"
	"sync"
)

// ErrClosed is returned by a Store used after Close.
var ErrClosed = errors.New("kv: store closed")

// Store maps string keys to opaque byte values.
type Store interface {
	// Get returns the value stored under key; ok is false when absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	// Set overwrites the value under key.
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Memory is a map-backed Store. Safe for concurrent use.
type Memory struct {
	mu     sync.Mutex
	m      map[string][]byte
	closed bool
}

func NewMemory() *Memory {
	return &Memory{m: map[string][]byte{}}
}

func (s *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, false, ErrClosed
	}
	v, ok := s.m[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *Memory) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.m[key] = append([]byte(nil), value...)
	return nil
}

func (s *Memory) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
