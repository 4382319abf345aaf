// Package ids hands out item identities.
package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Generator returns a new identity on every call. Two calls never return
// the same value, no matter how close together they happen.
type Generator interface {
	NewID() string
}

// UUID generates random (v4) UUIDs.
type UUID struct{}

func (UUID) NewID() string { return uuid.NewString() }

// Sequence generates prefix-1, prefix-2, ... in call order.
// Safe for concurrent use.
type Sequence struct {
	Prefix string
	n      atomic.Uint64
}

// NewSequence returns a Sequence starting at 1.
func NewSequence(prefix string) *Sequence {
	return &Sequence{Prefix: prefix}
}

func (s *Sequence) NewID() string {
	n := s.n.Add(1)
	if s.Prefix == "" {
		return strconv.FormatUint(n, 10)
	}
	return s.Prefix + "-" + strconv.FormatUint(n, 10)
}
