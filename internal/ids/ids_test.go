package ids

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUUID_UniqueInTightLoop(t *testing.T) {
	var g UUID
	seen := make(map[string]bool, 1000)
	for i := 0; i < 1000; i++ {
		id := g.NewID()
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		require.False(t, seen[id], "duplicate id %q", id)
		seen[id] = true
	}
}

func TestSequence_CountsFromOne(t *testing.T) {
	s := NewSequence("item")
	require.Equal(t, "item-1", s.NewID())
	require.Equal(t, "item-2", s.NewID())

	bare := NewSequence("")
	require.Equal(t, "1", bare.NewID())
}

func TestSequence_ConcurrentCallersNeverCollide(t *testing.T) {
	s := NewSequence("x")
	var (
		mu   sync.Mutex
		wg   sync.WaitGroup
		seen = map[string]bool{}
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				id := s.NewID()
				mu.Lock()
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	require.Len(t, seen, 8*200)
}
