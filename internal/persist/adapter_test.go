package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/listy/internal/checklist"
	"github.com/Makepad-fr/listy/internal/ids"
	"github.com/Makepad-fr/listy/internal/model"
	"github.com/Makepad-fr/listy/internal/store/jsonstore"
	"github.com/Makepad-fr/listy/internal/store/kv"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	js, err := jsonstore.Open(t.TempDir())
	require.NoError(t, err)

	backends := map[string]kv.Store{
		"memory": kv.NewMemory(),
		"json":   js,
	}
	for name, slots := range backends {
		t.Run(name, func(t *testing.T) {
			s := checklist.New(ids.NewSequence("item"))
			s.Add("a")
			b, _ := s.Add("b <i>")
			s.Toggle(b.ID)

			a := New(slots, nil)
			require.NoError(t, a.Save(ctx, s.Items()))

			got, ok := a.Load(ctx)
			require.True(t, ok)
			require.Equal(t, s.Items(), got)
		})
	}
}

func TestSaveOverwrites(t *testing.T) {
	ctx := context.Background()
	a := New(kv.NewMemory(), nil)
	require.NoError(t, a.Save(ctx, []model.Item{{ID: "1", Text: "one"}}))
	require.NoError(t, a.Save(ctx, nil))

	got, ok := a.Load(ctx)
	require.True(t, ok)
	require.Empty(t, got)
}

func TestLoadAbsent(t *testing.T) {
	got, ok := New(kv.NewMemory(), nil).Load(context.Background())
	require.False(t, ok)
	require.Nil(t, got)
}

func TestLoadCorruptIsFailSoft(t *testing.T) {
	ctx := context.Background()
	slots := kv.NewMemory()
	require.NoError(t, slots.Set(ctx, SlotKey, []byte(`[{"id":`)))

	got, ok := New(slots, nil).Load(ctx)
	require.False(t, ok)
	require.Nil(t, got)
}

type brokenSlots struct{ kv.Store }

func (brokenSlots) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("disk on fire")
}

func (brokenSlots) Set(context.Context, string, []byte) error {
	return errors.New("disk on fire")
}

func TestBackendErrors(t *testing.T) {
	ctx := context.Background()
	a := New(brokenSlots{}, nil)

	_, ok := a.Load(ctx)
	require.False(t, ok)

	err := a.Save(ctx, []model.Item{{ID: "1", Text: "x"}})
	require.ErrorContains(t, err, "disk on fire")
}
