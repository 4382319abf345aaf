package checklist

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/listy/internal/ids"
	"github.com/Makepad-fr/listy/internal/model"
)

func newStore() *Store { return New(ids.NewSequence("item")) }

func TestAdd(t *testing.T) {
	t.Run("appends trimmed pending item", func(t *testing.T) {
		s := newStore()
		for _, text := range []string{"Buy milk", "  eggs  ", "x"} {
			before := s.Len()
			it, ok := s.Add(text)
			require.True(t, ok)
			require.Equal(t, before+1, s.Len())
			require.False(t, it.Completed)
			require.NotEmpty(t, it.ID)
		}
		items := s.Items()
		require.Equal(t, "eggs", items[1].Text)
		require.NotEqual(t, items[0].ID, items[1].ID)
		require.NotEqual(t, items[1].ID, items[2].ID)
	})

	t.Run("blank text is ignored", func(t *testing.T) {
		s := newStore()
		s.Add("keep")
		for _, text := range []string{"", "   ", "\t\n"} {
			_, ok := s.Add(text)
			require.False(t, ok)
		}
		require.Equal(t, 1, s.Len())
	})
}

func TestToggleTwiceRestores(t *testing.T) {
	s := newStore()
	it, _ := s.Add("a")
	require.True(t, s.Toggle(it.ID))
	got, _ := s.Get(it.ID)
	require.True(t, got.Completed)
	require.True(t, s.Toggle(it.ID))
	got, _ = s.Get(it.ID)
	require.False(t, got.Completed)

	require.False(t, s.Toggle("missing"))
}

func TestUpdateText(t *testing.T) {
	s := newStore()
	a, _ := s.Add("a")
	b, _ := s.Add("b")
	c, _ := s.Add("c")

	removed, ok := s.UpdateText(b.ID, "  bee ")
	require.True(t, ok)
	require.False(t, removed)
	got := s.Items()
	require.Equal(t, []string{"a", "bee", "c"}, texts(got))
	require.Equal(t, b.ID, got[1].ID)

	removed, ok = s.UpdateText("missing", "zzz")
	require.False(t, ok)
	require.False(t, removed)

	// blank text behaves like Remove
	removed, ok = s.UpdateText(a.ID, "   ")
	require.True(t, ok)
	require.True(t, removed)
	require.Equal(t, []string{"bee", "c"}, texts(s.Items()))
	_, found := s.Get(a.ID)
	require.False(t, found)
	require.Equal(t, 1, s.Index(c.ID))
}

func TestRemove(t *testing.T) {
	s := newStore()
	a, _ := s.Add("a")
	require.True(t, s.Remove(a.ID))
	require.False(t, s.Remove(a.ID))
	require.Zero(t, s.Len())

	// ids are never reused after deletion
	b, _ := s.Add("a")
	require.NotEqual(t, a.ID, b.ID)
}

func TestReplaceAll_AssignsFreshIDs(t *testing.T) {
	s := newStore()
	old, _ := s.Add("old")
	s.ReplaceAll([]model.Item{
		{ID: old.ID, Text: "one", Completed: true},
		{ID: old.ID, Text: "two"},
		{ID: "x", Text: "   "},
	})
	items := s.Items()
	require.Len(t, items, 2)
	require.Equal(t, []string{"one", "two"}, texts(items))
	require.True(t, items[0].Completed)
	require.False(t, items[1].Completed)
	require.NotEqual(t, old.ID, items[0].ID)
	require.NotEqual(t, old.ID, items[1].ID)
	require.NotEqual(t, items[0].ID, items[1].ID)
}

func TestLoad_KeepsIDsAndDropsInvalid(t *testing.T) {
	s := newStore()
	s.Load([]model.Item{
		{ID: "a", Text: "one"},
		{ID: "a", Text: "dupe"},
		{ID: "", Text: "no id"},
		{ID: "b", Text: " "},
		{ID: "c", Text: "three", Completed: true},
	})
	require.Equal(t, []model.Item{
		{ID: "a", Text: "one"},
		{ID: "c", Text: "three", Completed: true},
	}, s.Items())
}

func TestItemsReturnsCopy(t *testing.T) {
	s := newStore()
	s.Add("a")
	items := s.Items()
	items[0].Text = "mutated"
	got, _ := s.At(0)
	require.Equal(t, "a", got.Text)
}

func TestSerializeRoundTrip(t *testing.T) {
	s := newStore()
	s.Add("a")
	b, _ := s.Add("b")
	s.Toggle(b.ID)

	blob, err := s.Serialize()
	require.NoError(t, err)

	back, err := Deserialize(blob)
	require.NoError(t, err)
	require.Equal(t, s.Items(), back)

	empty, err := Serialize(nil)
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(empty))

	_, err = Deserialize([]byte(`{"nope"`))
	require.Error(t, err)
}

func TestScenario_AddToggleEditToEmpty(t *testing.T) {
	s := newStore()
	it, ok := s.Add("Buy milk")
	require.True(t, ok)
	require.Equal(t, []model.Item{{ID: it.ID, Text: "Buy milk"}}, s.Items())

	s.Toggle(it.ID)
	got, _ := s.Get(it.ID)
	require.True(t, got.Completed)

	s.UpdateText(it.ID, "")
	require.Empty(t, s.Items())
}

func TestStats(t *testing.T) {
	s := newStore()
	a, _ := s.Add("a")
	s.Add("b")
	s.Add("c")
	s.Toggle(a.ID)
	done, pending := s.Stats()
	require.Equal(t, 1, done)
	require.Equal(t, 2, pending)
}

func texts(items []model.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Text)
	}
	return out
}
