package editsession

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestZeroValueIsIdle(t *testing.T) {
	var s Session
	require.Equal(t, Idle, s.State())
	_, editing := s.EditingID()
	require.False(t, editing)
	_, _, ok := s.Save()
	require.False(t, ok)
	require.False(t, s.Cancel())
}

func TestBeginSave(t *testing.T) {
	var s Session
	s.Begin("a", "old text")
	require.Equal(t, Editing, s.State())
	require.Equal(t, "old text", s.Draft())

	s.SetDraft("new text")
	id, text, ok := s.Save()
	require.True(t, ok)
	require.Equal(t, "a", id)
	require.Equal(t, "new text", text)
	require.Equal(t, Idle, s.State())
	require.Empty(t, s.Draft())
}

func TestCancelDiscardsDraft(t *testing.T) {
	var s Session
	s.Begin("a", "x")
	s.SetDraft("changed")
	require.True(t, s.Cancel())
	require.Equal(t, Idle, s.State())
	require.Empty(t, s.Draft())

	s.SetDraft("ignored while idle")
	require.Empty(t, s.Draft())
}

func TestBeginOtherItemDropsPriorDraft(t *testing.T) {
	var s Session
	s.Begin("A", "a text")
	s.SetDraft("a draft")

	s.Begin("B", "b text")
	id, editing := s.EditingID()
	require.True(t, editing)
	require.Equal(t, "B", id)
	require.Equal(t, "b text", s.Draft())

	_, text, _ := s.Save()
	require.NotContains(t, text, "a draft")
}

func TestForget(t *testing.T) {
	var s Session
	s.Begin("A", "x")
	require.False(t, s.Forget("B"))
	require.Equal(t, Editing, s.State())
	require.True(t, s.Forget("A"))
	require.Equal(t, Idle, s.State())
	require.False(t, s.Forget("A"))
}

func TestStateString(t *testing.T) {
	require.Equal(t, "idle", Idle.String())
	require.Equal(t, "editing", Editing.String())
}
