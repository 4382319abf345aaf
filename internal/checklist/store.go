// Package checklist holds the ordered, in-memory list of items.
//
// The Store is the only owner of its items: every read hands out copies and
// every change goes through one of its methods. It does not persist or
// render anything itself; callers do that after a successful mutation.
package checklist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Makepad-fr/listy/internal/ids"
	"github.com/Makepad-fr/listy/internal/model"
)

// Store is an ordered collection of items. Insertion order is display order.
// Not safe for concurrent use.
type Store struct {
	items []model.Item
	gen   ids.Generator
}

// New returns an empty store that takes fresh ids from gen.
func New(gen ids.Generator) *Store {
	if gen == nil {
		gen = ids.UUID{}
	}
	return &Store{gen: gen}
}

// Add appends a new pending item. Blank text is ignored and reported with
// ok=false.
func (s *Store) Add(text string) (model.Item, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Item{}, false
	}
	it := model.Item{ID: s.gen.NewID(), Text: text}
	s.items = append(s.items, it)
	return it, true
}

// UpdateText replaces the text of item id in place. Blank text removes the
// item instead. ok is false when id is unknown.
func (s *Store) UpdateText(id, text string) (removed, ok bool) {
	i := s.Index(id)
	if i < 0 {
		return false, false
	}
	text = strings.TrimSpace(text)
	if text == "" {
		s.removeAt(i)
		return true, true
	}
	s.items[i].Text = text
	return false, true
}

// Toggle flips the completion flag of item id.
func (s *Store) Toggle(id string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.items[i].Completed = !s.items[i].Completed
	return true
}

// Remove deletes item id.
func (s *Store) Remove(id string) bool {
	i := s.Index(id)
	if i < 0 {
		return false
	}
	s.removeAt(i)
	return true
}

// ReplaceAll discards the current contents and installs items in order.
// Every item gets a fresh id; ids carried by the input are ignored.
// Items with blank text are dropped.
func (s *Store) ReplaceAll(items []model.Item) {
	next := make([]model.Item, 0, len(items))
	for _, it := range items {
		text := strings.TrimSpace(it.Text)
		if text == "" {
			continue
		}
		next = append(next, model.Item{ID: s.gen.NewID(), Text: text, Completed: it.Completed})
	}
	s.items = next
}

// Load installs previously persisted items, keeping their ids.
// Entries with a blank text, an empty id or an id already seen are dropped.
func (s *Store) Load(items []model.Item) {
	next := make([]model.Item, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		text := strings.TrimSpace(it.Text)
		if it.ID == "" || text == "" || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		next = append(next, model.Item{ID: it.ID, Text: text, Completed: it.Completed})
	}
	s.items = next
}

// Items returns a copy of the items in display order.
func (s *Store) Items() []model.Item {
	out := make([]model.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Store) Len() int { return len(s.items) }

// Get returns a copy of item id.
func (s *Store) Get(id string) (model.Item, bool) {
	i := s.Index(id)
	if i < 0 {
		return model.Item{}, false
	}
	return s.items[i], true
}

// At returns a copy of the item at position i (0-based).
func (s *Store) At(i int) (model.Item, bool) {
	if i < 0 || i >= len(s.items) {
		return model.Item{}, false
	}
	return s.items[i], true
}

// Index returns the position of item id, or -1.
func (s *Store) Index(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

// Stats counts completed and pending items.
func (s *Store) Stats() (done, pending int) {
	return Stats(s.items)
}

// Serialize encodes every item, ids included.
func (s *Store) Serialize() ([]byte, error) {
	return Serialize(s.items)
}

func (s *Store) removeAt(i int) {
	s.items = append(s.items[:i], s.items[i+1:]...)
}

// Serialize encodes items as a JSON array of {id, text, completed}.
func Serialize(items []model.Item) ([]byte, error) {
	if items == nil {
		items = []model.Item{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Deserialize is the inverse of Serialize.
func Deserialize(b []byte) ([]model.Item, error) {
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	return items, nil
}

// Stats counts completed and pending entries of items.
func Stats(items []model.Item) (done, pending int) {
	for _, it := range items {
		if it.Completed {
			done++
		} else {
			pending++
		}
	}
	return
}
