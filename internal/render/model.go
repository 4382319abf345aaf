// Package render builds the view model handed to presentation layers and
// renders it as HTML or plain lines.
package render

import (
	"github.com/Makepad-fr/listy/internal/checklist"
	"github.com/Makepad-fr/listy/internal/editsession"
	"github.com/Makepad-fr/listy/internal/model"
)

// EmptyText is shown in place of the list when it has no items.
const EmptyText = "No items yet. Add your first item above!"

// Model is a snapshot of everything a presentation layer shows.
type Model struct {
	Rows      []Row
	Empty     bool
	EmptyText string
	Done      int
	Pending   int
	// EditingID is the row in inline-edit mode, "" when none.
	EditingID string
	// ShareURL is the link currently on display, "" when hidden.
	ShareURL string
}

// Row is one displayed item.
type Row struct {
	ID        string
	Text      string
	Completed bool
	Editing   bool
	Draft     string
}

// Build snapshots items and the edit session.
func Build(items []model.Item, sess *editsession.Session, shareURL string) Model {
	m := Model{
		Rows:     make([]Row, 0, len(items)),
		Empty:    len(items) == 0,
		ShareURL: shareURL,
	}
	if m.Empty {
		m.EmptyText = EmptyText
	}
	m.Done, m.Pending = checklist.Stats(items)

	editID, editing := "", false
	if sess != nil {
		editID, editing = sess.EditingID()
	}
	for _, it := range items {
		r := Row{ID: it.ID, Text: it.Text, Completed: it.Completed}
		if editing && it.ID == editID {
			r.Editing = true
			r.Draft = sess.Draft()
			m.EditingID = it.ID
		}
		m.Rows = append(m.Rows, r)
	}
	return m
}

// Total is the number of rows.
func (m Model) Total() int { return len(m.Rows) }
